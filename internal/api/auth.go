package api

import (
	"context"
	"net/http"
	"net/url"

	"holidaze/internal/session"
)

type RegisterRequest struct {
	Name         string `json:"name" validate:"required,min=3"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	VenueManager bool   `json:"venueManager"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// loginPayload is the login data shape: the profile fields plus the token.
type loginPayload struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Bio          string `json:"bio,omitempty"`
	Avatar       *Media `json:"avatar,omitempty"`
	Banner       *Media `json:"banner,omitempty"`
	AccessToken  string `json:"accessToken"`
	VenueManager bool   `json:"venueManager"`
}

// Register creates an account. The remote API does not log the new
// account in; callers chain Login afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Profile, error) {
	var profile Profile
	if _, err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Login authenticates and hands the result to the session store, which
// persists it and broadcasts the change.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*session.Session, error) {
	query := url.Values{}
	query.Set("_holidaze", "true")

	var payload loginPayload
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", query, req, &payload); err != nil {
		return nil, err
	}

	profile := session.Profile{
		Name:         payload.Name,
		Email:        payload.Email,
		Bio:          payload.Bio,
		VenueManager: payload.VenueManager,
	}
	if payload.Avatar != nil {
		profile.Avatar = &session.Media{URL: payload.Avatar.URL, Alt: payload.Avatar.Alt}
	}
	if payload.Banner != nil {
		profile.Banner = &session.Media{URL: payload.Banner.URL, Alt: payload.Banner.Alt}
	}

	if err := c.store.Save(payload.AccessToken, profile); err != nil {
		return nil, err
	}
	return &session.Session{Token: payload.AccessToken, Profile: profile}, nil
}

// Logout drops the cached session. Purely local; the remote API has no
// session to tear down.
func (c *Client) Logout() error {
	return c.store.Clear()
}
