package api

import (
	"context"
	"net/http"
	"net/url"

	"holidaze/internal/session"
)

// ProfileUpdate is the PUT body for a profile; nil fields are omitted so
// the remote API leaves them untouched.
type ProfileUpdate struct {
	Bio          *string `json:"bio,omitempty"`
	Avatar       *Media  `json:"avatar,omitempty"`
	Banner       *Media  `json:"banner,omitempty"`
	VenueManager *bool   `json:"venueManager,omitempty"`
}

// GetProfile fetches a profile by name, optionally expanded with the
// profile's venues and bookings. _count comes along either way.
func (c *Client) GetProfile(ctx context.Context, name string, withVenues, withBookings bool) (*Profile, error) {
	query := url.Values{}
	if withVenues {
		query.Set("_venues", "true")
	}
	if withBookings {
		query.Set("_bookings", "true")
	}

	var profile Profile
	path := "/holidaze/profiles/" + url.PathEscape(name)
	if _, err := c.do(ctx, http.MethodGet, path, query, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile edits a profile, then mirrors the accepted fields into
// the session store when the edit targets the logged-in user, so the
// header/profile views pick up the change without a re-login.
func (c *Client) UpdateProfile(ctx context.Context, name string, update ProfileUpdate) (*Profile, error) {
	var profile Profile
	path := "/holidaze/profiles/" + url.PathEscape(name)
	if _, err := c.do(ctx, http.MethodPut, path, nil, update, &profile); err != nil {
		return nil, err
	}

	if sess := c.store.Get(); sess != nil && sess.Profile.Name == name {
		patch := session.ProfilePatch{
			Bio:          update.Bio,
			VenueManager: update.VenueManager,
		}
		if update.Avatar != nil {
			patch.Avatar = &session.Media{URL: update.Avatar.URL, Alt: update.Avatar.Alt}
		}
		if update.Banner != nil {
			patch.Banner = &session.Media{URL: update.Banner.URL, Alt: update.Banner.Alt}
		}
		if err := c.store.Update(patch); err != nil {
			return nil, err
		}
	}
	return &profile, nil
}
