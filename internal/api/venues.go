package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListParams mirrors the remote API's list controls.
type ListParams struct {
	Page      int
	Limit     int
	Sort      string // e.g. "created", "price"
	SortOrder string // "asc" or "desc"
	// Query switches the call to the search endpoint when non-empty.
	Query string
	// WithOwner / WithBookings toggle the _owner / _bookings expansions.
	WithOwner    bool
	WithBookings bool
}

// Sort presets as the list views offer them.
const (
	SortNewest    = "newest"
	SortPriceLow  = "priceLow"
	SortPriceHigh = "priceHigh"
)

// ApplyPreset maps a sort preset onto sort/sortOrder pairs.
func (p *ListParams) ApplyPreset(preset string) {
	switch preset {
	case SortPriceLow:
		p.Sort, p.SortOrder = "price", "asc"
	case SortPriceHigh:
		p.Sort, p.SortOrder = "price", "desc"
	default:
		p.Sort, p.SortOrder = "created", "desc"
	}
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.SortOrder != "" {
		q.Set("sortOrder", p.SortOrder)
	}
	if p.WithOwner {
		q.Set("_owner", "true")
	}
	if p.WithBookings {
		q.Set("_bookings", "true")
	}
	return q
}

// VenueRequest is the create/update body for a venue listing.
type VenueRequest struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Media       []Media   `json:"media,omitempty"`
	Price       float64   `json:"price" validate:"gte=0"`
	MaxGuests   int       `json:"maxGuests" validate:"required,gte=1"`
	Rating      float64   `json:"rating,omitempty" validate:"gte=0,lte=5"`
	Meta        VenueMeta `json:"meta"`
	Location    Location  `json:"location"`
}

// ListVenues fetches one page of venues; search goes through the
// dedicated endpoint when a query is set, matching the remote API.
func (c *Client) ListVenues(ctx context.Context, params ListParams) ([]Venue, *Meta, error) {
	path := "/holidaze/venues"
	query := params.values()
	if params.Query != "" {
		path += "/search"
		query.Set("q", params.Query)
	}

	var venues []Venue
	meta, err := c.do(ctx, http.MethodGet, path, query, nil, &venues)
	if err != nil {
		return nil, nil, err
	}
	return venues, meta, nil
}

// GetVenue fetches one venue, optionally expanded with its bookings and
// owner. The booking UI always asks for bookings so the availability
// calendar and the submit-time overlap guard share one authoritative list.
func (c *Client) GetVenue(ctx context.Context, id string, withBookings, withOwner bool) (*Venue, error) {
	query := url.Values{}
	if withBookings {
		query.Set("_bookings", "true")
	}
	if withOwner {
		query.Set("_owner", "true")
	}

	var venue Venue
	if _, err := c.do(ctx, http.MethodGet, "/holidaze/venues/"+url.PathEscape(id), query, nil, &venue); err != nil {
		return nil, err
	}
	return &venue, nil
}

func (c *Client) CreateVenue(ctx context.Context, req VenueRequest) (*Venue, error) {
	var venue Venue
	if _, err := c.do(ctx, http.MethodPost, "/holidaze/venues", nil, req, &venue); err != nil {
		return nil, err
	}
	return &venue, nil
}

func (c *Client) UpdateVenue(ctx context.Context, id string, req VenueRequest) (*Venue, error) {
	var venue Venue
	path := "/holidaze/venues/" + url.PathEscape(id)
	if _, err := c.do(ctx, http.MethodPut, path, nil, req, &venue); err != nil {
		return nil, err
	}
	return &venue, nil
}

// DeleteVenue removes a listing; the remote API answers 204.
func (c *Client) DeleteVenue(ctx context.Context, id string) error {
	path := "/holidaze/venues/" + url.PathEscape(id)
	if _, err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	return nil
}
