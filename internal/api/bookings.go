package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// BookingRequest is a candidate reservation. DateFrom must be strictly
// before DateTo: zero-night bookings are invalid.
type BookingRequest struct {
	DateFrom time.Time `json:"dateFrom" validate:"required"`
	DateTo   time.Time `json:"dateTo" validate:"required"`
	Guests   int       `json:"guests" validate:"required,gte=1"`
	VenueID  string    `json:"venueId" validate:"required"`
}

// ListBookings fetches bookings visible to the caller, optionally
// expanded with venue and customer; venue managers use this to see what
// was booked against their listings.
func (c *Client) ListBookings(ctx context.Context, withVenue, withCustomer bool) ([]Booking, error) {
	query := url.Values{}
	if withVenue {
		query.Set("_venue", "true")
	}
	if withCustomer {
		query.Set("_customer", "true")
	}

	var bookings []Booking
	if _, err := c.do(ctx, http.MethodGet, "/holidaze/bookings", query, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CreateBooking submits a reservation. Callers run the overlap guard
// against a fresh booking list first; the remote API remains the
// authority and may still answer 409 if someone else got there first.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (*Booking, error) {
	var booking Booking
	if _, err := c.do(ctx, http.MethodPost, "/holidaze/bookings", nil, req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// DeleteBooking cancels a reservation; the remote API answers 204.
func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	path := "/holidaze/bookings/" + url.PathEscape(id)
	if _, err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	return nil
}
