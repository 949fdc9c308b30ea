package api

import (
	"time"

	"holidaze/internal/availability"
)

// Media is an image with optional alt text, as the remote API ships it.
type Media struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// VenueMeta is the amenity flags of a venue.
type VenueMeta struct {
	Wifi      bool `json:"wifi"`
	Parking   bool `json:"parking"`
	Breakfast bool `json:"breakfast"`
	Pets      bool `json:"pets"`
}

type Location struct {
	Address   string  `json:"address,omitempty"`
	City      string  `json:"city,omitempty"`
	Zip       string  `json:"zip,omitempty"`
	Country   string  `json:"country,omitempty"`
	Continent string  `json:"continent,omitempty"`
	Lat       float64 `json:"lat,omitempty"`
	Lng       float64 `json:"lng,omitempty"`
}

type Venue struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Media       []Media    `json:"media,omitempty"`
	Price       float64    `json:"price"`
	MaxGuests   int        `json:"maxGuests"`
	Rating      float64    `json:"rating"`
	Created     time.Time  `json:"created,omitempty"`
	Updated     time.Time  `json:"updated,omitempty"`
	Meta        VenueMeta  `json:"meta"`
	Location    Location   `json:"location"`
	Owner       *Profile   `json:"owner,omitempty"`
	Bookings    []Booking  `json:"bookings,omitempty"`
	Count       *ItemCount `json:"_count,omitempty"`
}

type Booking struct {
	ID       string    `json:"id"`
	DateFrom time.Time `json:"dateFrom"`
	DateTo   time.Time `json:"dateTo"`
	Guests   int       `json:"guests"`
	Created  time.Time `json:"created,omitempty"`
	Updated  time.Time `json:"updated,omitempty"`
	Venue    *Venue    `json:"venue,omitempty"`
	Customer *Profile  `json:"customer,omitempty"`
}

type Profile struct {
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Bio          string     `json:"bio,omitempty"`
	Avatar       *Media     `json:"avatar,omitempty"`
	Banner       *Media     `json:"banner,omitempty"`
	VenueManager bool       `json:"venueManager"`
	Venues       []Venue    `json:"venues,omitempty"`
	Bookings     []Booking  `json:"bookings,omitempty"`
	Count        *ItemCount `json:"_count,omitempty"`
}

// ItemCount is the remote API's _count aggregate.
type ItemCount struct {
	Venues   int `json:"venues,omitempty"`
	Bookings int `json:"bookings,omitempty"`
}

// Meta is the pagination envelope on list responses.
type Meta struct {
	IsFirstPage  bool `json:"isFirstPage"`
	IsLastPage   bool `json:"isLastPage"`
	CurrentPage  int  `json:"currentPage"`
	PreviousPage *int `json:"previousPage"`
	NextPage     *int `json:"nextPage"`
	PageCount    int  `json:"pageCount"`
	TotalCount   int  `json:"totalCount"`
}

// BookedRanges projects a venue's bookings onto the availability engine's
// input shape.
func BookedRanges(bookings []Booking) []availability.Range {
	out := make([]availability.Range, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, availability.RangeOf(b.DateFrom, b.DateTo))
	}
	return out
}
