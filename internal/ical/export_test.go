package ical

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holidaze/internal/api"
)

func TestWriteBookings(t *testing.T) {
	bookings := []api.Booking{
		{
			ID:       "b1",
			DateFrom: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			DateTo:   time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC),
			Guests:   2,
			Venue: &api.Venue{
				Name:     "Seaside Cabin",
				Location: api.Location{City: "Bergen", Country: "Norway"},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBookings(&buf, bookings))

	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "BEGIN:VEVENT")
	assert.Contains(t, out, "booking-b1@holidaze")
	assert.Contains(t, out, "Seaside Cabin (2 guests)")
	assert.Contains(t, out, "Bergen")
	// inclusive booked range becomes an exclusive DTEND one day later
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20240610")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20240614")
}

func TestWriteBookings_NoVenueExpansion(t *testing.T) {
	bookings := []api.Booking{
		{
			ID:       "b2",
			DateFrom: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			DateTo:   time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
			Guests:   1,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBookings(&buf, bookings))
	assert.Contains(t, buf.String(), "Booking (1 guests)")
}

func TestWriteBookings_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBookings(&buf, nil))
	assert.Contains(t, buf.String(), "BEGIN:VCALENDAR")
	assert.NotContains(t, buf.String(), "BEGIN:VEVENT")
}
