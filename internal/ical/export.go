// Package ical renders a profile's bookings as an iCalendar feed, so a
// trip can land in whatever calendar app the user already runs.
package ical

import (
	"fmt"
	"io"
	"strings"

	ics "github.com/arran4/golang-ical"

	"holidaze/internal/api"
)

// WriteBookings serializes the bookings as all-day VEVENTs, one per
// booking, spanning [dateFrom, dateTo]. Bookings without an expanded
// venue still get an event, just without the name and location.
func WriteBookings(w io.Writer, bookings []api.Booking) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//holidaze//booking export//EN")

	for _, b := range bookings {
		event := cal.AddEvent(fmt.Sprintf("booking-%s@holidaze", b.ID))
		if !b.Created.IsZero() {
			event.SetCreatedTime(b.Created)
		}
		event.SetAllDayStartAt(b.DateFrom)
		// DTEND is exclusive in iCalendar; the booked range is inclusive.
		event.SetAllDayEndAt(b.DateTo.AddDate(0, 0, 1))

		summary := fmt.Sprintf("Booking (%d guests)", b.Guests)
		if b.Venue != nil {
			summary = fmt.Sprintf("%s (%d guests)", b.Venue.Name, b.Guests)
			if loc := formatLocation(b.Venue.Location); loc != "" {
				event.SetLocation(loc)
			}
		}
		event.SetSummary(summary)
	}

	return cal.SerializeTo(w)
}

func formatLocation(loc api.Location) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{loc.Address, loc.City, loc.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
