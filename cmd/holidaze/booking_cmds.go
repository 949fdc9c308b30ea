package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"holidaze/internal/api"
	"holidaze/internal/availability"
	"holidaze/internal/ical"
	"holidaze/internal/pkg/validator"
)

func (a *app) book(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	venueID := fs.String("venue", "", "venue id")
	fromStr := fs.String("from", "", "check-in date (YYYY-MM-DD)")
	toStr := fs.String("to", "", "check-out date (YYYY-MM-DD)")
	guests := fs.Int("guests", 1, "guest count")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.requireSession(); err != nil {
		return err
	}

	from, err := parseDay(*fromStr)
	if err != nil {
		return err
	}
	to, err := parseDay(*toStr)
	if err != nil {
		return err
	}
	if !from.Before(to) {
		return errors.New("check-in must be before check-out")
	}

	req := api.BookingRequest{DateFrom: from, DateTo: to, Guests: *guests, VenueID: *venueID}
	if err := validator.ValidateErr(req); err != nil {
		return err
	}

	// Re-fetch the venue's bookings now, at submit time, and run the
	// overlap guard against that list. The remote API is still the
	// authority; this just catches conflicts before a doomed request.
	venue, err := a.client.GetVenue(ctx, *venueID, true, false)
	if err != nil {
		return err
	}
	if *guests > venue.MaxGuests {
		return fmt.Errorf("venue takes at most %d guests", venue.MaxGuests)
	}
	if availability.Overlaps(from, to, api.BookedRanges(venue.Bookings)) {
		return errors.New("the selected dates overlap with an existing booking")
	}

	nights := availability.Nights(from, to)
	total := availability.TotalPrice(nights, venue.Price)

	booking, err := a.client.CreateBooking(ctx, req)
	if err != nil {
		return err
	}

	// The confirmation shows the same total that was computed before
	// submission; nothing is recomputed.
	fmt.Printf("Booked %s: %s → %s, %d night(s), %d guest(s), total $%.2f\n",
		venue.Name,
		booking.DateFrom.Format("2006-01-02"),
		booking.DateTo.Format("2006-01-02"),
		nights, booking.Guests, total)
	return nil
}

func (a *app) listBookings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bookings", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := a.requireSession()
	if err != nil {
		return err
	}

	profile, err := a.client.GetProfile(ctx, sess.Profile.Name, false, true)
	if err != nil {
		return err
	}
	if len(profile.Bookings) == 0 {
		fmt.Println("No bookings yet.")
		return nil
	}

	for _, b := range profile.Bookings {
		name := "(venue)"
		var total float64
		if b.Venue != nil {
			name = b.Venue.Name
			total = availability.TotalPrice(availability.Nights(b.DateFrom, b.DateTo), b.Venue.Price)
		}
		fmt.Printf("%s  %s → %s  %-25s  %d guest(s)  $%.2f\n",
			b.ID,
			b.DateFrom.Format("2006-01-02"),
			b.DateTo.Format("2006-01-02"),
			truncate(name, 25), b.Guests, total)
	}
	return nil
}

func (a *app) cancelBooking(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("booking-cancel", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: holidaze booking-cancel <id>")
	}

	if _, err := a.requireSession(); err != nil {
		return err
	}
	if err := a.client.DeleteBooking(ctx, fs.Arg(0)); err != nil {
		return err
	}
	fmt.Println("Booking cancelled.")
	return nil
}

func (a *app) exportICS(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export-ics", flag.ExitOnError)
	out := fs.String("out", "holidaze.ics", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := a.requireSession()
	if err != nil {
		return err
	}

	profile, err := a.client.GetProfile(ctx, sess.Profile.Name, false, true)
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := ical.WriteBookings(f, profile.Bookings); err != nil {
		return err
	}
	fmt.Printf("Wrote %d booking(s) to %s\n", len(profile.Bookings), *out)
	return nil
}
