package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"sort"
	"strings"
	"time"

	"holidaze/internal/api"
	"holidaze/internal/availability"
	"holidaze/internal/pkg/validator"
)

func (a *app) listVenues(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("venues", flag.ExitOnError)
	page := fs.Int("page", 1, "page to fetch")
	limit := fs.Int("limit", a.cfg.PageLimit, "venues per page")
	preset := fs.String("sort", api.SortNewest, "sort preset: newest, priceLow, priceHigh")
	query := fs.String("search", "", "search term")
	if err := fs.Parse(args); err != nil {
		return err
	}

	params := api.ListParams{Page: *page, Limit: *limit, Query: strings.TrimSpace(*query)}
	params.ApplyPreset(*preset)

	venues, meta, err := a.client.ListVenues(ctx, params)
	if err != nil {
		return err
	}

	if len(venues) == 0 {
		fmt.Println("No venues match your search.")
		return nil
	}
	for _, v := range venues {
		fmt.Printf("%s  %-30s  $%.0f/night  max %d guests  rating %.1f\n",
			v.ID, truncate(v.Name, 30), v.Price, v.MaxGuests, v.Rating)
	}
	if meta != nil && meta.PageCount > 1 {
		fmt.Printf("\nPage %d of %d (%d venues total)\n", meta.CurrentPage, meta.PageCount, meta.TotalCount)
	}
	return nil
}

func (a *app) showVenue(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("venue", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: holidaze venue <id>")
	}

	venue, err := a.client.GetVenue(ctx, fs.Arg(0), true, true)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", venue.Name)
	fmt.Printf("%s\n\n", venue.Description)
	fmt.Printf("Price:      $%.0f / night\n", venue.Price)
	fmt.Printf("Max guests: %d\n", venue.MaxGuests)
	fmt.Printf("Rating:     %.1f\n", venue.Rating)
	if loc := venue.Location; loc.City != "" || loc.Country != "" {
		fmt.Printf("Location:   %s\n", strings.TrimPrefix(fmt.Sprintf("%s, %s, %s", loc.Address, loc.City, loc.Country), ", "))
	}
	if venue.Owner != nil {
		fmt.Printf("Owner:      %s\n", venue.Owner.Name)
	}
	fmt.Printf("Amenities:  wifi=%t parking=%t breakfast=%t pets=%t\n",
		venue.Meta.Wifi, venue.Meta.Parking, venue.Meta.Breakfast, venue.Meta.Pets)

	printUnavailableDays(venue.Bookings)
	return nil
}

// printUnavailableDays renders the booked calendar the way the date
// picker would: every day inside any booking is unavailable.
func printUnavailableDays(bookings []api.Booking) {
	excluded := availability.ExcludedDays(api.BookedRanges(bookings))
	if len(excluded) == 0 {
		fmt.Println("\nAll dates currently available.")
		return
	}

	days := make([]availability.Day, 0, len(excluded))
	for d := range excluded {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	fmt.Println("\nUnavailable dates:")
	for _, d := range days {
		fmt.Printf("  %s\n", d)
	}
}

func venueFlags(fs *flag.FlagSet) *api.VenueRequest {
	req := &api.VenueRequest{}
	fs.StringVar(&req.Name, "name", "", "venue name")
	fs.StringVar(&req.Description, "description", "", "venue description")
	fs.Float64Var(&req.Price, "price", 0, "price per night")
	fs.IntVar(&req.MaxGuests, "max-guests", 1, "maximum guest count")
	fs.Float64Var(&req.Rating, "rating", 0, "rating 0..5")
	fs.BoolVar(&req.Meta.Wifi, "wifi", false, "has wifi")
	fs.BoolVar(&req.Meta.Parking, "parking", false, "has parking")
	fs.BoolVar(&req.Meta.Breakfast, "breakfast", false, "serves breakfast")
	fs.BoolVar(&req.Meta.Pets, "pets", false, "allows pets")
	fs.StringVar(&req.Location.Address, "address", "", "street address")
	fs.StringVar(&req.Location.City, "city", "", "city")
	fs.StringVar(&req.Location.Country, "country", "", "country")
	return req
}

func (a *app) createVenue(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("venue-create", flag.ExitOnError)
	req := venueFlags(fs)
	media := fs.String("image", "", "image URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := a.requireSession()
	if err != nil {
		return err
	}
	if !sess.Profile.VenueManager {
		return errors.New("only venue managers can create venues")
	}
	if *media != "" {
		req.Media = []api.Media{{URL: *media, Alt: req.Name}}
	}
	if err := validator.ValidateErr(*req); err != nil {
		return err
	}

	venue, err := a.client.CreateVenue(ctx, *req)
	if err != nil {
		return err
	}
	fmt.Printf("Created venue %s (%s)\n", venue.Name, venue.ID)
	return nil
}

func (a *app) updateVenue(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("venue-update", flag.ExitOnError)
	req := venueFlags(fs)
	media := fs.String("image", "", "image URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: holidaze venue-update <id> [flags]")
	}

	if _, err := a.requireSession(); err != nil {
		return err
	}
	if *media != "" {
		req.Media = []api.Media{{URL: *media, Alt: req.Name}}
	}
	if err := validator.ValidateErr(*req); err != nil {
		return err
	}

	venue, err := a.client.UpdateVenue(ctx, fs.Arg(0), *req)
	if err != nil {
		return err
	}
	fmt.Printf("Updated venue %s\n", venue.ID)
	return nil
}

func (a *app) deleteVenue(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("venue-delete", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: holidaze venue-delete <id>")
	}

	if _, err := a.requireSession(); err != nil {
		return err
	}
	if err := a.client.DeleteVenue(ctx, fs.Arg(0)); err != nil {
		return err
	}
	fmt.Println("Venue deleted.")
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func parseDay(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return t, nil
}
