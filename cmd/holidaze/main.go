package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"holidaze/internal/api"
	"holidaze/internal/config"
	"holidaze/internal/session"
)

const usage = `Usage: holidaze <command> [flags]

Account:
  register          Create an account
  login             Log in and cache the session
  logout            Drop the cached session
  whoami            Show the cached session

Venues:
  venues            Browse venues (search, sort, paginate)
  venue             Show one venue with its availability
  venue-create      Create a venue listing (managers)
  venue-update      Edit a venue listing (managers)
  venue-delete      Delete a venue listing (managers)

Bookings:
  book              Book a venue for a date range
  bookings          List your bookings
  booking-cancel    Cancel a booking
  export-ics        Export your bookings as an iCalendar file

Profiles:
  profile           Show a profile
  profile-update    Edit your profile
`

type app struct {
	cfg    *config.Config
	store  *session.Store
	client *api.Client
}

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	store := session.NewStore(cfg.SessionFile)
	a := &app{
		cfg:    cfg,
		store:  store,
		client: api.NewClient(cfg.APIURL, cfg.APIKey, cfg.HTTPTimeout, store),
	}

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "register":
		err = a.register(ctx, args)
	case "login":
		err = a.login(ctx, args)
	case "logout":
		err = a.logout()
	case "whoami":
		err = a.whoami()
	case "venues":
		err = a.listVenues(ctx, args)
	case "venue":
		err = a.showVenue(ctx, args)
	case "venue-create":
		err = a.createVenue(ctx, args)
	case "venue-update":
		err = a.updateVenue(ctx, args)
	case "venue-delete":
		err = a.deleteVenue(ctx, args)
	case "book":
		err = a.book(ctx, args)
	case "bookings":
		err = a.listBookings(ctx, args)
	case "booking-cancel":
		err = a.cancelBooking(ctx, args)
	case "export-ics":
		err = a.exportICS(ctx, args)
	case "profile":
		err = a.showProfile(ctx, args)
	case "profile-update":
		err = a.updateProfile(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(a.describe(err))
	}
}

// describe turns an error into the user-facing message. A 401 means the
// cached token went stale; the session is cleared so the next command
// starts logged out.
func (a *app) describe(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
		_ = a.store.Clear()
		return fmt.Sprintf("%s (session cleared, please log in again)", apiErr.Error())
	}
	return err.Error()
}

// requireSession guards commands that need a logged-in user.
func (a *app) requireSession() (*session.Session, error) {
	sess := a.store.Get()
	if sess == nil {
		return nil, errors.New("not logged in; run `holidaze login` first")
	}
	return sess, nil
}
