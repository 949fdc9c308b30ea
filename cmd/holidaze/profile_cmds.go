package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"holidaze/internal/api"
)

func (a *app) showProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	name := fs.Arg(0)
	if name == "" {
		sess, err := a.requireSession()
		if err != nil {
			return err
		}
		name = sess.Profile.Name
	}

	profile, err := a.client.GetProfile(ctx, name, true, false)
	if err != nil {
		return err
	}

	fmt.Printf("Name:          %s\n", profile.Name)
	fmt.Printf("Email:         %s\n", profile.Email)
	if profile.Bio != "" {
		fmt.Printf("Bio:           %s\n", profile.Bio)
	}
	fmt.Printf("Venue manager: %t\n", profile.VenueManager)
	if profile.Count != nil {
		fmt.Printf("Venues:        %d\n", profile.Count.Venues)
		fmt.Printf("Bookings:      %d\n", profile.Count.Bookings)
	}
	for _, v := range profile.Venues {
		fmt.Printf("  venue %s  %s  $%.0f/night\n", v.ID, truncate(v.Name, 30), v.Price)
	}
	return nil
}

func (a *app) updateProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile-update", flag.ExitOnError)
	bio := fs.String("bio", "", "profile bio")
	avatar := fs.String("avatar", "", "avatar image URL")
	banner := fs.String("banner", "", "banner image URL")
	manager := fs.String("venue-manager", "", "become a venue manager: true or false")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := a.requireSession()
	if err != nil {
		return err
	}

	var update api.ProfileUpdate
	if *bio != "" {
		update.Bio = bio
	}
	if *avatar != "" {
		update.Avatar = &api.Media{URL: *avatar}
	}
	if *banner != "" {
		update.Banner = &api.Media{URL: *banner}
	}
	switch *manager {
	case "":
	case "true":
		v := true
		update.VenueManager = &v
	case "false":
		v := false
		update.VenueManager = &v
	default:
		return errors.New("--venue-manager must be true or false")
	}

	if update.Bio == nil && update.Avatar == nil && update.Banner == nil && update.VenueManager == nil {
		return errors.New("nothing to update")
	}

	profile, err := a.client.UpdateProfile(ctx, sess.Profile.Name, update)
	if err != nil {
		return err
	}
	fmt.Printf("Profile %s updated.\n", profile.Name)
	return nil
}
