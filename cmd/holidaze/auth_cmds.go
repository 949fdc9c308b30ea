package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"holidaze/internal/api"
	jwtsvc "holidaze/internal/pkg/jwt"
	"holidaze/internal/pkg/validator"
)

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "profile name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	manager := fs.Bool("venue-manager", false, "register as a venue manager")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := api.RegisterRequest{
		Name:         *name,
		Email:        *email,
		Password:     *password,
		VenueManager: *manager,
	}
	if err := validator.ValidateErr(req); err != nil {
		return err
	}

	profile, err := a.client.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Registered %s (%s)\n", profile.Name, profile.Email)

	// Registration does not log in; chain a login so the account is
	// usable immediately, the way the signup form does it.
	sess, err := a.client.Login(ctx, api.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return fmt.Errorf("registered, but login failed: %w", err)
	}
	fmt.Printf("Logged in as %s\n", sess.Profile.Name)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := api.LoginRequest{Email: *email, Password: *password}
	if err := validator.ValidateErr(req); err != nil {
		return err
	}

	sess, err := a.client.Login(ctx, req)
	if err != nil {
		return err
	}

	role := "customer"
	if sess.Profile.VenueManager {
		role = "venue manager"
	}
	fmt.Printf("Logged in as %s (%s)\n", sess.Profile.Name, role)
	return nil
}

func (a *app) logout() error {
	if err := a.client.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func (a *app) whoami() error {
	sess := a.store.Get()
	if sess == nil {
		fmt.Println("Not logged in")
		return nil
	}

	fmt.Printf("Name:          %s\n", sess.Profile.Name)
	fmt.Printf("Email:         %s\n", sess.Profile.Email)
	fmt.Printf("Venue manager: %t\n", sess.Profile.VenueManager)
	if exp, err := jwtsvc.PeekExpiry(sess.Token); err == nil {
		state := "expires"
		if exp.Before(time.Now()) {
			state = "expired"
		}
		fmt.Printf("Token:         %s %s\n", state, exp.Local().Format(time.RFC1123))
	}
	return nil
}
