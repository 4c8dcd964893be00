package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dpavlenko/dectrack/internal/client/api"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for email, username and password and creates a new account.
// The server signs the new user in right away; accounts still awaiting admin
// approval are told so.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	u, err := a.session.Signup(ctx, email, username, password)
	if err != nil {
		log.Printf("Signup unsuccessful: %s", err.Error())
		return err
	}

	if u.Status == "pending" {
		fmt.Println("Account created. An administrator needs to approve it before you can work with decisions.")
	} else {
		fmt.Printf("Welcome, %s!\n", u.Username)
	}
	return nil
}

// Login prompts for credentials and authenticates against the server.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	u, err := a.session.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrUnavailable):
			log.Printf("Server unavailable")
			a.setMode(ModeOffline)
		case errors.Is(err, api.ErrUnauthorized):
			log.Printf("Login unsuccessful: %s", err.Error())
		default:
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	a.setMode(ModeOnline)
	fmt.Printf("Signed in as %s (%s)\n", u.Username, u.Email)
	return nil
}

// Logout discards the session, in memory and on disk.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

// Whoami prints the signed-in user's profile.
func (a *App) Whoami(ctx context.Context) error {
	u, err := a.session.RefreshUser(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>  role=%s  status=%s\n", u.Username, u.Email, u.Role, u.Status)
	return nil
}
