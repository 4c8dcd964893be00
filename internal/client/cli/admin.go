package cli

import (
	"context"
	"fmt"

	"github.com/dpavlenko/dectrack/internal/client/api"
)

func printUser(u api.User) {
	fmt.Printf("%5d  %-24s %-20s %-6s %s\n", u.ID, u.Email, u.Username, u.Role, u.Status)
}

// Pending lists accounts awaiting approval. Admin only.
func (a *App) Pending(ctx context.Context) error {
	users, err := a.api.PendingUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Println("No pending users.")
		return nil
	}
	for _, u := range users {
		printUser(u)
	}
	return nil
}

// Users lists every account. Admin only.
func (a *App) Users(ctx context.Context) error {
	users, err := a.api.AllUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		printUser(u)
	}
	return nil
}

// Approve marks a pending account approved. Admin only.
func (a *App) Approve(ctx context.Context, args []string) error {
	id, err := a.argID(args, "Enter user id")
	if err != nil {
		return err
	}
	u, err := a.api.ApproveUser(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("User %s is now %s\n", u.Email, u.Status)
	return nil
}

// Reject marks a pending account rejected. Admin only.
func (a *App) Reject(ctx context.Context, args []string) error {
	id, err := a.argID(args, "Enter user id")
	if err != nil {
		return err
	}
	u, err := a.api.RejectUser(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("User %s is now %s\n", u.Email, u.Status)
	return nil
}
