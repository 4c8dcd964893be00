package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dpavlenko/dectrack/internal/client/api"
)

// argID resolves a numeric id from positional args, falling back to a prompt.
func (a *App) argID(args []string, prompt string) (int64, error) {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	} else {
		var err error
		raw, err = getSimpleText(a.reader, prompt, os.Stdout)
		if err != nil {
			return 0, err
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// List prints a page of decisions. Optional args: skip, limit.
func (a *App) List(ctx context.Context, args []string) error {
	skip, limit := 0, 10
	if len(args) > 0 {
		skip, _ = strconv.Atoi(args[0])
	}
	if len(args) > 1 {
		limit, _ = strconv.Atoi(args[1])
	}

	a.state.SetLoading(true)
	defer a.state.SetLoading(false)

	ds, err := a.queries.Decisions(ctx, skip, limit)
	if err != nil {
		a.state.SetErr(err.Error())
		return err
	}
	a.state.SetErr("")
	a.state.SetDecisions(ds)

	if len(ds) == 0 {
		fmt.Println("No decisions yet.")
		return nil
	}
	for _, d := range ds {
		active := " "
		if !d.IsActive {
			active = "x"
		}
		fmt.Printf("%5d %s %-40s %s\n", d.ID, active, d.Title, d.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// Show prints one decision in full.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.argID(args, "Enter decision id")
	if err != nil {
		return err
	}

	d, err := a.queries.Decision(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("#%d %s\n", d.ID, d.Title)
	fmt.Printf("Description: %s\n", orDash(d.Description))
	fmt.Printf("Context:     %s\n", orDash(d.Context))
	fmt.Printf("Created:     %s\n", d.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("Updated:     %s\n", d.UpdatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("Active:      %v\n", d.IsActive)
	return nil
}

// Add collects fields for a new decision and creates it.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Enter description (double Enter to finish):", os.Stdout)
	if err != nil {
		return err
	}
	decisionContext, err := getSimpleText(a.reader, "Enter context (optional)", os.Stdout)
	if err != nil {
		return err
	}

	req := api.CreateDecisionRequest{Title: title}
	if description != "" {
		req.Description = &description
	}
	if decisionContext != "" {
		req.Context = &decisionContext
	}

	d, err := a.queries.CreateDecision(ctx, req)
	if err != nil {
		return err
	}
	a.state.AddDecision(*d)
	fmt.Printf("Created decision #%d\n", d.ID)
	return nil
}

// Update edits a decision's fields; empty answers leave a field unchanged.
func (a *App) Update(ctx context.Context, args []string) error {
	id, err := a.argID(args, "Enter decision id")
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "New title (empty keeps current)", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "New description (double Enter to finish, empty keeps current):", os.Stdout)
	if err != nil {
		return err
	}
	activeRaw, err := getSimpleText(a.reader, "Active? (y/n, empty keeps current)", os.Stdout)
	if err != nil {
		return err
	}

	var req api.UpdateDecisionRequest
	if title != "" {
		req.Title = &title
	}
	if description != "" {
		req.Description = &description
	}
	switch strings.ToLower(activeRaw) {
	case "y", "yes":
		v := true
		req.IsActive = &v
	case "n", "no":
		v := false
		req.IsActive = &v
	}

	d, err := a.queries.UpdateDecision(ctx, id, req)
	if err != nil {
		return err
	}
	fmt.Printf("Updated decision #%d\n", d.ID)
	return nil
}

// Delete archives a decision; "delete <id> hard" purges it permanently.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.argID(args, "Enter decision id")
	if err != nil {
		return err
	}
	purge := len(args) > 1 && args[1] == "hard"

	if err := a.queries.DeleteDecision(ctx, id, purge); err != nil {
		return err
	}
	if purge {
		fmt.Printf("Decision #%d permanently deleted\n", id)
	} else {
		fmt.Printf("Decision #%d archived\n", id)
	}
	return nil
}
