package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dpavlenko/dectrack/internal/client/api"
)

func printEvent(e api.Event) {
	fmt.Printf("%5d  d#%-4d %-12s %-20s %s\n",
		e.ID, e.DecisionID, e.EventType, orDash(e.Source), e.CreatedAt.Format("2006-01-02 15:04"))
	if e.Description != nil && *e.Description != "" {
		fmt.Printf("       %s\n", *e.Description)
	}
}

// Events prints a decision's event history when an id is given, otherwise a
// page of events across all decisions.
func (a *App) Events(ctx context.Context, args []string) error {
	if len(args) > 0 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		es, err := a.queries.DecisionEvents(ctx, id)
		if err != nil {
			return err
		}
		if len(es) == 0 {
			fmt.Println("No events for this decision.")
			return nil
		}
		for _, e := range es {
			printEvent(e)
		}
		return nil
	}

	es, err := a.queries.Events(ctx, 0, 20)
	if err != nil {
		return err
	}
	if len(es) == 0 {
		fmt.Println("No events yet.")
		return nil
	}
	for _, e := range es {
		printEvent(e)
	}
	return nil
}

// AddEvent attaches a new event to a decision.
func (a *App) AddEvent(ctx context.Context, args []string) error {
	id, err := a.argID(args, "Enter decision id")
	if err != nil {
		return err
	}

	typeRaw, err := getSimpleText(a.reader, fmt.Sprintf("Enter event type %v", api.EventTypes), os.Stdout)
	if err != nil {
		return err
	}
	eventType, err := api.ParseEventType(typeRaw)
	if err != nil {
		return err
	}

	source, err := getSimpleText(a.reader, "Enter source (optional)", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Enter description (double Enter to finish):", os.Stdout)
	if err != nil {
		return err
	}

	req := api.CreateEventRequest{DecisionID: id, EventType: eventType}
	if source != "" {
		req.Source = &source
	}
	if description != "" {
		req.Description = &description
	}

	e, err := a.queries.CreateEvent(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Recorded %s event #%d on decision #%d\n", e.EventType, e.ID, e.DecisionID)
	return nil
}

// DeleteEvent removes an event by id.
func (a *App) DeleteEvent(ctx context.Context, args []string) error {
	id, err := a.argID(args, "Enter event id")
	if err != nil {
		return err
	}
	if err := a.queries.DeleteEvent(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Event #%d deleted\n", id)
	return nil
}
