package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if u := a.session.User(); u != nil {
		s = u.Username + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) printHelp() {
	if a.isLoggedIn() {
		fmt.Println("Decisions: list [skip limit], show <id>, add, update <id>, delete <id> [hard]")
		fmt.Println("Events:    events [decision-id], addevent <decision-id>, delevent <id>")
		fmt.Println("Graph:     timeline <id>, related <id>, impact <id>, causality <event-id>, search <query>, stats")
		fmt.Println("Analytics: overview, eventtypes, trend [days], statuses")
		fmt.Println("Insights:  summarize <id>, risks <id>, next <id>, quality <id>")
		fmt.Println("Admin:     pending, users, approve <id>, reject <id>")
		fmt.Println("Other:     whoami, health, refresh, logout, exit")
	} else {
		fmt.Println("Available commands: signup, login, health, exit")
	}
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to dectrack CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	for {
		fmt.Printf("dectrack %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			a.printHelp()

		case "signup":
			err = a.Signup(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.Whoami(ctx)
		case "health":
			err = a.Health(ctx)

		case "list":
			err = a.List(ctx, args)
		case "show":
			err = a.Show(ctx, args)
		case "add":
			err = a.Add(ctx)
		case "update":
			err = a.Update(ctx, args)
		case "delete":
			err = a.Delete(ctx, args)

		case "events":
			err = a.Events(ctx, args)
		case "addevent":
			err = a.AddEvent(ctx, args)
		case "delevent":
			err = a.DeleteEvent(ctx, args)

		case "timeline":
			err = a.Timeline(ctx, args)
		case "related":
			err = a.Related(ctx, args)
		case "impact":
			err = a.Impact(ctx, args)
		case "causality":
			err = a.Causality(ctx, args)
		case "search":
			err = a.Search(ctx, args)
		case "stats":
			err = a.Stats(ctx)

		case "overview":
			err = a.Overview(ctx)
		case "eventtypes":
			err = a.EventTypesReport(ctx)
		case "trend":
			err = a.Trend(ctx, args)
		case "statuses":
			err = a.Statuses(ctx)

		case "summarize":
			err = a.Summarize(ctx, args)
		case "risks":
			err = a.Risks(ctx, args)
		case "next":
			err = a.Next(ctx, args)
		case "quality":
			err = a.Quality(ctx, args)

		case "pending":
			err = a.Pending(ctx)
		case "users":
			err = a.Users(ctx)
		case "approve":
			err = a.Approve(ctx, args)
		case "reject":
			err = a.Reject(ctx, args)

		case "refresh":
			a.queries.InvalidateAll()
			fmt.Println("Cache invalidated.")

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}

		if err != nil {
			log.Printf("Error: %s", err.Error())
		}
	}

}
