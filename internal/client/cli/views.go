package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Health prints the server liveness report.
func (a *App) Health(ctx context.Context) error {
	h, err := a.api.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("server: %s  database: %s\n", h.Status, h.Database)
	return nil
}

// Stats prints graph-wide totals.
func (a *App) Stats(ctx context.Context) error {
	s, err := a.queries.GraphStats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("decisions: %d  events: %d  relationships: %d\n", s.Decisions, s.Events, s.Relationships)
	return nil
}

// Timeline prints a decision's chronological event trail.
func (a *App) Timeline(ctx context.Context, args []string) error {
	id, err := a.argID(args, "Enter decision id")
	if err != nil {
		return err
	}
	events, err := a.queries.DecisionTimeline(ctx, id)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No timeline for this decision.")
		return nil
	}
	for _, e := range events {
		fmt.Printf("%s  %-12s %s\n", e.Timestamp.Format("2006-01-02 15:04"), e.EventType, e.Description)
	}
	return nil
}

// Related prints decisions connected to the given one through the graph.
func (a *App) Related(ctx context.Context, args []string) error {
	id, err := a.argID(args, "Enter decision id")
	if err != nil {
		return err
	}
	rs, err := a.queries.RelatedDecisions(ctx, id)
	if err != nil {
		return err
	}
	if len(rs) == 0 {
		fmt.Println("No related decisions.")
		return nil
	}
	for _, r := range rs {
		fmt.Printf("%5d  %s\n", r.DecisionID, r.Title)
	}
	return nil
}

// Causality prints the cause/effect neighborhood of an event.
func (a *App) Causality(ctx context.Context, args []string) error {
	id, err := a.argID(args, "Enter event id")
	if err != nil {
		return err
	}
	c, err := a.queries.EventCausality(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("event #%d (%s): %s\n", c.EventID, c.EventType, c.Description)
	for _, l := range c.Causes {
		fmt.Printf("  caused by  [%s] %s\n", l.Type, l.Description)
	}
	for _, l := range c.Effects {
		fmt.Printf("  leads to   [%s] %s\n", l.Type, l.Description)
	}
	return nil
}

// Impact prints how far a decision reaches across the graph.
func (a *App) Impact(ctx context.Context, args []string) error {
	id, err := a.argID(args, "Enter decision id")
	if err != nil {
		return err
	}
	im, err := a.queries.DecisionImpact(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("#%d %s\n", im.DecisionID, im.Title)
	fmt.Printf("events: %d  downstream: %d  predecessors: %d  successors: %d\n",
		im.EventCount, im.DownstreamEvents, im.PredecessorDecisions, im.SuccessorDecisions)
	return nil
}

// Search runs a text search over the graph.
func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: search <query>")
		return nil
	}
	query := args[0]
	for _, extra := range args[1:] {
		query += " " + extra
	}

	rs, err := a.queries.SearchGraph(ctx, query)
	if err != nil {
		return err
	}
	if len(rs) == 0 {
		fmt.Println("Nothing found.")
		return nil
	}
	for _, r := range rs {
		fmt.Printf("%5d  %-40s (%d events)\n", r.DecisionID, r.Title, r.EventCount)
	}
	return nil
}

// Overview prints the analytics dashboard numbers.
func (a *App) Overview(ctx context.Context) error {
	o, err := a.queries.AnalyticsOverview(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("decisions: %d  events: %d  avg events/decision: %.2f\n",
		o.TotalDecisions, o.TotalEvents, o.AvgEventsPerDecision)
	for _, d := range o.Decisions {
		fmt.Printf("%5d  %-40s %d events\n", d.ID, d.Title, d.EventCount)
	}
	return nil
}

// EventTypesReport prints the event-type histogram.
func (a *App) EventTypesReport(ctx context.Context) error {
	d, err := a.queries.EventTypeDistribution(ctx)
	if err != nil {
		return err
	}
	for _, et := range d.EventTypes {
		fmt.Printf("%-12s %d\n", et.Type, et.Count)
	}
	fmt.Printf("total: %d\n", d.Total)
	return nil
}

// Trend prints the decision-creation trend; optional arg is the trailing
// window in days.
func (a *App) Trend(ctx context.Context, args []string) error {
	days := 30
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid day count %q", args[0])
		}
		days = v
	}
	ts, err := a.queries.DecisionTimelineStats(ctx, days)
	if err != nil {
		return err
	}
	fmt.Printf("decisions created over the last %d days:\n", ts.PeriodDays)
	for _, b := range ts.Timeline {
		fmt.Printf("%s  %d\n", b.Date, b.DecisionsCreated)
	}
	return nil
}

// Statuses groups active decisions by their latest event type.
func (a *App) Statuses(ctx context.Context) error {
	s, err := a.queries.StatusSummary(ctx)
	if err != nil {
		return err
	}
	for status, n := range s.Statuses {
		fmt.Printf("%-12s %d\n", status, n)
	}
	fmt.Printf("total: %d\n", s.TotalDecisions)
	return nil
}

// Summarize prints the LLM narrative of a decision's history.
func (a *App) Summarize(ctx context.Context, args []string) error {
	id, err := a.argID(args, "Enter decision id")
	if err != nil {
		return err
	}
	s, err := a.queries.SummarizeDecision(ctx, id)
	if err != nil {
		return err
	}
	fmt.Println(s.Summary)
	return nil
}

// Risks prints the LLM risk/opportunity read of a decision.
func (a *App) Risks(ctx context.Context, args []string) error {
	id, err := a.argID(args, "Enter decision id")
	if err != nil {
		return err
	}
	r, err := a.queries.AnalyzeRisks(ctx, id)
	if err != nil {
		return err
	}
	fmt.Println("Risks:")
	for _, item := range r.Risks {
		fmt.Printf("  - %s\n", item)
	}
	fmt.Println("Opportunities:")
	for _, item := range r.Opportunities {
		fmt.Printf("  - %s\n", item)
	}
	fmt.Printf("confidence: %s\n", r.Confidence)
	return nil
}

// Next prints the LLM's recommended follow-up actions.
func (a *App) Next(ctx context.Context, args []string) error {
	id, err := a.argID(args, "Enter decision id")
	if err != nil {
		return err
	}
	n, err := a.queries.NextSteps(ctx, id)
	if err != nil {
		return err
	}
	for i, step := range n.Steps {
		fmt.Printf("%d. %s\n", i+1, step)
	}
	return nil
}

// Quality prints the LLM's assessment of the decision process.
func (a *App) Quality(ctx context.Context, args []string) error {
	id, err := a.argID(args, "Enter decision id")
	if err != nil {
		return err
	}
	q, err := a.queries.QualityScore(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("score: %.1f/10 (%s)\n", q.Score, q.Reason)
	for _, s := range q.Strengths {
		fmt.Printf("  + %s\n", s)
	}
	for _, s := range q.Improvements {
		fmt.Printf("  ~ %s\n", s)
	}
	return nil
}
