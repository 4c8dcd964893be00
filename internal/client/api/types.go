package api

import (
	"fmt"
	"strings"
	"time"
)

// EventType classifies an event on a decision's timeline.
type EventType string

const (
	EventProposed    EventType = "proposed"
	EventApproved    EventType = "approved"
	EventRejected    EventType = "rejected"
	EventImplemented EventType = "implemented"
	EventOnHold      EventType = "on_hold"
	EventReview      EventType = "review"
	EventUpdated     EventType = "updated"
)

// EventTypes lists the canonical event types in display order.
var EventTypes = []EventType{
	EventProposed, EventApproved, EventRejected, EventImplemented,
	EventOnHold, EventReview, EventUpdated,
}

// legacy names still present in older data
var eventTypeAliases = map[string]EventType{
	"reviewed":  EventReview,
	"cancelled": EventRejected,
}

// ParseEventType normalizes s to a canonical EventType, accepting legacy
// aliases. Unknown values are rejected.
func ParseEventType(s string) (EventType, error) {
	v := EventType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range EventTypes {
		if v == t {
			return t, nil
		}
	}
	if t, ok := eventTypeAliases[string(v)]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown event type %q", s)
}

// Timestamp is a time.Time that also accepts the server's zone-less ISO
// datetime form ("2006-01-02T15:04:05[.999999]") in JSON.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("cannot parse timestamp %q: %w", s, lastErr)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(time.RFC3339) + `"`), nil
}

// Decision is the primary tracked entity: a choice under analysis.
type Decision struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Context     *string   `json:"context"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
	IsActive    bool      `json:"is_active"`
}

// Event is a timestamped occurrence attached to a decision.
type Event struct {
	ID          int64     `json:"id"`
	DecisionID  int64     `json:"decision_id"`
	EventType   EventType `json:"event_type"`
	Source      *string   `json:"source"`
	Description *string   `json:"description"`
	CreatedAt   Timestamp `json:"created_at"`
}

// User is the authenticated account record returned by /api/auth/me.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt Timestamp `json:"created_at"`
	IsActive  bool      `json:"is_active"`
	Role      string    `json:"role"`   // "user" | "admin"
	Status    string    `json:"status"` // "pending" | "approved" | "rejected"
}

// Token is the bearer credential issued by signup/login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Health is the service liveness report.
type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// GraphStats summarizes the graph projection of the dataset.
type GraphStats struct {
	Decisions     int64 `json:"decisions"`
	Events        int64 `json:"events"`
	Relationships int64 `json:"relationships"`
}

// TimelineEvent is one step of a decision's chronological event timeline.
type TimelineEvent struct {
	EventID     int64     `json:"event_id"`
	EventType   EventType `json:"event_type"`
	Description string    `json:"description"`
	Timestamp   Timestamp `json:"timestamp"`
}

// RelatedDecision is a decision connected to another through the graph.
type RelatedDecision struct {
	DecisionID  int64  `json:"decision_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CausalityLink is a cause or effect neighbor of an event.
type CausalityLink struct {
	ID          *int64 `json:"id"`
	Type        string `json:"type"`
	Description string `json:"desc"`
}

// EventCausality is the cause/effect neighborhood of a single event.
type EventCausality struct {
	EventID     int64           `json:"event_id"`
	EventType   EventType       `json:"event_type"`
	Description string          `json:"description"`
	Causes      []CausalityLink `json:"causes"`
	Effects     []CausalityLink `json:"effects"`
}

// DecisionImpact counts a decision's reach across the graph.
type DecisionImpact struct {
	DecisionID           int64  `json:"decision_id"`
	Title                string `json:"title"`
	EventCount           int64  `json:"event_count"`
	DownstreamEvents     int64  `json:"downstream_events"`
	PredecessorDecisions int64  `json:"predecessor_decisions"`
	SuccessorDecisions   int64  `json:"successor_decisions"`
}

// SearchResult is a decision matched by a graph text search.
type SearchResult struct {
	DecisionID  int64  `json:"decision_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	EventCount  int64  `json:"event_count"`
}

// DecisionMetric is the per-decision row of the analytics overview.
type DecisionMetric struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	EventCount int64     `json:"event_count"`
	CreatedAt  Timestamp `json:"created_at"`
}

// AnalyticsOverview aggregates event counts across all active decisions.
type AnalyticsOverview struct {
	TotalDecisions       int64            `json:"total_decisions"`
	TotalEvents          int64            `json:"total_events"`
	AvgEventsPerDecision float64          `json:"avg_events_per_decision"`
	Decisions            []DecisionMetric `json:"decisions"`
}

// EventTypeCount is one bucket of the event-type distribution.
type EventTypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// EventTypeDistribution is the histogram of event types.
type EventTypeDistribution struct {
	EventTypes []EventTypeCount `json:"event_types"`
	Total      int64            `json:"total"`
}

// TimelineBucket is one day of the decision-creation trend.
type TimelineBucket struct {
	Date             string `json:"date"`
	DecisionsCreated int64  `json:"decisions_created"`
}

// TimelineStats is the decision-creation trend over a trailing period.
type TimelineStats struct {
	PeriodDays int              `json:"period_days"`
	Timeline   []TimelineBucket `json:"timeline"`
}

// StatusSummary groups active decisions by the type of their latest event.
type StatusSummary struct {
	Statuses       map[string]int64 `json:"statuses"`
	TotalDecisions int64            `json:"total_decisions"`
}

// DecisionSummary is the LLM-written narrative of a decision's timeline.
type DecisionSummary struct {
	DecisionID int64  `json:"decision_id"`
	Summary    string `json:"summary"`
}

// RiskAnalysis is the LLM risk/opportunity read of a decision.
type RiskAnalysis struct {
	Risks         []string `json:"risks"`
	Opportunities []string `json:"opportunities"`
	Confidence    string   `json:"confidence"`
}

// NextSteps is the LLM's recommended follow-up actions.
type NextSteps struct {
	DecisionID int64    `json:"decision_id"`
	Steps      []string `json:"steps"`
}

// QualityScore is the LLM's 0-10 assessment of the decision process.
type QualityScore struct {
	Score        float64  `json:"score"`
	Reason       string   `json:"reason"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}
