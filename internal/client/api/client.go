package api

import "context"

// TokenSource yields the current bearer token, or "" when no session exists.
// The session store is the only writer; the adapter only reads.
type TokenSource interface {
	AccessToken() string
}

// Client is the full set of remote operations the application uses.
// HTTPClient is the production implementation; tests substitute fakes.
type Client interface {
	// Service
	Health(ctx context.Context) (*Health, error)

	// Auth
	Signup(ctx context.Context, email, username, password string) (*Token, error)
	Login(ctx context.Context, email, password string) (*Token, error)
	CurrentUser(ctx context.Context) (*User, error)

	// Decisions
	ListDecisions(ctx context.Context, skip, limit int) ([]Decision, error)
	GetDecision(ctx context.Context, id int64) (*Decision, error)
	CreateDecision(ctx context.Context, req CreateDecisionRequest) (*Decision, error)
	UpdateDecision(ctx context.Context, id int64, req UpdateDecisionRequest) (*Decision, error)
	DeleteDecision(ctx context.Context, id int64, purge bool) error

	// Events
	ListEvents(ctx context.Context, skip, limit int) ([]Event, error)
	ListDecisionEvents(ctx context.Context, decisionID int64) ([]Event, error)
	CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error)
	DeleteEvent(ctx context.Context, id int64) error

	// Graph views
	GraphStats(ctx context.Context) (*GraphStats, error)
	DecisionTimeline(ctx context.Context, decisionID int64) ([]TimelineEvent, error)
	RelatedDecisions(ctx context.Context, decisionID int64) ([]RelatedDecision, error)
	EventCausality(ctx context.Context, eventID int64) (*EventCausality, error)
	DecisionImpact(ctx context.Context, decisionID int64) (*DecisionImpact, error)
	SearchGraph(ctx context.Context, query string) ([]SearchResult, error)

	// LLM-derived views
	SummarizeDecision(ctx context.Context, decisionID int64) (*DecisionSummary, error)
	AnalyzeRisks(ctx context.Context, decisionID int64) (*RiskAnalysis, error)
	NextSteps(ctx context.Context, decisionID int64) (*NextSteps, error)
	QualityScore(ctx context.Context, decisionID int64) (*QualityScore, error)

	// Analytics
	AnalyticsOverview(ctx context.Context) (*AnalyticsOverview, error)
	EventTypeDistribution(ctx context.Context) (*EventTypeDistribution, error)
	DecisionTimelineStats(ctx context.Context, days int) (*TimelineStats, error)
	StatusSummary(ctx context.Context) (*StatusSummary, error)

	// Admin
	PendingUsers(ctx context.Context) ([]User, error)
	AllUsers(ctx context.Context) ([]User, error)
	ApproveUser(ctx context.Context, userID int64) (*User, error)
	RejectUser(ctx context.Context, userID int64) (*User, error)
}
