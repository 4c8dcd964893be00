// Package api contains the typed client for the decision-tracker HTTP API.
//
// It is split into a transport adapter (HTTPClient) that owns the base URL,
// bearer-token injection, and uniform error mapping, and one resource-access
// method per remote operation (decisions, events, graph views, analytics,
// LLM-derived views, auth, admin). Responses are parsed into the concrete
// types in this package at the boundary; nothing above this layer touches
// raw JSON.
//
// The adapter performs no retries. Retry and caching policy belong to the
// cache layer on top of it.
package api
