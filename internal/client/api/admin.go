package api

import (
	"context"
	"fmt"
	"net/http"
)

// PendingUsers lists accounts awaiting approval. Requires an admin session;
// non-admins get ErrUnauthorized.
func (c *HTTPClient) PendingUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/api/admin/pending-users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AllUsers lists every account.
func (c *HTTPClient) AllUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/api/admin/all-users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ApproveUser moves a pending account to "approved" and returns it.
func (c *HTTPClient) ApproveUser(ctx context.Context, userID int64) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/admin/approve-user/%d", userID), nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// RejectUser moves a pending account to "rejected" and returns it.
func (c *HTTPClient) RejectUser(ctx context.Context, userID int64) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/admin/reject-user/%d", userID), nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
