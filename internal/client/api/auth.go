package api

import (
	"context"
	"net/http"
)

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup registers a new account and returns its first bearer token.
// New accounts start in "pending" status until approved by an admin.
func (c *HTTPClient) Signup(ctx context.Context, email, username, password string) (*Token, error) {
	req := signupRequest{Email: email, Username: username, Password: password}
	if err := c.checkRequest(req); err != nil {
		return nil, err
	}
	var t Token
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", nil, req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Login exchanges credentials for a bearer token. Wrong credentials yield
// ErrUnauthorized.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*Token, error) {
	req := loginRequest{Email: email, Password: password}
	if err := c.checkRequest(req); err != nil {
		return nil, err
	}
	var t Token
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CurrentUser resolves the account behind the current token. An expired or
// revoked token yields ErrUnauthorized.
func (c *HTTPClient) CurrentUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
