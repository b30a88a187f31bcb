package backend

import (
	"context"
	"net/http"
)

// User is the backend's account record.
type User struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

type LoginResult struct {
	AccessToken string `json:"accessToken"`
	User        *User  `json:"user,omitempty"`
}

type VerifyResult struct {
	Success bool  `json:"success"`
	User    *User `json:"user,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var out LoginResult
	if err := c.sendJSON(ctx, "login", http.MethodPost, "/api/login", loginRequest{Username: username, Password: password}, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, &APIError{Endpoint: "login", Status: http.StatusUnauthorized, Message: "no access token in response"}
	}
	return &out, nil
}

// Verify checks the current token with GET /auth/verify.
func (c *Client) Verify(ctx context.Context) (*VerifyResult, error) {
	var out VerifyResult
	if err := c.getJSON(ctx, "verify", "/auth/verify", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
