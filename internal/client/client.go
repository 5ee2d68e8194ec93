// Package client is a Go consumer of the dashboard API: it drives the auth
// endpoints and keeps the resulting identity in a session.Store, the way the
// browser front-end pairs its fetch calls with the persisted auth store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spec-kit/ticket-admin/internal/api/dto"
	"github.com/spec-kit/ticket-admin/internal/domain"
	"github.com/spec-kit/ticket-admin/pkg/session"
)

// APIError is a structured error response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Client calls the dashboard API and maintains the local session.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Store
}

// New builds a client around a base URL and session store.
func New(baseURL string, sess *session.Store) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		session: sess,
	}
}

// Session exposes the underlying session store.
func (c *Client) Session() *session.Store { return c.session }

// Register creates an account and logs the session in with the issued token.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*domain.PublicUser, error) {
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, "", &resp); err != nil {
		return nil, err
	}
	if err := c.session.Login(resp.User, resp.Token); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login authenticates and stores user plus token in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.PublicUser, error) {
	var resp dto.AuthResponse
	req := dto.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, "", &resp); err != nil {
		return nil, err
	}
	if err := c.session.Login(resp.User, resp.Token); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Verify presents the held token and refreshes the stored user from the
// server's answer. A failed verification clears the session.
func (c *Client) Verify(ctx context.Context) (*domain.PublicUser, error) {
	var resp dto.VerifyResponse
	if err := c.do(ctx, http.MethodGet, "/auth/verify", nil, c.session.Token(), &resp); err != nil {
		_ = c.session.Logout()
		return nil, err
	}
	if err := c.session.SetUser(&resp.User); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// UpdateProfile edits the profile fields and refreshes the session copy.
func (c *Client) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*domain.PublicUser, error) {
	var resp dto.VerifyResponse
	if err := c.do(ctx, http.MethodPut, "/auth/profile", req, c.session.Token(), &resp); err != nil {
		return nil, err
	}
	if err := c.session.SetUser(&resp.User); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout drops the local session. There is no server-side call to make: the
// token remains valid until its embedded expiry passes.
func (c *Client) Logout() error {
	return c.session.Logout()
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, token string, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Code: "UNKNOWN"}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		if envelope.Error.Code != "" {
			apiErr.Code = envelope.Error.Code
		}
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}
