package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-admin/internal/api/dto"
	"github.com/spec-kit/ticket-admin/internal/domain"
	"github.com/spec-kit/ticket-admin/pkg/session"
)

// fakeAPI mimics the server's auth surface closely enough to exercise the
// client: fixed token, bearer check on verify, error envelope on failures.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	user := domain.PublicUser{ID: "1700000000000", Email: "a@b.com", FullName: "Ada Admin"}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(dto.AuthResponse{Token: "issued-token", User: user, ExpiresIn: "24h"})
	})
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{
				"code": "UNAUTHORIZED", "message": "incorrect email or password",
			}})
			return
		}
		_ = json.NewEncoder(w).Encode(dto.AuthResponse{Token: "issued-token", User: user, ExpiresIn: "24h"})
	})
	mux.HandleFunc("GET /auth/verify", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer issued-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{
				"code": "UNAUTHORIZED", "message": "invalid or expired token",
			}})
			return
		}
		_ = json.NewEncoder(w).Encode(dto.VerifyResponse{User: user})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	sess, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	return New(fakeAPI(t).URL, sess)
}

func TestClientLoginVerifyLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newTestClient(t)

	user, err := c.Login(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", user.Email)
	require.True(t, c.Session().IsAuthenticated())
	require.Equal(t, "issued-token", c.Session().Token())

	verified, err := c.Verify(ctx)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", verified.Email)

	require.NoError(t, c.Logout())
	require.False(t, c.Session().IsAuthenticated())
	require.Empty(t, c.Session().Token())
}

func TestClientLoginFailureLeavesSessionEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newTestClient(t)

	_, err := c.Login(ctx, "a@b.com", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Contains(t, apiErr.Message, "incorrect")
	require.False(t, c.Session().IsAuthenticated())
}

func TestClientVerifyFailureClearsSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newTestClient(t)

	_, err := c.Login(ctx, "a@b.com", "secret1")
	require.NoError(t, err)

	// sabotage the held token; verify must fail and drop the session
	require.NoError(t, c.Session().Login(domain.PublicUser{ID: "x"}, "stale-token"))
	_, err = c.Verify(ctx)
	require.Error(t, err)
	require.False(t, c.Session().IsAuthenticated())
}

func TestClientRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newTestClient(t)

	user, err := c.Register(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, "1700000000000", user.ID)
	require.True(t, c.Session().IsAuthenticated())
}
