package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/ticket-admin/internal/api/http"
	"github.com/spec-kit/ticket-admin/internal/api/http/handlers"
	"github.com/spec-kit/ticket-admin/internal/auth"
	"github.com/spec-kit/ticket-admin/internal/config"
	"github.com/spec-kit/ticket-admin/internal/domain"
	"github.com/spec-kit/ticket-admin/internal/observability"
	"github.com/spec-kit/ticket-admin/internal/repository"
	"github.com/spec-kit/ticket-admin/internal/service"
	"github.com/spec-kit/ticket-admin/internal/store"
)

const testSecret = "test-secret"

// newTestApp wires the full HTTP surface over a temp-dir file store, the
// same assembly main performs minus postgres and redis.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	fs, err := store.NewFileStore(filepath.Join(t.TempDir(), "db.json"), zap.NewNop())
	require.NoError(t, err)

	cfg := config.Config{Auth: config.AuthConfig{
		TokenSecret: testSecret,
		BcryptCost:  bcrypt.MinCost,
	}}

	userRepo := repository.NewUserRepository(fs)
	authService := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: userRepo})

	eventsSvc := service.NewResourceService(repository.NewCollection[domain.Event](fs, "events"), nil, nil, 0)
	settingsSvc := service.NewResourceService(repository.NewCollection[domain.Settings](fs, "settings"), nil, nil, 0)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), metrics)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler("test", "dev", nil, nil, metrics),
		Auth:   handlers.NewAuthHandler(authService),
		Resources: []httptransport.ResourceRegistrar{
			handlers.NewResourcesHandler(eventsSvc),
			handlers.NewResourcesHandler(settingsSvc),
		},
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), userRepo),
		LoginLimiter:   httptransport.NewRateLimiter(0, 0),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	payload := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &payload))
	} else if len(raw) > 0 {
		payload["_body"] = string(raw)
	}
	return resp, payload
}

func errorMessage(t *testing.T, payload map[string]any) string {
	t.Helper()
	errObj, ok := payload["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %v", payload)
	msg, _ := errObj["message"].(string)
	return msg
}
