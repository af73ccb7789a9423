package v1_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/gosuda/teamboard/internal/api/v1"
	"github.com/gosuda/teamboard/internal/auth"
	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/store/memory"
)

// ---------------------------------------------------------------------------
// POST /auth/session
// ---------------------------------------------------------------------------

func TestStartSession(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		tenants := memory.NewTenantRepo()
		tenantID := uuid.New()
		require.NoError(t, tenants.Create(context.Background(), &domain.Tenant{ID: tenantID, Name: "Acme", Slug: "acme"}))
		svc := auth.NewService(tenants, "secret", time.Hour, 24*time.Hour, "acme")

		_, api := humatest.New(t)
		v1.RegisterAuthRoutes(api, svc)

		resp := api.Post("/auth/session", map[string]any{
			"display_name": "Jane Doe",
			"role":         "employee",
		})
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

		var body auth.Session
		decode(t, resp, &body)
		assert.Equal(t, tenantID, body.TenantID)
		assert.Equal(t, "Jane Doe", body.DisplayName)
		assert.Equal(t, "employee", body.Role)
		assert.Equal(t, auth.UserID(tenantID, "Jane Doe"), body.UserID)

		claims, err := auth.ValidateToken("secret", body.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", claims.Name)

		refreshed := api.Post("/auth/refresh", map[string]any{"refresh_token": body.RefreshToken})
		assert.Equal(t, http.StatusOK, refreshed.Code)
	})

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"tenant_not_found", fmt.Errorf("lookup: %w", domain.ErrNotFound), http.StatusNotFound},
		{"unknown_role", auth.ErrUnknownRole, http.StatusUnprocessableEntity},
		{"missing_name", auth.ErrMissingName, http.StatusUnprocessableEntity},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			v1.RegisterAuthRoutes(api, &mockSessionIssuer{
				startSessionFunc: func(_ context.Context, _, _, _ string) (*auth.Session, error) {
					return nil, tt.err
				},
			})

			resp := api.Post("/auth/session", map[string]any{
				"tenant_slug":  "acme",
				"display_name": "x",
				"role":         "x",
			})
			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}

	t.Run("body_validation", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterAuthRoutes(api, &mockSessionIssuer{})

		resp := api.Post("/auth/session", map[string]any{"display_name": "", "role": "admin"})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// POST /auth/refresh
// ---------------------------------------------------------------------------

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterAuthRoutes(api, &mockSessionIssuer{
			refreshTokenFunc: func(_ context.Context, tok string) (string, error) {
				assert.Equal(t, "refresh-tok", tok)
				return "new-access", nil
			},
		})

		resp := api.Post("/auth/refresh", map[string]any{"refresh_token": "refresh-tok"})
		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			AccessToken string `json:"access_token"`
		}
		decode(t, resp, &body)
		assert.Equal(t, "new-access", body.AccessToken)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterAuthRoutes(api, &mockSessionIssuer{
			refreshTokenFunc: func(_ context.Context, _ string) (string, error) {
				return "", auth.ErrInvalidToken
			},
		})

		resp := api.Post("/auth/refresh", map[string]any{"refresh_token": "bad"})
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}
