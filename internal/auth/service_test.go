package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/teamboard/internal/auth"
	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/store/memory"
)

const testSecret = "session-secret"

func newService(t *testing.T) (*auth.Service, *domain.Tenant) {
	t.Helper()

	tenants := memory.NewTenantRepo()
	acme := &domain.Tenant{ID: uuid.New(), Name: "Acme", Slug: "acme"}
	require.NoError(t, tenants.Create(context.Background(), acme))

	return auth.NewService(tenants, testSecret, 15*time.Minute, 24*time.Hour, "acme"), acme
}

func TestStartSession(t *testing.T) {
	t.Parallel()

	svc, acme := newService(t)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, "", "  Jane Doe ", "member")
	require.NoError(t, err)
	assert.Equal(t, acme.ID, sess.TenantID)
	assert.Equal(t, "Jane Doe", sess.DisplayName)
	assert.Equal(t, "employee", sess.Role, "aliases resolve to their class")
	assert.Equal(t, auth.UserID(acme.ID, "jane doe"), sess.UserID)

	claims, err := auth.ValidateToken(testSecret, sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, "Jane Doe", claims.Name)

	again, err := svc.StartSession(ctx, "acme", "Jane Doe", "employee")
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, again.UserID, "same person, same id")
}

func TestStartSession_Errors(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		tenant  string
		display string
		role    string
		want    error
	}{
		{"empty name", "acme", "   ", "admin", auth.ErrMissingName},
		{"unknown role", "acme", "Jane", "intern", auth.ErrUnknownRole},
		{"unknown tenant", "globex", "Jane", "admin", domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.StartSession(ctx, tt.tenant, tt.display, tt.role)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	svc, acme := newService(t)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, "acme", "Max", "manager")
	require.NoError(t, err)

	access, err := svc.RefreshToken(ctx, sess.RefreshToken)
	require.NoError(t, err)
	claims, err := auth.ValidateToken(testSecret, access)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, acme.ID.String(), claims.TenantID)
	assert.Equal(t, "manager", claims.Role)

	_, err = svc.RefreshToken(ctx, sess.AccessToken)
	assert.ErrorIs(t, err, auth.ErrNotRefresh)

	_, err = svc.RefreshToken(ctx, "garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
