package v1_test

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	v1 "github.com/gosuda/teamboard/internal/api/v1"
	"github.com/gosuda/teamboard/internal/auth"
	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/server/middleware"
	"github.com/gosuda/teamboard/internal/service"
	"github.com/gosuda/teamboard/internal/store/memory"
)

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

// ---------------------------------------------------------------------------
// Context helpers: inject tenant and viewer into context for DoCtx
// ---------------------------------------------------------------------------

func tenantCtx(tenantID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), middleware.ContextKeyTenantID, tenantID)
}

func viewerCtx(tenantID uuid.UUID, name, role string) context.Context {
	ctx := tenantCtx(tenantID)
	ctx = context.WithValue(ctx, middleware.ContextKeyUserRole, role)
	ctx = context.WithValue(ctx, middleware.ContextKeyDisplayName, name)
	return ctx
}

func adminCtx(tenantID uuid.UUID) context.Context {
	return viewerCtx(tenantID, "Ada", "admin")
}

// ---------------------------------------------------------------------------
// Test environment over the in-memory store
// ---------------------------------------------------------------------------

type env struct {
	api      humatest.TestAPI
	svc      *service.Service
	store    *memory.Store
	tenantID uuid.UUID
	team     *domain.Team
}

// newEnv registers every board route against a real service backed by the
// memory store. The tenant has one team, "Video", managed by Max.
func newEnv(t *testing.T) *env {
	t.Helper()

	store := memory.New()
	svc := service.New(store, service.WithClock(func() time.Time { return fixedNow }))

	tenantID := uuid.New()
	require.NoError(t, store.Tenants().Create(context.Background(), &domain.Tenant{ID: tenantID, Name: "Acme", Slug: "acme"}))

	team, err := svc.CreateTeam(context.Background(), tenantID, domain.TeamDraft{
		Name:    "Video",
		Manager: "Max",
		Members: []string{"Jane Doe", "John Roe"},
	})
	require.NoError(t, err)

	_, api := humatest.New(t)
	v1.RegisterTenantRoutes(api, svc)
	v1.RegisterTenantAdminRoutes(api, svc)
	v1.RegisterTaskRoutes(api, svc)
	v1.RegisterTeamRoutes(api, svc)
	v1.RegisterTeamAdminRoutes(api, svc)
	v1.RegisterStatusRoutes(api, svc)
	v1.RegisterStatusAdminRoutes(api, svc)
	v1.RegisterBoardRoutes(api, svc)
	v1.RegisterCalendarRoutes(api, svc)
	v1.RegisterReportRoutes(api, svc)

	return &env{api: api, svc: svc, store: store, tenantID: tenantID, team: team}
}

func (e *env) task(t *testing.T, title, assignee, sub string, progress int, created, due string) *domain.Task {
	t.Helper()

	d := domain.TaskDraft{
		TeamID:     e.team.ID,
		Title:      title,
		Assignee:   assignee,
		MainStatus: "Delivery",
		SubStatus:  sub,
		Progress:   progress,
		Priority:   domain.PriorityMedium,
	}
	if created != "" {
		d.CreatedDate = mustDate(t, created)
	}
	if due != "" {
		d.DueDate = mustDate(t, due)
	}
	task, err := e.svc.CreateTask(context.Background(), e.tenantID, d)
	require.NoError(t, err)
	return task
}

// ---------------------------------------------------------------------------
// Mock SessionIssuer
// ---------------------------------------------------------------------------

type mockSessionIssuer struct {
	startSessionFunc func(ctx context.Context, tenantSlug, displayName, role string) (*auth.Session, error)
	refreshTokenFunc func(ctx context.Context, refreshToken string) (string, error)
}

func (m *mockSessionIssuer) StartSession(ctx context.Context, tenantSlug, displayName, role string) (*auth.Session, error) {
	return m.startSessionFunc(ctx, tenantSlug, displayName, role)
}

func (m *mockSessionIssuer) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshTokenFunc(ctx, refreshToken)
}

func mustDate(t *testing.T, s string) civil.Date {
	t.Helper()

	d, err := civil.ParseDate(s)
	require.NoError(t, err)
	return d
}
