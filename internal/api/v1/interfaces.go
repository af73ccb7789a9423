package v1

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/gosuda/teamboard/internal/auth"
	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/filter"
	"github.com/gosuda/teamboard/internal/report"
	"github.com/gosuda/teamboard/internal/service"
	"github.com/gosuda/teamboard/internal/workflow"
)

// BoardService is the application surface the handlers drive.
// *service.Service satisfies this interface.
type BoardService interface {
	Today() civil.Date
	ResolveViewer(ctx context.Context, tenantID uuid.UUID, name string, role domain.Role) (domain.Viewer, error)

	CreateTenant(ctx context.Context, name, slug string) (*domain.Tenant, error)
	TenantByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	ListTenants(ctx context.Context) ([]*domain.Tenant, error)

	CreateTask(ctx context.Context, tenantID uuid.UUID, d domain.TaskDraft) (*domain.Task, error)
	GetTask(ctx context.Context, tenantID uuid.UUID, id string) (*domain.Task, error)
	UpdateTask(ctx context.Context, tenantID uuid.UUID, id string, d domain.TaskDraft) (*domain.Task, bool, error)
	DeleteTask(ctx context.Context, tenantID uuid.UUID, id string) error
	MoveTask(ctx context.Context, tenantID uuid.UUID, id, subStatus string) (*domain.Task, bool, error)
	FilteredTasks(ctx context.Context, tenantID uuid.UUID, c filter.Criteria, v domain.Viewer) ([]*domain.Task, error)
	TasksBySubStatus(ctx context.Context, tenantID, teamID uuid.UUID, c filter.Criteria, v domain.Viewer) (map[string][]*domain.Task, error)
	BoardView(ctx context.Context, tenantID, teamID uuid.UUID, c filter.Criteria, v domain.Viewer) (filter.BoardView, error)
	StatusCounts(ctx context.Context, tenantID, teamID uuid.UUID, c filter.Criteria, v domain.Viewer) ([]filter.StatusCount, error)
	Orphans(ctx context.Context, tenantID, teamID uuid.UUID) ([]*domain.Task, error)
	Calendar(ctx context.Context, tenantID uuid.UUID, c filter.Criteria, v domain.Viewer, year, month int) ([]filter.CalendarDay, error)

	CreateTeam(ctx context.Context, tenantID uuid.UUID, d domain.TeamDraft) (*domain.Team, error)
	ListTeams(ctx context.Context, tenantID uuid.UUID) ([]*domain.Team, error)
	GetTeam(ctx context.Context, tenantID, id uuid.UUID) (*service.TeamDetail, error)
	UpdateTeam(ctx context.Context, tenantID, id uuid.UUID, d domain.TeamDraft) (*domain.Team, error)
	DeleteTeam(ctx context.Context, tenantID, id uuid.UUID) error
	TeamStats(ctx context.Context, tenantID, id uuid.UUID) (domain.TeamStats, error)

	Taxonomy(ctx context.Context, tenantID, teamID uuid.UUID) (*domain.TeamStatusConfig, error)
	AddMainStatus(ctx context.Context, tenantID, teamID uuid.UUID, name, color string) (*domain.TeamStatusConfig, domain.MainStatus, error)
	AddSubStatus(ctx context.Context, tenantID, teamID, mainID uuid.UUID, name, color string) (*domain.TeamStatusConfig, domain.SubStatus, error)
	DeleteMainStatus(ctx context.Context, tenantID, teamID, mainID uuid.UUID) (*domain.TeamStatusConfig, error)
	DeleteSubStatus(ctx context.Context, tenantID, teamID, mainID, subID uuid.UUID) (*domain.TeamStatusConfig, error)
	Reorder(ctx context.Context, tenantID, teamID, draggedID, targetID uuid.UUID, scope workflow.Scope) (*domain.TeamStatusConfig, error)

	Report(ctx context.Context, tenantID uuid.UUID, v domain.Viewer, employee string, r filter.Range) (*report.Report, error)
}

// SessionIssuer abstracts session operations for handler testing.
// *auth.Service satisfies this interface.
type SessionIssuer interface {
	StartSession(ctx context.Context, tenantSlug, displayName, role string) (*auth.Session, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
}
