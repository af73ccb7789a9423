package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/teamboard/internal/domain"
)

const taskColumns = `id, tenant_id, team_id, title, description, assignee, client,
	due_date, created_date, main_status, sub_status, progress, priority, tags, count, updated_at`

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func (r *TaskRepo) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tasks (`+taskColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		t.ID, t.TenantID, t.TeamID, t.Title, t.Description, t.Assignee, t.Client,
		toPGDate(t.DueDate), toPGDate(t.CreatedDate), t.MainStatus, t.SubStatus,
		t.Progress, t.Priority, tags(t.Tags), t.Count, t.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("taskRepo.Create: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("taskRepo.Create: %w", err)
	}

	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	)
	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("taskRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("taskRepo.GetByID: %w", err)
	}

	return t, nil
}

// List returns the tenant's tasks in insertion order.
func (r *TaskRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE tenant_id = $1 ORDER BY seq`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.List: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.List")
}

func (r *TaskRepo) ListByTeam(ctx context.Context, tenantID, teamID uuid.UUID) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE tenant_id = $1 AND team_id = $2 ORDER BY seq`,
		tenantID, teamID,
	)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.ListByTeam: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.ListByTeam")
}

func (r *TaskRepo) UpdateSubStatus(ctx context.Context, tenantID uuid.UUID, id, subStatus string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET sub_status = $1, updated_at = now()
		 WHERE tenant_id = $2 AND id = $3`,
		subStatus, tenantID, id,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.UpdateSubStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.UpdateSubStatus: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskRepo) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET team_id = $1, title = $2, description = $3, assignee = $4, client = $5,
		        due_date = $6, created_date = $7, main_status = $8, sub_status = $9,
		        progress = $10, priority = $11, tags = $12, count = $13, updated_at = now()
		 WHERE tenant_id = $14 AND id = $15`,
		t.TeamID, t.Title, t.Description, t.Assignee, t.Client,
		toPGDate(t.DueDate), toPGDate(t.CreatedDate), t.MainStatus, t.SubStatus,
		t.Progress, t.Priority, tags(t.Tags), t.Count,
		t.TenantID, t.ID,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, tenantID uuid.UUID, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM tasks WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		t            domain.Task
		due, created pgtype.Date
		updatedAt    time.Time
	)
	err := row.Scan(
		&t.ID, &t.TenantID, &t.TeamID, &t.Title, &t.Description, &t.Assignee, &t.Client,
		&due, &created, &t.MainStatus, &t.SubStatus, &t.Progress, &t.Priority,
		&t.Tags, &t.Count, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.DueDate = fromPGDate(due)
	t.CreatedDate = fromPGDate(created)
	t.UpdatedAt = updatedAt
	return &t, nil
}

func scanTasks(rows pgx.Rows, caller string) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return tasks, nil
}

// toPGDate maps the zero civil.Date to SQL NULL.
func toPGDate(d civil.Date) pgtype.Date {
	if !d.IsValid() {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: d.In(time.UTC), Valid: true}
}

func fromPGDate(d pgtype.Date) civil.Date {
	if !d.Valid {
		return civil.Date{}
	}
	return civil.DateOf(d.Time)
}

func tags(t []string) []string {
	if t == nil {
		return []string{}
	}
	return t
}
