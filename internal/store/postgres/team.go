package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/teamboard/internal/domain"
)

type TeamRepo struct {
	pool *pgxpool.Pool
}

func NewTeamRepo(pool *pgxpool.Pool) *TeamRepo {
	return &TeamRepo{pool: pool}
}

func (r *TeamRepo) Create(ctx context.Context, t *domain.Team) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO teams (id, tenant_id, name, color, manager, members, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.TenantID, t.Name, t.Color, t.Manager, members(t.Members), t.CreatedAt, t.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("teamRepo.Create: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("teamRepo.Create: %w", err)
	}

	return nil
}

func (r *TeamRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Team, error) {
	var t domain.Team

	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, name, color, manager, members, created_at, updated_at
		 FROM teams WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	).Scan(&t.ID, &t.TenantID, &t.Name, &t.Color, &t.Manager, &t.Members, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("teamRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("teamRepo.GetByID: %w", err)
	}

	return &t, nil
}

func (r *TeamRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*domain.Team, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, tenant_id, name, color, manager, members, created_at, updated_at
		 FROM teams WHERE tenant_id = $1
		 ORDER BY seq`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("teamRepo.List: %w", err)
	}
	defer rows.Close()

	teams := make([]*domain.Team, 0)
	for rows.Next() {
		var t domain.Team

		err = rows.Scan(&t.ID, &t.TenantID, &t.Name, &t.Color, &t.Manager, &t.Members, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("teamRepo.List: scan: %w", err)
		}

		teams = append(teams, &t)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("teamRepo.List: rows: %w", err)
	}

	return teams, nil
}

func (r *TeamRepo) Update(ctx context.Context, t *domain.Team) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE teams SET name = $1, color = $2, manager = $3, members = $4, updated_at = now()
		 WHERE tenant_id = $5 AND id = $6`,
		t.Name, t.Color, t.Manager, members(t.Members), t.TenantID, t.ID,
	)
	if err != nil {
		return fmt.Errorf("teamRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("teamRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TeamRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM teams WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	)
	if err != nil {
		return fmt.Errorf("teamRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("teamRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

// members keeps NULL out of the NOT NULL array column.
func members(m []string) []string {
	if m == nil {
		return []string{}
	}
	return m
}
