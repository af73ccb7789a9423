package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/teamboard/internal/domain"
)

// StatusRepo stores each team's taxonomy as one JSONB document.
type StatusRepo struct {
	pool *pgxpool.Pool
}

func NewStatusRepo(pool *pgxpool.Pool) *StatusRepo {
	return &StatusRepo{pool: pool}
}

func (r *StatusRepo) Get(ctx context.Context, tenantID, teamID uuid.UUID) (*domain.TeamStatusConfig, error) {
	var raw []byte

	err := r.pool.QueryRow(ctx,
		`SELECT config FROM team_statuses WHERE tenant_id = $1 AND team_id = $2`,
		tenantID, teamID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("statusRepo.Get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("statusRepo.Get: %w", err)
	}

	var cfg domain.TeamStatusConfig
	err = json.Unmarshal(raw, &cfg)
	if err != nil {
		return nil, fmt.Errorf("statusRepo.Get: decode: %w", err)
	}

	return &cfg, nil
}

func (r *StatusRepo) Save(ctx context.Context, tenantID uuid.UUID, cfg *domain.TeamStatusConfig) error {
	if cfg.TeamID == uuid.Nil {
		return fmt.Errorf("statusRepo.Save: %w: team ID is required", domain.ErrValidation)
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("statusRepo.Save: encode: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO team_statuses (tenant_id, team_id, config, version, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (tenant_id, team_id)
		 DO UPDATE SET config = EXCLUDED.config, version = EXCLUDED.version, updated_at = now()`,
		tenantID, cfg.TeamID, raw, cfg.Version,
	)
	if err != nil {
		return fmt.Errorf("statusRepo.Save: %w", err)
	}

	return nil
}

func (r *StatusRepo) Delete(ctx context.Context, tenantID, teamID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM team_statuses WHERE tenant_id = $1 AND team_id = $2`,
		tenantID, teamID,
	)
	if err != nil {
		return fmt.Errorf("statusRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("statusRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}
