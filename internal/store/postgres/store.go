// Package postgres persists tenants, teams, taxonomies and tasks in
// PostgreSQL through a pgx pool.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/teamboard/internal/domain"
)

type Store struct {
	pool     *pgxpool.Pool
	tenants  *TenantRepo
	teams    *TeamRepo
	statuses *StatusRepo
	tasks    *TaskRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Store{
		pool:     pool,
		tenants:  NewTenantRepo(pool),
		teams:    NewTeamRepo(pool),
		statuses: NewStatusRepo(pool),
		tasks:    NewTaskRepo(pool),
	}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Tenants() domain.TenantRepository  { return s.tenants }
func (s *Store) Teams() domain.TeamRepository      { return s.teams }
func (s *Store) Statuses() domain.StatusRepository { return s.statuses }
func (s *Store) Tasks() domain.TaskRepository      { return s.tasks }
