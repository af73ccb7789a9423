package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/teamboard/internal/domain"
)

// uniqueViolation is the SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

type TenantRepo struct {
	pool *pgxpool.Pool
}

func NewTenantRepo(pool *pgxpool.Pool) *TenantRepo {
	return &TenantRepo{pool: pool}
}

func (r *TenantRepo) Create(ctx context.Context, t *domain.Tenant) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tenants (id, name, slug, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Name, t.Slug, t.CreatedAt, t.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("tenantRepo.Create: slug %q: %w", t.Slug, domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("tenantRepo.Create: %w", err)
	}

	return nil
}

func (r *TenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	var t domain.Tenant

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, slug, created_at, updated_at
		 FROM tenants WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("tenantRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("tenantRepo.GetByID: %w", err)
	}

	return &t, nil
}

func (r *TenantRepo) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	var t domain.Tenant

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, slug, created_at, updated_at
		 FROM tenants WHERE slug = $1`,
		slug,
	).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("tenantRepo.GetBySlug: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("tenantRepo.GetBySlug: %w", err)
	}

	return &t, nil
}

func (r *TenantRepo) List(ctx context.Context) ([]*domain.Tenant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, slug, created_at, updated_at
		 FROM tenants ORDER BY created_at
		 LIMIT 500`,
	)
	if err != nil {
		return nil, fmt.Errorf("tenantRepo.List: %w", err)
	}
	defer rows.Close()

	tenants := make([]*domain.Tenant, 0)
	for rows.Next() {
		var t domain.Tenant

		err = rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("tenantRepo.List: scan: %w", err)
		}

		tenants = append(tenants, &t)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("tenantRepo.List: rows: %w", err)
	}

	return tenants, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
