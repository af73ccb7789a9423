package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/teamboard/internal/domain"
)

// Tenant resolves a tenant by slug.
func (s *Service) Tenant(ctx context.Context, slug string) (*domain.Tenant, error) {
	t, err := s.store.Tenants().GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("service.Tenant: %w", err)
	}
	return t, nil
}

func (s *Service) TenantByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	t, err := s.store.Tenants().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.TenantByID: %w", err)
	}
	return t, nil
}

func (s *Service) ListTenants(ctx context.Context) ([]*domain.Tenant, error) {
	ts, err := s.store.Tenants().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ListTenants: %w", err)
	}
	return ts, nil
}

// CreateTenant registers a workspace. Slugs are unique; a taken slug yields
// ErrConflict.
func (s *Service) CreateTenant(ctx context.Context, name, slug string) (*domain.Tenant, error) {
	name = strings.TrimSpace(name)
	slug = strings.ToLower(strings.TrimSpace(slug))
	if name == "" || slug == "" {
		return nil, fmt.Errorf("service.CreateTenant: name and slug are required: %w", domain.ErrValidation)
	}

	now := s.now()
	t := &domain.Tenant{ID: uuid.New(), Name: name, Slug: slug, CreatedAt: now, UpdatedAt: now}
	if err := s.store.Tenants().Create(ctx, t); err != nil {
		return nil, fmt.Errorf("service.CreateTenant: %w", err)
	}

	log.Info().Str("tenant_id", t.ID.String()).Str("slug", slug).Msg("tenant created")
	return t, nil
}
