package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/gosuda/teamboard/internal/domain"
)

type TenantRepo struct {
	mu    sync.RWMutex
	order []uuid.UUID
	byID  map[uuid.UUID]domain.Tenant
}

func NewTenantRepo() *TenantRepo {
	return &TenantRepo{byID: make(map[uuid.UUID]domain.Tenant)}
}

func (r *TenantRepo) Create(_ context.Context, t *domain.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[t.ID]; ok {
		return fmt.Errorf("tenantRepo.Create: %w", domain.ErrConflict)
	}
	for _, existing := range r.byID {
		if existing.Slug == t.Slug {
			return fmt.Errorf("tenantRepo.Create: slug %q: %w", t.Slug, domain.ErrConflict)
		}
	}

	r.byID[t.ID] = *t
	r.order = append(r.order, t.ID)
	return nil
}

func (r *TenantRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("tenantRepo.GetByID: %w", domain.ErrNotFound)
	}
	return &t, nil
}

func (r *TenantRepo) GetBySlug(_ context.Context, slug string) (*domain.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if t := r.byID[id]; t.Slug == slug {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("tenantRepo.GetBySlug: %w", domain.ErrNotFound)
}

func (r *TenantRepo) List(_ context.Context) ([]*domain.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Tenant, 0, len(r.order))
	for _, id := range r.order {
		t := r.byID[id]
		out = append(out, &t)
	}
	return out, nil
}
