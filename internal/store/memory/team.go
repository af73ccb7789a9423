package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gosuda/teamboard/internal/domain"
)

// TeamRepo keeps one insertion-ordered shard per tenant.
type TeamRepo struct {
	mu       sync.RWMutex
	byTenant map[uuid.UUID][]*domain.Team
}

func NewTeamRepo() *TeamRepo {
	return &TeamRepo{byTenant: make(map[uuid.UUID][]*domain.Team)}
}

func (r *TeamRepo) Create(_ context.Context, t *domain.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	shard := r.byTenant[t.TenantID]
	if slices.ContainsFunc(shard, func(x *domain.Team) bool { return x.ID == t.ID }) {
		return fmt.Errorf("teamRepo.Create: %w", domain.ErrConflict)
	}
	r.byTenant[t.TenantID] = append(shard, t.Clone())
	return nil
}

func (r *TeamRepo) GetByID(_ context.Context, tenantID, id uuid.UUID) (*domain.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.index(tenantID, id)
	if i < 0 {
		return nil, fmt.Errorf("teamRepo.GetByID: %w", domain.ErrNotFound)
	}
	return r.byTenant[tenantID][i].Clone(), nil
}

func (r *TeamRepo) List(_ context.Context, tenantID uuid.UUID) ([]*domain.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shard := r.byTenant[tenantID]
	out := make([]*domain.Team, 0, len(shard))
	for _, t := range shard {
		out = append(out, t.Clone())
	}
	return out, nil
}

func (r *TeamRepo) Update(_ context.Context, t *domain.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(t.TenantID, t.ID)
	if i < 0 {
		return fmt.Errorf("teamRepo.Update: %w", domain.ErrNotFound)
	}
	c := t.Clone()
	c.UpdatedAt = time.Now()
	r.byTenant[t.TenantID][i] = c
	return nil
}

func (r *TeamRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(tenantID, id)
	if i < 0 {
		return fmt.Errorf("teamRepo.Delete: %w", domain.ErrNotFound)
	}
	r.byTenant[tenantID] = slices.Delete(r.byTenant[tenantID], i, i+1)
	return nil
}

// index must be called with mu held.
func (r *TeamRepo) index(tenantID, id uuid.UUID) int {
	return slices.IndexFunc(r.byTenant[tenantID], func(t *domain.Team) bool { return t.ID == id })
}
