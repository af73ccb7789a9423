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

// TaskRepo keeps tasks per tenant in insertion order. Lists are fresh scans.
type TaskRepo struct {
	mu       sync.RWMutex
	byTenant map[uuid.UUID][]*domain.Task
}

func NewTaskRepo() *TaskRepo {
	return &TaskRepo{byTenant: make(map[uuid.UUID][]*domain.Task)}
}

func (r *TaskRepo) Create(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index(t.TenantID, t.ID) >= 0 {
		return fmt.Errorf("taskRepo.Create: %w", domain.ErrConflict)
	}
	r.byTenant[t.TenantID] = append(r.byTenant[t.TenantID], t.Clone())
	return nil
}

func (r *TaskRepo) GetByID(_ context.Context, tenantID uuid.UUID, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.index(tenantID, id)
	if i < 0 {
		return nil, fmt.Errorf("taskRepo.GetByID: %w", domain.ErrNotFound)
	}
	return r.byTenant[tenantID][i].Clone(), nil
}

func (r *TaskRepo) List(_ context.Context, tenantID uuid.UUID) ([]*domain.Task, error) {
	return r.scan(tenantID, func(*domain.Task) bool { return true }), nil
}

func (r *TaskRepo) ListByTeam(_ context.Context, tenantID, teamID uuid.UUID) ([]*domain.Task, error) {
	return r.scan(tenantID, func(t *domain.Task) bool { return t.TeamID == teamID }), nil
}

func (r *TaskRepo) UpdateSubStatus(_ context.Context, tenantID uuid.UUID, id, subStatus string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(tenantID, id)
	if i < 0 {
		return fmt.Errorf("taskRepo.UpdateSubStatus: %w", domain.ErrNotFound)
	}
	t := r.byTenant[tenantID][i].Clone()
	t.SubStatus = subStatus
	t.UpdatedAt = time.Now()
	r.byTenant[tenantID][i] = t
	return nil
}

func (r *TaskRepo) Update(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(t.TenantID, t.ID)
	if i < 0 {
		return fmt.Errorf("taskRepo.Update: %w", domain.ErrNotFound)
	}
	c := t.Clone()
	c.UpdatedAt = time.Now()
	r.byTenant[t.TenantID][i] = c
	return nil
}

func (r *TaskRepo) Delete(_ context.Context, tenantID uuid.UUID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(tenantID, id)
	if i < 0 {
		return fmt.Errorf("taskRepo.Delete: %w", domain.ErrNotFound)
	}
	r.byTenant[tenantID] = slices.Delete(r.byTenant[tenantID], i, i+1)
	return nil
}

func (r *TaskRepo) scan(tenantID uuid.UUID, keep func(*domain.Task) bool) []*domain.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shard := r.byTenant[tenantID]
	out := make([]*domain.Task, 0, len(shard))
	for _, t := range shard {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// index must be called with mu held.
func (r *TaskRepo) index(tenantID uuid.UUID, id string) int {
	return slices.IndexFunc(r.byTenant[tenantID], func(t *domain.Task) bool { return t.ID == id })
}
