package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/gosuda/teamboard/internal/domain"
)

type statusKey struct {
	tenantID uuid.UUID
	teamID   uuid.UUID
}

// StatusRepo stores one taxonomy document per team.
type StatusRepo struct {
	mu   sync.RWMutex
	docs map[statusKey]*domain.TeamStatusConfig
}

func NewStatusRepo() *StatusRepo {
	return &StatusRepo{docs: make(map[statusKey]*domain.TeamStatusConfig)}
}

func (r *StatusRepo) Get(_ context.Context, tenantID, teamID uuid.UUID) (*domain.TeamStatusConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.docs[statusKey{tenantID, teamID}]
	if !ok {
		return nil, fmt.Errorf("statusRepo.Get: %w", domain.ErrNotFound)
	}
	return cfg.Clone(), nil
}

func (r *StatusRepo) Save(_ context.Context, tenantID uuid.UUID, cfg *domain.TeamStatusConfig) error {
	if cfg.TeamID == uuid.Nil {
		return fmt.Errorf("statusRepo.Save: %w: team ID is required", domain.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs[statusKey{tenantID, cfg.TeamID}] = cfg.Clone()
	return nil
}

func (r *StatusRepo) Delete(_ context.Context, tenantID, teamID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := statusKey{tenantID, teamID}
	if _, ok := r.docs[key]; !ok {
		return fmt.Errorf("statusRepo.Delete: %w", domain.ErrNotFound)
	}
	delete(r.docs, key)
	return nil
}
