package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/workflow"
)

// Taxonomy returns the team's status configuration.
func (s *Service) Taxonomy(ctx context.Context, tenantID, teamID uuid.UUID) (*domain.TeamStatusConfig, error) {
	cfg, err := s.taxonomy(ctx, tenantID, teamID)
	if err != nil {
		return nil, fmt.Errorf("service.Taxonomy: %w", err)
	}
	return cfg, nil
}

// AddMainStatus appends an empty main status.
func (s *Service) AddMainStatus(ctx context.Context, tenantID, teamID uuid.UUID, name, color string) (*domain.TeamStatusConfig, domain.MainStatus, error) {
	var added domain.MainStatus
	cfg, err := s.editTaxonomy(ctx, tenantID, teamID, func(cfg *domain.TeamStatusConfig) error {
		added = workflow.AddMainStatus(cfg, name, color)
		return nil
	})
	if err != nil {
		return nil, domain.MainStatus{}, fmt.Errorf("service.AddMainStatus: %w", err)
	}
	return cfg, added, nil
}

// AddSubStatus appends a sub-status to the end of mainID's chain.
func (s *Service) AddSubStatus(ctx context.Context, tenantID, teamID, mainID uuid.UUID, name, color string) (*domain.TeamStatusConfig, domain.SubStatus, error) {
	var added domain.SubStatus
	cfg, err := s.editTaxonomy(ctx, tenantID, teamID, func(cfg *domain.TeamStatusConfig) error {
		sub, ok := workflow.AddSubStatus(cfg, mainID, name, color)
		if !ok {
			return fmt.Errorf("main status %s: %w", mainID, domain.ErrNotFound)
		}
		added = sub
		return nil
	})
	if err != nil {
		return nil, domain.SubStatus{}, fmt.Errorf("service.AddSubStatus: %w", err)
	}
	return cfg, added, nil
}

// DeleteMainStatus removes a main status and its chain. Tasks in the removed
// columns become orphans.
func (s *Service) DeleteMainStatus(ctx context.Context, tenantID, teamID, mainID uuid.UUID) (*domain.TeamStatusConfig, error) {
	cfg, err := s.editTaxonomy(ctx, tenantID, teamID, func(cfg *domain.TeamStatusConfig) error {
		workflow.DeleteMainStatus(cfg, mainID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.DeleteMainStatus: %w", err)
	}
	return cfg, nil
}

func (s *Service) DeleteSubStatus(ctx context.Context, tenantID, teamID, mainID, subID uuid.UUID) (*domain.TeamStatusConfig, error) {
	cfg, err := s.editTaxonomy(ctx, tenantID, teamID, func(cfg *domain.TeamStatusConfig) error {
		workflow.DeleteSubStatus(cfg, mainID, subID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.DeleteSubStatus: %w", err)
	}
	return cfg, nil
}

func (s *Service) ReorderMain(ctx context.Context, tenantID, teamID, draggedID, targetID uuid.UUID) (*domain.TeamStatusConfig, error) {
	return s.Reorder(ctx, tenantID, teamID, draggedID, targetID, workflow.ScopeMain)
}

// ReorderSub moves a sub-status within its own chain. Drags across chains
// change nothing.
func (s *Service) ReorderSub(ctx context.Context, tenantID, teamID, draggedID, targetID uuid.UUID) (*domain.TeamStatusConfig, error) {
	return s.Reorder(ctx, tenantID, teamID, draggedID, targetID, workflow.ScopeSub)
}

func (s *Service) Reorder(ctx context.Context, tenantID, teamID, draggedID, targetID uuid.UUID, scope workflow.Scope) (*domain.TeamStatusConfig, error) {
	if scope != workflow.ScopeMain && scope != workflow.ScopeSub {
		return nil, fmt.Errorf("service.Reorder: %w: unknown scope %q", domain.ErrValidation, scope)
	}
	cfg, err := s.editTaxonomy(ctx, tenantID, teamID, func(cfg *domain.TeamStatusConfig) error {
		workflow.Reorder(cfg, draggedID, targetID, scope)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.Reorder: %w", err)
	}
	return cfg, nil
}

// editTaxonomy runs edit on the stored document and saves it when its version
// moved. Unknown ids are no-ops in workflow, so an unchanged version means
// there is nothing to save or announce.
func (s *Service) editTaxonomy(ctx context.Context, tenantID, teamID uuid.UUID, edit func(*domain.TeamStatusConfig) error) (*domain.TeamStatusConfig, error) {
	s.taxonomyMu.Lock()
	defer s.taxonomyMu.Unlock()

	cfg, err := s.taxonomy(ctx, tenantID, teamID)
	if err != nil {
		return nil, err
	}
	before := cfg.Version
	if err := edit(cfg); err != nil {
		return nil, err
	}
	if cfg.Version == before {
		return cfg, nil
	}

	if issues := workflow.Validate(cfg); len(issues) > 0 {
		log.Warn().Str("team_id", teamID.String()).Interface("issues", issues).Msg("taxonomy chains out of shape")
	}
	if err := s.store.Statuses().Save(ctx, tenantID, cfg); err != nil {
		return nil, err
	}

	log.Info().Str("team_id", teamID.String()).Int("version", cfg.Version).Msg("taxonomy changed")
	s.publishBoard(ctx, tenantID, domain.BoardEvent{Type: domain.EventTaxonomyChanged, TeamID: teamID, Data: cfg})
	return cfg, nil
}

// taxonomy loads the team's document. A team that exists without one gets
// the default taxonomy stored on first access.
func (s *Service) taxonomy(ctx context.Context, tenantID, teamID uuid.UUID) (*domain.TeamStatusConfig, error) {
	cfg, err := s.store.Statuses().Get(ctx, tenantID, teamID)
	if err == nil {
		return cfg, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	if _, err := s.store.Teams().GetByID(ctx, tenantID, teamID); err != nil {
		return nil, err
	}
	cfg = workflow.DefaultTaxonomy(teamID)
	if err := s.store.Statuses().Save(ctx, tenantID, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
