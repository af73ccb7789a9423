package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/filter"
	"github.com/gosuda/teamboard/internal/workflow"
)

// TeamDetail is a team with its stats computed from the current tasks.
type TeamDetail struct {
	*domain.Team
	Stats domain.TeamStats `json:"stats"`
}

// CreateTeam stores a new team together with the default taxonomy.
func (s *Service) CreateTeam(ctx context.Context, tenantID uuid.UUID, d domain.TeamDraft) (*domain.Team, error) {
	if err := domain.ValidateTeamDraft(&d); err != nil {
		return nil, fmt.Errorf("service.CreateTeam: %w", err)
	}

	now := s.now()
	t := &domain.Team{ID: uuid.New(), TenantID: tenantID, CreatedAt: now, UpdatedAt: now}
	t.Apply(d)

	if err := s.store.Teams().Create(ctx, t); err != nil {
		return nil, fmt.Errorf("service.CreateTeam: %w", err)
	}
	if err := s.store.Statuses().Save(ctx, tenantID, workflow.DefaultTaxonomy(t.ID)); err != nil {
		return nil, fmt.Errorf("service.CreateTeam: save taxonomy: %w", err)
	}

	log.Info().Str("team_id", t.ID.String()).Str("name", t.Name).Msg("team created")
	s.publishTenant(ctx, tenantID, domain.BoardEvent{Type: domain.EventTeamCreated, TeamID: t.ID, Data: t})
	return t, nil
}

func (s *Service) ListTeams(ctx context.Context, tenantID uuid.UUID) ([]*domain.Team, error) {
	teams, err := s.store.Teams().List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("service.ListTeams: %w", err)
	}
	return teams, nil
}

// GetTeam returns the team and its computed stats.
func (s *Service) GetTeam(ctx context.Context, tenantID, id uuid.UUID) (*TeamDetail, error) {
	t, err := s.store.Teams().GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("service.GetTeam: %w", err)
	}
	stats, err := s.TeamStats(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("service.GetTeam: %w", err)
	}
	return &TeamDetail{Team: t, Stats: stats}, nil
}

func (s *Service) UpdateTeam(ctx context.Context, tenantID, id uuid.UUID, d domain.TeamDraft) (*domain.Team, error) {
	if err := domain.ValidateTeamDraft(&d); err != nil {
		return nil, fmt.Errorf("service.UpdateTeam: %w", err)
	}

	t, err := s.store.Teams().GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateTeam: %w", err)
	}
	t.Apply(d)
	t.UpdatedAt = s.now()
	if err := s.store.Teams().Update(ctx, t); err != nil {
		return nil, fmt.Errorf("service.UpdateTeam: %w", err)
	}

	log.Info().Str("team_id", id.String()).Msg("team updated")
	s.publishTenant(ctx, tenantID, domain.BoardEvent{Type: domain.EventTeamUpdated, TeamID: id, Data: t})
	return t, nil
}

// DeleteTeam removes the team and its taxonomy. Its tasks are kept and keep
// pointing at the removed team.
func (s *Service) DeleteTeam(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.store.Teams().Delete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("service.DeleteTeam: %w", err)
	}
	if err := s.store.Statuses().Delete(ctx, tenantID, id); err != nil && !isNotFound(err) {
		return fmt.Errorf("service.DeleteTeam: delete taxonomy: %w", err)
	}

	log.Info().Str("team_id", id.String()).Msg("team deleted")
	s.publishTenant(ctx, tenantID, domain.BoardEvent{Type: domain.EventTeamDeleted, TeamID: id})
	return nil
}

// TeamStats derives the team's counters from its tasks on every call.
func (s *Service) TeamStats(ctx context.Context, tenantID, id uuid.UUID) (domain.TeamStats, error) {
	cfg, err := s.taxonomy(ctx, tenantID, id)
	if err != nil {
		return domain.TeamStats{}, fmt.Errorf("service.TeamStats: %w", err)
	}
	tasks, err := s.store.Tasks().ListByTeam(ctx, tenantID, id)
	if err != nil {
		return domain.TeamStats{}, fmt.Errorf("service.TeamStats: %w", err)
	}
	return filter.TeamStats(tasks, cfg), nil
}

