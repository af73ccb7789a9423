package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/filter"
)

// CreateTask validates the draft and stores a new task. The team, when set,
// must exist. A task without any status lands in the first column of its
// team's board.
func (s *Service) CreateTask(ctx context.Context, tenantID uuid.UUID, d domain.TaskDraft) (*domain.Task, error) {
	if d.TeamID != uuid.Nil {
		cfg, err := s.taxonomy(ctx, tenantID, d.TeamID)
		if err != nil {
			return nil, fmt.Errorf("service.CreateTask: team %s: %w", d.TeamID, err)
		}
		if d.MainStatus == "" && d.SubStatus == "" {
			d.MainStatus, d.SubStatus = firstColumn(cfg)
		}
	}

	t, err := domain.NewTask(tenantID, d, s.Today())
	if err != nil {
		return nil, fmt.Errorf("service.CreateTask: %w", err)
	}
	if err := s.store.Tasks().Create(ctx, t); err != nil {
		return nil, fmt.Errorf("service.CreateTask: %w", err)
	}

	log.Info().Str("task_id", t.ID).Str("team_id", t.TeamID.String()).Msg("task created")
	s.publishBoard(ctx, tenantID, domain.BoardEvent{Type: domain.EventTaskCreated, TeamID: t.TeamID, TaskID: t.ID, Data: t})
	return t, nil
}

func (s *Service) GetTask(ctx context.Context, tenantID uuid.UUID, id string) (*domain.Task, error) {
	t, err := s.store.Tasks().GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("service.GetTask: %w", err)
	}
	return t, nil
}

// UpdateTask replaces the editable fields of task id. An unknown id is not an
// error: it reports false and changes nothing. A new team, when set, must
// exist; the old team's board then sees the task leave as task_deleted.
func (s *Service) UpdateTask(ctx context.Context, tenantID uuid.UUID, id string, d domain.TaskDraft) (*domain.Task, bool, error) {
	if err := domain.ValidateDraft(&d); err != nil {
		return nil, false, fmt.Errorf("service.UpdateTask: %w", err)
	}

	t, err := s.store.Tasks().GetByID(ctx, tenantID, id)
	if isNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("service.UpdateTask: %w", err)
	}

	oldTeam := t.TeamID
	if d.TeamID != oldTeam && d.TeamID != uuid.Nil {
		if _, err := s.taxonomy(ctx, tenantID, d.TeamID); err != nil {
			return nil, false, fmt.Errorf("service.UpdateTask: team %s: %w", d.TeamID, err)
		}
	}

	t.Apply(d)
	err = s.store.Tasks().Update(ctx, t)
	if isNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("service.UpdateTask: %w", err)
	}
	t, err = s.store.Tasks().GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, false, fmt.Errorf("service.UpdateTask: reload: %w", err)
	}

	log.Info().Str("task_id", t.ID).Str("team_id", t.TeamID.String()).Msg("task updated")
	if oldTeam != t.TeamID {
		s.publishBoard(ctx, tenantID, domain.BoardEvent{Type: domain.EventTaskDeleted, TeamID: oldTeam, TaskID: t.ID})
	}
	s.publishBoard(ctx, tenantID, domain.BoardEvent{Type: domain.EventTaskUpdated, TeamID: t.TeamID, TaskID: t.ID, Data: t})
	return t, true, nil
}

// DeleteTask removes task id. Deleting a missing task succeeds.
func (s *Service) DeleteTask(ctx context.Context, tenantID uuid.UUID, id string) error {
	t, err := s.store.Tasks().GetByID(ctx, tenantID, id)
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("service.DeleteTask: %w", err)
	}

	if err := s.store.Tasks().Delete(ctx, tenantID, id); err != nil && !isNotFound(err) {
		return fmt.Errorf("service.DeleteTask: %w", err)
	}

	log.Info().Str("task_id", id).Msg("task deleted")
	s.publishBoard(ctx, tenantID, domain.BoardEvent{Type: domain.EventTaskDeleted, TeamID: t.TeamID, TaskID: id})
	return nil
}

// MoveTask puts task id into subStatus. The move is not checked against the
// taxonomy and MainStatus is left as it was. Moving to the current
// sub-status is a no-op reported as moved == false.
func (s *Service) MoveTask(ctx context.Context, tenantID uuid.UUID, id, subStatus string) (*domain.Task, bool, error) {
	t, err := s.store.Tasks().GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, false, fmt.Errorf("service.MoveTask: %w", err)
	}
	if t.SubStatus == subStatus {
		return t, false, nil
	}

	if err := s.store.Tasks().UpdateSubStatus(ctx, tenantID, id, subStatus); err != nil {
		return nil, false, fmt.Errorf("service.MoveTask: %w", err)
	}
	from := t.SubStatus
	t, err = s.store.Tasks().GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, false, fmt.Errorf("service.MoveTask: reload: %w", err)
	}

	log.Info().Str("task_id", id).Str("from", from).Str("to", subStatus).Msg("task moved")
	s.publishBoard(ctx, tenantID, domain.BoardEvent{
		Type:   domain.EventTaskMoved,
		TeamID: t.TeamID,
		TaskID: id,
		Data:   map[string]string{"from": from, "to": subStatus},
	})
	return t, true, nil
}

// FilteredTasks lists the tenant's tasks through the criteria and the
// viewer's visibility.
func (s *Service) FilteredTasks(ctx context.Context, tenantID uuid.UUID, c filter.Criteria, v domain.Viewer) ([]*domain.Task, error) {
	tasks, err := s.store.Tasks().List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("service.FilteredTasks: %w", err)
	}
	return filter.Apply(tasks, c, v), nil
}

// TasksBySubStatus groups a team's visible tasks by sub-status name.
func (s *Service) TasksBySubStatus(ctx context.Context, tenantID, teamID uuid.UUID, c filter.Criteria, v domain.Viewer) (map[string][]*domain.Task, error) {
	tasks, cfg, err := s.teamTasks(ctx, tenantID, teamID, c, v)
	if err != nil {
		return nil, fmt.Errorf("service.TasksBySubStatus: %w", err)
	}
	return filter.GroupBySubStatus(tasks, cfg), nil
}

// BoardView renders a team's visible tasks as kanban columns.
func (s *Service) BoardView(ctx context.Context, tenantID, teamID uuid.UUID, c filter.Criteria, v domain.Viewer) (filter.BoardView, error) {
	tasks, cfg, err := s.teamTasks(ctx, tenantID, teamID, c, v)
	if err != nil {
		return filter.BoardView{}, fmt.Errorf("service.BoardView: %w", err)
	}
	return filter.Board(tasks, cfg), nil
}

// StatusCounts returns the ordered status buckets for a team's visible tasks.
func (s *Service) StatusCounts(ctx context.Context, tenantID, teamID uuid.UUID, c filter.Criteria, v domain.Viewer) ([]filter.StatusCount, error) {
	tasks, cfg, err := s.teamTasks(ctx, tenantID, teamID, c, v)
	if err != nil {
		return nil, fmt.Errorf("service.StatusCounts: %w", err)
	}
	return filter.StatusCounts(tasks, cfg, s.Today()), nil
}

// Orphans lists the team's tasks whose sub-status is missing from its
// taxonomy. Visibility does not apply; this is a maintenance view.
func (s *Service) Orphans(ctx context.Context, tenantID, teamID uuid.UUID) ([]*domain.Task, error) {
	cfg, err := s.taxonomy(ctx, tenantID, teamID)
	if err != nil {
		return nil, fmt.Errorf("service.Orphans: %w", err)
	}
	tasks, err := s.store.Tasks().ListByTeam(ctx, tenantID, teamID)
	if err != nil {
		return nil, fmt.Errorf("service.Orphans: %w", err)
	}
	return filter.Orphans(tasks, cfg), nil
}

// Calendar buckets the visible tasks due in year/month by day.
func (s *Service) Calendar(ctx context.Context, tenantID uuid.UUID, c filter.Criteria, v domain.Viewer, year, month int) ([]filter.CalendarDay, error) {
	tasks, err := s.FilteredTasks(ctx, tenantID, c, v)
	if err != nil {
		return nil, fmt.Errorf("service.Calendar: %w", err)
	}
	return filter.CalendarMonth(tasks, year, month), nil
}

func firstColumn(cfg *domain.TeamStatusConfig) (mainStatus, subStatus string) {
	for _, m := range cfg.MainStatuses {
		if len(m.SubStatuses) > 0 {
			return m.Name, m.SubStatuses[0].Name
		}
	}
	return "", ""
}

func (s *Service) teamTasks(ctx context.Context, tenantID, teamID uuid.UUID, c filter.Criteria, v domain.Viewer) ([]*domain.Task, *domain.TeamStatusConfig, error) {
	cfg, err := s.taxonomy(ctx, tenantID, teamID)
	if err != nil {
		return nil, nil, err
	}
	tasks, err := s.store.Tasks().ListByTeam(ctx, tenantID, teamID)
	if err != nil {
		return nil, nil, err
	}
	c.TeamID = teamID
	return filter.Apply(tasks, c, v), cfg, nil
}
