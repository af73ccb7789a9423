package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/filter"
	"github.com/gosuda/teamboard/internal/report"
)

// Report builds the export for employee over the date window r. Only tasks
// the viewer can see are considered. An empty employee reports on the viewer.
func (s *Service) Report(ctx context.Context, tenantID uuid.UUID, v domain.Viewer, employee string, r filter.Range) (*report.Report, error) {
	if employee == "" {
		employee = v.DisplayName
	}

	c := filter.DefaultCriteria(s.Today())
	c.Start, c.End = r.Start, r.End
	tasks, err := s.FilteredTasks(ctx, tenantID, c, v)
	if err != nil {
		return nil, fmt.Errorf("service.Report: %w", err)
	}

	own := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Assignee == employee {
			own = append(own, t)
		}
	}

	rep := report.Build(employee, r.Label, own, s.Today(), s.now())
	log.Info().Str("employee", employee).Str("range", r.Label).Int("tasks", rep.Summary.Total).Msg("report generated")
	return rep, nil
}
