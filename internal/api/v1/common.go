package v1

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/filter"
	"github.com/gosuda/teamboard/internal/server/middleware"
)

// CriteriaQuery is the shared set of board filters. Empty or "all" values
// do not filter.
type CriteriaQuery struct {
	Search      string `query:"search" doc:"Case-insensitive match on title, description and client"`
	TeamID      string `query:"team_id" doc:"Team ID"`
	MainStatus  string `query:"main_status" doc:"Main status name"`
	Assignee    string `query:"assignee" doc:"Assignee display name"`
	Priority    string `query:"priority" doc:"High, Medium or Low"`
	Progress    string `query:"progress" enum:"all,not-started,in-progress,completed" doc:"Progress bucket"`
	Preset      string `query:"preset" enum:"all,today,this-week,this-month,this-year,last-30-days,custom" doc:"Date preset applied to created date"`
	Start       string `query:"start" doc:"Custom range start (YYYY-MM-DD)"`
	End         string `query:"end" doc:"Custom range end (YYYY-MM-DD)"`
	OverdueOnly bool   `query:"overdue" doc:"Only overdue tasks"`
}

func (q *CriteriaQuery) criteria(today civil.Date) (filter.Criteria, error) {
	c := filter.DefaultCriteria(today)
	c.Search = q.Search
	c.MainStatus = orAll(q.MainStatus)
	c.Assignee = orAll(q.Assignee)
	c.Priority = orAll(q.Priority)
	c.Progress = orAll(q.Progress)
	c.OverdueOnly = q.OverdueOnly

	if q.TeamID != "" && q.TeamID != filter.All {
		id, err := uuid.Parse(q.TeamID)
		if err != nil {
			return c, huma.Error400BadRequest("invalid team_id")
		}
		c.TeamID = id
	}

	r, err := q.dateRange(today)
	if err != nil {
		return c, err
	}
	c.Start, c.End = r.Start, r.End
	return c, nil
}

func (q *CriteriaQuery) dateRange(today civil.Date) (filter.Range, error) {
	return resolveRange(q.Preset, q.Start, q.End, today)
}

func resolveRange(preset, start, end string, today civil.Date) (filter.Range, error) {
	var s, e civil.Date
	var err error
	if start != "" {
		if s, err = civil.ParseDate(start); err != nil {
			return filter.Range{}, huma.Error400BadRequest("invalid start date")
		}
	}
	if end != "" {
		if e, err = civil.ParseDate(end); err != nil {
			return filter.Range{}, huma.Error400BadRequest("invalid end date")
		}
	}

	p := filter.Preset(preset)
	// Explicit bounds without a preset mean a custom range.
	if p == "" && (start != "" || end != "") {
		p = filter.PresetCustom
	}
	r, err := filter.ResolvePreset(p, today, s, e)
	if err != nil {
		return filter.Range{}, huma.Error400BadRequest(err.Error())
	}
	return r, nil
}

func orAll(v string) string {
	if strings.TrimSpace(v) == "" {
		return filter.All
	}
	return v
}

// caller returns the tenant and the fully resolved viewer of the request.
func caller(ctx context.Context, svc BoardService) (uuid.UUID, domain.Viewer, error) {
	tenantID, ok := middleware.TenantIDFromContext(ctx)
	if !ok {
		return uuid.Nil, domain.Viewer{}, huma.Error403Forbidden("missing tenant context")
	}
	v, ok := middleware.ViewerFromContext(ctx)
	if !ok {
		return uuid.Nil, domain.Viewer{}, huma.Error401Unauthorized("missing viewer context")
	}
	v, err := svc.ResolveViewer(ctx, tenantID, v.DisplayName, v.Role)
	if err != nil {
		return uuid.Nil, domain.Viewer{}, huma.Error500InternalServerError("failed to resolve viewer", err)
	}
	return tenantID, v, nil
}

func tenantFrom(ctx context.Context) (uuid.UUID, error) {
	tenantID, ok := middleware.TenantIDFromContext(ctx)
	if !ok {
		return uuid.Nil, huma.Error403Forbidden("missing tenant context")
	}
	return tenantID, nil
}

// serviceError maps domain errors onto HTTP problems.
func serviceError(err error, notFound, failure string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound(notFound)
	case errors.Is(err, domain.ErrValidation):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, domain.ErrConflict):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, filter.ErrInvalidRange):
		return huma.Error400BadRequest(err.Error())
	default:
		return huma.Error500InternalServerError(failure, err)
	}
}

func parseOptionalDate(field, v string) (civil.Date, error) {
	if v == "" {
		return civil.Date{}, nil
	}
	d, err := civil.ParseDate(v)
	if err != nil {
		return civil.Date{}, huma.Error400BadRequest("invalid " + field + " (want YYYY-MM-DD)")
	}
	return d, nil
}
