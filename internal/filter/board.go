package filter

import (
	"cmp"
	"slices"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/gosuda/teamboard/internal/domain"
)

// GroupBySubStatus buckets tasks by sub-status name. Only names present in
// cfg get a bucket; tasks whose sub-status is unknown appear in none.
func GroupBySubStatus(tasks []*domain.Task, cfg *domain.TeamStatusConfig) map[string][]*domain.Task {
	idx := NewIndex(cfg)
	groups := make(map[string][]*domain.Task, len(idx.names))
	for _, t := range tasks {
		if _, ok := idx.Lookup(t.SubStatus); ok {
			groups[t.SubStatus] = append(groups[t.SubStatus], t)
		}
	}
	return groups
}

// Orphans returns the tasks whose sub-status is not in cfg.
func Orphans(tasks []*domain.Task, cfg *domain.TeamStatusConfig) []*domain.Task {
	idx := NewIndex(cfg)
	out := make([]*domain.Task, 0)
	for _, t := range tasks {
		if _, ok := idx.Lookup(t.SubStatus); !ok {
			out = append(out, t)
		}
	}
	return out
}

// Column is one kanban column: a sub-status and the tasks sitting in it.
type Column struct {
	MainStatusID uuid.UUID        `json:"main_status_id"`
	MainStatus   string           `json:"main_status"`
	SubStatus    domain.SubStatus `json:"sub_status"`
	Tasks        []*domain.Task   `json:"tasks"`
}

// BoardView is the kanban rendering input. Orphans are surfaced instead of
// silently dropped.
type BoardView struct {
	TeamID  uuid.UUID      `json:"team_id"`
	Version int            `json:"version"`
	Columns []Column       `json:"columns"`
	Orphans []*domain.Task `json:"orphans"`
}

// Board lays tasks out in taxonomy order, one column per sub-status.
func Board(tasks []*domain.Task, cfg *domain.TeamStatusConfig) BoardView {
	if cfg == nil {
		cfg = &domain.TeamStatusConfig{}
	}
	groups := GroupBySubStatus(tasks, cfg)
	view := BoardView{
		TeamID:  cfg.TeamID,
		Version: cfg.Version,
		Columns: make([]Column, 0, cfg.StatusCount()),
		Orphans: Orphans(tasks, cfg),
	}
	for _, m := range cfg.MainStatuses {
		for _, s := range m.SubStatuses {
			col := groups[s.Name]
			if col == nil {
				col = make([]*domain.Task, 0)
			}
			view.Columns = append(view.Columns, Column{
				MainStatusID: m.ID,
				MainStatus:   m.Name,
				SubStatus:    s,
				Tasks:        col,
			})
		}
	}
	return view
}

// SortTimeline returns a copy of tasks stably sorted by created date.
func SortTimeline(tasks []*domain.Task) []*domain.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b *domain.Task) int {
		return compareDates(a.CreatedDate, b.CreatedDate)
	})
	return out
}

// CalendarDay holds the tasks due on one day.
type CalendarDay struct {
	Date  civil.Date     `json:"date"`
	Tasks []*domain.Task `json:"tasks"`
}

// CalendarMonth buckets the tasks due in the given month by day, in day
// order. Days without tasks are omitted.
func CalendarMonth(tasks []*domain.Task, year, month int) []CalendarDay {
	byDay := make(map[int][]*domain.Task)
	for _, t := range tasks {
		if !t.DueDate.IsValid() || t.DueDate.Year != year || int(t.DueDate.Month) != month {
			continue
		}
		byDay[t.DueDate.Day] = append(byDay[t.DueDate.Day], t)
	}

	days := make([]CalendarDay, 0, len(byDay))
	for _, ts := range byDay {
		days = append(days, CalendarDay{Date: ts[0].DueDate, Tasks: ts})
	}
	slices.SortFunc(days, func(a, b CalendarDay) int {
		return cmp.Compare(a.Date.Day, b.Date.Day)
	})
	return days
}

func compareDates(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
