// Package filter projects a task collection through user criteria and the
// viewer's role into display-ready lists, groupings and counts. Everything
// here is pure: inputs are never modified and output order follows input
// order unless a function says it sorts.
package filter

import (
	"strings"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/gosuda/teamboard/internal/domain"
)

// All is the sentinel meaning "do not filter on this field". An empty string
// means the same.
const All = "all"

// ProgressBucket groups tasks by their numeric progress.
type ProgressBucket string

const (
	ProgressNotStarted ProgressBucket = "not-started"
	ProgressInProgress ProgressBucket = "in-progress"
	ProgressCompleted  ProgressBucket = "completed"
)

// Matches reports whether progress falls into b.
func (b ProgressBucket) Matches(progress int) bool {
	switch b {
	case ProgressNotStarted:
		return progress == 0
	case ProgressInProgress:
		return progress > 0 && progress < 100
	case ProgressCompleted:
		return progress == 100
	default:
		return true
	}
}

// Criteria are AND-combined. String fields equal to "" or All are bypassed,
// a nil TeamID matches every team and zero Start/End leave that side open.
type Criteria struct {
	Search      string
	TeamID      uuid.UUID
	MainStatus  string
	Assignee    string
	Priority    string
	Progress    string
	Start       civil.Date
	End         civil.Date
	OverdueOnly bool
	// Today anchors the overdue check.
	Today civil.Date
}

// DefaultCriteria matches everything across an effectively unbounded window.
func DefaultCriteria(today civil.Date) Criteria {
	return Criteria{
		MainStatus: All,
		Assignee:   All,
		Priority:   All,
		Progress:   All,
		Start:      civil.Date{Year: 1970, Month: 1, Day: 1},
		End:        civil.Date{Year: 2099, Month: 12, Day: 31},
		Today:      today,
	}
}

// Apply returns the tasks visible to v that satisfy every predicate of c.
func Apply(tasks []*domain.Task, c Criteria, v domain.Viewer) []*domain.Task {
	search := strings.ToLower(strings.TrimSpace(c.Search))
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !v.CanSee(t.Assignee) {
			continue
		}
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		if c.TeamID != uuid.Nil && t.TeamID != c.TeamID {
			continue
		}
		if !isAll(c.MainStatus) && t.MainStatus != c.MainStatus {
			continue
		}
		if !isAll(c.Assignee) && v.Role != domain.RoleEmployee && t.Assignee != c.Assignee {
			continue
		}
		if !isAll(c.Priority) && string(t.Priority) != c.Priority {
			continue
		}
		if !isAll(c.Progress) && !ProgressBucket(c.Progress).Matches(t.Progress) {
			continue
		}
		if !InRange(t.CreatedDate, c.Start, c.End) {
			continue
		}
		if c.OverdueOnly && !IsOverdue(t, c.Today) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// IsOverdue reports whether t was due before today and is not at 100%.
// Tasks without a due date are never overdue.
func IsOverdue(t *domain.Task, today civil.Date) bool {
	return t.DueDate.IsValid() && t.DueDate.Before(today) && t.Progress < 100
}

// InRange reports whether d lies within [start, end]. Invalid bounds are open.
func InRange(d, start, end civil.Date) bool {
	if start.IsValid() && d.Before(start) {
		return false
	}
	if end.IsValid() && d.After(end) {
		return false
	}
	return true
}

func matchesSearch(t *domain.Task, needle string) bool {
	return strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle) ||
		strings.Contains(strings.ToLower(t.Client), needle)
}

func isAll(v string) bool {
	return v == "" || v == All
}
