package filter

import (
	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/workflow"
)

// Classification is a task's completion state as derived from the taxonomy.
type Classification string

const (
	Pending    Classification = "pending"
	InProgress Classification = "inProgress"
	Completed  Classification = "completed"
)

// Index is a name lookup over a team's flattened sub-statuses. When two
// sub-statuses share a name the first in taxonomy order wins.
type Index struct {
	subs  []domain.SubStatus
	names map[string]domain.SubStatus
}

// NewIndex builds an Index for cfg. A nil cfg yields an empty index.
func NewIndex(cfg *domain.TeamStatusConfig) *Index {
	subs := workflow.Flatten(cfg)
	names := make(map[string]domain.SubStatus, len(subs))
	for _, s := range subs {
		if _, dup := names[s.Name]; !dup {
			names[s.Name] = s
		}
	}
	return &Index{subs: subs, names: names}
}

// Lookup finds the sub-status named name.
func (x *Index) Lookup(name string) (domain.SubStatus, bool) {
	s, ok := x.names[name]
	return s, ok
}

// Classify derives t's state from its sub-status flags: first is pending,
// last is completed, anything else in the taxonomy is in progress. A
// sub-status missing from the taxonomy falls back to progress: 0 is pending,
// 100 is completed.
func (x *Index) Classify(t *domain.Task) Classification {
	if s, ok := x.Lookup(t.SubStatus); ok {
		switch {
		case s.IsFirst:
			return Pending
		case s.IsLast:
			return Completed
		default:
			return InProgress
		}
	}

	switch t.Progress {
	case 0:
		return Pending
	case 100:
		return Completed
	default:
		return InProgress
	}
}

// Classify is a one-shot convenience over NewIndex(cfg).Classify(t).
func Classify(t *domain.Task, cfg *domain.TeamStatusConfig) Classification {
	return NewIndex(cfg).Classify(t)
}
