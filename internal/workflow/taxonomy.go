// Package workflow holds the per-team status taxonomy operations: main
// statuses owning ordered sub-status chains whose first and last entries
// are flagged. Every function is total; unknown ids are no-ops.
package workflow

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/gosuda/teamboard/internal/domain"
)

// Scope selects which list Reorder operates on.
type Scope string

const (
	ScopeMain Scope = "main"
	ScopeSub  Scope = "sub"
)

// AddMainStatus appends a main status with an empty chain. Duplicate names are
// allowed.
func AddMainStatus(cfg *domain.TeamStatusConfig, name, color string) domain.MainStatus {
	m := domain.MainStatus{
		ID:          uuid.New(),
		Name:        name,
		Color:       color,
		Order:       len(cfg.MainStatuses) + 1,
		SubStatuses: []domain.SubStatus{},
	}
	cfg.MainStatuses = append(cfg.MainStatuses, m)
	touch(cfg)
	return m
}

// AddSubStatus appends a sub-status to the chain of mainID. The new entry is
// always the chain's last; it is also first only when the chain was empty.
// The previous last entry loses its IsLast flag. Returns false when mainID is
// unknown.
func AddSubStatus(cfg *domain.TeamStatusConfig, mainID uuid.UUID, name, color string) (domain.SubStatus, bool) {
	i := indexOfMain(cfg, mainID)
	if i < 0 {
		return domain.SubStatus{}, false
	}

	m := &cfg.MainStatuses[i]
	for j := range m.SubStatuses {
		m.SubStatuses[j].IsLast = false
	}

	s := domain.SubStatus{
		ID:      uuid.New(),
		Name:    name,
		Color:   color,
		Order:   len(m.SubStatuses) + 1,
		IsFirst: len(m.SubStatuses) == 0,
		IsLast:  true,
	}
	m.SubStatuses = append(m.SubStatuses, s)
	touch(cfg)
	return s, true
}

// DeleteMainStatus removes a main status with its whole chain. Tasks pointing
// at the removed sub-statuses are left alone and become orphans.
func DeleteMainStatus(cfg *domain.TeamStatusConfig, mainID uuid.UUID) {
	i := indexOfMain(cfg, mainID)
	if i < 0 {
		return
	}
	cfg.MainStatuses = slices.Delete(cfg.MainStatuses, i, i+1)
	renumberMain(cfg.MainStatuses)
	touch(cfg)
}

// DeleteSubStatus removes one sub-status and renumbers its siblings 1..M with
// the first and last flags recomputed from position.
func DeleteSubStatus(cfg *domain.TeamStatusConfig, mainID, subID uuid.UUID) {
	i := indexOfMain(cfg, mainID)
	if i < 0 {
		return
	}
	m := &cfg.MainStatuses[i]
	j := indexOfSub(m.SubStatuses, subID)
	if j < 0 {
		return
	}
	m.SubStatuses = slices.Delete(m.SubStatuses, j, j+1)
	renumberSub(m.SubStatuses)
	touch(cfg)
}

// Reorder dispatches to ReorderMain or ReorderSub.
func Reorder(cfg *domain.TeamStatusConfig, draggedID, targetID uuid.UUID, scope Scope) {
	switch scope {
	case ScopeMain:
		ReorderMain(cfg, draggedID, targetID)
	case ScopeSub:
		ReorderSub(cfg, draggedID, targetID)
	}
}

// ReorderMain moves the dragged main status to the target's index.
func ReorderMain(cfg *domain.TeamStatusConfig, draggedID, targetID uuid.UUID) {
	from := indexOfMain(cfg, draggedID)
	to := indexOfMain(cfg, targetID)
	if from < 0 || to < 0 || from == to {
		return
	}
	cfg.MainStatuses = move(cfg.MainStatuses, from, to)
	renumberMain(cfg.MainStatuses)
	touch(cfg)
}

// ReorderSub moves the dragged sub-status to the target's index. Both must
// belong to the same main status; cross-chain drags are ignored.
func ReorderSub(cfg *domain.TeamStatusConfig, draggedID, targetID uuid.UUID) {
	for i := range cfg.MainStatuses {
		m := &cfg.MainStatuses[i]
		from := indexOfSub(m.SubStatuses, draggedID)
		if from < 0 {
			continue
		}
		to := indexOfSub(m.SubStatuses, targetID)
		if to < 0 || from == to {
			return
		}
		m.SubStatuses = move(m.SubStatuses, from, to)
		renumberSub(m.SubStatuses)
		touch(cfg)
		return
	}
}

// Flatten returns every sub-status in taxonomy order.
func Flatten(cfg *domain.TeamStatusConfig) []domain.SubStatus {
	if cfg == nil {
		return nil
	}
	out := make([]domain.SubStatus, 0, cfg.StatusCount())
	for _, m := range cfg.MainStatuses {
		out = append(out, m.SubStatuses...)
	}
	return out
}

// FindSub returns the first sub-status named name.
func FindSub(cfg *domain.TeamStatusConfig, name string) (domain.SubStatus, bool) {
	if cfg == nil {
		return domain.SubStatus{}, false
	}
	for _, m := range cfg.MainStatuses {
		for _, s := range m.SubStatuses {
			if s.Name == name {
				return s, true
			}
		}
	}
	return domain.SubStatus{}, false
}

// ChainIssue describes a main status whose chain does not have exactly one
// first and one last entry.
type ChainIssue struct {
	MainStatusID uuid.UUID `json:"main_status_id"`
	MainStatus   string    `json:"main_status"`
	Firsts       int       `json:"firsts"`
	Lasts        int       `json:"lasts"`
}

// Validate lists chains breaking the one-first/one-last rule. Empty chains are
// fine.
func Validate(cfg *domain.TeamStatusConfig) []ChainIssue {
	var issues []ChainIssue
	for _, m := range cfg.MainStatuses {
		if len(m.SubStatuses) == 0 {
			continue
		}
		var firsts, lasts int
		for _, s := range m.SubStatuses {
			if s.IsFirst {
				firsts++
			}
			if s.IsLast {
				lasts++
			}
		}
		if firsts != 1 || lasts != 1 {
			issues = append(issues, ChainIssue{
				MainStatusID: m.ID,
				MainStatus:   m.Name,
				Firsts:       firsts,
				Lasts:        lasts,
			})
		}
	}
	return issues
}

func indexOfMain(cfg *domain.TeamStatusConfig, id uuid.UUID) int {
	return slices.IndexFunc(cfg.MainStatuses, func(m domain.MainStatus) bool { return m.ID == id })
}

func indexOfSub(subs []domain.SubStatus, id uuid.UUID) int {
	return slices.IndexFunc(subs, func(s domain.SubStatus) bool { return s.ID == id })
}

// move removes the element at from and inserts it at to, where to is the
// target's index before removal.
func move[T any](s []T, from, to int) []T {
	v := s[from]
	s = slices.Delete(s, from, from+1)
	return slices.Insert(s, to, v)
}

func renumberMain(mains []domain.MainStatus) {
	for i := range mains {
		mains[i].Order = i + 1
	}
}

func renumberSub(subs []domain.SubStatus) {
	for i := range subs {
		subs[i].Order = i + 1
		subs[i].IsFirst = i == 0
		subs[i].IsLast = i == len(subs)-1
	}
}

func touch(cfg *domain.TeamStatusConfig) {
	cfg.Version++
	cfg.LastUpdated = time.Now().UTC()
}
