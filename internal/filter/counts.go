package filter

import (
	"math"

	"cloud.google.com/go/civil"

	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/workflow"
)

// Keys of the aggregate buckets in StatusCounts. Non-terminal buckets are
// keyed by their sub-status name.
const (
	KeyPending   = "PendingTasks"
	KeyCompleted = "CompletedTasks"
	KeyOverdue   = "Overdue"
)

// StatusCount is one ordered bucket of StatusCounts.
type StatusCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// StatusCounts returns, in order: the pending total, one bucket per
// non-terminal sub-status in taxonomy order, the completed total and the
// overdue total. Pending and completed use Classify; overdue uses progress.
// Empty buckets are left out.
func StatusCounts(tasks []*domain.Task, cfg *domain.TeamStatusConfig, today civil.Date) []StatusCount {
	idx := NewIndex(cfg)

	var pending, completed, overdue int
	bySub := make(map[string]int)
	for _, t := range tasks {
		switch idx.Classify(t) {
		case Pending:
			pending++
		case Completed:
			completed++
		case InProgress:
		}
		bySub[t.SubStatus]++
		if IsOverdue(t, today) {
			overdue++
		}
	}

	out := make([]StatusCount, 0, 3+len(bySub))
	out = appendNonZero(out, KeyPending, pending)

	seen := make(map[string]struct{})
	for _, s := range workflow.Flatten(cfg) {
		if s.IsFirst || s.IsLast {
			continue
		}
		if _, dup := seen[s.Name]; dup {
			continue
		}
		seen[s.Name] = struct{}{}
		// A name shared with a terminal entry elsewhere resolves to that entry.
		if first, _ := idx.Lookup(s.Name); first.IsFirst || first.IsLast {
			continue
		}
		out = appendNonZero(out, s.Name, bySub[s.Name])
	}

	out = appendNonZero(out, KeyCompleted, completed)
	out = appendNonZero(out, KeyOverdue, overdue)
	return out
}

// CountsMap flattens ordered counts into a map for lookups.
func CountsMap(counts []StatusCount) map[string]int {
	m := make(map[string]int, len(counts))
	for _, c := range counts {
		m[c.Key] = c.Count
	}
	return m
}

func appendNonZero(out []StatusCount, key string, n int) []StatusCount {
	if n == 0 {
		return out
	}
	return append(out, StatusCount{Key: key, Count: n})
}

// Summary aggregates tasks by their numeric progress.
type Summary struct {
	Total           int `json:"total"`
	Completed       int `json:"completed"`
	Pending         int `json:"pending"`
	InProgress      int `json:"inProgress"`
	Overdue         int `json:"overdue"`
	AverageProgress int `json:"averageProgress"`
}

// Summarize buckets tasks by progress (0 pending, 100 completed, else in
// progress) and rounds the average progress to the nearest integer.
func Summarize(tasks []*domain.Task, today civil.Date) Summary {
	s := Summary{Total: len(tasks)}
	sum := 0
	for _, t := range tasks {
		sum += t.Progress
		switch {
		case t.Progress == 0:
			s.Pending++
		case t.Progress >= 100:
			s.Completed++
		default:
			s.InProgress++
		}
		if IsOverdue(t, today) {
			s.Overdue++
		}
	}
	if s.Total > 0 {
		s.AverageProgress = int(math.Round(float64(sum) / float64(s.Total)))
	}
	return s
}

// TeamStats derives a team's aggregate counters from its tasks.
func TeamStats(tasks []*domain.Task, cfg *domain.TeamStatusConfig) domain.TeamStats {
	idx := NewIndex(cfg)
	stats := domain.TeamStats{TotalTasks: len(tasks)}
	if cfg != nil {
		stats.Statuses = cfg.StatusCount()
	}
	for _, t := range tasks {
		switch idx.Classify(t) {
		case Completed:
			stats.CompletedTasks++
		case InProgress:
			stats.ActiveTasks++
		case Pending:
		}
	}
	return stats
}
