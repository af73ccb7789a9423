package filter_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/filter"
)

var today = civil.Date{Year: 2024, Month: 3, Day: 15}

func date(y, m, d int) civil.Date {
	return civil.Date{Year: y, Month: time.Month(m), Day: d}
}

func ids(tasks []*domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

var (
	admin    = domain.Viewer{DisplayName: "Ada", Role: domain.RoleAdmin}
	employee = domain.Viewer{DisplayName: "Jane Doe", Role: domain.RoleEmployee}
	manager  = domain.Viewer{DisplayName: "Max", Role: domain.RoleManager, ManagedRoster: []string{"Max", "Jane Doe"}}
)

func sampleTasks(teamA, teamB uuid.UUID) []*domain.Task {
	return []*domain.Task{
		{ID: "t1", TeamID: teamA, Title: "Cut trailer", Client: "Northwind", Assignee: "Jane Doe",
			MainStatus: "Production", SubStatus: "Editing", Progress: 40, Priority: domain.PriorityHigh,
			CreatedDate: date(2024, 1, 5), DueDate: date(2024, 3, 14)},
		{ID: "t2", TeamID: teamA, Title: "Color grade", Description: "Match NORTHWIND palette", Assignee: "John Roe",
			MainStatus: "Post", SubStatus: "Grading", Progress: 0, Priority: domain.PriorityMedium,
			CreatedDate: date(2024, 2, 15), DueDate: date(2024, 4, 1)},
		{ID: "t3", TeamID: teamB, Title: "Invoice", Client: "Contoso", Assignee: "Max",
			MainStatus: "Post", SubStatus: "Delivered", Progress: 100, Priority: domain.PriorityLow,
			CreatedDate: date(2024, 3, 20), DueDate: date(2024, 3, 1)},
		{ID: "t4", TeamID: teamB, Title: "Brief", Assignee: "Jane Doe",
			MainStatus: "Production", SubStatus: "Briefing", Progress: 100, Priority: domain.PriorityHigh,
			CreatedDate: date(2024, 3, 1)},
	}
}

func TestApply_DateRangeScenario(t *testing.T) {
	t.Parallel()

	tasks := []*domain.Task{
		{ID: "jan", Assignee: "a", CreatedDate: date(2024, 1, 5)},
		{ID: "feb", Assignee: "a", CreatedDate: date(2024, 2, 15)},
		{ID: "mar", Assignee: "a", CreatedDate: date(2024, 3, 20)},
	}
	c := filter.DefaultCriteria(today)
	c.Start = date(2024, 2, 1)
	c.End = date(2024, 2, 28)

	got := filter.Apply(tasks, c, admin)
	assert.Equal(t, []string{"feb"}, ids(got))
}

func TestApply_BoundsAreInclusive(t *testing.T) {
	t.Parallel()

	tasks := []*domain.Task{
		{ID: "start", CreatedDate: date(2024, 2, 1)},
		{ID: "end", CreatedDate: date(2024, 2, 28)},
		{ID: "after", CreatedDate: date(2024, 2, 29)},
	}
	c := filter.DefaultCriteria(today)
	c.Start = date(2024, 2, 1)
	c.End = date(2024, 2, 28)

	assert.Equal(t, []string{"start", "end"}, ids(filter.Apply(tasks, c, admin)))
}

func TestApply_Predicates(t *testing.T) {
	t.Parallel()

	teamA, teamB := uuid.New(), uuid.New()
	tasks := sampleTasks(teamA, teamB)

	tests := []struct {
		name   string
		mutate func(c *filter.Criteria)
		viewer domain.Viewer
		want   []string
	}{
		{"defaults match everything", func(*filter.Criteria) {}, admin, []string{"t1", "t2", "t3", "t4"}},
		{"search title", func(c *filter.Criteria) { c.Search = "TRAILER" }, admin, []string{"t1"}},
		{"search description and client", func(c *filter.Criteria) { c.Search = "northwind" }, admin, []string{"t1", "t2"}},
		{"search misses assignee", func(c *filter.Criteria) { c.Search = "jane" }, admin, []string{}},
		{"team", func(c *filter.Criteria) { c.TeamID = teamB }, admin, []string{"t3", "t4"}},
		{"main status", func(c *filter.Criteria) { c.MainStatus = "Post" }, admin, []string{"t2", "t3"}},
		{"assignee", func(c *filter.Criteria) { c.Assignee = "Jane Doe" }, admin, []string{"t1", "t4"}},
		{"priority", func(c *filter.Criteria) { c.Priority = "High" }, admin, []string{"t1", "t4"}},
		{"progress not started", func(c *filter.Criteria) { c.Progress = string(filter.ProgressNotStarted) }, admin, []string{"t2"}},
		{"progress in progress", func(c *filter.Criteria) { c.Progress = string(filter.ProgressInProgress) }, admin, []string{"t1"}},
		{"progress completed", func(c *filter.Criteria) { c.Progress = string(filter.ProgressCompleted) }, admin, []string{"t3", "t4"}},
		{"overdue only", func(c *filter.Criteria) { c.OverdueOnly = true }, admin, []string{"t1"}},
		{"combined", func(c *filter.Criteria) { c.Priority = "High"; c.MainStatus = "Production"; c.Progress = "completed" }, admin, []string{"t4"}},
		{"employee sees own", func(*filter.Criteria) {}, employee, []string{"t1", "t4"}},
		{"employee ignores assignee filter", func(c *filter.Criteria) { c.Assignee = "John Roe" }, employee, []string{"t1", "t4"}},
		{"manager sees roster", func(*filter.Criteria) {}, manager, []string{"t1", "t3", "t4"}},
		{"manager assignee filter", func(c *filter.Criteria) { c.Assignee = "Max" }, manager, []string{"t3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := filter.DefaultCriteria(today)
			tt.mutate(&c)
			got := filter.Apply(tasks, c, tt.viewer)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_IsPure(t *testing.T) {
	t.Parallel()

	tasks := sampleTasks(uuid.New(), uuid.New())
	snapshot := make([]domain.Task, len(tasks))
	for i, task := range tasks {
		snapshot[i] = *task
	}
	c := filter.DefaultCriteria(today)
	c.Search = "o"

	first := filter.Apply(tasks, c, manager)
	second := filter.Apply(tasks, c, manager)

	assert.Equal(t, ids(first), ids(second))
	for i, task := range tasks {
		assert.Equal(t, snapshot[i], *task, "input task %d must not change", i)
	}
}

func TestApply_EmployeeIsSubsetOfAdmin(t *testing.T) {
	t.Parallel()

	tasks := sampleTasks(uuid.New(), uuid.New())
	criteria := []filter.Criteria{filter.DefaultCriteria(today)}
	c := filter.DefaultCriteria(today)
	c.Priority = "High"
	criteria = append(criteria, c)
	c = filter.DefaultCriteria(today)
	c.OverdueOnly = true
	criteria = append(criteria, c)

	for _, c := range criteria {
		asAdmin := filter.Apply(tasks, c, admin)
		var want []string
		for _, task := range asAdmin {
			if task.Assignee == employee.DisplayName {
				want = append(want, task.ID)
			}
		}
		got := ids(filter.Apply(tasks, c, employee))
		if want == nil {
			want = []string{}
		}
		assert.Equal(t, want, got)
	}
}

func TestIsOverdue(t *testing.T) {
	t.Parallel()

	yesterday := today.AddDays(-1)

	tests := []struct {
		name string
		task domain.Task
		want bool
	}{
		{"due yesterday at 40%", domain.Task{DueDate: yesterday, Progress: 40}, true},
		{"due yesterday at 100%", domain.Task{DueDate: yesterday, Progress: 100}, false},
		{"due today", domain.Task{DueDate: today, Progress: 10}, false},
		{"due tomorrow", domain.Task{DueDate: today.AddDays(1), Progress: 0}, false},
		{"no due date", domain.Task{Progress: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, filter.IsOverdue(&tt.task, today))
		})
	}
}

func TestProgressBucket_Matches(t *testing.T) {
	t.Parallel()

	assert.True(t, filter.ProgressNotStarted.Matches(0))
	assert.False(t, filter.ProgressNotStarted.Matches(1))
	assert.True(t, filter.ProgressInProgress.Matches(1))
	assert.True(t, filter.ProgressInProgress.Matches(99))
	assert.False(t, filter.ProgressInProgress.Matches(100))
	assert.True(t, filter.ProgressCompleted.Matches(100))
	assert.True(t, filter.ProgressBucket("bogus").Matches(42))
}

func TestResolvePreset(t *testing.T) {
	t.Parallel()

	// 2024-03-15 is a Friday.
	tests := []struct {
		preset     filter.Preset
		start, end civil.Date
		label      string
	}{
		{filter.PresetAll, date(1970, 1, 1), date(2099, 12, 31), "All Time"},
		{filter.PresetToday, today, today, "Today"},
		{filter.PresetThisWeek, date(2024, 3, 10), date(2024, 3, 16), "This Week"},
		{filter.PresetThisMonth, date(2024, 3, 1), date(2024, 3, 31), "This Month"},
		{filter.PresetThisYear, date(2024, 1, 1), date(2024, 12, 31), "This Year"},
		{filter.PresetLast30Days, date(2024, 2, 15), today, "Last 30 Days"},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			t.Parallel()

			r, err := filter.ResolvePreset(tt.preset, today, civil.Date{}, civil.Date{})
			require.NoError(t, err)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
			assert.Equal(t, tt.label, r.Label)
		})
	}

	t.Run("february leap year", func(t *testing.T) {
		t.Parallel()

		r, err := filter.ResolvePreset(filter.PresetThisMonth, date(2024, 2, 10), civil.Date{}, civil.Date{})
		require.NoError(t, err)
		assert.Equal(t, date(2024, 2, 29), r.End)
	})

	t.Run("custom", func(t *testing.T) {
		t.Parallel()

		r, err := filter.ResolvePreset(filter.PresetCustom, today, date(2024, 2, 1), date(2024, 2, 28))
		require.NoError(t, err)
		assert.Equal(t, "2024-02-01 to 2024-02-28", r.Label)
	})

	for _, bad := range []struct {
		name       string
		preset     filter.Preset
		start, end civil.Date
	}{
		{"custom missing end", filter.PresetCustom, date(2024, 2, 1), civil.Date{}},
		{"custom reversed", filter.PresetCustom, date(2024, 3, 1), date(2024, 2, 1)},
		{"unknown", filter.Preset("fortnight"), civil.Date{}, civil.Date{}},
	} {
		t.Run(bad.name, func(t *testing.T) {
			t.Parallel()

			_, err := filter.ResolvePreset(bad.preset, today, bad.start, bad.end)
			assert.ErrorIs(t, err, filter.ErrInvalidRange)
		})
	}
}
