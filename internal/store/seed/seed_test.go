package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/teamboard/internal/store/memory"
	"github.com/gosuda/teamboard/internal/store/seed"
	"github.com/gosuda/teamboard/internal/workflow"
)

var today = civil.Date{Year: 2024, Month: 3, Day: 15}

func TestApply_Default(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.New()
	require.NoError(t, seed.Apply(ctx, store, seed.Default(), today))

	tenant, err := store.Tenants().GetBySlug(ctx, "acme")
	require.NoError(t, err)

	teams, err := store.Teams().List(ctx, tenant.ID)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Video Production", teams[0].Name)
	assert.Equal(t, "Max Turner", teams[0].Manager)

	cfg, err := store.Statuses().Get(ctx, tenant.ID, teams[0].ID)
	require.NoError(t, err)
	require.Len(t, cfg.MainStatuses, 2)
	assert.Empty(t, workflow.Validate(cfg))
	first, ok := workflow.FindSub(cfg, "Briefing")
	require.True(t, ok)
	assert.True(t, first.IsFirst)

	// Design has no statuses in the document and gets the default taxonomy.
	design, err := store.Statuses().Get(ctx, tenant.ID, teams[1].ID)
	require.NoError(t, err)
	_, ok = workflow.FindSub(design, "To Do")
	assert.True(t, ok)

	tasks, err := store.Tasks().List(ctx, tenant.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 6)
	assert.Equal(t, "Product launch trailer", tasks[0].Title)
	assert.Equal(t, civil.Date{Year: 2024, Month: 3, Day: 14}, tasks[0].DueDate)
	assert.Equal(t, []string{"launch", "video"}, tasks[0].Tags)
	require.NotNil(t, tasks[1].Count)
	assert.Equal(t, 4, *tasks[1].Count)
	assert.False(t, tasks[5].DueDate.IsValid())
}

func TestApply_Idempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.New()
	require.NoError(t, seed.Apply(ctx, store, seed.Default(), today))
	require.NoError(t, seed.Apply(ctx, store, seed.Default(), today))

	tenants, err := store.Tenants().List(ctx)
	require.NoError(t, err)
	assert.Len(t, tenants, 1)

	tasks, err := store.Tasks().List(ctx, tenants[0].ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 6)
}

func TestApply_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "tenants: [\n"},
		{"bad date", "tenants:\n  - slug: x\n    teams:\n      - name: t\n        tasks:\n          - {title: a, priority: High, due: '2024-13-01'}\n"},
		{"invalid task", "tenants:\n  - slug: x\n    teams:\n      - name: t\n        tasks:\n          - {title: a, priority: Urgent}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Error(t, seed.Apply(context.Background(), memory.New(), []byte(tt.doc), today))
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	data, err := seed.LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, seed.Default(), data)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tenants: []\n"), 0o600))
	data, err = seed.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tenants: []\n", string(data))

	_, err = seed.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
