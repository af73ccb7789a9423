package v1_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/teamboard/internal/domain"
)

func subNames(cfg domain.TeamStatusConfig) []string {
	var out []string
	for _, m := range cfg.MainStatuses {
		for _, s := range m.SubStatuses {
			out = append(out, s.Name)
		}
	}
	return out
}

func TestStatusRoutes(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	ctx := viewerCtx(e.tenantID, "Max", "manager")
	base := "/teams/" + e.team.ID.String() + "/statuses"

	resp := e.api.GetCtx(ctx, base)
	require.Equal(t, http.StatusOK, resp.Code)
	var cfg domain.TeamStatusConfig
	decode(t, resp, &cfg)
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, []string{"To Do", "Scoping", "In Progress", "Review", "Done"}, subNames(cfg))

	resp = e.api.PostCtx(ctx, base, map[string]any{"name": "Post", "color": "#333"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var addedMain struct {
		Added    domain.MainStatus       `json:"added"`
		Taxonomy domain.TeamStatusConfig `json:"taxonomy"`
	}
	decode(t, resp, &addedMain)
	assert.Equal(t, "Post", addedMain.Added.Name)
	assert.Equal(t, 2, addedMain.Taxonomy.Version)
	mainID := addedMain.Added.ID.String()

	resp = e.api.PostCtx(ctx, base+"/"+mainID+"/substatuses", map[string]any{"name": "Grading"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var addedSub struct {
		Added    domain.SubStatus        `json:"added"`
		Taxonomy domain.TeamStatusConfig `json:"taxonomy"`
	}
	decode(t, resp, &addedSub)
	assert.True(t, addedSub.Added.IsFirst)
	assert.True(t, addedSub.Added.IsLast)

	resp = e.api.PostCtx(ctx, base+"/"+mainID+"/substatuses", map[string]any{"name": "Mastering"})
	require.Equal(t, http.StatusOK, resp.Code)
	decode(t, resp, &addedSub)
	assert.Equal(t, []string{"To Do", "Scoping", "In Progress", "Review", "Done", "Grading", "Mastering"}, subNames(addedSub.Taxonomy))
	mastering := addedSub.Added.ID

	planning := addedSub.Taxonomy.MainStatuses[0].ID
	resp = e.api.PostCtx(ctx, base+"/reorder", map[string]any{
		"scope":      "main",
		"dragged_id": mainID,
		"target_id":  planning.String(),
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	decode(t, resp, &cfg)
	assert.Equal(t, "Post", cfg.MainStatuses[0].Name)

	resp = e.api.DeleteCtx(ctx, base+"/"+mainID+"/substatuses/"+mastering.String())
	require.Equal(t, http.StatusOK, resp.Code)
	decode(t, resp, &cfg)
	assert.Equal(t, []string{"Grading", "To Do", "Scoping", "In Progress", "Review", "Done"}, subNames(cfg))

	resp = e.api.DeleteCtx(ctx, base+"/"+mainID)
	require.Equal(t, http.StatusOK, resp.Code)
	decode(t, resp, &cfg)
	require.Len(t, cfg.MainStatuses, 2)
	assert.Equal(t, 1, cfg.MainStatuses[0].Order)
	assert.Equal(t, 2, cfg.MainStatuses[1].Order)

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		resp := e.api.PostCtx(ctx, base+"/"+uuid.NewString()+"/substatuses", map[string]any{"name": "Nowhere"})
		assert.Equal(t, http.StatusNotFound, resp.Code)

		resp = e.api.GetCtx(ctx, "/teams/"+uuid.NewString()+"/statuses")
		assert.Equal(t, http.StatusNotFound, resp.Code)

		resp = e.api.PostCtx(ctx, base+"/reorder", map[string]any{
			"scope":      "diagonal",
			"dragged_id": uuid.NewString(),
			"target_id":  uuid.NewString(),
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

		resp = e.api.PostCtx(ctx, base, map[string]any{"name": ""})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}
