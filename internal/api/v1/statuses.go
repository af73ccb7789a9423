package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/workflow"
)

type TaxonomyOutput struct {
	Body *domain.TeamStatusConfig
}

type StatusBody struct {
	Name  string `json:"name" minLength:"1" maxLength:"100" doc:"Status name"`
	Color string `json:"color,omitempty" maxLength:"32" doc:"Display color"`
}

type AddMainStatusInput struct {
	TeamID uuid.UUID `path:"teamID" doc:"Team ID"`
	Body   StatusBody
}

type AddMainStatusOutput struct {
	Body struct {
		Added    domain.MainStatus        `json:"added"`
		Taxonomy *domain.TeamStatusConfig `json:"taxonomy"`
	}
}

type AddSubStatusInput struct {
	TeamID uuid.UUID `path:"teamID" doc:"Team ID"`
	MainID uuid.UUID `path:"mainID" doc:"Main status ID"`
	Body   StatusBody
}

type AddSubStatusOutput struct {
	Body struct {
		Added    domain.SubStatus         `json:"added"`
		Taxonomy *domain.TeamStatusConfig `json:"taxonomy"`
	}
}

type DeleteMainStatusInput struct {
	TeamID uuid.UUID `path:"teamID" doc:"Team ID"`
	MainID uuid.UUID `path:"mainID" doc:"Main status ID"`
}

type DeleteSubStatusInput struct {
	TeamID uuid.UUID `path:"teamID" doc:"Team ID"`
	MainID uuid.UUID `path:"mainID" doc:"Main status ID"`
	SubID  uuid.UUID `path:"subID" doc:"Sub-status ID"`
}

type ReorderInput struct {
	TeamID uuid.UUID `path:"teamID" doc:"Team ID"`
	Body   struct {
		Scope     string    `json:"scope" enum:"main,sub" doc:"Which list the IDs belong to"`
		DraggedID uuid.UUID `json:"dragged_id" doc:"ID of the dragged status"`
		TargetID  uuid.UUID `json:"target_id" doc:"ID of the status it was dropped on"`
	}
}

func RegisterStatusRoutes(api huma.API, svc BoardService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-taxonomy",
		Method:      http.MethodGet,
		Path:        "/teams/{teamID}/statuses",
		Summary:     "Get a team's status taxonomy",
		Tags:        []string{"Statuses"},
	}, func(ctx context.Context, input *TeamIDInput) (*TaxonomyOutput, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}

		cfg, err := svc.Taxonomy(ctx, tenantID, input.TeamID)
		if err != nil {
			return nil, serviceError(err, "team not found", "failed to get taxonomy")
		}
		return &TaxonomyOutput{Body: cfg}, nil
	})
}

// RegisterStatusAdminRoutes registers the taxonomy edits. Mount it behind
// RequireManager.
func RegisterStatusAdminRoutes(api huma.API, svc BoardService) {
	huma.Register(api, huma.Operation{
		OperationID: "add-main-status",
		Method:      http.MethodPost,
		Path:        "/teams/{teamID}/statuses",
		Summary:     "Append a main status",
		Tags:        []string{"Statuses"},
	}, func(ctx context.Context, input *AddMainStatusInput) (*AddMainStatusOutput, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}

		cfg, added, err := svc.AddMainStatus(ctx, tenantID, input.TeamID, input.Body.Name, input.Body.Color)
		if err != nil {
			return nil, serviceError(err, "team not found", "failed to add main status")
		}
		out := &AddMainStatusOutput{}
		out.Body.Added = added
		out.Body.Taxonomy = cfg
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-main-status",
		Method:      http.MethodDelete,
		Path:        "/teams/{teamID}/statuses/{mainID}",
		Summary:     "Delete a main status and its sub-statuses",
		Tags:        []string{"Statuses"},
	}, func(ctx context.Context, input *DeleteMainStatusInput) (*TaxonomyOutput, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}

		cfg, err := svc.DeleteMainStatus(ctx, tenantID, input.TeamID, input.MainID)
		if err != nil {
			return nil, serviceError(err, "team not found", "failed to delete main status")
		}
		return &TaxonomyOutput{Body: cfg}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "add-sub-status",
		Method:      http.MethodPost,
		Path:        "/teams/{teamID}/statuses/{mainID}/substatuses",
		Summary:     "Append a sub-status to a main status",
		Tags:        []string{"Statuses"},
	}, func(ctx context.Context, input *AddSubStatusInput) (*AddSubStatusOutput, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}

		cfg, added, err := svc.AddSubStatus(ctx, tenantID, input.TeamID, input.MainID, input.Body.Name, input.Body.Color)
		if err != nil {
			return nil, serviceError(err, "team or main status not found", "failed to add sub-status")
		}
		out := &AddSubStatusOutput{}
		out.Body.Added = added
		out.Body.Taxonomy = cfg
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-sub-status",
		Method:      http.MethodDelete,
		Path:        "/teams/{teamID}/statuses/{mainID}/substatuses/{subID}",
		Summary:     "Delete a sub-status",
		Tags:        []string{"Statuses"},
	}, func(ctx context.Context, input *DeleteSubStatusInput) (*TaxonomyOutput, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}

		cfg, err := svc.DeleteSubStatus(ctx, tenantID, input.TeamID, input.MainID, input.SubID)
		if err != nil {
			return nil, serviceError(err, "team not found", "failed to delete sub-status")
		}
		return &TaxonomyOutput{Body: cfg}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "reorder-statuses",
		Method:      http.MethodPost,
		Path:        "/teams/{teamID}/statuses/reorder",
		Summary:     "Move a status to the position of another",
		Tags:        []string{"Statuses"},
	}, func(ctx context.Context, input *ReorderInput) (*TaxonomyOutput, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}

		cfg, err := svc.Reorder(ctx, tenantID, input.TeamID, input.Body.DraggedID, input.Body.TargetID, workflow.Scope(input.Body.Scope))
		if err != nil {
			return nil, serviceError(err, "team not found", "failed to reorder statuses")
		}
		return &TaxonomyOutput{Body: cfg}, nil
	})
}
