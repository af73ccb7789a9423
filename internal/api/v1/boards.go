package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/filter"
)

type TeamCriteriaInput struct {
	TeamID uuid.UUID `path:"teamID" doc:"Team ID"`
	CriteriaQuery
}

type GetBoardOutput struct {
	Body filter.BoardView
}

type BoardGroupsOutput struct {
	Body map[string][]*domain.Task
}

type StatusCountsOutput struct {
	Body []filter.StatusCount
}

type OrphansOutput struct {
	Body []*domain.Task
}

func RegisterBoardRoutes(api huma.API, svc BoardService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-board",
		Method:      http.MethodGet,
		Path:        "/boards/{teamID}",
		Summary:     "Get the kanban board of a team",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *TeamCriteriaInput) (*GetBoardOutput, error) {
		tenantID, viewer, c, err := teamCriteria(ctx, svc, input)
		if err != nil {
			return nil, err
		}

		board, err := svc.BoardView(ctx, tenantID, input.TeamID, c, viewer)
		if err != nil {
			return nil, serviceError(err, "team not found", "failed to build board")
		}
		return &GetBoardOutput{Body: board}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-board-groups",
		Method:      http.MethodGet,
		Path:        "/boards/{teamID}/groups",
		Summary:     "Get a team's visible tasks keyed by sub-status",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *TeamCriteriaInput) (*BoardGroupsOutput, error) {
		tenantID, viewer, c, err := teamCriteria(ctx, svc, input)
		if err != nil {
			return nil, err
		}

		groups, err := svc.TasksBySubStatus(ctx, tenantID, input.TeamID, c, viewer)
		if err != nil {
			return nil, serviceError(err, "team not found", "failed to group tasks")
		}
		return &BoardGroupsOutput{Body: groups}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-status-counts",
		Method:      http.MethodGet,
		Path:        "/teams/{teamID}/status-counts",
		Summary:     "Get ordered status counts for a team",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *TeamCriteriaInput) (*StatusCountsOutput, error) {
		tenantID, viewer, c, err := teamCriteria(ctx, svc, input)
		if err != nil {
			return nil, err
		}

		counts, err := svc.StatusCounts(ctx, tenantID, input.TeamID, c, viewer)
		if err != nil {
			return nil, serviceError(err, "team not found", "failed to count statuses")
		}
		return &StatusCountsOutput{Body: counts}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-orphans",
		Method:      http.MethodGet,
		Path:        "/teams/{teamID}/orphans",
		Summary:     "List tasks whose sub-status left the taxonomy",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *TeamIDInput) (*OrphansOutput, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}

		orphans, err := svc.Orphans(ctx, tenantID, input.TeamID)
		if err != nil {
			return nil, serviceError(err, "team not found", "failed to list orphans")
		}
		return &OrphansOutput{Body: orphans}, nil
	})
}

func teamCriteria(ctx context.Context, svc BoardService, input *TeamCriteriaInput) (uuid.UUID, domain.Viewer, filter.Criteria, error) {
	tenantID, viewer, err := caller(ctx, svc)
	if err != nil {
		return uuid.Nil, domain.Viewer{}, filter.Criteria{}, err
	}
	c, err := input.criteria(svc.Today())
	if err != nil {
		return uuid.Nil, domain.Viewer{}, filter.Criteria{}, err
	}
	return tenantID, viewer, c, nil
}
