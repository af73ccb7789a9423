package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/service"
)

type TeamBody struct {
	Name    string   `json:"name" minLength:"1" maxLength:"100" doc:"Team name"`
	Color   string   `json:"color,omitempty" maxLength:"32" doc:"Display color"`
	Manager string   `json:"manager,omitempty" maxLength:"200" doc:"Manager display name"`
	Members []string `json:"members,omitempty" doc:"Member display names"`
}

func (b *TeamBody) draft() domain.TeamDraft {
	return domain.TeamDraft{Name: b.Name, Color: b.Color, Manager: b.Manager, Members: b.Members}
}

type CreateTeamInput struct {
	Body TeamBody
}

type TeamOutput struct {
	Body *domain.Team
}

type ListTeamsOutput struct {
	Body []*domain.Team
}

type TeamIDInput struct {
	TeamID uuid.UUID `path:"teamID" doc:"Team ID"`
}

type GetTeamOutput struct {
	Body *service.TeamDetail
}

type UpdateTeamInput struct {
	TeamID uuid.UUID `path:"teamID" doc:"Team ID"`
	Body   TeamBody
}

type TeamStatsOutput struct {
	Body domain.TeamStats
}

func RegisterTeamRoutes(api huma.API, svc BoardService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-teams",
		Method:      http.MethodGet,
		Path:        "/teams",
		Summary:     "List teams",
		Tags:        []string{"Teams"},
	}, func(ctx context.Context, _ *struct{}) (*ListTeamsOutput, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}

		teams, err := svc.ListTeams(ctx, tenantID)
		if err != nil {
			return nil, serviceError(err, "not found", "failed to list teams")
		}
		return &ListTeamsOutput{Body: teams}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-team",
		Method:      http.MethodGet,
		Path:        "/teams/{teamID}",
		Summary:     "Get a team with its stats",
		Tags:        []string{"Teams"},
	}, func(ctx context.Context, input *TeamIDInput) (*GetTeamOutput, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}

		team, err := svc.GetTeam(ctx, tenantID, input.TeamID)
		if err != nil {
			return nil, serviceError(err, "team not found", "failed to get team")
		}
		return &GetTeamOutput{Body: team}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-team-stats",
		Method:      http.MethodGet,
		Path:        "/teams/{teamID}/stats",
		Summary:     "Get a team's task counters",
		Tags:        []string{"Teams"},
	}, func(ctx context.Context, input *TeamIDInput) (*TeamStatsOutput, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}

		stats, err := svc.TeamStats(ctx, tenantID, input.TeamID)
		if err != nil {
			return nil, serviceError(err, "team not found", "failed to compute team stats")
		}
		return &TeamStatsOutput{Body: stats}, nil
	})
}

// RegisterTeamAdminRoutes registers the team mutations. Mount it behind
// RequireManager.
func RegisterTeamAdminRoutes(api huma.API, svc BoardService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-team",
		Method:      http.MethodPost,
		Path:        "/teams",
		Summary:     "Create a team with the default taxonomy",
		Tags:        []string{"Teams"},
	}, func(ctx context.Context, input *CreateTeamInput) (*TeamOutput, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}

		team, err := svc.CreateTeam(ctx, tenantID, input.Body.draft())
		if err != nil {
			return nil, serviceError(err, "not found", "failed to create team")
		}
		return &TeamOutput{Body: team}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-team",
		Method:      http.MethodPut,
		Path:        "/teams/{teamID}",
		Summary:     "Update a team",
		Tags:        []string{"Teams"},
	}, func(ctx context.Context, input *UpdateTeamInput) (*TeamOutput, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}

		team, err := svc.UpdateTeam(ctx, tenantID, input.TeamID, input.Body.draft())
		if err != nil {
			return nil, serviceError(err, "team not found", "failed to update team")
		}
		return &TeamOutput{Body: team}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-team",
		Method:        http.MethodDelete,
		Path:          "/teams/{teamID}",
		Summary:       "Delete a team and its taxonomy",
		Tags:          []string{"Teams"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *TeamIDInput) (*struct{}, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}

		if err := svc.DeleteTeam(ctx, tenantID, input.TeamID); err != nil {
			return nil, serviceError(err, "team not found", "failed to delete team")
		}
		return nil, nil
	})
}
