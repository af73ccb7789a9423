package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gosuda/teamboard/internal/auth"
	"github.com/gosuda/teamboard/internal/domain"
)

type StartSessionInput struct {
	Body struct {
		TenantSlug  string `json:"tenant_slug,omitempty" maxLength:"63" doc:"Tenant slug, defaults to the server's default tenant"`
		DisplayName string `json:"display_name" minLength:"1" maxLength:"200" doc:"Who is viewing the board"`
		Role        string `json:"role" minLength:"1" doc:"admin, manager or employee"`
	}
}

type StartSessionOutput struct {
	Body *auth.Session
}

type RefreshInput struct {
	Body struct {
		RefreshToken string `json:"refresh_token" minLength:"1" doc:"Refresh token"` //nolint:gosec // G117: token refresh DTO
	}
}

type RefreshOutput struct {
	Body struct {
		AccessToken string `json:"access_token"` //nolint:gosec // G117: auth response DTO
	}
}

func RegisterAuthRoutes(api huma.API, sessions SessionIssuer) {
	huma.Register(api, huma.Operation{
		OperationID: "start-session",
		Method:      http.MethodPost,
		Path:        "/auth/session",
		Summary:     "Start a board session as a named viewer",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
		sess, err := sessions.StartSession(ctx, input.Body.TenantSlug, input.Body.DisplayName, input.Body.Role)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return nil, huma.Error404NotFound("tenant not found")
			case errors.Is(err, auth.ErrUnknownRole), errors.Is(err, auth.ErrMissingName):
				return nil, huma.Error422UnprocessableEntity(err.Error())
			default:
				return nil, huma.Error500InternalServerError("failed to start session", err)
			}
		}
		return &StartSessionOutput{Body: sess}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "refresh-token",
		Method:      http.MethodPost,
		Path:        "/auth/refresh",
		Summary:     "Refresh access token",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *RefreshInput) (*RefreshOutput, error) {
		accessToken, err := sessions.RefreshToken(ctx, input.Body.RefreshToken)
		if err != nil {
			return nil, huma.Error401Unauthorized("invalid or expired refresh token")
		}

		out := &RefreshOutput{}
		out.Body.AccessToken = accessToken
		return out, nil
	})
}
