package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gosuda/teamboard/internal/domain"
)

type CreateTenantInput struct {
	Body struct {
		Name string `json:"name" minLength:"1" maxLength:"255" doc:"Tenant name"`
		Slug string `json:"slug" minLength:"1" maxLength:"63" pattern:"^[a-z0-9]+(?:-[a-z0-9]+)*$" doc:"URL-safe slug (lowercase alphanumeric with hyphens)"`
	}
}

type TenantOutput struct {
	Body *domain.Tenant
}

type ListTenantsOutput struct {
	Body []*domain.Tenant
}

func RegisterTenantRoutes(api huma.API, svc BoardService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-current-tenant",
		Method:      http.MethodGet,
		Path:        "/tenants/current",
		Summary:     "Get the caller's tenant",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, _ *struct{}) (*TenantOutput, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}

		t, err := svc.TenantByID(ctx, tenantID)
		if err != nil {
			return nil, serviceError(err, "tenant not found", "failed to get tenant")
		}
		return &TenantOutput{Body: t}, nil
	})
}

// RegisterTenantAdminRoutes registers tenant management. Mount it behind
// RequireAdmin.
func RegisterTenantAdminRoutes(api huma.API, svc BoardService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-tenant",
		Method:      http.MethodPost,
		Path:        "/tenants",
		Summary:     "Create a new tenant",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, input *CreateTenantInput) (*TenantOutput, error) {
		t, err := svc.CreateTenant(ctx, input.Body.Name, input.Body.Slug)
		if err != nil {
			return nil, serviceError(err, "not found", "failed to create tenant")
		}
		return &TenantOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-tenants",
		Method:      http.MethodGet,
		Path:        "/tenants",
		Summary:     "List all tenants",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, _ *struct{}) (*ListTenantsOutput, error) {
		tenants, err := svc.ListTenants(ctx)
		if err != nil {
			return nil, serviceError(err, "not found", "failed to list tenants")
		}
		return &ListTenantsOutput{Body: tenants}, nil
	})
}
