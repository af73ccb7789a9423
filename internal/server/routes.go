package server

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	v1 "github.com/gosuda/teamboard/internal/api/v1"
	"github.com/gosuda/teamboard/internal/api/ws"
	"github.com/gosuda/teamboard/internal/auth"
	"github.com/gosuda/teamboard/internal/service"
)

func registerAuthRoutes(api huma.API, authSvc *auth.Service) {
	v1.RegisterAuthRoutes(api, authSvc)
}

func registerAPIRoutes(api huma.API, svc *service.Service) {
	v1.RegisterTenantRoutes(api, svc)
	v1.RegisterTaskRoutes(api, svc)
	v1.RegisterTeamRoutes(api, svc)
	v1.RegisterStatusRoutes(api, svc)
	v1.RegisterBoardRoutes(api, svc)
	v1.RegisterCalendarRoutes(api, svc)
	v1.RegisterReportRoutes(api, svc)
}

func registerManagerRoutes(api huma.API, svc *service.Service) {
	v1.RegisterTeamAdminRoutes(api, svc)
	v1.RegisterStatusAdminRoutes(api, svc)
}

func registerAdminRoutes(api huma.API, svc *service.Service) {
	v1.RegisterTenantAdminRoutes(api, svc)
}

func registerWSRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/board/{teamID}", hub.ServeBoard)
	r.Get("/tenant", hub.ServeTenant)
}
