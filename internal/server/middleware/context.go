package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/gosuda/teamboard/internal/domain"
)

type contextKey string

const (
	ContextKeyTenantID    contextKey = "tenant_id"
	ContextKeyUserID      contextKey = "user_id"
	ContextKeyUserRole    contextKey = "role"
	ContextKeyDisplayName contextKey = "display_name"
)

func TenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ContextKeyTenantID).(uuid.UUID)
	return v, ok
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ContextKeyUserID).(uuid.UUID)
	return v, ok
}

func RoleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyUserRole).(string)
	return v, ok
}

func DisplayNameFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyDisplayName).(string)
	return v, ok
}

// ViewerFromContext returns the display name and parsed role of the caller.
// The manager roster is not filled in here.
func ViewerFromContext(ctx context.Context) (domain.Viewer, bool) {
	raw, ok := RoleFromContext(ctx)
	if !ok {
		return domain.Viewer{}, false
	}
	role, ok := domain.ParseRole(raw)
	if !ok {
		return domain.Viewer{}, false
	}
	name, _ := DisplayNameFromContext(ctx)
	return domain.Viewer{DisplayName: name, Role: role}, true
}
