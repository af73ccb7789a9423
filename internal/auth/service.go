package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/teamboard/internal/domain"
)

// Sentinel errors for the auth package.
var (
	ErrUnknownRole = errors.New("auth: unknown role")
	ErrMissingName = errors.New("auth: display name is required")
	ErrNotRefresh  = errors.New("auth: not a refresh token")
)

// Session is the result of starting a session.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TenantID     uuid.UUID `json:"tenant_id"`
	UserID       uuid.UUID `json:"user_id"`
	DisplayName  string    `json:"display_name"`
	Role         string    `json:"role"`
}

// Service issues board sessions. There are no passwords: the caller states
// who they are and which role they view the board as. Roles only narrow the
// view and must not be treated as access control.
type Service struct {
	tenants       domain.TenantRepository
	jwtSecret     string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	defaultTenant string
}

// NewService creates a new auth service. defaultTenant is the slug used when
// a session request names none.
func NewService(tenants domain.TenantRepository, jwtSecret string, accessTTL, refreshTTL time.Duration, defaultTenant string) *Service {
	return &Service{
		tenants:       tenants,
		jwtSecret:     jwtSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		defaultTenant: defaultTenant,
	}
}

// StartSession resolves the tenant and issues an access and a refresh token
// for displayName acting as role. The user id is derived from the tenant and
// name so the same person always gets the same id.
func (s *Service) StartSession(ctx context.Context, tenantSlug, displayName, role string) (*Session, error) {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return nil, fmt.Errorf("auth.StartSession: %w", ErrMissingName)
	}
	r, ok := domain.ParseRole(role)
	if !ok {
		return nil, fmt.Errorf("auth.StartSession: %q: %w", role, ErrUnknownRole)
	}
	if tenantSlug == "" {
		tenantSlug = s.defaultTenant
	}

	tenant, err := s.tenants.GetBySlug(ctx, tenantSlug)
	if err != nil {
		return nil, fmt.Errorf("auth.StartSession: %w", err)
	}

	id := Identity{
		TenantID: tenant.ID,
		UserID:   UserID(tenant.ID, name),
		Name:     name,
		Role:     string(r),
	}

	access, err := IssueAccessToken(s.jwtSecret, id, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("auth.StartSession: %w", err)
	}
	refresh, err := IssueRefreshToken(s.jwtSecret, id, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("auth.StartSession: %w", err)
	}

	log.Info().Str("tenant", tenant.Slug).Str("name", name).Str("role", id.Role).Msg("session started")
	return &Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(s.accessTTL),
		TenantID:     id.TenantID,
		UserID:       id.UserID,
		DisplayName:  name,
		Role:         id.Role,
	}, nil
}

// RefreshToken validates a refresh token and issues a new access token for
// the same identity.
func (s *Service) RefreshToken(_ context.Context, refreshToken string) (string, error) {
	claims, err := ValidateToken(s.jwtSecret, refreshToken)
	if err != nil {
		return "", fmt.Errorf("auth.RefreshToken: %w", err)
	}
	if claims.TokenType != tokenTypeRefresh {
		return "", fmt.Errorf("auth.RefreshToken: %w", ErrNotRefresh)
	}

	id, err := claims.Identity()
	if err != nil {
		return "", fmt.Errorf("auth.RefreshToken: %w", err)
	}

	token, err := IssueAccessToken(s.jwtSecret, id, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("auth.RefreshToken: %w", err)
	}
	return token, nil
}

// UserID derives a stable user id from the tenant and display name.
func UserID(tenantID uuid.UUID, name string) uuid.UUID {
	return uuid.NewSHA1(tenantID, []byte(strings.ToLower(name)))
}
