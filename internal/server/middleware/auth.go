package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gosuda/teamboard/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	TenantID  string `json:"tid"`
	UserID    string `json:"uid"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	TokenType string `json:"typ"`
}

// Auth accepts an access token from the Authorization header or, for
// WebSocket clients that cannot set headers, from the access_token query
// parameter.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Try Bearer token first.
			if tok := extractBearer(r); tok != "" {
				ctx, ok := authenticateJWT(r.Context(), tok, jwtSecret)
				if ok {
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			if tok := r.URL.Query().Get("access_token"); tok != "" {
				ctx, ok := authenticateJWT(r.Context(), tok, jwtSecret)
				if ok {
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			http.Error(w, `{"title":"Unauthorized","status":401,"detail":"missing or invalid credentials"}`, http.StatusUnauthorized)
		})
	}
}

func extractBearer(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return auth[7:]
	}
	return ""
}

func authenticateJWT(ctx context.Context, tokenStr, secret string) (context.Context, bool) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return ctx, false
	}

	// Refresh tokens only buy new access tokens.
	if claims.TokenType == "refresh" {
		return ctx, false
	}

	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil {
		return ctx, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return ctx, false
	}

	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return ctx, false
	}

	ctx = context.WithValue(ctx, ContextKeyTenantID, tenantID)
	ctx = context.WithValue(ctx, ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, ContextKeyUserRole, string(role))
	ctx = context.WithValue(ctx, ContextKeyDisplayName, claims.Name)
	return ctx, true
}
