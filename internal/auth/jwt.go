package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims holds the JWT token payload. Field types and JSON tags are compatible
// with the middleware's jwtClaims so tokens issued here are parsed correctly.
type Claims struct {
	jwt.RegisteredClaims
	TenantID  string `json:"tid"`
	UserID    string `json:"uid"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	TokenType string `json:"typ"` // "access" or "refresh"
}

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// ErrInvalidToken is returned when a JWT cannot be parsed or has expired.
var ErrInvalidToken = errors.New("auth: invalid or expired token")

// Identity is who a token speaks for.
type Identity struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Name     string
	Role     string
}

// IssueAccessToken creates a signed JWT access token.
func IssueAccessToken(secret string, id Identity, ttl time.Duration) (string, error) {
	return issueToken(secret, id, tokenTypeAccess, ttl)
}

// IssueRefreshToken creates a signed JWT refresh token.
func IssueRefreshToken(secret string, id Identity, ttl time.Duration) (string, error) {
	return issueToken(secret, id, tokenTypeRefresh, ttl)
}

func issueToken(secret string, id Identity, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "teamboard",
			Subject:   id.UserID.String(),
		},
		TenantID:  id.TenantID.String(),
		UserID:    id.UserID.String(),
		Name:      id.Name,
		Role:      id.Role,
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("auth.issueToken: %w", err)
	}

	return signed, nil
}

// ValidateToken parses and validates a JWT token string. Returns the embedded claims.
func ValidateToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("auth.ValidateToken: %w", ErrInvalidToken)
	}

	if !token.Valid {
		return nil, fmt.Errorf("auth.ValidateToken: %w", ErrInvalidToken)
	}

	return claims, nil
}

// Identity returns the parsed identity carried by c.
func (c *Claims) Identity() (Identity, error) {
	tenantID, err := uuid.Parse(c.TenantID)
	if err != nil {
		return Identity{}, fmt.Errorf("auth.Claims.Identity: tenant: %w", ErrInvalidToken)
	}
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return Identity{}, fmt.Errorf("auth.Claims.Identity: user: %w", ErrInvalidToken)
	}
	return Identity{TenantID: tenantID, UserID: userID, Name: c.Name, Role: c.Role}, nil
}
