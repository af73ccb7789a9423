package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/teamboard/internal/auth"
)

func testIdentity() auth.Identity {
	return auth.Identity{TenantID: uuid.New(), UserID: uuid.New(), Name: "Jane Doe", Role: "manager"}
}

func TestJWT_IssueAndValidateRoundTrip(t *testing.T) {
	t.Parallel()

	secret := "test-secret-key-very-long-and-secure"
	id := testIdentity()

	tests := []struct {
		name      string
		issuer    func(string, auth.Identity, time.Duration) (string, error)
		tokenType string
	}{
		{name: "access token", issuer: auth.IssueAccessToken, tokenType: "access"},
		{name: "refresh token", issuer: auth.IssueRefreshToken, tokenType: "refresh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			token, err := tt.issuer(secret, id, 5*time.Minute)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			claims, err := auth.ValidateToken(secret, token)
			require.NoError(t, err)

			assert.Equal(t, id.TenantID.String(), claims.TenantID)
			assert.Equal(t, id.UserID.String(), claims.UserID)
			assert.Equal(t, "Jane Doe", claims.Name)
			assert.Equal(t, "manager", claims.Role)
			assert.Equal(t, tt.tokenType, claims.TokenType)
			assert.Equal(t, "teamboard", claims.Issuer)
			assert.NotNil(t, claims.ExpiresAt)

			got, err := claims.Identity()
			require.NoError(t, err)
			assert.Equal(t, id, got)
		})
	}
}

func TestJWT_ExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	token, err := auth.IssueAccessToken("test-secret-key", testIdentity(), -1*time.Second)
	require.NoError(t, err)

	claims, err := auth.ValidateToken("test-secret-key", token)
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWT_InvalidSecretRejected(t *testing.T) {
	t.Parallel()

	token, err := auth.IssueAccessToken("correct-secret", testIdentity(), 5*time.Minute)
	require.NoError(t, err)

	claims, err := auth.ValidateToken("wrong-secret", token)
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWT_MalformedTokenRejected(t *testing.T) {
	t.Parallel()

	claims, err := auth.ValidateToken("secret", "not.a.valid.jwt.token")
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestClaims_IdentityRejectsBadIDs(t *testing.T) {
	t.Parallel()

	_, err := (&auth.Claims{TenantID: "nope", UserID: uuid.NewString()}).Identity()
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = (&auth.Claims{TenantID: uuid.NewString(), UserID: "nope"}).Identity()
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
