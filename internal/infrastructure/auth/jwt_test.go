package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", "idp", "claimdesk")

	token, err := svc.Generate("Ops@Example.com", "samsung-partners", time.Hour)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.UserID())
	assert.Equal(t, "samsung-partners", claims.Role)
}

func TestJWTService_Verify_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", "idp", "claimdesk")

	expired, err := svc.Generate("ops@example.com", "admin", -time.Minute)
	require.NoError(t, err)

	otherSecret, err := NewJWTService("other", "idp", "claimdesk").Generate("ops@example.com", "admin", time.Hour)
	require.NoError(t, err)

	otherIssuer, err := NewJWTService("test-secret", "someone-else", "claimdesk").Generate("ops@example.com", "admin", time.Hour)
	require.NoError(t, err)

	otherAudience, err := NewJWTService("test-secret", "idp", "billing").Generate("ops@example.com", "admin", time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Email: "ops@example.com"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"expired":        expired,
		"wrong secret":   otherSecret,
		"wrong issuer":   otherIssuer,
		"wrong audience": otherAudience,
		"alg none":       none,
		"garbage":        "not-a-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(token)
			assert.Error(t, err)
		})
	}
}

func TestJWTService_Verify_RequiresIdentity(t *testing.T) {
	svc := NewJWTService("test-secret", "", "")

	token, err := svc.Generate("", "admin", time.Hour)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}
