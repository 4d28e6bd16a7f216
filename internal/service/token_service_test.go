package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scolarite-api/internal/models"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

func signTestToken(t *testing.T, secret, issuer string, role models.UserRole, expires time.Time) string {
	t.Helper()
	claims := &models.JWTClaims{
		UserID: "user-1",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestTokenVerifierAcceptsValidToken(t *testing.T) {
	verifier := NewTokenVerifier(TokenConfig{Secret: "secret", Issuer: "scolarite"})
	token := signTestToken(t, "secret", "scolarite", models.RoleAdmin, time.Now().Add(time.Hour))

	claims, err := verifier.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestTokenVerifierRejects(t *testing.T) {
	verifier := NewTokenVerifier(TokenConfig{Secret: "secret", Issuer: "scolarite"})

	cases := map[string]string{
		"wrong secret":  signTestToken(t, "other", "scolarite", models.RoleAdmin, time.Now().Add(time.Hour)),
		"expired":       signTestToken(t, "secret", "scolarite", models.RoleAdmin, time.Now().Add(-time.Hour)),
		"wrong issuer":  signTestToken(t, "secret", "elsewhere", models.RoleAdmin, time.Now().Add(time.Hour)),
		"missing role":  signTestToken(t, "secret", "scolarite", "", time.Now().Add(time.Hour)),
		"not a token":   "abc.def",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := verifier.ValidateToken(token)
			require.Error(t, err)
			assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
		})
	}
}
