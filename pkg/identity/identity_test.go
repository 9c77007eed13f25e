package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func signToken(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyValidToken(t *testing.T) {
	tokenString := signToken(t, testSecret, &tokenClaims{
		Email:     "Jane.Doe@Example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user_2abc",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := NewVerifier(testSecret).Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user_2abc", claims.ExternalID)
	assert.Equal(t, "jane.doe@example.com", claims.Email, "email is normalized")
	assert.Equal(t, "Jane", claims.FirstName)
	assert.Equal(t, "Doe", claims.LastName)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tokenString := signToken(t, "other-secret", &tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user_2abc",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := NewVerifier(testSecret).Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tokenString := signToken(t, testSecret, &tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user_2abc",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := NewVerifier(testSecret).Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	tokenString := signToken(t, testSecret, &tokenClaims{
		Email: "jane@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := NewVerifier(testSecret).Verify(tokenString)
	assert.ErrorIs(t, err, ErrNoSubject)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewVerifier(testSecret).Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestFromAuthorizationHeader(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", FromAuthorizationHeader("Bearer abc.def.ghi"))
	assert.Equal(t, "abc.def.ghi", FromAuthorizationHeader("bearer abc.def.ghi"))
	assert.Equal(t, "", FromAuthorizationHeader("Basic dXNlcjpwYXNz"))
	assert.Equal(t, "", FromAuthorizationHeader(""))
}
