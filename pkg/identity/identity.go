// Package identity verifies session tokens minted by the external identity
// provider. The API never issues credentials itself; it only checks the
// provider's HS256 signature and lifts the profile claims out.
package identity

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrNoSubject    = errors.New("session token has no subject")
)

// Claims is the profile carried by a verified session token. ExternalID is
// the provider's stable user identifier and is the upsert key for local
// user records.
type Claims struct {
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
}

type tokenClaims struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	jwt.RegisteredClaims
}

// Verifier validates provider session tokens against a shared secret.
type Verifier struct {
	secretKey []byte
}

// NewVerifier creates a verifier for the given signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secretKey: []byte(secret)}
}

// Verify parses and validates a session token and returns its claims.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secretKey, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrNoSubject
	}

	return &Claims{
		ExternalID: claims.Subject,
		Email:      strings.ToLower(strings.TrimSpace(claims.Email)),
		FirstName:  claims.FirstName,
		LastName:   claims.LastName,
	}, nil
}

// FromAuthorizationHeader strips the Bearer prefix from an Authorization
// header value. Returns the empty string when the header is not a bearer
// token.
func FromAuthorizationHeader(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
