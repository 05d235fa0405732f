package jwtadapter

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/domain/errors"
)

type sessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Signer signs HS256 tokens with a shared secret.
type Signer struct {
	secret []byte
	issuer string
}

func NewSigner(secret string, issuer string) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	return &Signer{secret: []byte(secret), issuer: issuer}, nil
}

func (s *Signer) Sign(claims entities.IdentityClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Email: claims.Email,
		Name:  claims.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   claims.Email,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (s *Signer) Parse(raw string, now time.Time) (entities.IdentityClaims, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return entities.IdentityClaims{}, fmt.Errorf("%w: %v", domainerrors.ErrUnauthenticated, err)
	}

	identity := entities.IdentityClaims{
		Email: claims.Email,
		Name:  claims.Name,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return identity, nil
}

// SystemClock reads wall-clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
