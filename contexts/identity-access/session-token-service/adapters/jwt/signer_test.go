package jwtadapter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/domain/errors"
)

func TestSignAndParseRoundTrip(t *testing.T) {
	signer, err := NewSigner("secret", "test")
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	claims := entities.IdentityClaims{
		Email:     "student@example.com",
		Name:      "Student",
		IssuedAt:  issued,
		ExpiresAt: issued.Add(time.Hour),
	}

	token, err := signer.Sign(claims)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	got, err := signer.Parse(token, issued.Add(59*time.Minute))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Email != claims.Email || got.Name != claims.Name {
		t.Fatalf("expected %+v, got %+v", claims, got)
	}
	if !got.IssuedAt.Equal(claims.IssuedAt) || !got.ExpiresAt.Equal(claims.ExpiresAt) {
		t.Fatalf("expected timestamps %s/%s, got %s/%s", claims.IssuedAt, claims.ExpiresAt, got.IssuedAt, got.ExpiresAt)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	signer, _ := NewSigner("secret", "test")
	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	token, err := signer.Sign(entities.IdentityClaims{
		Email:     "student@example.com",
		IssuedAt:  issued,
		ExpiresAt: issued.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = signer.Parse(token, issued.Add(time.Hour+time.Second))
	if !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestParseRejectsForeignSecret(t *testing.T) {
	issuer, _ := NewSigner("secret-a", "test")
	verifier, _ := NewSigner("secret-b", "test")
	now := time.Now().UTC()
	token, _ := issuer.Sign(entities.IdentityClaims{Email: "a@example.com", IssuedAt: now, ExpiresAt: now.Add(time.Hour)})

	if _, err := verifier.Parse(token, now); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestParseRejectsNoneAlgorithmAndGarbage(t *testing.T) {
	signer, _ := NewSigner("secret", "test")
	now := time.Now().UTC()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"email": "a@example.com",
		"exp":   now.Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	for _, token := range []string{raw, "not-a-token", strings.Repeat("a.", 2) + "a"} {
		if _, err := signer.Parse(token, now); !errors.Is(err, domainerrors.ErrUnauthenticated) {
			t.Fatalf("expected unauthenticated for %q, got %v", token, err)
		}
	}
}

func TestNewSignerRequiresSecret(t *testing.T) {
	if _, err := NewSigner("", "test"); err == nil {
		t.Fatalf("expected empty secret to fail")
	}
}
