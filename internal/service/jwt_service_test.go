package service

import (
	"errors"
	"testing"
	"time"

	"flechazo/internal/domain"
)

func testUser() domain.User {
	return domain.User{ID: "u-1", Email: "ana@example.com", DisplayName: "Ana"}
}

func TestGeneratePairAndParseAccessToken(t *testing.T) {
	svc := NewJWTService("super-secreto", 15*time.Minute, time.Hour)

	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("tokens missing: %+v", pair)
	}
	if pair.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Fatalf("expires_in = %d", pair.ExpiresIn)
	}

	claims, err := svc.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != "u-1" || claims.Email != "ana@example.com" {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.TokenType != "access" {
		t.Fatalf("token type = %q", claims.TokenType)
	}
}

func TestParseAccessTokenRejectsRefreshToken(t *testing.T) {
	svc := NewJWTService("super-secreto", 15*time.Minute, time.Hour)
	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if _, err := svc.ParseAccessToken(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("err = %v, want ErrJWTInvalid", err)
	}
}

func TestParseAccessTokenRejectsForeignSecret(t *testing.T) {
	issuer := NewJWTService("secreto-a", 15*time.Minute, time.Hour)
	verifier := NewJWTService("secreto-b", 15*time.Minute, time.Hour)

	pair, err := issuer.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if _, err := verifier.ParseAccessToken(pair.AccessToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("err = %v, want ErrJWTInvalid", err)
	}
}

func TestRefreshPairRotatesToken(t *testing.T) {
	svc := NewJWTService("super-secreto", 15*time.Minute, time.Hour)
	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	renewed, err := svc.RefreshPair(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if renewed.AccessToken == "" || renewed.RefreshToken == "" {
		t.Fatalf("renewed pair incomplete: %+v", renewed)
	}

	// El refresh usado queda revocado: reutilizarlo falla.
	if _, err := svc.RefreshPair(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("err = %v, want ErrJWTInvalid on reuse", err)
	}

	// El nuevo sigue siendo valido.
	if _, err := svc.RefreshPair(renewed.RefreshToken); err != nil {
		t.Fatalf("new refresh token rejected: %v", err)
	}
}

func TestRevokeRefresh(t *testing.T) {
	svc := NewJWTService("super-secreto", 15*time.Minute, time.Hour)
	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if err := svc.RevokeRefresh(pair.RefreshToken); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if _, err := svc.RefreshPair(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("err = %v, want ErrJWTInvalid after revoke", err)
	}
}

func TestJWTServiceWithoutSecret(t *testing.T) {
	svc := NewJWTService("", 15*time.Minute, time.Hour)
	if _, err := svc.GeneratePair(testUser()); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("err = %v, want ErrJWTInvalid", err)
	}
	if _, err := svc.ParseAccessToken("lo-que-sea"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("err = %v, want ErrJWTInvalid", err)
	}
}
