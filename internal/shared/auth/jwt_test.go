package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("JWT_SECRET", "test-secret")

	claims := Claims{
		Actor:      ActorFacilityUser,
		FullName:   "أحمد محمد العزي",
		FacilityID: "fac-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "user-1",
		},
	}
	token, err := Sign(claims, time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	got, err := Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.Subject != "user-1" || got.Actor != ActorFacilityUser || got.FacilityID != "fac-1" {
		t.Fatalf("unexpected claims %+v", got)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("JWT_SECRET", "test-secret")

	claims := Claims{
		Actor: ActorAdmin,
		Roles: []string{"ADMIN"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "admin-1",
		},
	}
	token, err := Sign(claims, time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, err := Verify(token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := Verify("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("JWT_SECRET", "test-secret")

	claims := Claims{
		Actor: ActorAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "admin-1",
		},
	}
	now := time.Now().UTC()
	claims.IssuedAt = jwt.NewNumericDate(now.Add(-2 * time.Hour))
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Hour))

	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := raw.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	if _, err := Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestHasRole(t *testing.T) {
	claims := Claims{Roles: []string{"ADMIN", "INSPECTOR"}}
	if !claims.HasRole("INSPECTOR") {
		t.Fatalf("expected INSPECTOR role")
	}
	if claims.HasRole("FINANCE") {
		t.Fatalf("did not expect FINANCE role")
	}
}

func TestProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")

	claims := Claims{
		Actor: ActorAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "admin-1",
		},
	}
	if _, err := Sign(claims, time.Hour); err == nil {
		t.Fatalf("expected error without JWT_SECRET in production")
	}
}
