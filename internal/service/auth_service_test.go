package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/aquaflow/ticketing/internal/config"
	"github.com/aquaflow/ticketing/internal/domain"
	apperrors "github.com/aquaflow/ticketing/pkg/util/errorutil"
)

func newAuthFixture(t *testing.T) (*AuthService, *domain.User) {
	t.Helper()
	repo := newFakeUserRepo()
	users := NewUserService(repo, bcrypt.MinCost)
	created, err := users.Create(context.Background(), UserCreateInput{
		Email:    "desk@example.com",
		Name:     "Front Desk",
		Role:     domain.RoleReceptionist,
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	svc := NewAuthService(config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60}, repo)
	return svc, created
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, seeded := newAuthFixture(t)

	user, token, _, err := svc.Login(context.Background(), "desk@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != seeded.ID {
		t.Fatalf("logged in as %q, want %q", user.ID, seeded.ID)
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != seeded.ID || claims.Role != domain.RoleReceptionist {
		t.Fatalf("claims = %+v, want seeded identity", claims)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, _, err := svc.Login(context.Background(), "desk@example.com", "wrong")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "s3cret")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	users := NewUserService(repo, bcrypt.MinCost)
	created, err := users.Create(context.Background(), UserCreateInput{
		Email: "desk@example.com", Name: "Front Desk", Role: domain.RoleReceptionist, Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := users.Deactivate(context.Background(), created.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	svc := NewAuthService(config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60}, repo)
	_, _, _, err = svc.Login(context.Background(), "desk@example.com", "s3cret")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED for deactivated account, got %v", err)
	}
}
