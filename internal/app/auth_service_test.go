package app

import (
	"context"
	"testing"
	"time"

	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/user"
	"github.com/peterayad-eng/nexus-job-board-api/internal/security"
)

func newAuthService(users user.Repository) *AuthService {
	return NewAuthService(users, security.NewJWTProvider("secret"), nil, time.Minute, time.Hour)
}

func TestRegister_DefaultsToJobSeeker(t *testing.T) {
	users := newFakeUserRepo()
	service := newAuthService(users)

	account, err := service.Register(context.Background(), RegisterInput{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if account.Role != user.RoleJobSeeker {
		t.Fatalf("expected job_seeker, got %s", account.Role)
	}
	if !account.IsActive {
		t.Fatal("expected new account to be active")
	}
	if account.PasswordHash == "correct horse" || account.PasswordHash == "" {
		t.Fatal("expected password to be hashed")
	}
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	users := newFakeUserRepo()
	service := newAuthService(users)

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "mallory",
		Email:    "mallory@example.com",
		Password: "correct horse",
		Role:     "admin",
	})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegister_WeakInputCollectsFieldErrors(t *testing.T) {
	users := newFakeUserRepo()
	service := newAuthService(users)

	_, err := service.Register(context.Background(), RegisterInput{Username: "ab", Email: "nope", Password: "short"})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	users := newFakeUserRepo()
	service := newAuthService(users)
	if _, err := service.Register(context.Background(), RegisterInput{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "correct horse",
		Role:     "employer",
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	pair, account, err := service.Login(context.Background(), "maria", "correct horse")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}
	if account.Role != user.RoleEmployer {
		t.Fatalf("expected employer, got %s", account.Role)
	}
}

func TestLogin_WrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	users := newFakeUserRepo()
	service := newAuthService(users)
	if _, err := service.Register(context.Background(), RegisterInput{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "correct horse",
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	_, _, wrongPass := service.Login(context.Background(), "maria", "wrong")
	_, _, unknown := service.Login(context.Background(), "ghost", "wrong")
	if !common.Is(wrongPass, common.CodeUnauthorized) || !common.Is(unknown, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for both, got %v and %v", wrongPass, unknown)
	}
}

func TestLogin_DisabledAccount(t *testing.T) {
	users := newFakeUserRepo()
	service := newAuthService(users)
	account, err := service.Register(context.Background(), RegisterInput{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := users.SetActive(context.Background(), account.ID, false); err != nil {
		t.Fatalf("disable user: %v", err)
	}

	_, _, err = service.Login(context.Background(), "maria", "correct horse")
	if !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	users := newFakeUserRepo()
	service := newAuthService(users)
	if _, err := service.Register(context.Background(), RegisterInput{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "correct horse",
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	pair, _, err := service.Login(context.Background(), "maria", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	next, account, err := service.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if next.AccessToken == "" {
		t.Fatal("expected a new access token")
	}
	if account.Username != "maria" {
		t.Fatalf("expected maria, got %s", account.Username)
	}
	// Access tokens must not pass as refresh tokens.
	if _, _, err := service.Refresh(context.Background(), pair.AccessToken); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
