package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/user"
	"github.com/peterayad-eng/nexus-job-board-api/internal/security"
)

// AuthService handles registration, login, and token refresh for the HTTP
// handlers.
type AuthService struct {
	users       user.Repository
	jwtProvider *security.JWTProvider
	logger      Logger
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

func NewAuthService(users user.Repository, jwtProvider *security.JWTProvider, logger Logger, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		users:       users,
		jwtProvider: jwtProvider,
		logger:      logger,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
	}
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Role      string
	FirstName string
	LastName  string
	Phone     string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*user.User, error) {
	fields := map[string]string{}
	username := strings.TrimSpace(input.Username)
	if len(username) < 3 {
		fields["username"] = "username must be at least 3 characters"
	}
	email := strings.TrimSpace(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "a valid email is required"
	}
	if len(input.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	role, err := normalizeRegistrationRole(input.Role)
	if err != nil {
		fields["role"] = "role must be job_seeker or employer"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid registration", fields)
	}
	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	account := user.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
	}
	created, err := s.users.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("user registered user_id=%s role=%s", created.ID, created.Role))
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*security.TokenPair, *user.User, error) {
	account, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
		}
		return nil, nil, err
	}
	if !security.CheckPassword(account.PasswordHash, password) {
		s.logInfo(fmt.Sprintf("login failed user_id=%s", account.ID))
		return nil, nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
	}
	if !account.IsActive {
		return nil, nil, common.NewError(common.CodeUnauthorized, "account is disabled", nil)
	}
	pair, err := s.issueTokens(account)
	if err != nil {
		return nil, nil, err
	}
	s.logInfo(fmt.Sprintf("user logged in user_id=%s", account.ID))
	return pair, account, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*security.TokenPair, *user.User, error) {
	claims, err := s.jwtProvider.ParseRefresh(refreshToken)
	if err != nil {
		return nil, nil, common.NewError(common.CodeUnauthorized, "invalid refresh token", err)
	}
	userID, err := common.ParseUUID(claims.UserID)
	if err != nil {
		return nil, nil, common.NewError(common.CodeUnauthorized, "invalid refresh token", err)
	}
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, nil, common.NewError(common.CodeUnauthorized, "invalid refresh token", nil)
		}
		return nil, nil, err
	}
	if !account.IsActive {
		return nil, nil, common.NewError(common.CodeUnauthorized, "account is disabled", nil)
	}
	pair, err := s.issueTokens(account)
	if err != nil {
		return nil, nil, err
	}
	return pair, account, nil
}

func (s *AuthService) issueTokens(account *user.User) (*security.TokenPair, error) {
	pair, err := s.jwtProvider.GeneratePair(account.ID, string(account.Role), account.IsStaff, s.accessTTL, s.refreshTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to generate tokens", err)
	}
	return pair, nil
}

// normalizeRegistrationRole rejects self-registration as admin.
func normalizeRegistrationRole(value string) (user.Role, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return user.RoleJobSeeker, nil
	}
	role := user.Role(trimmed)
	if role != user.RoleJobSeeker && role != user.RoleEmployer {
		return "", common.NewValidationError("invalid role", map[string]string{"role": "role must be job_seeker or employer"})
	}
	return role, nil
}

func (s *AuthService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}
