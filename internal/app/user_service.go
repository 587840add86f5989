package app

import (
	"context"
	"strings"

	"github.com/peterayad-eng/nexus-job-board-api/internal/authz"
	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/user"
	"github.com/peterayad-eng/nexus-job-board-api/internal/security"
)

type UserService struct {
	users user.Repository
}

func NewUserService(users user.Repository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Get(ctx context.Context, p authz.Principal, id common.UUID) (*user.User, error) {
	account, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(p, authz.ActionRead, authz.ForUser(*account)); err != nil {
		return nil, err
	}
	return account, nil
}

type ProfileInput struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Phone      *string
	Bio        *string
	Experience *string
	Education  *string
	ResumeURL  *string
}

func (s *UserService) UpdateProfile(ctx context.Context, p authz.Principal, id common.UUID, input ProfileInput) (*user.User, error) {
	account, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(p, authz.ActionUpdate, authz.ForUser(*account)); err != nil {
		return nil, err
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" || !strings.Contains(email, "@") {
			return nil, common.NewValidationError("invalid profile", map[string]string{"email": "a valid email is required"})
		}
		account.Email = email
	}
	applyString(&account.FirstName, input.FirstName)
	applyString(&account.LastName, input.LastName)
	applyString(&account.Phone, input.Phone)
	applyString(&account.Bio, input.Bio)
	applyString(&account.Experience, input.Experience)
	applyString(&account.Education, input.Education)
	applyString(&account.ResumeURL, input.ResumeURL)
	return s.users.Update(ctx, *account)
}

func (s *UserService) ChangePassword(ctx context.Context, p authz.Principal, id common.UUID, current, next string) error {
	account, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(p, authz.ActionUpdate, authz.ForUser(*account)); err != nil {
		return err
	}
	// Admins reset passwords without the current one; owners must prove it.
	if !p.IsAdmin() && !security.CheckPassword(account.PasswordHash, current) {
		return common.NewValidationError("invalid password", map[string]string{"current_password": "current password is incorrect"})
	}
	if len(next) < 8 {
		return common.NewValidationError("invalid password", map[string]string{"new_password": "password must be at least 8 characters"})
	}
	hash, err := security.HashPassword(next)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	account.PasswordHash = hash
	_, err = s.users.Update(ctx, *account)
	return err
}

func (s *UserService) Delete(ctx context.Context, p authz.Principal, id common.UUID) error {
	account, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(p, authz.ActionDelete, authz.ForUser(*account)); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

func (s *UserService) List(ctx context.Context, p authz.Principal, limit, offset int) ([]user.User, error) {
	if err := authz.Authorize(p, authz.ActionReadListAll, authz.ForClass(authz.KindUser)); err != nil {
		return nil, err
	}
	return s.users.List(ctx, clampLimit(limit), offset)
}

func (s *UserService) Search(ctx context.Context, p authz.Principal, query string, limit, offset int) ([]user.User, error) {
	if err := authz.Authorize(p, authz.ActionReadListAll, authz.ForClass(authz.KindUser)); err != nil {
		return nil, err
	}
	return s.users.Search(ctx, strings.TrimSpace(query), clampLimit(limit), offset)
}

// SetActive toggles account activation. This is an admin console operation,
// not a per-resource rule, so it gates on the principal directly.
func (s *UserService) SetActive(ctx context.Context, p authz.Principal, id common.UUID, active bool) error {
	if !p.IsAdmin() {
		return common.NewError(common.CodeForbidden, "insufficient permissions", nil)
	}
	return s.users.SetActive(ctx, id, active)
}

func (s *UserService) Stats(ctx context.Context, p authz.Principal, id common.UUID) (*user.Stats, error) {
	account, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(p, authz.ActionRead, authz.ForUser(*account)); err != nil {
		return nil, err
	}
	return s.users.StatsByID(ctx, id)
}

func applyString(dst *string, value *string) {
	if value != nil {
		*dst = strings.TrimSpace(*value)
	}
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
