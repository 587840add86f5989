package app

import (
	"context"
	"strings"

	"github.com/peterayad-eng/nexus-job-board-api/internal/authz"
	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/company"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/user"
)

type CompanyService struct {
	companies company.Repository
	users     user.Repository
}

func NewCompanyService(companies company.Repository, users user.Repository) *CompanyService {
	return &CompanyService{companies: companies, users: users}
}

type CompanyInput struct {
	Name        string
	Description string
	Location    string
	Website     string
	Email       string
}

func (s *CompanyService) Create(ctx context.Context, p authz.Principal, input CompanyInput) (*company.Company, error) {
	if err := authz.Authorize(p, authz.ActionCreate, authz.ForClass(authz.KindCompany)); err != nil {
		return nil, err
	}
	if err := validateCompanyInput(input); err != nil {
		return nil, err
	}
	// The creator becomes the owner and is never inserted into the
	// managers set; management rights derive from ownership.
	c := company.Company{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Location:    strings.TrimSpace(input.Location),
		Website:     strings.TrimSpace(input.Website),
		Email:       strings.TrimSpace(input.Email),
		CreatedBy:   p.ID,
	}
	return s.companies.Create(ctx, c)
}

func (s *CompanyService) Get(ctx context.Context, id common.UUID) (*company.Company, error) {
	return s.companies.GetByID(ctx, id)
}

func (s *CompanyService) List(ctx context.Context, search string, limit, offset int) ([]company.Summary, error) {
	return s.companies.ListSummaries(ctx, strings.TrimSpace(search), clampLimit(limit), offset)
}

func (s *CompanyService) Update(ctx context.Context, p authz.Principal, id common.UUID, input CompanyInput) (*company.Company, error) {
	current, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(p, authz.ActionUpdate, authz.ForCompany(*current)); err != nil {
		return nil, err
	}
	if err := validateCompanyInput(input); err != nil {
		return nil, err
	}
	current.Name = strings.TrimSpace(input.Name)
	current.Description = strings.TrimSpace(input.Description)
	current.Location = strings.TrimSpace(input.Location)
	current.Website = strings.TrimSpace(input.Website)
	current.Email = strings.TrimSpace(input.Email)
	return s.companies.Update(ctx, *current)
}

func (s *CompanyService) Delete(ctx context.Context, p authz.Principal, id common.UUID) error {
	current, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(p, authz.ActionDelete, authz.ForCompany(*current)); err != nil {
		return err
	}
	return s.companies.Delete(ctx, id)
}

func (s *CompanyService) AddManager(ctx context.Context, p authz.Principal, companyID, userID common.UUID) (*company.Company, error) {
	current, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(p, authz.ActionManageAdd, authz.ForCompany(*current)); err != nil {
		return nil, err
	}
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewValidationError("invalid manager", map[string]string{"user_id": "user does not exist"})
		}
		return nil, err
	}
	if !account.IsEmployer() {
		return nil, common.NewValidationError("invalid manager", map[string]string{"user_id": "only employer accounts can manage a company"})
	}
	if current.IsOwner(userID) {
		return nil, common.NewValidationError("invalid manager", map[string]string{"user_id": "the owner already manages the company"})
	}
	if current.IsEffectiveManager(userID) {
		return nil, common.NewValidationError("invalid manager", map[string]string{"user_id": "user is already a manager"})
	}
	if err := s.companies.AddManager(ctx, companyID, userID); err != nil {
		return nil, err
	}
	return s.companies.GetByID(ctx, companyID)
}

func (s *CompanyService) RemoveManager(ctx context.Context, p authz.Principal, companyID, userID common.UUID) (*company.Company, error) {
	current, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(p, authz.ActionManageRemove, authz.ForCompany(*current)); err != nil {
		return nil, err
	}
	// The owner's management rights are derived, not stored, so they can
	// never be removed.
	if current.IsOwner(userID) {
		return nil, common.NewValidationError("invalid manager", map[string]string{"user_id": "the company owner cannot be removed"})
	}
	if !current.IsEffectiveManager(userID) {
		return nil, common.NewValidationError("invalid manager", map[string]string{"user_id": "user is not a manager of this company"})
	}
	if err := s.companies.RemoveManager(ctx, companyID, userID); err != nil {
		return nil, err
	}
	return s.companies.GetByID(ctx, companyID)
}

func validateCompanyInput(input CompanyInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(input.Description) == "" {
		fields["description"] = "description is required"
	}
	if email := strings.TrimSpace(input.Email); email != "" && !strings.Contains(email, "@") {
		fields["contact_email"] = "a valid email is required"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid company", fields)
	}
	return nil
}
