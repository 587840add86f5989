package app

import (
	"context"
	"strings"

	"github.com/peterayad-eng/nexus-job-board-api/internal/authz"
	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/application"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/company"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/job"
)

type ApplicationService struct {
	repo      application.Repository
	jobs      job.Repository
	companies company.Repository
}

func NewApplicationService(repo application.Repository, jobs job.Repository, companies company.Repository) *ApplicationService {
	return &ApplicationService{repo: repo, jobs: jobs, companies: companies}
}

func (s *ApplicationService) Apply(ctx context.Context, p authz.Principal, jobID common.UUID, coverLetter, resumeURL string) (*application.Application, error) {
	if err := authz.Authorize(p, authz.ActionCreate, authz.ForClass(authz.KindApplication)); err != nil {
		return nil, err
	}
	if strings.TrimSpace(coverLetter) == "" {
		return nil, common.NewValidationError("invalid application", map[string]string{"cover_letter": "cover letter is required"})
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !j.IsActive {
		return nil, common.NewError(common.CodeValidation, "job is not accepting applications", nil)
	}
	if _, err := s.repo.FindByJobAndApplicant(ctx, jobID, p.ID); err == nil {
		return nil, common.NewError(common.CodeConflict, "you have already applied for this job", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	app := application.Application{
		JobID:       jobID,
		ApplicantID: p.ID,
		CoverLetter: strings.TrimSpace(coverLetter),
		ResumeURL:   strings.TrimSpace(resumeURL),
		Status:      application.StatusApplied,
	}
	return s.repo.Create(ctx, app)
}

func (s *ApplicationService) Get(ctx context.Context, p authz.Principal, id common.UUID) (*application.Application, error) {
	app, j, c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(p, authz.ActionRead, authz.ForApplication(*app, *j, *c)); err != nil {
		return nil, err
	}
	return app, nil
}

// UpdateStatus advances an application through its lifecycle. Authorization
// runs first; transition legality is a domain rule and binds admins too.
func (s *ApplicationService) UpdateStatus(ctx context.Context, p authz.Principal, id common.UUID, status application.Status, notes string) (*application.Application, error) {
	app, j, c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(p, authz.ActionUpdate, authz.ForApplication(*app, *j, *c)); err != nil {
		return nil, err
	}
	next := application.NormalizeStatus(status)
	if !application.KnownStatus(next) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be applied, reviewed, interview, rejected, or accepted"})
	}
	if err := application.Transition(app.Status, next); err != nil {
		return nil, common.NewError(common.CodeValidation, err.Error(), err)
	}
	return s.repo.UpdateStatus(ctx, id, next, strings.TrimSpace(notes))
}

func (s *ApplicationService) ListMine(ctx context.Context, p authz.Principal, status application.Status) ([]application.Application, error) {
	if !p.Authenticated() {
		return nil, common.NewError(common.CodeUnauthorized, "authentication required", nil)
	}
	if status != "" {
		status = application.NormalizeStatus(status)
		if !application.KnownStatus(status) {
			return nil, common.NewValidationError("invalid filter", map[string]string{"status": "unknown status"})
		}
	}
	return s.repo.ListByApplicant(ctx, p.ID, status)
}

func (s *ApplicationService) ListByJob(ctx context.Context, p authz.Principal, jobID common.UUID) ([]application.Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	c, err := s.companies.GetByID(ctx, j.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(p, authz.ActionRead, authz.ForJobApplications(*j, *c)); err != nil {
		return nil, err
	}
	return s.repo.ListByJob(ctx, jobID)
}

func (s *ApplicationService) ListByCompany(ctx context.Context, p authz.Principal, companyID common.UUID, status application.Status) ([]application.Application, error) {
	c, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(p, authz.ActionRead, authz.ForCompanyApplications(*c)); err != nil {
		return nil, err
	}
	if status != "" {
		status = application.NormalizeStatus(status)
		if !application.KnownStatus(status) {
			return nil, common.NewValidationError("invalid filter", map[string]string{"status": "unknown status"})
		}
	}
	return s.repo.ListByCompany(ctx, companyID, status)
}

func (s *ApplicationService) ListAll(ctx context.Context, p authz.Principal, limit, offset int) ([]application.Application, error) {
	if err := authz.Authorize(p, authz.ActionReadListAll, authz.ForClass(authz.KindApplication)); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx, clampLimit(limit), offset)
}

func (s *ApplicationService) CountByJob(ctx context.Context, p authz.Principal, jobID common.UUID) (int, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return 0, err
	}
	c, err := s.companies.GetByID(ctx, j.CompanyID)
	if err != nil {
		return 0, err
	}
	// The count is as visible as the job itself.
	if err := authz.Authorize(p, authz.ActionRead, authz.ForJob(*j, *c)); err != nil {
		return 0, err
	}
	return s.repo.CountByJob(ctx, jobID)
}

func (s *ApplicationService) load(ctx context.Context, id common.UUID) (*application.Application, *job.Job, *company.Company, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	j, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, nil, nil, err
	}
	c, err := s.companies.GetByID(ctx, j.CompanyID)
	if err != nil {
		return nil, nil, nil, err
	}
	return app, j, c, nil
}
