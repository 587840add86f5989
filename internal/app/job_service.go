package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/peterayad-eng/nexus-job-board-api/internal/authz"
	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/company"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/job"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/taxonomy"
)

type JobService struct {
	jobs      job.Repository
	companies company.Repository
	terms     taxonomy.Repository
}

func NewJobService(jobs job.Repository, companies company.Repository, terms taxonomy.Repository) *JobService {
	return &JobService{jobs: jobs, companies: companies, terms: terms}
}

type JobInput struct {
	Title       string
	Description string
	CompanyID   common.UUID
	Location    string
	Type        job.Type
	SalaryRange string
	CategoryIDs []common.UUID
	SkillIDs    []common.UUID
	IsActive    *bool
}

func (s *JobService) Create(ctx context.Context, p authz.Principal, input JobInput) (*job.Job, error) {
	c, err := s.companies.GetByID(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(p, authz.ActionCreate, authz.ForNewJob(*c)); err != nil {
		return nil, err
	}
	if err := s.validateJobInput(ctx, input); err != nil {
		return nil, err
	}
	j := job.Job{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		CompanyID:   c.ID,
		PostedBy:    p.ID,
		Location:    strings.TrimSpace(input.Location),
		Type:        input.Type,
		SalaryRange: strings.TrimSpace(input.SalaryRange),
		CategoryIDs: input.CategoryIDs,
		SkillIDs:    input.SkillIDs,
		IsActive:    true,
	}
	if input.IsActive != nil {
		j.IsActive = *input.IsActive
	}
	return s.jobs.Create(ctx, j)
}

// Get returns the job when it is publicly visible; inactive jobs are only
// visible to their poster, the company's effective managers, and admins.
func (s *JobService) Get(ctx context.Context, p authz.Principal, id common.UUID) (*job.Job, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := s.companies.GetByID(ctx, j.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(p, authz.ActionRead, authz.ForJob(*j, *c)); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *JobService) ListActive(ctx context.Context, filter job.Filter) ([]job.Job, error) {
	filter.Limit = clampLimit(filter.Limit)
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, common.NewValidationError("invalid filter", map[string]string{"job_type": "unknown job type"})
	}
	return s.jobs.ListActive(ctx, filter)
}

func (s *JobService) ListAll(ctx context.Context, p authz.Principal, limit, offset int) ([]job.Job, error) {
	if err := authz.Authorize(p, authz.ActionReadListAll, authz.ForClass(authz.KindJob)); err != nil {
		return nil, err
	}
	return s.jobs.ListAll(ctx, clampLimit(limit), offset)
}

// ListByCompany shows everyone the active postings; effective managers and
// admins also see inactive ones.
func (s *JobService) ListByCompany(ctx context.Context, p authz.Principal, companyID common.UUID) ([]job.Job, error) {
	c, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	activeOnly := !p.IsAdmin() && !c.IsEffectiveManager(p.ID)
	return s.jobs.ListByCompany(ctx, companyID, activeOnly)
}

func (s *JobService) Update(ctx context.Context, p authz.Principal, id common.UUID, input JobInput) (*job.Job, error) {
	current, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := s.companies.GetByID(ctx, current.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(p, authz.ActionUpdate, authz.ForJob(*current, *c)); err != nil {
		return nil, err
	}
	input.CompanyID = current.CompanyID
	if err := s.validateJobInput(ctx, input); err != nil {
		return nil, err
	}
	current.Title = strings.TrimSpace(input.Title)
	current.Description = strings.TrimSpace(input.Description)
	current.Location = strings.TrimSpace(input.Location)
	current.Type = input.Type
	current.SalaryRange = strings.TrimSpace(input.SalaryRange)
	current.CategoryIDs = input.CategoryIDs
	current.SkillIDs = input.SkillIDs
	if input.IsActive != nil {
		current.IsActive = *input.IsActive
	}
	return s.jobs.Update(ctx, *current)
}

func (s *JobService) Delete(ctx context.Context, p authz.Principal, id common.UUID) error {
	current, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c, err := s.companies.GetByID(ctx, current.CompanyID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(p, authz.ActionDelete, authz.ForJob(*current, *c)); err != nil {
		return err
	}
	return s.jobs.Delete(ctx, id)
}

func (s *JobService) validateJobInput(ctx context.Context, input JobInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(input.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(input.Description) == "" {
		fields["description"] = "description is required"
	}
	if strings.TrimSpace(input.Location) == "" {
		fields["location"] = "location is required"
	}
	if !input.Type.Valid() {
		fields["job_type"] = "job type must be full_time, part_time, contract, internship, or remote"
	}
	for i, id := range input.CategoryIDs {
		if _, err := s.terms.GetByID(ctx, taxonomy.KindCategory, id); err != nil {
			if common.Is(err, common.CodeNotFound) {
				fields[fmt.Sprintf("categories[%d]", i)] = "category does not exist"
				continue
			}
			return err
		}
	}
	for i, id := range input.SkillIDs {
		if _, err := s.terms.GetByID(ctx, taxonomy.KindSkill, id); err != nil {
			if common.Is(err, common.CodeNotFound) {
				fields[fmt.Sprintf("required_skills[%d]", i)] = "skill does not exist"
				continue
			}
			return err
		}
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid job", fields)
	}
	return nil
}
