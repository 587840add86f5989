package app

import (
	"context"
	"testing"

	"github.com/peterayad-eng/nexus-job-board-api/internal/authz"
	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/company"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/job"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/taxonomy"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/user"
)

type jobWorld struct {
	service   *JobService
	jobs      *fakeJobRepo
	companies *fakeCompanyRepo
	terms     *fakeTaxonomyRepo

	owner    authz.Principal
	manager  authz.Principal
	employer authz.Principal
	seeker   authz.Principal
	admin    authz.Principal

	company *company.Company
}

func newJobWorld(t *testing.T) *jobWorld {
	t.Helper()
	jobs := newFakeJobRepo()
	companies := newFakeCompanyRepo()
	terms := newFakeTaxonomyRepo()

	owner := authz.Principal{ID: common.NewUUID(), Role: user.RoleEmployer}
	manager := authz.Principal{ID: common.NewUUID(), Role: user.RoleEmployer}
	employer := authz.Principal{ID: common.NewUUID(), Role: user.RoleEmployer}
	seeker := authz.Principal{ID: common.NewUUID(), Role: user.RoleJobSeeker}
	admin := authz.Principal{ID: common.NewUUID(), Role: user.RoleAdmin}

	c, err := companies.Create(context.Background(), company.Company{Name: "Acme", Description: "widgets", CreatedBy: owner.ID})
	if err != nil {
		t.Fatalf("seed company: %v", err)
	}
	if err := companies.AddManager(context.Background(), c.ID, manager.ID); err != nil {
		t.Fatalf("seed manager: %v", err)
	}
	c, err = companies.GetByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("reload company: %v", err)
	}
	return &jobWorld{
		service:   NewJobService(jobs, companies, terms),
		jobs:      jobs,
		companies: companies,
		terms:     terms,
		owner:     owner,
		manager:   manager,
		employer:  employer,
		seeker:    seeker,
		admin:     admin,
		company:   c,
	}
}

func validJobInput(companyID common.UUID) JobInput {
	return JobInput{
		Title:       "Backend Engineer",
		Description: "Go services",
		CompanyID:   companyID,
		Location:    "Remote",
		Type:        job.TypeFullTime,
	}
}

func TestJobCreate_EffectiveManagersOnly(t *testing.T) {
	w := newJobWorld(t)
	input := validJobInput(w.company.ID)

	if _, err := w.service.Create(context.Background(), w.owner, input); err != nil {
		t.Fatalf("owner create: %v", err)
	}
	if _, err := w.service.Create(context.Background(), w.manager, input); err != nil {
		t.Fatalf("manager create: %v", err)
	}
	if _, err := w.service.Create(context.Background(), w.employer, input); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for outside employer, got %v", err)
	}
	if _, err := w.service.Create(context.Background(), w.seeker, input); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for job seeker, got %v", err)
	}
}

func TestJobCreate_RecordsPoster(t *testing.T) {
	w := newJobWorld(t)

	created, err := w.service.Create(context.Background(), w.manager, validJobInput(w.company.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.PostedBy != w.manager.ID {
		t.Fatal("expected posted_by to be the acting manager")
	}
	if !created.IsActive {
		t.Fatal("expected new job to default to active")
	}
}

func TestJobCreate_UnknownTaxonomyRejected(t *testing.T) {
	w := newJobWorld(t)
	input := validJobInput(w.company.ID)
	input.SkillIDs = []common.UUID{common.NewUUID()}

	_, err := w.service.Create(context.Background(), w.owner, input)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	skill, err := w.terms.Create(context.Background(), taxonomy.Term{Kind: taxonomy.KindSkill, Name: "Go"})
	if err != nil {
		t.Fatalf("seed skill: %v", err)
	}
	input.SkillIDs = []common.UUID{skill.ID}
	if _, err := w.service.Create(context.Background(), w.owner, input); err != nil {
		t.Fatalf("create with known skill: %v", err)
	}
}

func TestJobGet_InactiveConcealedFromOutsiders(t *testing.T) {
	w := newJobWorld(t)
	inactive := false
	input := validJobInput(w.company.ID)
	input.IsActive = &inactive
	created, err := w.service.Create(context.Background(), w.owner, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := w.service.Get(context.Background(), w.seeker, created.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := w.service.Get(context.Background(), authz.Principal{}, created.ID); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for anonymous, got %v", err)
	}
	if _, err := w.service.Get(context.Background(), w.manager, created.ID); err != nil {
		t.Fatalf("manager read: %v", err)
	}
	if _, err := w.service.Get(context.Background(), w.admin, created.ID); err != nil {
		t.Fatalf("admin read: %v", err)
	}
}

func TestJobListByCompany_OutsidersSeeActiveOnly(t *testing.T) {
	w := newJobWorld(t)
	if _, err := w.service.Create(context.Background(), w.owner, validJobInput(w.company.ID)); err != nil {
		t.Fatalf("create active: %v", err)
	}
	inactive := false
	input := validJobInput(w.company.ID)
	input.Title = "Hidden Posting"
	input.IsActive = &inactive
	if _, err := w.service.Create(context.Background(), w.owner, input); err != nil {
		t.Fatalf("create inactive: %v", err)
	}

	visible, err := w.service.ListByCompany(context.Background(), w.seeker, w.company.ID)
	if err != nil {
		t.Fatalf("seeker list: %v", err)
	}
	if len(visible) != 1 {
		t.Fatalf("expected 1 visible job, got %d", len(visible))
	}
	all, err := w.service.ListByCompany(context.Background(), w.manager, w.company.ID)
	if err != nil {
		t.Fatalf("manager list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 jobs for manager, got %d", len(all))
	}
}

func TestJobUpdate_PosterWithoutManagementKeepsAccess(t *testing.T) {
	w := newJobWorld(t)
	created, err := w.service.Create(context.Background(), w.manager, validJobInput(w.company.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// Poster loses management but remains the poster.
	if err := w.companies.RemoveManager(context.Background(), w.company.ID, w.manager.ID); err != nil {
		t.Fatalf("remove manager: %v", err)
	}

	input := validJobInput(w.company.ID)
	input.Title = "Senior Backend Engineer"
	updated, err := w.service.Update(context.Background(), w.manager, created.ID, input)
	if err != nil {
		t.Fatalf("poster update: %v", err)
	}
	if updated.Title != "Senior Backend Engineer" {
		t.Fatalf("expected updated title, got %s", updated.Title)
	}
}

func TestJobDelete_OutsiderForbidden(t *testing.T) {
	w := newJobWorld(t)
	created, err := w.service.Create(context.Background(), w.owner, validJobInput(w.company.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := w.service.Delete(context.Background(), w.employer, created.ID); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := w.service.Delete(context.Background(), w.owner, created.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}
