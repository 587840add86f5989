package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/application"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/company"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/job"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/taxonomy"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/user"
)

type fakeUserRepo struct {
	mu         sync.Mutex
	byID       map[common.UUID]*user.User
	byUsername map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       make(map[common.UUID]*user.User),
		byUsername: make(map[string]*user.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUsername[account.Username]; ok {
		return nil, common.NewError(common.CodeConflict, "username already taken", nil)
	}
	account.ID = common.NewUUID()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	stored := account
	r.byID[account.ID] = &stored
	r.byUsername[account.Username] = &stored
	return cloneUser(&stored), nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	return cloneUser(account), nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byUsername[username]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	return cloneUser(account), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.byID[account.ID]
	if stored == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	account.UpdatedAt = time.Now().UTC()
	*stored = account
	return cloneUser(stored), nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	delete(r.byUsername, account.Username)
	delete(r.byID, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]user.User, 0, len(r.byID))
	for _, account := range r.byID {
		items = append(items, *account)
	}
	return items, nil
}

func (r *fakeUserRepo) Search(ctx context.Context, query string, limit, offset int) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []user.User
	for _, account := range r.byID {
		if strings.Contains(account.Username, query) || strings.Contains(account.Email, query) {
			items = append(items, *account)
		}
	}
	return items, nil
}

func (r *fakeUserRepo) SetActive(ctx context.Context, id common.UUID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	account.IsActive = active
	return nil
}

func (r *fakeUserRepo) StatsByID(ctx context.Context, id common.UUID) (*user.Stats, error) {
	return &user.Stats{}, nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID), nil
}

func cloneUser(account *user.User) *user.User {
	clone := *account
	return &clone
}

type fakeCompanyRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*company.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{byID: make(map[common.UUID]*company.Company)}
}

func (r *fakeCompanyRepo) Create(ctx context.Context, c company.Company) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if strings.EqualFold(existing.Name, c.Name) {
			return nil, common.NewError(common.CodeConflict, "company with this name already exists", nil)
		}
	}
	c.ID = common.NewUUID()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	stored := c
	r.byID[c.ID] = &stored
	return cloneCompany(&stored), nil
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id common.UUID) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byID[id]
	if c == nil {
		return nil, common.NewError(common.CodeNotFound, "company not found", nil)
	}
	return cloneCompany(c), nil
}

func (r *fakeCompanyRepo) Update(ctx context.Context, c company.Company) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.byID[c.ID]
	if stored == nil {
		return nil, common.NewError(common.CodeNotFound, "company not found", nil)
	}
	c.Managers = stored.Managers
	c.UpdatedAt = time.Now().UTC()
	*stored = c
	return cloneCompany(stored), nil
}

func (r *fakeCompanyRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID[id] == nil {
		return common.NewError(common.CodeNotFound, "company not found", nil)
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeCompanyRepo) List(ctx context.Context, search string, limit, offset int) ([]company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]company.Company, 0, len(r.byID))
	for _, c := range r.byID {
		items = append(items, *c)
	}
	return items, nil
}

func (r *fakeCompanyRepo) ListSummaries(ctx context.Context, search string, limit, offset int) ([]company.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]company.Summary, 0, len(r.byID))
	for _, c := range r.byID {
		items = append(items, company.Summary{ID: c.ID, Name: c.Name, Location: c.Location, Website: c.Website, ManagerCount: len(c.Managers) + 1})
	}
	return items, nil
}

func (r *fakeCompanyRepo) AddManager(ctx context.Context, companyID, userID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byID[companyID]
	if c == nil {
		return common.NewError(common.CodeNotFound, "company not found", nil)
	}
	for _, id := range c.Managers {
		if id == userID {
			return nil
		}
	}
	c.Managers = append(c.Managers, userID)
	return nil
}

func (r *fakeCompanyRepo) RemoveManager(ctx context.Context, companyID, userID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byID[companyID]
	if c == nil {
		return common.NewError(common.CodeNotFound, "company not found", nil)
	}
	for i, id := range c.Managers {
		if id == userID {
			c.Managers = append(c.Managers[:i], c.Managers[i+1:]...)
			return nil
		}
	}
	return common.NewError(common.CodeNotFound, "manager not found", nil)
}

func cloneCompany(c *company.Company) *company.Company {
	clone := *c
	clone.Managers = append([]common.UUID(nil), c.Managers...)
	return &clone
}

type fakeJobRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*job.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{byID: make(map[common.UUID]*job.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	stored := j
	r.byID[j.ID] = &stored
	return cloneJob(&stored), nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j := r.byID[id]
	if j == nil {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return cloneJob(j), nil
}

func (r *fakeJobRepo) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.byID[j.ID]
	if stored == nil {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	j.UpdatedAt = time.Now().UTC()
	*stored = j
	return cloneJob(stored), nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID[id] == nil {
		return common.NewError(common.CodeNotFound, "job not found", nil)
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeJobRepo) ListActive(ctx context.Context, filter job.Filter) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Job
	for _, j := range r.byID {
		if j.IsActive {
			items = append(items, *j)
		}
	}
	return items, nil
}

func (r *fakeJobRepo) ListAll(ctx context.Context, limit, offset int) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]job.Job, 0, len(r.byID))
	for _, j := range r.byID {
		items = append(items, *j)
	}
	return items, nil
}

func (r *fakeJobRepo) ListByCompany(ctx context.Context, companyID common.UUID, activeOnly bool) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Job
	for _, j := range r.byID {
		if j.CompanyID != companyID {
			continue
		}
		if activeOnly && !j.IsActive {
			continue
		}
		items = append(items, *j)
	}
	return items, nil
}

func cloneJob(j *job.Job) *job.Job {
	clone := *j
	clone.CategoryIDs = append([]common.UUID(nil), j.CategoryIDs...)
	clone.SkillIDs = append([]common.UUID(nil), j.SkillIDs...)
	return &clone
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*application.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{byID: make(map[common.UUID]*application.Application)}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.JobID == app.JobID && existing.ApplicantID == app.ApplicantID {
			return nil, common.NewError(common.CodeConflict, "you have already applied for this job", nil)
		}
	}
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.AppliedAt = now
	app.UpdatedAt = now
	stored := app
	r.byID[app.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.byID[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	clone := *app
	return &clone, nil
}

func (r *fakeApplicationRepo) FindByJobAndApplicant(ctx context.Context, jobID, applicantID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.byID {
		if app.JobID == jobID && app.ApplicantID == applicantID {
			clone := *app
			return &clone, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, status application.Status, notes string) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.byID[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Status = status
	if notes != "" {
		app.Notes = notes
	}
	app.UpdatedAt = time.Now().UTC()
	clone := *app
	return &clone, nil
}

func (r *fakeApplicationRepo) ListByApplicant(ctx context.Context, applicantID common.UUID, status application.Status) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.byID {
		if app.ApplicantID != applicantID {
			continue
		}
		if status != "" && app.Status != status {
			continue
		}
		items = append(items, *app)
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.byID {
		if app.JobID == jobID {
			items = append(items, *app)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByCompany(ctx context.Context, companyID common.UUID, status application.Status) ([]application.Application, error) {
	return nil, nil
}

func (r *fakeApplicationRepo) ListAll(ctx context.Context, limit, offset int) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]application.Application, 0, len(r.byID))
	for _, app := range r.byID {
		items = append(items, *app)
	}
	return items, nil
}

func (r *fakeApplicationRepo) CountByJob(ctx context.Context, jobID common.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, app := range r.byID {
		if app.JobID == jobID {
			count++
		}
	}
	return count, nil
}

type fakeTaxonomyRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*taxonomy.Term
}

func newFakeTaxonomyRepo() *fakeTaxonomyRepo {
	return &fakeTaxonomyRepo{byID: make(map[common.UUID]*taxonomy.Term)}
}

func (r *fakeTaxonomyRepo) Create(ctx context.Context, term taxonomy.Term) (*taxonomy.Term, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Kind == term.Kind && strings.EqualFold(existing.Name, term.Name) {
			return nil, common.NewError(common.CodeConflict, "term already exists", nil)
		}
	}
	term.ID = common.NewUUID()
	term.CreatedAt = time.Now().UTC()
	stored := term
	r.byID[term.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *fakeTaxonomyRepo) GetByID(ctx context.Context, kind taxonomy.Kind, id common.UUID) (*taxonomy.Term, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	term := r.byID[id]
	if term == nil || term.Kind != kind {
		return nil, common.NewError(common.CodeNotFound, string(kind)+" not found", nil)
	}
	clone := *term
	return &clone, nil
}

func (r *fakeTaxonomyRepo) GetByName(ctx context.Context, kind taxonomy.Kind, name string) (*taxonomy.Term, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, term := range r.byID {
		if term.Kind == kind && strings.EqualFold(term.Name, name) {
			clone := *term
			return &clone, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, string(kind)+" not found", nil)
}

func (r *fakeTaxonomyRepo) Update(ctx context.Context, term taxonomy.Term) (*taxonomy.Term, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.byID[term.ID]
	if stored == nil {
		return nil, common.NewError(common.CodeNotFound, "term not found", nil)
	}
	*stored = term
	clone := *stored
	return &clone, nil
}

func (r *fakeTaxonomyRepo) Delete(ctx context.Context, kind taxonomy.Kind, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	term := r.byID[id]
	if term == nil || term.Kind != kind {
		return common.NewError(common.CodeNotFound, string(kind)+" not found", nil)
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeTaxonomyRepo) List(ctx context.Context, kind taxonomy.Kind) ([]taxonomy.Term, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []taxonomy.Term
	for _, term := range r.byID {
		if term.Kind == kind {
			items = append(items, *term)
		}
	}
	return items, nil
}

func (r *fakeTaxonomyRepo) ListWithJobs(ctx context.Context, kind taxonomy.Kind) ([]taxonomy.Term, error) {
	return r.List(ctx, kind)
}
