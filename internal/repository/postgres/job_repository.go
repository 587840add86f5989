package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/job"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobSelect = `SELECT j.id, j.title, j.description, j.company_id, j.posted_by, j.location, j.job_type,
	j.salary_range, j.category_ids, j.skill_ids, j.is_active,
	(SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id), j.created_at, j.updated_at
	FROM jobs j`

func scanJob(row interface{ Scan(...any) error }) (*job.Job, error) {
	var j job.Job
	var categories, skills []string
	err := row.Scan(&j.ID, &j.Title, &j.Description, &j.CompanyID, &j.PostedBy, &j.Location,
		&j.Type, &j.SalaryRange, pq.Array(&categories), pq.Array(&skills), &j.IsActive,
		&j.ApplicationCount, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	j.CategoryIDs = toUUIDs(categories)
	j.SkillIDs = toUUIDs(skills)
	return &j, nil
}

func toUUIDs(values []string) []common.UUID {
	ids := make([]common.UUID, 0, len(values))
	for _, value := range values {
		ids = append(ids, common.UUID(value))
	}
	return ids
}

func fromUUIDs(ids []common.UUID) []string {
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, id.String())
	}
	return values
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (id, title, description, company_id, posted_by, location, job_type, salary_range, category_ids, skill_ids, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		j.ID, j.Title, j.Description, j.CompanyID, j.PostedBy, j.Location, j.Type, j.SalaryRange,
		pq.Array(fromUUIDs(j.CategoryIDs)), pq.Array(fromUUIDs(j.SkillIDs)), j.IsActive, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, jobSelect+` WHERE j.id = $1`, id)
	item, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return item, nil
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	j.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET title = $1, description = $2, location = $3, job_type = $4,
		salary_range = $5, category_ids = $6, skill_ids = $7, is_active = $8, updated_at = $9 WHERE id = $10`,
		j.Title, j.Description, j.Location, j.Type, j.SalaryRange,
		pq.Array(fromUUIDs(j.CategoryIDs)), pq.Array(fromUUIDs(j.SkillIDs)), j.IsActive, j.UpdatedAt, j.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, j.ID)
}

func (r *JobRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete job", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	return nil
}

func (r *JobRepository) ListActive(ctx context.Context, filter job.Filter) ([]job.Job, error) {
	query := jobSelect + ` WHERE j.is_active`
	args := []any{}
	next := 1
	if filter.Search != "" {
		query += fmt.Sprintf(` AND (j.title ILIKE $%d OR j.description ILIKE $%d OR j.location ILIKE $%d)`, next, next, next)
		args = append(args, "%"+filter.Search+"%")
		next++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(` AND j.job_type = $%d`, next)
		args = append(args, filter.Type)
		next++
	}
	if filter.Location != "" {
		query += fmt.Sprintf(` AND j.location ILIKE $%d`, next)
		args = append(args, "%"+filter.Location+"%")
		next++
	}
	if !filter.CompanyID.IsZero() {
		query += fmt.Sprintf(` AND j.company_id = $%d`, next)
		args = append(args, filter.CompanyID)
		next++
	}
	query += fmt.Sprintf(` ORDER BY j.created_at DESC LIMIT $%d OFFSET $%d`, next, next+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *JobRepository) ListAll(ctx context.Context, limit, offset int) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, jobSelect+` ORDER BY j.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *JobRepository) ListByCompany(ctx context.Context, companyID common.UUID, activeOnly bool) ([]job.Job, error) {
	query := jobSelect + ` WHERE j.company_id = $1`
	if activeOnly {
		query += ` AND j.is_active`
	}
	query += ` ORDER BY j.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list company jobs", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

func collectJobs(rows *sql.Rows) ([]job.Job, error) {
	var items []job.Job
	for rows.Next() {
		item, err := scanJob(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		items = append(items, *item)
	}
	return items, nil
}
