package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/taxonomy"
)

// TaxonomyRepository serves both flat reference tables; the kind selects
// the table and the matching jobs array column.
type TaxonomyRepository struct {
	db *sql.DB
}

func NewTaxonomyRepository(db *sql.DB) *TaxonomyRepository {
	return &TaxonomyRepository{db: db}
}

func tableFor(kind taxonomy.Kind) (table, jobColumn string) {
	if kind == taxonomy.KindSkill {
		return "skills", "skill_ids"
	}
	return "categories", "category_ids"
}

func (r *TaxonomyRepository) Create(ctx context.Context, term taxonomy.Term) (*taxonomy.Term, error) {
	table, _ := tableFor(term.Kind)
	term.ID = common.NewUUID()
	term.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO `+table+` (id, name, description, created_at) VALUES ($1, $2, $3, $4)`,
		term.ID, term.Name, term.Description, term.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "a "+string(term.Kind)+" with this name already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create "+string(term.Kind), err)
	}
	return &term, nil
}

func (r *TaxonomyRepository) GetByID(ctx context.Context, kind taxonomy.Kind, id common.UUID) (*taxonomy.Term, error) {
	table, jobColumn := tableFor(kind)
	row := r.db.QueryRowContext(ctx, `SELECT t.id, t.name, t.description, t.created_at,
		(SELECT COUNT(*) FROM jobs j WHERE t.id = ANY(j.`+jobColumn+`))
		FROM `+table+` t WHERE t.id = $1`, id)
	var term taxonomy.Term
	if err := row.Scan(&term.ID, &term.Name, &term.Description, &term.CreatedAt, &term.JobCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, string(kind)+" not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load "+string(kind), err)
	}
	term.Kind = kind
	return &term, nil
}

func (r *TaxonomyRepository) GetByName(ctx context.Context, kind taxonomy.Kind, name string) (*taxonomy.Term, error) {
	table, _ := tableFor(kind)
	row := r.db.QueryRowContext(ctx, `SELECT id, name, description, created_at FROM `+table+` WHERE LOWER(name) = LOWER($1)`, name)
	var term taxonomy.Term
	if err := row.Scan(&term.ID, &term.Name, &term.Description, &term.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, string(kind)+" not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load "+string(kind), err)
	}
	term.Kind = kind
	return &term, nil
}

func (r *TaxonomyRepository) Update(ctx context.Context, term taxonomy.Term) (*taxonomy.Term, error) {
	table, _ := tableFor(term.Kind)
	result, err := r.db.ExecContext(ctx, `UPDATE `+table+` SET name = $1, description = $2 WHERE id = $3`,
		term.Name, term.Description, term.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "a "+string(term.Kind)+" with this name already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to update "+string(term.Kind), err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, string(term.Kind)+" not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, term.Kind, term.ID)
}

func (r *TaxonomyRepository) Delete(ctx context.Context, kind taxonomy.Kind, id common.UUID) error {
	table, _ := tableFor(kind)
	result, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete "+string(kind), err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, string(kind)+" not found", sql.ErrNoRows)
	}
	return nil
}

func (r *TaxonomyRepository) List(ctx context.Context, kind taxonomy.Kind) ([]taxonomy.Term, error) {
	return r.list(ctx, kind, false)
}

func (r *TaxonomyRepository) ListWithJobs(ctx context.Context, kind taxonomy.Kind) ([]taxonomy.Term, error) {
	return r.list(ctx, kind, true)
}

func (r *TaxonomyRepository) list(ctx context.Context, kind taxonomy.Kind, withJobsOnly bool) ([]taxonomy.Term, error) {
	table, jobColumn := tableFor(kind)
	query := `SELECT t.id, t.name, t.description, t.created_at,
		(SELECT COUNT(*) FROM jobs j WHERE t.id = ANY(j.` + jobColumn + `)) AS job_count
		FROM ` + table + ` t`
	if withJobsOnly {
		query += ` WHERE EXISTS (SELECT 1 FROM jobs j WHERE t.id = ANY(j.` + jobColumn + `))`
	}
	query += ` ORDER BY t.name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list "+table, err)
	}
	defer rows.Close()
	var items []taxonomy.Term
	for rows.Next() {
		var term taxonomy.Term
		if err := rows.Scan(&term.ID, &term.Name, &term.Description, &term.CreatedAt, &term.JobCount); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan "+string(kind), err)
		}
		term.Kind = kind
		items = append(items, term)
	}
	return items, nil
}
