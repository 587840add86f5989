package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/company"
)

type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

const companySelect = `SELECT c.id, c.name, c.description, c.location, c.website, c.contact_email, c.created_by,
	COALESCE(ARRAY_AGG(m.user_id) FILTER (WHERE m.user_id IS NOT NULL), '{}'), c.created_at, c.updated_at
	FROM companies c
	LEFT JOIN company_managers m ON m.company_id = c.id`

func scanCompany(row interface{ Scan(...any) error }) (*company.Company, error) {
	var c company.Company
	var managers []string
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Location, &c.Website, &c.Email,
		&c.CreatedBy, pq.Array(&managers), &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Managers = make([]common.UUID, 0, len(managers))
	for _, id := range managers {
		c.Managers = append(c.Managers, common.UUID(id))
	}
	return &c, nil
}

func (r *CompanyRepository) Create(ctx context.Context, c company.Company) (*company.Company, error) {
	c.ID = common.NewUUID()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO companies (id, name, description, location, website, contact_email, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Name, c.Description, c.Location, c.Website, c.Email, c.CreatedBy, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "a company with this name already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create company", err)
	}
	c.Managers = []common.UUID{}
	return &c, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id common.UUID) (*company.Company, error) {
	row := r.db.QueryRowContext(ctx, companySelect+` WHERE c.id = $1 GROUP BY c.id`, id)
	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "company not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load company", err)
	}
	return c, nil
}

func (r *CompanyRepository) Update(ctx context.Context, c company.Company) (*company.Company, error) {
	c.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE companies SET name = $1, description = $2, location = $3, website = $4, contact_email = $5, updated_at = $6
		WHERE id = $7`,
		c.Name, c.Description, c.Location, c.Website, c.Email, c.UpdatedAt, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "a company with this name already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to update company", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "company not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, c.ID)
}

func (r *CompanyRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete company", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "company not found", sql.ErrNoRows)
	}
	return nil
}

func (r *CompanyRepository) List(ctx context.Context, search string, limit, offset int) ([]company.Company, error) {
	query := companySelect
	args := []any{}
	if search != "" {
		query += ` WHERE c.name ILIKE $1 OR c.location ILIKE $1 OR c.description ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` GROUP BY c.id ORDER BY c.created_at DESC`
	args = append(args, limit, offset)
	if search != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list companies", err)
	}
	defer rows.Close()
	var items []company.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan company", err)
		}
		items = append(items, *c)
	}
	return items, nil
}

func (r *CompanyRepository) ListSummaries(ctx context.Context, search string, limit, offset int) ([]company.Summary, error) {
	query := `SELECT c.id, c.name, c.location, c.website,
		COUNT(DISTINCT j.id), COUNT(DISTINCT m.user_id) + 1
		FROM companies c
		LEFT JOIN jobs j ON j.company_id = c.id AND j.is_active
		LEFT JOIN company_managers m ON m.company_id = c.id`
	args := []any{}
	if search != "" {
		query += ` WHERE c.name ILIKE $1 OR c.location ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` GROUP BY c.id ORDER BY c.created_at DESC`
	args = append(args, limit, offset)
	if search != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list company summaries", err)
	}
	defer rows.Close()
	var items []company.Summary
	for rows.Next() {
		var s company.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.Website, &s.JobCount, &s.ManagerCount); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan company summary", err)
		}
		items = append(items, s)
	}
	return items, nil
}

func (r *CompanyRepository) AddManager(ctx context.Context, companyID, userID common.UUID) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO company_managers (company_id, user_id) VALUES ($1, $2)
		ON CONFLICT (company_id, user_id) DO NOTHING`, companyID, userID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to add manager", err)
	}
	return nil
}

func (r *CompanyRepository) RemoveManager(ctx context.Context, companyID, userID common.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM company_managers WHERE company_id = $1 AND user_id = $2`, companyID, userID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to remove manager", err)
	}
	return nil
}
