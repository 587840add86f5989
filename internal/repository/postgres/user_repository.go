package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/user"
)

const userColumns = `id, username, email, password_hash, role, is_staff, is_active, first_name, last_name, phone, bio, experience, education, resume_url, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (*user.User, error) {
	var account user.User
	err := row.Scan(&account.ID, &account.Username, &account.Email, &account.PasswordHash,
		&account.Role, &account.IsStaff, &account.IsActive, &account.FirstName, &account.LastName,
		&account.Phone, &account.Bio, &account.Experience, &account.Education, &account.ResumeURL,
		&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *UserRepository) Create(ctx context.Context, account user.User) (*user.User, error) {
	account.ID = common.NewUUID()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		account.ID, account.Username, account.Email, account.PasswordHash, account.Role,
		account.IsStaff, account.IsActive, account.FirstName, account.LastName, account.Phone,
		account.Bio, account.Experience, account.Education, account.ResumeURL,
		account.CreatedAt, account.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "username or email already taken", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create user", err)
	}
	return &account, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	account, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	return account, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	account, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	return account, nil
}

func (r *UserRepository) Update(ctx context.Context, account user.User) (*user.User, error) {
	account.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE users SET email = $1, password_hash = $2, first_name = $3, last_name = $4,
		phone = $5, bio = $6, experience = $7, education = $8, resume_url = $9, updated_at = $10 WHERE id = $11`,
		account.Email, account.PasswordHash, account.FirstName, account.LastName, account.Phone,
		account.Bio, account.Experience, account.Education, account.ResumeURL, account.UpdatedAt, account.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "email already taken", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to update user", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, account.ID)
}

func (r *UserRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete user", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list users", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *UserRepository) Search(ctx context.Context, query string, limit, offset int) ([]user.User, error) {
	pattern := "%" + query + "%"
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users
		WHERE username ILIKE $1 OR email ILIKE $1 OR first_name ILIKE $1 OR last_name ILIKE $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to search users", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]user.User, error) {
	var items []user.User
	for rows.Next() {
		account, err := scanUser(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan user", err)
		}
		items = append(items, *account)
	}
	return items, nil
}

func (r *UserRepository) SetActive(ctx context.Context, id common.UUID, active bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET is_active = $1, updated_at = $2 WHERE id = $3`,
		active, time.Now().UTC(), id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update user activation", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return nil
}

func (r *UserRepository) StatsByID(ctx context.Context, id common.UUID) (*user.Stats, error) {
	row := r.db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM applications WHERE applicant_id = $1),
		(SELECT COUNT(*) FROM jobs WHERE posted_by = $1)`, id)
	var stats user.Stats
	if err := row.Scan(&stats.ApplicationCount, &stats.PostedJobCount); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to load user stats", err)
	}
	return &stats, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count users", err)
	}
	return count, nil
}
