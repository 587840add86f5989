package database

import (
	"context"
	"database/sql"
)

// Migrate applies the schema. Statements are idempotent so the service can
// run them on every start. The unique index on (job_id, applicant_id) is the
// atomic backstop for the one-application-per-job rule under concurrency.
func Migrate(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'job_seeker',
			is_staff BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			bio TEXT NOT NULL DEFAULT '',
			experience TEXT NOT NULL DEFAULT '',
			education TEXT NOT NULL DEFAULT '',
			resume_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS companies (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			website TEXT NOT NULL DEFAULT '',
			contact_email TEXT NOT NULL DEFAULT '',
			created_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS companies_name_unique ON companies (LOWER(name))`,
		`CREATE TABLE IF NOT EXISTS company_managers (
			company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			PRIMARY KEY (company_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS categories_name_unique ON categories (LOWER(name))`,
		`CREATE TABLE IF NOT EXISTS skills (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS skills_name_unique ON skills (LOWER(name))`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
			posted_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			location TEXT NOT NULL DEFAULT '',
			job_type TEXT NOT NULL,
			salary_range TEXT NOT NULL DEFAULT '',
			category_ids UUID[] NOT NULL DEFAULT '{}',
			skill_ids UUID[] NOT NULL DEFAULT '{}',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS jobs_company_idx ON jobs (company_id, is_active)`,
		`CREATE TABLE IF NOT EXISTS applications (
			id UUID PRIMARY KEY,
			job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
			applicant_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			cover_letter TEXT NOT NULL DEFAULT '',
			resume_url TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'applied',
			notes TEXT NOT NULL DEFAULT '',
			applied_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS applications_job_applicant_unique ON applications (job_id, applicant_id)`,
		`CREATE INDEX IF NOT EXISTS applications_job_status_idx ON applications (job_id, status)`,
		`CREATE INDEX IF NOT EXISTS applications_applicant_idx ON applications (applicant_id, applied_at)`,
	}
	for _, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return err
		}
	}
	return nil
}
