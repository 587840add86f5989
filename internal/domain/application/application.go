package application

import (
	"context"
	"time"

	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
)

type Application struct {
	ID          common.UUID `json:"id"`
	JobID       common.UUID `json:"job_id"`
	ApplicantID common.UUID `json:"applicant_id"`
	CoverLetter string      `json:"cover_letter"`
	ResumeURL   string      `json:"resume_url,omitempty"`
	Status      Status      `json:"status"`
	Notes       string      `json:"notes,omitempty"`
	AppliedAt   time.Time   `json:"applied_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByJobAndApplicant(ctx context.Context, jobID, applicantID common.UUID) (*Application, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status, notes string) (*Application, error)
	ListByApplicant(ctx context.Context, applicantID common.UUID, status Status) ([]Application, error)
	ListByJob(ctx context.Context, jobID common.UUID) ([]Application, error)
	ListByCompany(ctx context.Context, companyID common.UUID, status Status) ([]Application, error)
	ListAll(ctx context.Context, limit, offset int) ([]Application, error)
	CountByJob(ctx context.Context, jobID common.UUID) (int, error)
}
