package job

import (
	"context"
	"time"

	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
)

type Type string

const (
	TypeFullTime   Type = "full_time"
	TypePartTime   Type = "part_time"
	TypeContract   Type = "contract"
	TypeInternship Type = "internship"
	TypeRemote     Type = "remote"
)

func (t Type) Valid() bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeInternship, TypeRemote:
		return true
	default:
		return false
	}
}

type Job struct {
	ID          common.UUID `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	CompanyID   common.UUID `json:"company_id"`
	// PostedBy is the creating user; any effective manager of the company
	// may post, so it need not be the company owner.
	PostedBy         common.UUID   `json:"posted_by"`
	Location         string        `json:"location"`
	Type             Type          `json:"job_type"`
	SalaryRange      string        `json:"salary_range,omitempty"`
	CategoryIDs      []common.UUID `json:"categories"`
	SkillIDs         []common.UUID `json:"required_skills"`
	IsActive         bool          `json:"is_active"`
	ApplicationCount int           `json:"application_count"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Filter narrows public job listings. Zero values mean no constraint.
type Filter struct {
	Search    string
	Type      Type
	Location  string
	CompanyID common.UUID
	Limit     int
	Offset    int
}

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	Update(ctx context.Context, j Job) (*Job, error)
	Delete(ctx context.Context, id common.UUID) error
	ListActive(ctx context.Context, filter Filter) ([]Job, error)
	ListAll(ctx context.Context, limit, offset int) ([]Job, error)
	ListByCompany(ctx context.Context, companyID common.UUID, activeOnly bool) ([]Job, error)
}
