package user

import (
	"context"
	"time"

	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
)

type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleJobSeeker, RoleEmployer, RoleAdmin:
		return true
	default:
		return false
	}
}

type User struct {
	ID           common.UUID `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         Role        `json:"role"`
	// IsStaff grants admin rights without the admin role, mirroring the
	// staff flag on the hosted accounts.
	IsStaff    bool      `json:"is_staff,omitempty"`
	IsActive   bool      `json:"is_active"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	Phone      string    `json:"phone_number,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	Experience string    `json:"experience,omitempty"`
	Education  string    `json:"education,omitempty"`
	ResumeURL  string    `json:"resume_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user has admin rights, either through the
// admin role or the staff flag.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsStaff
}

func (u User) IsEmployer() bool {
	return u.Role == RoleEmployer
}

func (u User) IsJobSeeker() bool {
	return u.Role == RoleJobSeeker
}

// Stats carries the per-user counters shown in admin listings.
type Stats struct {
	ApplicationCount int `json:"application_count"`
	PostedJobCount   int `json:"posted_job_count"`
}

type Repository interface {
	Create(ctx context.Context, account User) (*User, error)
	GetByID(ctx context.Context, id common.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, account User) (*User, error)
	Delete(ctx context.Context, id common.UUID) error
	List(ctx context.Context, limit, offset int) ([]User, error)
	Search(ctx context.Context, query string, limit, offset int) ([]User, error)
	SetActive(ctx context.Context, id common.UUID, active bool) error
	StatsByID(ctx context.Context, id common.UUID) (*Stats, error)
	Count(ctx context.Context) (int, error)
}
