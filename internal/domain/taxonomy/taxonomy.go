package taxonomy

import (
	"context"
	"time"

	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
)

// Kind distinguishes the two flat reference tables sharing one shape.
type Kind string

const (
	KindCategory Kind = "category"
	KindSkill    Kind = "skill"
)

type Term struct {
	ID          common.UUID `json:"id"`
	Kind        Kind        `json:"-"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	JobCount    int         `json:"job_count,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, term Term) (*Term, error)
	GetByID(ctx context.Context, kind Kind, id common.UUID) (*Term, error)
	GetByName(ctx context.Context, kind Kind, name string) (*Term, error)
	Update(ctx context.Context, term Term) (*Term, error)
	Delete(ctx context.Context, kind Kind, id common.UUID) error
	List(ctx context.Context, kind Kind) ([]Term, error)
	ListWithJobs(ctx context.Context, kind Kind) ([]Term, error)
}
