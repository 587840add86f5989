package company

import (
	"context"
	"time"

	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
)

type Company struct {
	ID          common.UUID `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Location    string      `json:"location,omitempty"`
	Website     string      `json:"website,omitempty"`
	Email       string      `json:"contact_email,omitempty"`
	// Managers never contains the owner; IsEffectiveManager derives the
	// owner's management rights instead.
	Managers  []common.UUID `json:"managers"`
	CreatedBy common.UUID   `json:"created_by"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// IsEffectiveManager reports whether the user may manage the company:
// the owner, or any member of the managers set.
func (c Company) IsEffectiveManager(userID common.UUID) bool {
	if userID.IsZero() {
		return false
	}
	if c.CreatedBy == userID {
		return true
	}
	for _, id := range c.Managers {
		if id == userID {
			return true
		}
	}
	return false
}

func (c Company) IsOwner(userID common.UUID) bool {
	return !userID.IsZero() && c.CreatedBy == userID
}

// Summary is the reduced shape used by the public directory listing.
// ManagerCount includes the owner.
type Summary struct {
	ID           common.UUID `json:"id"`
	Name         string      `json:"name"`
	Location     string      `json:"location,omitempty"`
	Website      string      `json:"website,omitempty"`
	JobCount     int         `json:"job_count"`
	ManagerCount int         `json:"manager_count"`
}

type Repository interface {
	Create(ctx context.Context, c Company) (*Company, error)
	GetByID(ctx context.Context, id common.UUID) (*Company, error)
	Update(ctx context.Context, c Company) (*Company, error)
	Delete(ctx context.Context, id common.UUID) error
	List(ctx context.Context, search string, limit, offset int) ([]Company, error)
	ListSummaries(ctx context.Context, search string, limit, offset int) ([]Summary, error)
	AddManager(ctx context.Context, companyID, userID common.UUID) error
	RemoveManager(ctx context.Context, companyID, userID common.UUID) error
}
