// Package authz decides allow/deny for every restricted operation. It is
// pure: callers load the principal and resource snapshots and translate the
// returned error codes to transport status.
package authz

import (
	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/application"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/company"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/job"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/user"
)

type Action string

const (
	ActionCreate       Action = "create"
	ActionRead         Action = "read"
	ActionReadListAll  Action = "read_list_all"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionManageAdd    Action = "manage_add"
	ActionManageRemove Action = "manage_remove"
)

type Kind string

const (
	KindUser        Kind = "user"
	KindCompany     Kind = "company"
	KindJob         Kind = "job"
	KindApplication Kind = "application"
	KindTaxonomy    Kind = "taxonomy"
)

// Principal is the acting user. The zero value is the anonymous principal.
type Principal struct {
	ID      common.UUID
	Role    user.Role
	IsStaff bool
}

func PrincipalFor(u user.User) Principal {
	return Principal{ID: u.ID, Role: u.Role, IsStaff: u.IsStaff}
}

func (p Principal) Authenticated() bool {
	return !p.ID.IsZero()
}

func (p Principal) IsAdmin() bool {
	return p.Authenticated() && (p.Role == user.RoleAdmin || p.IsStaff)
}

// Resource is the target of an action: a kind tag plus the ownership
// fields the rules inspect. Class-level targets (create, list) leave the
// instance fields zero.
type Resource struct {
	Kind Kind
	ID   common.UUID

	// OwnerID is the user the instance belongs to: the applicant of an
	// application, or the user record itself.
	OwnerID common.UUID

	// PostedBy is the creating user of a job (or of an application's job).
	PostedBy common.UUID

	// CompanyOwner and Managers describe the governing company. The owner
	// is never a member of Managers; effective management is derived.
	CompanyOwner common.UUID
	Managers     []common.UUID

	// Public marks the instance as anonymously readable (active jobs,
	// companies, taxonomy terms).
	Public bool
}

func ForClass(kind Kind) Resource {
	return Resource{Kind: kind}
}

func ForCompany(c company.Company) Resource {
	return Resource{
		Kind:         KindCompany,
		ID:           c.ID,
		OwnerID:      c.CreatedBy,
		CompanyOwner: c.CreatedBy,
		Managers:     c.Managers,
		Public:       true,
	}
}

// ForNewJob targets job creation at a specific company.
func ForNewJob(c company.Company) Resource {
	return Resource{
		Kind:         KindJob,
		CompanyOwner: c.CreatedBy,
		Managers:     c.Managers,
	}
}

func ForJob(j job.Job, c company.Company) Resource {
	return Resource{
		Kind:         KindJob,
		ID:           j.ID,
		PostedBy:     j.PostedBy,
		CompanyOwner: c.CreatedBy,
		Managers:     c.Managers,
		Public:       j.IsActive,
	}
}

func ForApplication(a application.Application, j job.Job, c company.Company) Resource {
	return Resource{
		Kind:         KindApplication,
		ID:           a.ID,
		OwnerID:      a.ApplicantID,
		PostedBy:     j.PostedBy,
		CompanyOwner: c.CreatedBy,
		Managers:     c.Managers,
	}
}

// ForJobApplications targets the application list of a job.
func ForJobApplications(j job.Job, c company.Company) Resource {
	return Resource{
		Kind:         KindApplication,
		PostedBy:     j.PostedBy,
		CompanyOwner: c.CreatedBy,
		Managers:     c.Managers,
	}
}

// ForCompanyApplications targets the application list of a company.
func ForCompanyApplications(c company.Company) Resource {
	return Resource{
		Kind:         KindApplication,
		CompanyOwner: c.CreatedBy,
		Managers:     c.Managers,
	}
}

func ForUser(u user.User) Resource {
	return Resource{Kind: KindUser, ID: u.ID, OwnerID: u.ID}
}

func ForTaxonomy() Resource {
	return Resource{Kind: KindTaxonomy, Public: true}
}

func (r Resource) effectiveManager(p Principal) bool {
	if !p.Authenticated() {
		return false
	}
	if !r.CompanyOwner.IsZero() && r.CompanyOwner == p.ID {
		return true
	}
	for _, id := range r.Managers {
		if id == p.ID {
			return true
		}
	}
	return false
}

// Authorize returns nil to allow, or an AppError carrying the deny reason:
// CodeUnauthorized (no principal), CodeForbidden, or CodeNotFound where the
// resource's existence is concealed. Rules run in fixed precedence: admin
// override, authentication, then per-kind dispatch. Domain preconditions
// (duplicate application, inactive job, manager role requirements) are not
// checked here; services validate them after authorization succeeds.
func Authorize(p Principal, action Action, res Resource) error {
	if p.IsAdmin() {
		return nil
	}
	if action == ActionRead && res.Public {
		return nil
	}
	if !p.Authenticated() {
		return common.NewError(common.CodeUnauthorized, "authentication required", nil)
	}

	switch action {
	case ActionCreate:
		return authorizeCreate(p, res)
	case ActionRead:
		return authorizeRead(p, res)
	case ActionReadListAll:
		// Unfiltered cross-tenant listings are admin territory for every kind.
		return deny(res, false)
	case ActionUpdate:
		return authorizeUpdate(p, res)
	case ActionDelete:
		return authorizeDelete(p, res)
	case ActionManageAdd, ActionManageRemove:
		if res.Kind == KindCompany && res.effectiveManager(p) {
			return nil
		}
		return deny(res, false)
	default:
		return deny(res, false)
	}
}

func authorizeCreate(p Principal, res Resource) error {
	switch res.Kind {
	case KindCompany:
		return nil
	case KindJob:
		if res.effectiveManager(p) {
			return nil
		}
		return deny(res, false)
	case KindApplication:
		if p.Role == user.RoleJobSeeker {
			return nil
		}
		return deny(res, false)
	default:
		// Taxonomy and user creation fall through from the admin override.
		return deny(res, false)
	}
}

func authorizeRead(p Principal, res Resource) error {
	switch res.Kind {
	case KindApplication:
		if res.OwnerID == p.ID && !res.OwnerID.IsZero() {
			return nil
		}
		if res.PostedBy == p.ID && !res.PostedBy.IsZero() {
			return nil
		}
		if res.effectiveManager(p) {
			return nil
		}
		return deny(res, true)
	case KindUser:
		if res.OwnerID == p.ID {
			return nil
		}
		return deny(res, true)
	case KindJob:
		// Inactive jobs read like missing ones unless the principal manages them.
		if res.PostedBy == p.ID && !res.PostedBy.IsZero() {
			return nil
		}
		if res.effectiveManager(p) {
			return nil
		}
		return deny(res, true)
	default:
		return deny(res, false)
	}
}

func authorizeUpdate(p Principal, res Resource) error {
	switch res.Kind {
	case KindCompany:
		if res.effectiveManager(p) {
			return nil
		}
		return deny(res, false)
	case KindJob, KindApplication:
		if res.PostedBy == p.ID && !res.PostedBy.IsZero() {
			return nil
		}
		if res.effectiveManager(p) {
			return nil
		}
		return deny(res, res.Kind == KindApplication)
	case KindUser:
		if res.OwnerID == p.ID {
			return nil
		}
		return deny(res, true)
	default:
		return deny(res, false)
	}
}

func authorizeDelete(p Principal, res Resource) error {
	switch res.Kind {
	case KindCompany:
		// Deletion distinguishes ownership from management.
		if res.CompanyOwner == p.ID && !res.CompanyOwner.IsZero() {
			return nil
		}
		return deny(res, false)
	case KindJob:
		if res.PostedBy == p.ID && !res.PostedBy.IsZero() {
			return nil
		}
		if res.effectiveManager(p) {
			return nil
		}
		return deny(res, false)
	case KindUser:
		if res.OwnerID == p.ID {
			return nil
		}
		return deny(res, true)
	default:
		return deny(res, false)
	}
}

// deny builds the forbidden error, concealing existence as not_found for
// instance-level denials on kinds that are not publicly readable.
func deny(res Resource, conceal bool) error {
	if conceal && !res.ID.IsZero() {
		return common.NewError(common.CodeNotFound, string(res.Kind)+" not found", nil)
	}
	return common.NewError(common.CodeForbidden, "insufficient permissions", nil)
}
