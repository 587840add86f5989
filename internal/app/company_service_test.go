package app

import (
	"context"
	"testing"

	"github.com/peterayad-eng/nexus-job-board-api/internal/authz"
	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/company"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/user"
)

type companyWorld struct {
	service   *CompanyService
	companies *fakeCompanyRepo
	users     *fakeUserRepo

	owner    authz.Principal
	manager  authz.Principal
	employer authz.Principal
	seeker   authz.Principal

	company *company.Company
}

func newCompanyWorld(t *testing.T) *companyWorld {
	t.Helper()
	companies := newFakeCompanyRepo()
	users := newFakeUserRepo()

	seed := func(username string, role user.Role) authz.Principal {
		account, err := users.Create(context.Background(), user.User{Username: username, Email: username + "@example.com", Role: role, IsActive: true})
		if err != nil {
			t.Fatalf("seed user %s: %v", username, err)
		}
		return authz.PrincipalFor(*account)
	}
	owner := seed("owner", user.RoleEmployer)
	manager := seed("manager", user.RoleEmployer)
	employer := seed("employer", user.RoleEmployer)
	seeker := seed("seeker", user.RoleJobSeeker)

	service := NewCompanyService(companies, users)
	c, err := service.Create(context.Background(), owner, CompanyInput{Name: "Acme", Description: "widgets"})
	if err != nil {
		t.Fatalf("seed company: %v", err)
	}
	c, err = service.AddManager(context.Background(), owner, c.ID, manager.ID)
	if err != nil {
		t.Fatalf("seed manager: %v", err)
	}
	return &companyWorld{
		service:   service,
		companies: companies,
		users:     users,
		owner:     owner,
		manager:   manager,
		employer:  employer,
		seeker:    seeker,
		company:   c,
	}
}

func TestCompanyCreate_OwnerIsNotStoredAsManager(t *testing.T) {
	w := newCompanyWorld(t)

	for _, id := range w.company.Managers {
		if id == w.owner.ID {
			t.Fatal("owner must not appear in the managers set")
		}
	}
	if !w.company.IsEffectiveManager(w.owner.ID) {
		t.Fatal("owner must still be an effective manager")
	}
}

func TestCompanyCreate_DuplicateName(t *testing.T) {
	w := newCompanyWorld(t)

	_, err := w.service.Create(context.Background(), w.employer, CompanyInput{Name: "Acme", Description: "copycat"})
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCompanyUpdate_ManagerAllowedOutsiderForbidden(t *testing.T) {
	w := newCompanyWorld(t)
	input := CompanyInput{Name: "Acme", Description: "updated"}

	if _, err := w.service.Update(context.Background(), w.manager, w.company.ID, input); err != nil {
		t.Fatalf("manager update: %v", err)
	}
	if _, err := w.service.Update(context.Background(), w.employer, w.company.ID, input); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCompanyDelete_OwnerOnly(t *testing.T) {
	w := newCompanyWorld(t)

	if err := w.service.Delete(context.Background(), w.manager, w.company.ID); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for manager, got %v", err)
	}
	if err := w.service.Delete(context.Background(), w.owner, w.company.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestAddManager_RequiresEmployerRole(t *testing.T) {
	w := newCompanyWorld(t)

	_, err := w.service.AddManager(context.Background(), w.owner, w.company.ID, w.seeker.ID)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddManager_UnknownUserRejected(t *testing.T) {
	w := newCompanyWorld(t)

	_, err := w.service.AddManager(context.Background(), w.owner, w.company.ID, common.NewUUID())
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddManager_OutsiderForbidden(t *testing.T) {
	w := newCompanyWorld(t)

	_, err := w.service.AddManager(context.Background(), w.employer, w.company.ID, w.employer.ID)
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestRemoveManager_OwnerIsUnremovable(t *testing.T) {
	w := newCompanyWorld(t)

	_, err := w.service.RemoveManager(context.Background(), w.manager, w.company.ID, w.owner.ID)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRemoveManager_ManagerCanRemovePeer(t *testing.T) {
	w := newCompanyWorld(t)
	peer, err := w.users.Create(context.Background(), user.User{Username: "peer", Email: "peer@example.com", Role: user.RoleEmployer, IsActive: true})
	if err != nil {
		t.Fatalf("seed peer: %v", err)
	}
	if _, err := w.service.AddManager(context.Background(), w.owner, w.company.ID, peer.ID); err != nil {
		t.Fatalf("add peer: %v", err)
	}

	updated, err := w.service.RemoveManager(context.Background(), w.manager, w.company.ID, peer.ID)
	if err != nil {
		t.Fatalf("remove peer: %v", err)
	}
	if updated.IsEffectiveManager(peer.ID) {
		t.Fatal("expected peer to be removed from managers")
	}
}
