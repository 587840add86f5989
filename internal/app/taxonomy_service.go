package app

import (
	"context"
	"strings"

	"github.com/peterayad-eng/nexus-job-board-api/internal/authz"
	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/taxonomy"
)

type TaxonomyService struct {
	terms taxonomy.Repository
}

func NewTaxonomyService(terms taxonomy.Repository) *TaxonomyService {
	return &TaxonomyService{terms: terms}
}

func (s *TaxonomyService) Create(ctx context.Context, p authz.Principal, kind taxonomy.Kind, name, description string) (*taxonomy.Term, error) {
	if err := authz.Authorize(p, authz.ActionCreate, authz.ForTaxonomy()); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewValidationError("invalid term", map[string]string{"name": "name is required"})
	}
	if _, err := s.terms.GetByName(ctx, kind, name); err == nil {
		return nil, common.NewError(common.CodeConflict, string(kind)+" with this name already exists", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	term := taxonomy.Term{Kind: kind, Name: name, Description: strings.TrimSpace(description)}
	return s.terms.Create(ctx, term)
}

func (s *TaxonomyService) Get(ctx context.Context, kind taxonomy.Kind, id common.UUID) (*taxonomy.Term, error) {
	return s.terms.GetByID(ctx, kind, id)
}

func (s *TaxonomyService) List(ctx context.Context, kind taxonomy.Kind, withJobs bool) ([]taxonomy.Term, error) {
	if withJobs {
		return s.terms.ListWithJobs(ctx, kind)
	}
	return s.terms.List(ctx, kind)
}

func (s *TaxonomyService) Update(ctx context.Context, p authz.Principal, kind taxonomy.Kind, id common.UUID, name, description string) (*taxonomy.Term, error) {
	if err := authz.Authorize(p, authz.ActionUpdate, authz.ForTaxonomy()); err != nil {
		return nil, err
	}
	current, err := s.terms.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewValidationError("invalid term", map[string]string{"name": "name is required"})
	}
	if existing, err := s.terms.GetByName(ctx, kind, name); err == nil && existing.ID != id {
		return nil, common.NewError(common.CodeConflict, string(kind)+" with this name already exists", nil)
	} else if err != nil && !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	current.Name = name
	current.Description = strings.TrimSpace(description)
	return s.terms.Update(ctx, *current)
}

func (s *TaxonomyService) Delete(ctx context.Context, p authz.Principal, kind taxonomy.Kind, id common.UUID) error {
	if err := authz.Authorize(p, authz.ActionDelete, authz.ForTaxonomy()); err != nil {
		return err
	}
	return s.terms.Delete(ctx, kind, id)
}
