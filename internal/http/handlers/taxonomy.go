package handlers

import (
	"net/http"
	"strings"

	"github.com/peterayad-eng/nexus-job-board-api/internal/app"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/taxonomy"
	"github.com/peterayad-eng/nexus-job-board-api/internal/http/middleware"
	"github.com/peterayad-eng/nexus-job-board-api/internal/http/response"
)

// TaxonomyHandler serves both flat reference vocabularies; the kind and
// path prefix are fixed at construction.
type TaxonomyHandler struct {
	terms  *app.TaxonomyService
	kind   taxonomy.Kind
	prefix string
}

func NewCategoryHandler(terms *app.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{terms: terms, kind: taxonomy.KindCategory, prefix: "/categories/"}
}

func NewSkillHandler(terms *app.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{terms: terms, kind: taxonomy.KindSkill, prefix: "/skills/"}
}

type termRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (h *TaxonomyHandler) Create(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	var req termRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.terms.Create(r.Context(), p, h.kind, req.Name, req.Description)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *TaxonomyHandler) List(w http.ResponseWriter, r *http.Request) {
	withJobs := strings.EqualFold(r.URL.Query().Get("with_jobs"), "true")
	items, err := h.terms.List(r.Context(), h.kind, withJobs)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *TaxonomyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, h.prefix)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.terms.Get(r.Context(), h.kind, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *TaxonomyHandler) Update(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	id, err := idFromPath(r, h.prefix)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req termRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.terms.Update(r.Context(), p, h.kind, id, req.Name, req.Description)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *TaxonomyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	id, err := idFromPath(r, h.prefix)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.terms.Delete(r.Context(), p, h.kind, id); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}
