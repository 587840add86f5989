package handlers

import (
	"net/http"
	"strings"

	"github.com/peterayad-eng/nexus-job-board-api/internal/app"
	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
	"github.com/peterayad-eng/nexus-job-board-api/internal/http/middleware"
	"github.com/peterayad-eng/nexus-job-board-api/internal/http/response"
)

type CompanyHandler struct {
	companies    *app.CompanyService
	jobs         *app.JobService
	applications *app.ApplicationService
}

func NewCompanyHandler(companies *app.CompanyService, jobs *app.JobService, applications *app.ApplicationService) *CompanyHandler {
	return &CompanyHandler{companies: companies, jobs: jobs, applications: applications}
}

type companyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
	Website     string `json:"website,omitempty"`
	Email       string `json:"contact_email,omitempty"`
}

type managerRequest struct {
	UserID string `json:"user_id"`
}

func (r companyRequest) toInput() app.CompanyInput {
	return app.CompanyInput{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Website:     r.Website,
		Email:       r.Email,
	}
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	var req companyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.companies.Create(r.Context(), p, req.toInput())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.companies.List(r.Context(), r.URL.Query().Get("search"), queryInt(r, "limit", 20), queryInt(r, "offset", 0))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "/companies/")
	if err != nil {
		response.Error(w, err)
		return
	}
	c, err := h.companies.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, c)
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	id, err := idFromPath(r, "/companies/")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req companyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.companies.Update(r.Context(), p, id, req.toInput())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	id, err := idFromPath(r, "/companies/")
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.companies.Delete(r.Context(), p, id); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

func (h *CompanyHandler) AddManager(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	companyID, err := idFromPath(r, "/companies/")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req managerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	userID, err := common.ParseUUID(strings.TrimSpace(req.UserID))
	if err != nil {
		response.Error(w, common.NewValidationError("invalid manager", map[string]string{"user_id": "a valid user_id is required"}))
		return
	}
	updated, err := h.companies.AddManager(r.Context(), p, companyID, userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *CompanyHandler) RemoveManager(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	companyID, err := idFromPath(r, "/companies/")
	if err != nil {
		response.Error(w, err)
		return
	}
	// DELETE /companies/{id}/managers/{userID}
	idx := strings.LastIndexByte(r.URL.Path, '/')
	userID, err := common.ParseUUID(r.URL.Path[idx+1:])
	if err != nil {
		response.Error(w, common.NewValidationError("invalid manager", map[string]string{"user_id": "a valid user_id is required"}))
		return
	}
	updated, err := h.companies.RemoveManager(r.Context(), p, companyID, userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *CompanyHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	companyID, err := idFromPath(r, "/companies/")
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.jobs.ListByCompany(r.Context(), p, companyID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *CompanyHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	companyID, err := idFromPath(r, "/companies/")
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.applications.ListByCompany(r.Context(), p, companyID, statusFilter(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
