package handlers

import (
	"net/http"
	"strings"

	"github.com/peterayad-eng/nexus-job-board-api/internal/app"
	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/job"
	"github.com/peterayad-eng/nexus-job-board-api/internal/http/middleware"
	"github.com/peterayad-eng/nexus-job-board-api/internal/http/response"
)

type JobHandler struct {
	jobs *app.JobService
}

func NewJobHandler(jobs *app.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type jobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CompanyID   string   `json:"company_id"`
	Location    string   `json:"location"`
	Type        string   `json:"job_type"`
	SalaryRange string   `json:"salary_range,omitempty"`
	CategoryIDs []string `json:"categories,omitempty"`
	SkillIDs    []string `json:"required_skills,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

func (req jobRequest) toInput() (app.JobInput, error) {
	fields := map[string]string{}
	categories, err := parseUUIDs(req.CategoryIDs)
	if err != nil {
		fields["categories"] = "categories must be valid ids"
	}
	skills, err := parseUUIDs(req.SkillIDs)
	if err != nil {
		fields["required_skills"] = "required_skills must be valid ids"
	}
	var companyID common.UUID
	if strings.TrimSpace(req.CompanyID) != "" {
		companyID, err = common.ParseUUID(req.CompanyID)
		if err != nil {
			fields["company_id"] = "a valid company_id is required"
		}
	}
	if len(fields) > 0 {
		return app.JobInput{}, common.NewValidationError("invalid job", fields)
	}
	return app.JobInput{
		Title:       req.Title,
		Description: req.Description,
		CompanyID:   companyID,
		Location:    req.Location,
		Type:        job.Type(strings.ToLower(strings.TrimSpace(req.Type))),
		SalaryRange: req.SalaryRange,
		CategoryIDs: categories,
		SkillIDs:    skills,
		IsActive:    req.IsActive,
	}, nil
}

func parseUUIDs(values []string) ([]common.UUID, error) {
	if len(values) == 0 {
		return nil, nil
	}
	ids := make([]common.UUID, 0, len(values))
	for _, value := range values {
		id, err := common.ParseUUID(strings.TrimSpace(value))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.CompanyID) == "" {
		response.Error(w, common.NewValidationError("invalid job", map[string]string{"company_id": "company_id is required"}))
		return
	}
	input, err := req.toInput()
	if err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.jobs.Create(r.Context(), p, input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := job.Filter{
		Search:   strings.TrimSpace(query.Get("search")),
		Type:     job.Type(strings.ToLower(strings.TrimSpace(query.Get("job_type")))),
		Location: strings.TrimSpace(query.Get("location")),
		Limit:    queryInt(r, "limit", 20),
		Offset:   queryInt(r, "offset", 0),
	}
	if value := strings.TrimSpace(query.Get("company_id")); value != "" {
		companyID, err := common.ParseUUID(value)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid filter", map[string]string{"company_id": "invalid company_id"}))
			return
		}
		filter.CompanyID = companyID
	}
	items, err := h.jobs.ListActive(r.Context(), filter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	items, err := h.jobs.ListAll(r.Context(), p, queryInt(r, "limit", 20), queryInt(r, "offset", 0))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	id, err := idFromPath(r, "/jobs/")
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.jobs.Get(r.Context(), p, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	id, err := idFromPath(r, "/jobs/")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.jobs.Update(r.Context(), p, id, input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	id, err := idFromPath(r, "/jobs/")
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.jobs.Delete(r.Context(), p, id); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}
