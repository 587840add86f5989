package handlers

import (
	"net/http"
	"strings"

	"github.com/peterayad-eng/nexus-job-board-api/internal/app"
	"github.com/peterayad-eng/nexus-job-board-api/internal/http/middleware"
	"github.com/peterayad-eng/nexus-job-board-api/internal/http/response"
)

type UserHandler struct {
	users *app.UserService
}

func NewUserHandler(users *app.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type profileRequest struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone_number"`
	Bio        *string `json:"bio"`
	Experience *string `json:"experience"`
	Education  *string `json:"education"`
	ResumeURL  *string `json:"resume_url"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type setActiveRequest struct {
	IsActive bool `json:"is_active"`
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	account, err := h.users.Get(r.Context(), p, p.ID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, account)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	account, err := h.users.UpdateProfile(r.Context(), p, p.ID, app.ProfileInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Bio:        req.Bio,
		Experience: req.Experience,
		Education:  req.Education,
		ResumeURL:  req.ResumeURL,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, account)
}

// Update edits an arbitrary account. Non-admin callers get the same
// not-found answer as for any other account they cannot see.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	id, err := idFromPath(r, "/users/")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	account, err := h.users.UpdateProfile(r.Context(), p, id, app.ProfileInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Bio:        req.Bio,
		Experience: req.Experience,
		Education:  req.Education,
		ResumeURL:  req.ResumeURL,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, account)
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := h.users.ChangePassword(r.Context(), p, p.ID, req.CurrentPassword, req.NewPassword); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "password_changed"})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	id, err := idFromPath(r, "/users/")
	if err != nil {
		response.Error(w, err)
		return
	}
	account, err := h.users.Get(r.Context(), p, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, account)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	if query := strings.TrimSpace(r.URL.Query().Get("q")); query != "" {
		items, err := h.users.Search(r.Context(), p, query, queryInt(r, "limit", 20), queryInt(r, "offset", 0))
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, items)
		return
	}
	items, err := h.users.List(r.Context(), p, queryInt(r, "limit", 20), queryInt(r, "offset", 0))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	id, err := idFromPath(r, "/users/")
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.users.Delete(r.Context(), p, id); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

func (h *UserHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	id, err := idFromPath(r, "/users/")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req setActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := h.users.SetActive(r.Context(), p, id, req.IsActive); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"is_active": req.IsActive})
}

func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	id, err := idFromPath(r, "/users/")
	if err != nil {
		response.Error(w, err)
		return
	}
	stats, err := h.users.Stats(r.Context(), p, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}
