package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/peterayad-eng/nexus-job-board-api/internal/http/handlers"
	"github.com/peterayad-eng/nexus-job-board-api/internal/http/metrics"
	httpmw "github.com/peterayad-eng/nexus-job-board-api/internal/http/middleware"
	"github.com/peterayad-eng/nexus-job-board-api/internal/observability"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	CompanyHandler     *handlers.CompanyHandler
	JobHandler         *handlers.JobHandler
	ApplicationHandler *handlers.ApplicationHandler
	CategoryHandler    *handlers.TaxonomyHandler
	SkillHandler       *handlers.TaxonomyHandler
	MetricsHandler     *handlers.MetricsHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Metrics            *metrics.Collector
	Logger             *observability.Logger
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(r.deps.Logger),
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover(r.deps.Logger),
		httpmw.Metrics(r.deps.Metrics),
		httpmw.Timeout(r.deps.RequestTimeout),
	)
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/refresh":
			r.deps.AuthHandler.Refresh(w, req)
			return
		case req.Method == http.MethodGet && path == "/companies":
			r.deps.CompanyHandler.List(w, req)
			return
		case req.Method == http.MethodGet && path == "/categories":
			r.deps.CategoryHandler.List(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/categories/"):
			r.deps.CategoryHandler.Get(w, req)
			return
		case req.Method == http.MethodGet && path == "/skills":
			r.deps.SkillHandler.List(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/skills/"):
			r.deps.SkillHandler.Get(w, req)
			return
		case req.Method == http.MethodGet && path == "/jobs":
			r.deps.JobHandler.List(w, req)
			return
		}

		// Reads whose visibility depends on who is asking carry an
		// optional principal; everything else under these prefixes
		// requires one.
		if r.optionalAuthRoute(req) {
			r.deps.AuthMiddleware.Optional(http.HandlerFunc(r.handleOptional)).ServeHTTP(w, req)
			return
		}
		if hasAnyPrefix(path, "/users", "/companies", "/jobs", "/applications", "/categories", "/skills") {
			r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(r.handleProtected)).ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) optionalAuthRoute(req *http.Request) bool {
	if req.Method != http.MethodGet {
		return false
	}
	path := req.URL.Path
	switch {
	case strings.HasPrefix(path, "/jobs/") && path != "/jobs/all" && !strings.HasSuffix(path, "/applications"):
		return true
	case strings.HasPrefix(path, "/companies/") && strings.HasSuffix(path, "/jobs"):
		return true
	case strings.HasPrefix(path, "/companies/") && strings.Count(path, "/") == 2:
		return true
	}
	return false
}

func (r *Router) handleOptional(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	switch {
	case strings.HasPrefix(path, "/companies/") && strings.HasSuffix(path, "/jobs"):
		r.deps.CompanyHandler.ListJobs(w, req)
	case strings.HasPrefix(path, "/companies/"):
		r.deps.CompanyHandler.Get(w, req)
	case strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/applications/count"):
		r.deps.ApplicationHandler.CountByJob(w, req)
	case strings.HasPrefix(path, "/jobs/"):
		r.deps.JobHandler.Get(w, req)
	default:
		http.NotFound(w, req)
	}
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/users/me":
		r.deps.UserHandler.Me(w, req)
	case req.Method == http.MethodPatch && path == "/users/me":
		r.deps.UserHandler.UpdateMe(w, req)
	case req.Method == http.MethodPost && path == "/users/me/password":
		r.deps.UserHandler.ChangePassword(w, req)
	case req.Method == http.MethodGet && path == "/users":
		r.deps.UserHandler.List(w, req)
	case req.Method == http.MethodGet && strings.HasSuffix(path, "/stats") && strings.HasPrefix(path, "/users/"):
		r.deps.UserHandler.Stats(w, req)
	case req.Method == http.MethodPatch && strings.HasSuffix(path, "/activate") && strings.HasPrefix(path, "/users/"):
		r.deps.UserHandler.SetActive(w, req)
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/users/"):
		r.deps.UserHandler.Update(w, req)
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/users/"):
		r.deps.UserHandler.Get(w, req)
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/users/"):
		r.deps.UserHandler.Delete(w, req)

	case req.Method == http.MethodPost && path == "/companies":
		r.deps.CompanyHandler.Create(w, req)
	case req.Method == http.MethodPost && strings.HasSuffix(path, "/managers") && strings.HasPrefix(path, "/companies/"):
		r.deps.CompanyHandler.AddManager(w, req)
	case req.Method == http.MethodDelete && strings.Contains(path, "/managers/") && strings.HasPrefix(path, "/companies/"):
		r.deps.CompanyHandler.RemoveManager(w, req)
	case req.Method == http.MethodGet && strings.HasSuffix(path, "/applications") && strings.HasPrefix(path, "/companies/"):
		r.deps.CompanyHandler.ListApplications(w, req)
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/companies/"):
		r.deps.CompanyHandler.Update(w, req)
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/companies/"):
		r.deps.CompanyHandler.Delete(w, req)

	case req.Method == http.MethodPost && path == "/jobs":
		r.deps.JobHandler.Create(w, req)
	case req.Method == http.MethodGet && path == "/jobs/all":
		r.deps.JobHandler.ListAll(w, req)
	case req.Method == http.MethodGet && strings.HasSuffix(path, "/applications") && strings.HasPrefix(path, "/jobs/"):
		r.deps.ApplicationHandler.ListByJob(w, req)
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/jobs/"):
		r.deps.JobHandler.Update(w, req)
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/jobs/"):
		r.deps.JobHandler.Delete(w, req)

	case req.Method == http.MethodPost && path == "/applications":
		r.deps.ApplicationHandler.Apply(w, req)
	case req.Method == http.MethodGet && path == "/applications/mine":
		r.deps.ApplicationHandler.ListMine(w, req)
	case req.Method == http.MethodGet && path == "/applications":
		r.deps.ApplicationHandler.ListAll(w, req)
	case req.Method == http.MethodPatch && strings.HasSuffix(path, "/status") && strings.HasPrefix(path, "/applications/"):
		r.deps.ApplicationHandler.UpdateStatus(w, req)
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/"):
		r.deps.ApplicationHandler.Get(w, req)

	case req.Method == http.MethodPost && path == "/categories":
		r.deps.CategoryHandler.Create(w, req)
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/categories/"):
		r.deps.CategoryHandler.Update(w, req)
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/categories/"):
		r.deps.CategoryHandler.Delete(w, req)
	case req.Method == http.MethodPost && path == "/skills":
		r.deps.SkillHandler.Create(w, req)
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/skills/"):
		r.deps.SkillHandler.Update(w, req)
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/skills/"):
		r.deps.SkillHandler.Delete(w, req)

	default:
		http.NotFound(w, req)
	}
}

func hasAnyPrefix(path string, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
