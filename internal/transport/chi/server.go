// Package chi is the HTTP transport: routing, request decoding, error
// mapping and authentication for the public site and the admin surface.
package chi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/contentd/internal/domain"
	"github.com/kailas-cloud/contentd/internal/metrics"
	bloguc "github.com/kailas-cloud/contentd/internal/usecase/blog"
	chatuc "github.com/kailas-cloud/contentd/internal/usecase/chat"
	contactuc "github.com/kailas-cloud/contentd/internal/usecase/contact"
	dashboarduc "github.com/kailas-cloud/contentd/internal/usecase/dashboard"
	healthuc "github.com/kailas-cloud/contentd/internal/usecase/health"
	offeringuc "github.com/kailas-cloud/contentd/internal/usecase/offering"
	projectuc "github.com/kailas-cloud/contentd/internal/usecase/project"
)

// Server wires the usecase services into HTTP handlers.
type Server struct {
	chat      *chatuc.Service
	blogs     *bloguc.Service
	projects  *projectuc.Service
	offerings *offeringuc.Service
	contacts  *contactuc.Service
	dashboard *dashboarduc.Service
	health    *healthuc.Service
	logger    *zap.Logger
	apiKeys   []string
}

// NewServer creates an HTTP API server.
func NewServer(
	chat *chatuc.Service,
	blogs *bloguc.Service,
	projects *projectuc.Service,
	offerings *offeringuc.Service,
	contacts *contactuc.Service,
	dashboard *dashboarduc.Service,
	health *healthuc.Service,
	apiKeys []string,
	logger *zap.Logger,
) *Server {
	return &Server{
		chat:      chat,
		blogs:     blogs,
		projects:  projects,
		offerings: offerings,
		contacts:  contacts,
		dashboard: dashboard,
		health:    health,
		logger:    logger,
		apiKeys:   apiKeys,
	}
}

// Router builds the route tree. The public surface is unauthenticated; the
// admin surface sits behind bearer auth.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(metrics.Middleware())

	r.Get("/health", s.healthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/chat/ask", s.ask)
		r.Post("/chat/detailed", s.askDetailed)

		r.Get("/blogs", s.listPublishedBlogs)
		r.Get("/blogs/{id}", s.getBlog)
		r.Get("/blogs/slug/{slug}", s.getBlogBySlug)

		r.Get("/projects", s.listPublishedProjects)
		r.Get("/projects/{id}", s.getProject)

		r.Get("/services", s.listOfferings)
		r.Get("/services/{id}", s.getOffering)

		r.Post("/contacts", s.submitContact)

		r.Route("/admin", func(r chi.Router) {
			r.Use(BearerAuthMiddleware(s.apiKeys))

			r.Get("/dashboard", s.dashboardOverview)
			r.Get("/chat/stats", s.chatStats)

			r.Get("/blogs", s.listAllBlogs)
			r.Post("/blogs", s.createBlog)
			r.Put("/blogs/{id}", s.updateBlog)
			r.Delete("/blogs/{id}", s.deleteBlog)

			r.Get("/projects", s.listAllProjects)
			r.Post("/projects", s.createProject)
			r.Put("/projects/{id}", s.updateProject)
			r.Delete("/projects/{id}", s.deleteProject)

			r.Post("/services", s.createOffering)
			r.Put("/services/{id}", s.updateOffering)
			r.Delete("/services/{id}", s.deleteOffering)

			r.Get("/contacts", s.listContacts)
			r.Patch("/contacts/{id}/status", s.transitionContact)
			r.Delete("/contacts/{id}", s.deleteContact)
		})
	})

	return r
}

// --- chat ---

func (s *Server) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	resp, err := s.chat.Ask(r.Context(), req.Query, req.MaxResults)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) askDetailed(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	resp, err := s.chat.AskDetailed(r.Context(), req.Query, req.MaxResults)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) chatStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.chat.Stats())
}

// --- blogs ---

func (s *Server) listPublishedBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := s.blogs.Published(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blogsToDTO(blogs))
}

func (s *Server) listAllBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := s.blogs.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blogsToDTO(blogs))
}

func (s *Server) getBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b, err := s.blogs.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blogToDTO(b))
}

func (s *Server) getBlogBySlug(w http.ResponseWriter, r *http.Request) {
	b, err := s.blogs.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blogToDTO(b))
}

func (s *Server) createBlog(w http.ResponseWriter, r *http.Request) {
	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	b := req.toDomain(0)
	if err := s.blogs.Create(r.Context(), b); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, blogToDTO(b))
}

func (s *Server) updateBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	b := req.toDomain(id)
	if err := s.blogs.Update(r.Context(), b); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blogToDTO(b))
}

func (s *Server) deleteBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.blogs.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- projects ---

func (s *Server) listPublishedProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.Published(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectsToDTO(projects))
}

func (s *Server) listAllProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectsToDTO(projects))
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := s.projects.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectToDTO(p))
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	p := req.toDomain(0)
	if err := s.projects.Create(r.Context(), p); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, projectToDTO(p))
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	p := req.toDomain(id)
	if err := s.projects.Update(r.Context(), p); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectToDTO(p))
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.projects.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- offerings ---

func (s *Server) listOfferings(w http.ResponseWriter, r *http.Request) {
	offerings, err := s.offerings.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offeringsToDTO(offerings))
}

func (s *Server) getOffering(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	o, err := s.offerings.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offeringToDTO(o))
}

func (s *Server) createOffering(w http.ResponseWriter, r *http.Request) {
	var req offeringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	o := req.toDomain(0)
	if err := s.offerings.Create(r.Context(), o); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, offeringToDTO(o))
}

func (s *Server) updateOffering(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req offeringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	o := req.toDomain(id)
	if err := s.offerings.Update(r.Context(), o); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offeringToDTO(o))
}

func (s *Server) deleteOffering(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.offerings.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- contacts ---

func (s *Server) submitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	c := &domain.Contact{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		ServiceID: req.ServiceID,
		Message:   req.Message,
	}
	if err := s.contacts.Submit(r.Context(), c); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contactToDTO(c))
}

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.contacts.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contactsToDTO(contacts))
}

func (s *Server) transitionContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req contactTransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if err := s.contacts.Transition(r.Context(), id, req.Status, req.Note, req.HandledBy); err != nil {
		s.handleDomainError(w, err)
		return
	}

	c, err := s.contacts.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contactToDTO(c))
}

func (s *Server) deleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.contacts.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- dashboard / health ---

func (s *Server) dashboardOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.dashboard.Overview(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// pathID parses the {id} route parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_input", "id must be a positive integer")
		return 0, false
	}
	return id, true
}
