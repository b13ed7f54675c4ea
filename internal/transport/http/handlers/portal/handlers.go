package portalhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perfeval/internal/domain/auth"
	"perfeval/internal/domain/directory"
	"perfeval/internal/domain/role"
	"perfeval/internal/domain/submission"
	"perfeval/internal/domain/template"
	"perfeval/internal/transport/http/api"
	"perfeval/internal/transport/http/middleware"
	"perfeval/internal/transport/http/shared"
)

// Handler serves the per-role employee portal: login, the role's overview,
// and submitting self-evaluations.
type Handler struct {
	Gate        *auth.Service
	Directory   *directory.Service
	Templates   *template.Service
	Submissions *submission.Service
}

func NewHandler(gate *auth.Service, dir *directory.Service, tpls *template.Service, subs *submission.Service) *Handler {
	return &Handler{Gate: gate, Directory: dir, Templates: tpls, Submissions: subs}
}

func (h *Handler) RegisterRoutes(r chi.Router, sessions middleware.SessionChecker) {
	r.Route("/portal/{portalRole}", func(r chi.Router) {
		r.Post("/login", h.handleLogin)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireEmployee(sessions))
			r.Get("/", h.handleOverview)
			r.Post("/submissions", h.handleSubmit)
			r.Get("/submissions/mine", h.handleMySubmissions)
		})
	})
}

// RegisterAdminRoutes exposes the portal link listing used by the admin UI.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/portal-links", h.handlePortalLinks)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requested, err := auth.ValidateAccess(chi.URLParam(r, "portalRole"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "invalid_portal", "unknown portal", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("username", payload.Username, "username is required")
	v.Required("password", payload.Password, "password is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	emp, err := h.Gate.Authenticate(r.Context(), payload.Username, payload.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", middleware.GetRequestID(r.Context()))
		return
	}

	if err := auth.AuthorizeRoleMatch(emp, requested); err != nil {
		api.Fail(w, http.StatusForbidden, "role_mismatch", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	token, err := h.Gate.StartSession(r.Context(), emp, requested)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to start session", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user": map[string]any{
			"id":    emp.ID,
			"name":  emp.Name,
			"email": emp.Email,
			"role":  emp.Role,
		},
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	portalRole, _, ok := h.portalRole(w, r)
	if !ok {
		return
	}

	employees, err := h.Directory.ListByRole(r.Context(), portalRole)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "portal_failed", "failed to load portal data", middleware.GetRequestID(r.Context()))
		return
	}
	templates, err := h.Templates.ListByRole(r.Context(), portalRole)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "portal_failed", "failed to load portal data", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"role":        portalRole,
		"roleDisplay": portalRole.Display(),
		"employees":   employees,
		"templates":   templates,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	portalRole, claims, ok := h.portalRole(w, r)
	if !ok {
		return
	}

	var draft submission.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("templateId", draft.TemplateID, "templateId is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	emp, err := h.Directory.Get(r.Context(), claims.EmployeeID)
	if errors.Is(err, directory.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "employee no longer exists", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "submit_failed", "failed to submit evaluation", middleware.GetRequestID(r.Context()))
		return
	}
	if emp.Role != portalRole {
		api.Fail(w, http.StatusForbidden, "role_mismatch", "you do not belong to this portal", middleware.GetRequestID(r.Context()))
		return
	}

	tpl, err := h.Templates.Get(r.Context(), draft.TemplateID)
	if errors.Is(err, template.ErrTemplateNotFound) {
		api.Fail(w, http.StatusNotFound, "template_not_found", "template not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "submit_failed", "failed to submit evaluation", middleware.GetRequestID(r.Context()))
		return
	}

	sub, err := h.Submissions.Submit(r.Context(), emp, tpl, draft)
	if err != nil {
		var verr *submission.ValidationError
		switch {
		case errors.As(err, &verr):
			issues := make([]shared.ValidationIssue, 0, len(verr.Issues))
			for _, issue := range verr.Issues {
				issues = append(issues, shared.ValidationIssue{Field: issue.Field, Reason: issue.Reason})
			}
			shared.FailValidation(w, middleware.GetRequestID(r.Context()), issues)
		case errors.Is(err, submission.ErrTemplateRoleMismatch):
			api.Fail(w, http.StatusConflict, "template_role_mismatch", "template is for a different role", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "submit_failed", "failed to submit evaluation", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Created(w, sub, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMySubmissions(w http.ResponseWriter, r *http.Request) {
	_, claims, ok := h.portalRole(w, r)
	if !ok {
		return
	}
	submissions, err := h.Submissions.ListByEmployee(r.Context(), claims.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "submission_list_failed", "failed to list submissions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, submissions, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePortalLinks(w http.ResponseWriter, r *http.Request) {
	links := make([]map[string]string, 0, len(role.All()))
	for _, portalRole := range role.All() {
		links = append(links, map[string]string{
			"role":    string(portalRole),
			"display": portalRole.Display(),
			"path":    "/portal/" + string(portalRole),
		})
	}
	api.Success(w, links, middleware.GetRequestID(r.Context()))
}

// portalRole resolves the portal from the URL and refuses tokens issued
// for a different portal's session.
func (h *Handler) portalRole(w http.ResponseWriter, r *http.Request) (role.Role, *auth.Claims, bool) {
	portalRole, ok := role.Parse(chi.URLParam(r, "portalRole"))
	if !ok {
		api.Fail(w, http.StatusNotFound, "invalid_portal", "unknown portal", middleware.GetRequestID(r.Context()))
		return "", nil, false
	}
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return "", nil, false
	}
	if claims.Role != string(portalRole) {
		api.Fail(w, http.StatusForbidden, "role_mismatch", "you do not belong to this portal", middleware.GetRequestID(r.Context()))
		return "", nil, false
	}
	return portalRole, claims, true
}
