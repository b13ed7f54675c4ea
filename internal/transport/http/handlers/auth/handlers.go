package authhandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perfeval/internal/domain/auth"
	"perfeval/internal/transport/http/api"
	"perfeval/internal/transport/http/middleware"
	"perfeval/internal/transport/http/shared"
)

type Handler struct {
	Gate *auth.Service
}

func NewHandler(gate *auth.Service) *Handler {
	return &Handler{Gate: gate}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/admin/login", h.handleAdminLogin)
	r.Post("/auth/logout", h.handleLogout)
	r.Get("/auth/session", h.handleSession)
}

func (h *Handler) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
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

	account, err := h.Gate.AuthenticateAdmin(r.Context(), payload.Username, payload.Password)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := h.Gate.StartAdminSession(r.Context(), account)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "session_error", "failed to start session", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user":  map[string]any{"username": account.Username, "admin": true},
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if claims, ok := middleware.GetClaims(r.Context()); ok {
		h.Gate.EndSession(r.Context(), claims)
	}
	api.Success(w, map[string]string{"status": "logged_out"}, middleware.GetRequestID(r.Context()))
}

// handleSession restores a still-valid session without re-prompting for
// credentials. Anything expired or revoked restores as absent.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || !h.Gate.RestoreSession(r.Context(), claims) {
		api.Fail(w, http.StatusUnauthorized, "no_session", "no active session", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"subjectId": claims.EmployeeID,
		"name":      claims.Name,
		"role":      claims.Role,
		"admin":     claims.Admin,
	}, middleware.GetRequestID(r.Context()))
}
