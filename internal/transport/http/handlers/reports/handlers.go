package reportshandler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"perfeval/internal/domain/directory"
	"perfeval/internal/domain/reports"
	"perfeval/internal/domain/submission"
	"perfeval/internal/domain/template"
	"perfeval/internal/transport/http/api"
	"perfeval/internal/transport/http/middleware"
)

type Handler struct {
	Directory   *directory.Service
	Templates   *template.Service
	Submissions *submission.Service
}

func NewHandler(dir *directory.Service, tpls *template.Service, subs *submission.Service) *Handler {
	return &Handler{Directory: dir, Templates: tpls, Submissions: subs}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/dashboard", h.handleDashboard)
	r.Get("/backup", h.handleBackup)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Directory.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to build dashboard", middleware.GetRequestID(r.Context()))
		return
	}
	templates, err := h.Templates.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to build dashboard", middleware.GetRequestID(r.Context()))
		return
	}
	submissions, err := h.Submissions.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to build dashboard", middleware.GetRequestID(r.Context()))
		return
	}

	dashboard := reports.BuildDashboard(len(employees), len(templates), submissions)
	api.Success(w, dashboard, middleware.GetRequestID(r.Context()))
}

// handleBackup streams the full dataset as a JSON download so an admin
// can archive or migrate it.
func (h *Handler) handleBackup(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Directory.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "backup_failed", "failed to build backup", middleware.GetRequestID(r.Context()))
		return
	}
	templates, err := h.Templates.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "backup_failed", "failed to build backup", middleware.GetRequestID(r.Context()))
		return
	}
	submissions, err := h.Submissions.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "backup_failed", "failed to build backup", middleware.GetRequestID(r.Context()))
		return
	}

	backup := map[string]any{
		"team":        employees,
		"templates":   templates,
		"submissions": submissions,
		"exportDate":  time.Now().UTC().Format(time.RFC3339),
	}

	filename := fmt.Sprintf("performance-data-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(backup); err != nil {
		slog.Warn("backup write failed", "err", err)
	}
}
