package submissionshandler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"perfeval/internal/domain/role"
	"perfeval/internal/domain/submission"
	"perfeval/internal/transport/http/api"
	"perfeval/internal/transport/http/middleware"
)

type Handler struct {
	Service *submission.Service
}

func NewHandler(service *submission.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/submissions", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/export", h.handleExportCSV)
		r.Route("/{submissionID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Delete("/", h.handleDelete)
			r.Get("/export", h.handleExportPDF)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.listForRequest(r)
	if err != nil {
		if errors.Is(err, errUnknownRole) {
			api.Fail(w, http.StatusBadRequest, "invalid_role", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "submission_list_failed", "failed to list submissions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, submissions, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	sub, err := h.Service.Get(r.Context(), chi.URLParam(r, "submissionID"))
	if errors.Is(err, submission.ErrSubmissionNotFound) {
		api.Fail(w, http.StatusNotFound, "submission_not_found", "submission not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "submission_get_failed", "failed to load submission", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, sub, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Delete(r.Context(), chi.URLParam(r, "submissionID"))
	switch {
	case errors.Is(err, submission.ErrSubmissionNotFound):
		api.Fail(w, http.StatusNotFound, "submission_not_found", "submission not found", middleware.GetRequestID(r.Context()))
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "submission_delete_failed", "failed to delete submission", middleware.GetRequestID(r.Context()))
	default:
		api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.listForRequest(r)
	if err != nil {
		if errors.Is(err, errUnknownRole) {
			api.Fail(w, http.StatusBadRequest, "invalid_role", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to load submissions", middleware.GetRequestID(r.Context()))
		return
	}
	if len(submissions) == 0 {
		api.Fail(w, http.StatusNotFound, "nothing_to_export", submission.ErrNothingToExport.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	var buf bytes.Buffer
	if err := submission.WriteCSV(&buf, submissions); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to build export", middleware.GetRequestID(r.Context()))
		return
	}

	scope := "all-roles"
	if raw := strings.TrimSpace(r.URL.Query().Get("role")); raw != "" {
		scope = raw
	}
	filename := fmt.Sprintf("complete-performance-data-%s-%s.csv", scope, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Write(buf.Bytes())
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	sub, err := h.Service.Get(r.Context(), chi.URLParam(r, "submissionID"))
	if errors.Is(err, submission.ErrSubmissionNotFound) {
		api.Fail(w, http.StatusNotFound, "submission_not_found", "submission not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to load submission", middleware.GetRequestID(r.Context()))
		return
	}

	var buf bytes.Buffer
	if err := submission.WritePDF(&buf, sub); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to build export", middleware.GetRequestID(r.Context()))
		return
	}

	filename := fmt.Sprintf("evaluation-%s-%s.pdf", sub.EmployeeName, sub.SubmittedAt.Format("2006-01-02"))
	filename = strings.ReplaceAll(strings.ToLower(filename), " ", "-")
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Write(buf.Bytes())
}

var errUnknownRole = errors.New("unknown role")

func (h *Handler) listForRequest(r *http.Request) ([]submission.Submission, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("role"))
	if raw == "" {
		return h.Service.List(r.Context())
	}
	filterRole, ok := role.Parse(raw)
	if !ok {
		return nil, fmt.Errorf("%w %s", errUnknownRole, raw)
	}
	return h.Service.ListByRole(r.Context(), filterRole)
}
