package templateshandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"perfeval/internal/domain/role"
	"perfeval/internal/domain/template"
	"perfeval/internal/transport/http/api"
	"perfeval/internal/transport/http/middleware"
	"perfeval/internal/transport/http/shared"
)

type Handler struct {
	Service *template.Service
}

func NewHandler(service *template.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/templates", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Route("/{templateID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
			r.Post("/criteria", h.handleAddCriterion)
			r.Put("/criteria/{criterionID}", h.handleUpdateCriterion)
			r.Delete("/criteria/{criterionID}", h.handleDeleteCriterion)
		})
	})
}

type criterionPayload struct {
	Criteria    string `json:"criteria"`
	Description string `json:"description"`
	MaxMarks    int    `json:"maxMarks"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		templates []template.Template
		err       error
	)
	if raw := strings.TrimSpace(r.URL.Query().Get("role")); raw != "" {
		filterRole, ok := role.Parse(raw)
		if !ok {
			api.Fail(w, http.StatusBadRequest, "invalid_role", "unknown role "+raw, middleware.GetRequestID(r.Context()))
			return
		}
		templates, err = h.Service.ListByRole(r.Context(), filterRole)
	} else {
		templates, err = h.Service.List(r.Context())
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_list_failed", "failed to list templates", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, templates, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.Service.Get(r.Context(), chi.URLParam(r, "templateID"))
	if errors.Is(err, template.ErrTemplateNotFound) {
		api.Fail(w, http.StatusNotFound, "template_not_found", "template not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_get_failed", "failed to load template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, tpl, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string             `json:"name"`
		Role     string             `json:"role"`
		Criteria []criterionPayload `json:"criteria"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("role", payload.Role, "role is required")
	tplRole, _ := v.Role("role", payload.Role)
	if len(payload.Criteria) == 0 {
		v.Add("criteria", "at least one criterion is required")
	}
	criteria := validateCriteria(v, payload.Criteria)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.Create(r.Context(), template.NewTemplate{
		Name:     payload.Name,
		Role:     tplRole,
		Criteria: criteria,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_create_failed", "failed to create template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     *string            `json:"name"`
		Role     *string            `json:"role"`
		Criteria []criterionPayload `json:"criteria"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	update := template.TemplateUpdate{Name: payload.Name}
	if payload.Role != nil {
		v.Required("role", *payload.Role, "role cannot be empty")
		if parsed, ok := v.Role("role", *payload.Role); ok {
			update.Role = &parsed
		}
	}
	if payload.Criteria != nil {
		if len(payload.Criteria) == 0 {
			v.Add("criteria", "at least one criterion is required")
		}
		update.Criteria = validateCriteria(v, payload.Criteria)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	tpl, err := h.Service.Update(r.Context(), chi.URLParam(r, "templateID"), update)
	if errors.Is(err, template.ErrTemplateNotFound) {
		api.Fail(w, http.StatusNotFound, "template_not_found", "template not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_update_failed", "failed to update template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, tpl, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Delete(r.Context(), chi.URLParam(r, "templateID"))
	switch {
	case errors.Is(err, template.ErrTemplateNotFound):
		api.Fail(w, http.StatusNotFound, "template_not_found", "template not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, template.ErrLastTemplate):
		api.Fail(w, http.StatusConflict, "last_template", "cannot delete the last remaining template", middleware.GetRequestID(r.Context()))
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "template_delete_failed", "failed to delete template", middleware.GetRequestID(r.Context()))
	default:
		api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleAddCriterion(w http.ResponseWriter, r *http.Request) {
	var payload criterionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	criteria := validateCriteria(v, []criterionPayload{payload})
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	tpl, err := h.Service.AddCriterion(r.Context(), chi.URLParam(r, "templateID"), criteria[0])
	if errors.Is(err, template.ErrTemplateNotFound) {
		api.Fail(w, http.StatusNotFound, "template_not_found", "template not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "criterion_add_failed", "failed to add criterion", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, tpl, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateCriterion(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Criteria    *string `json:"criteria"`
		Description *string `json:"description"`
		MaxMarks    *int    `json:"maxMarks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	if payload.Criteria != nil {
		v.Required("criteria", *payload.Criteria, "criteria label cannot be empty")
	}
	if payload.Description != nil {
		v.Required("description", *payload.Description, "description cannot be empty")
	}
	if payload.MaxMarks != nil {
		v.IntRange("maxMarks", *payload.MaxMarks, template.MinMaxMarks, template.MaxMaxMarks)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	tpl, err := h.Service.UpdateCriterion(r.Context(), chi.URLParam(r, "templateID"), chi.URLParam(r, "criterionID"), template.CriterionUpdate{
		Criteria:    payload.Criteria,
		Description: payload.Description,
		MaxMarks:    payload.MaxMarks,
	})
	switch {
	case errors.Is(err, template.ErrTemplateNotFound):
		api.Fail(w, http.StatusNotFound, "template_not_found", "template not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, template.ErrCriterionNotFound):
		api.Fail(w, http.StatusNotFound, "criterion_not_found", "criterion not found", middleware.GetRequestID(r.Context()))
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "criterion_update_failed", "failed to update criterion", middleware.GetRequestID(r.Context()))
	default:
		api.Success(w, tpl, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleDeleteCriterion(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.Service.DeleteCriterion(r.Context(), chi.URLParam(r, "templateID"), chi.URLParam(r, "criterionID"))
	switch {
	case errors.Is(err, template.ErrTemplateNotFound):
		api.Fail(w, http.StatusNotFound, "template_not_found", "template not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, template.ErrCriterionNotFound):
		api.Fail(w, http.StatusNotFound, "criterion_not_found", "criterion not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, template.ErrLastCriterion):
		api.Fail(w, http.StatusConflict, "last_criterion", "cannot delete the last criterion of a template", middleware.GetRequestID(r.Context()))
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "criterion_delete_failed", "failed to delete criterion", middleware.GetRequestID(r.Context()))
	default:
		api.Success(w, tpl, middleware.GetRequestID(r.Context()))
	}
}

func validateCriteria(v *shared.Validator, payloads []criterionPayload) []template.NewCriterion {
	criteria := make([]template.NewCriterion, 0, len(payloads))
	for i, c := range payloads {
		field := fmt.Sprintf("criteria[%d]", i)
		v.Required(field+".criteria", c.Criteria, "criteria label is required")
		v.Required(field+".description", c.Description, "description is required")
		v.IntRange(field+".maxMarks", c.MaxMarks, template.MinMaxMarks, template.MaxMaxMarks)
		criteria = append(criteria, template.NewCriterion{
			Criteria:    strings.TrimSpace(c.Criteria),
			Description: strings.TrimSpace(c.Description),
			MaxMarks:    c.MaxMarks,
		})
	}
	return criteria
}
