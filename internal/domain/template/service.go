package template

import (
	"context"

	"github.com/google/uuid"

	"perfeval/internal/domain/auth"
	"perfeval/internal/domain/role"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) List(ctx context.Context) ([]Template, error) {
	return s.Store.ListTemplates(ctx)
}

func (s *Service) ListByRole(ctx context.Context, r role.Role) ([]Template, error) {
	if !r.Valid() {
		return nil, auth.ErrInvalidRole
	}
	return s.Store.ListTemplatesByRole(ctx, r)
}

func (s *Service) Get(ctx context.Context, id string) (Template, error) {
	return s.Store.GetTemplate(ctx, id)
}

func (s *Service) Create(ctx context.Context, tpl NewTemplate) (Template, error) {
	if !tpl.Role.Valid() {
		return Template{}, auth.ErrInvalidRole
	}
	return s.Store.InsertTemplate(ctx, tpl.Name, tpl.Role, assignIDs(tpl.Criteria))
}

func (s *Service) Update(ctx context.Context, id string, update TemplateUpdate) (Template, error) {
	if update.Role != nil && !update.Role.Valid() {
		return Template{}, auth.ErrInvalidRole
	}
	var criteria []Criterion
	if update.Criteria != nil {
		criteria = assignIDs(update.Criteria)
	}
	return s.Store.UpdateTemplate(ctx, id, update.Name, update.Role, criteria)
}

// Delete refuses to drop the last remaining template so every deployment
// keeps at least one evaluation form.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Store.GetTemplate(ctx, id); err != nil {
		return err
	}
	count, err := s.Store.CountTemplates(ctx)
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastTemplate
	}
	return s.Store.DeleteTemplate(ctx, id)
}

// AddCriterion appends with a freshly generated id; order is preserved.
func (s *Service) AddCriterion(ctx context.Context, templateID string, criterion NewCriterion) (Template, error) {
	tpl, err := s.Store.GetTemplate(ctx, templateID)
	if err != nil {
		return Template{}, err
	}
	criteria := append(tpl.Criteria, Criterion{
		ID:          uuid.NewString(),
		Criteria:    criterion.Criteria,
		Description: criterion.Description,
		MaxMarks:    criterion.MaxMarks,
	})
	return s.Store.UpdateTemplate(ctx, templateID, nil, nil, criteria)
}

func (s *Service) UpdateCriterion(ctx context.Context, templateID, criterionID string, update CriterionUpdate) (Template, error) {
	tpl, err := s.Store.GetTemplate(ctx, templateID)
	if err != nil {
		return Template{}, err
	}
	found := false
	criteria := make([]Criterion, len(tpl.Criteria))
	for i, c := range tpl.Criteria {
		if c.ID == criterionID {
			found = true
			if update.Criteria != nil {
				c.Criteria = *update.Criteria
			}
			if update.Description != nil {
				c.Description = *update.Description
			}
			if update.MaxMarks != nil {
				c.MaxMarks = *update.MaxMarks
			}
		}
		criteria[i] = c
	}
	if !found {
		return Template{}, ErrCriterionNotFound
	}
	return s.Store.UpdateTemplate(ctx, templateID, nil, nil, criteria)
}

// DeleteCriterion refuses to empty a template; the criteria count never
// reaches zero.
func (s *Service) DeleteCriterion(ctx context.Context, templateID, criterionID string) (Template, error) {
	tpl, err := s.Store.GetTemplate(ctx, templateID)
	if err != nil {
		return Template{}, err
	}
	criteria := make([]Criterion, 0, len(tpl.Criteria))
	found := false
	for _, c := range tpl.Criteria {
		if c.ID == criterionID {
			found = true
			continue
		}
		criteria = append(criteria, c)
	}
	if !found {
		return Template{}, ErrCriterionNotFound
	}
	if len(criteria) == 0 {
		return Template{}, ErrLastCriterion
	}
	return s.Store.UpdateTemplate(ctx, templateID, nil, nil, criteria)
}

func assignIDs(criteria []NewCriterion) []Criterion {
	out := make([]Criterion, len(criteria))
	for i, c := range criteria {
		out[i] = Criterion{
			ID:          uuid.NewString(),
			Criteria:    c.Criteria,
			Description: c.Description,
			MaxMarks:    c.MaxMarks,
		}
	}
	return out
}
