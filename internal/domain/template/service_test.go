package template

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"perfeval/internal/domain/role"
)

type memStore struct {
	templates map[string]Template
	nextID    int
}

func newMemStore() *memStore {
	return &memStore{templates: map[string]Template{}}
}

func (m *memStore) ListTemplates(_ context.Context) ([]Template, error) {
	var out []Template
	for _, tpl := range m.templates {
		out = append(out, tpl)
	}
	return out, nil
}

func (m *memStore) ListTemplatesByRole(_ context.Context, r role.Role) ([]Template, error) {
	var out []Template
	for _, tpl := range m.templates {
		if tpl.Role == r {
			out = append(out, tpl)
		}
	}
	return out, nil
}

func (m *memStore) GetTemplate(_ context.Context, id string) (Template, error) {
	tpl, ok := m.templates[id]
	if !ok {
		return Template{}, ErrTemplateNotFound
	}
	return tpl, nil
}

func (m *memStore) InsertTemplate(_ context.Context, name string, r role.Role, criteria []Criterion) (Template, error) {
	m.nextID++
	tpl := Template{
		ID:        "t" + strconv.Itoa(m.nextID),
		Name:      name,
		Role:      r,
		Criteria:  criteria,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.templates[tpl.ID] = tpl
	return tpl, nil
}

func (m *memStore) UpdateTemplate(_ context.Context, id string, name *string, r *role.Role, criteria []Criterion) (Template, error) {
	tpl, ok := m.templates[id]
	if !ok {
		return Template{}, ErrTemplateNotFound
	}
	if name != nil {
		tpl.Name = *name
	}
	if r != nil {
		tpl.Role = *r
	}
	if criteria != nil {
		tpl.Criteria = criteria
	}
	tpl.UpdatedAt = time.Now()
	m.templates[id] = tpl
	return tpl, nil
}

func (m *memStore) DeleteTemplate(_ context.Context, id string) error {
	if _, ok := m.templates[id]; !ok {
		return ErrTemplateNotFound
	}
	delete(m.templates, id)
	return nil
}

func (m *memStore) CountTemplates(_ context.Context) (int, error) {
	return len(m.templates), nil
}

func newTestTemplate() NewTemplate {
	return NewTemplate{
		Name: "Consultant Performance Review",
		Role: role.Consultant,
		Criteria: []NewCriterion{
			{Criteria: "Technical Expertise", Description: "Depth of knowledge", MaxMarks: 25},
			{Criteria: "Client Management", Description: "Client relationships", MaxMarks: 25},
		},
	}
}

func TestCreateAssignsCriterionIDs(t *testing.T) {
	svc := NewService(newMemStore())

	tpl, err := svc.Create(context.Background(), newTestTemplate())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if len(tpl.Criteria) != 2 {
		t.Fatalf("expected 2 criteria, got %d", len(tpl.Criteria))
	}
	if tpl.Criteria[0].ID == "" || tpl.Criteria[1].ID == "" {
		t.Fatal("criteria must receive generated ids")
	}
	if tpl.Criteria[0].ID == tpl.Criteria[1].ID {
		t.Fatal("criterion ids must be unique")
	}
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	svc := NewService(newMemStore())

	tpl := newTestTemplate()
	tpl.Role = "intern"
	if _, err := svc.Create(context.Background(), tpl); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestDeleteLastTemplateRefused(t *testing.T) {
	svc := NewService(newMemStore())

	tpl, err := svc.Create(context.Background(), newTestTemplate())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if err := svc.Delete(context.Background(), tpl.ID); !errors.Is(err, ErrLastTemplate) {
		t.Fatalf("expected last template refusal, got %v", err)
	}

	second, err := svc.Create(context.Background(), newTestTemplate())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if err := svc.Delete(context.Background(), tpl.ID); err != nil {
		t.Fatalf("delete should succeed with two templates, got %v", err)
	}
	if err := svc.Delete(context.Background(), second.ID); !errors.Is(err, ErrLastTemplate) {
		t.Fatalf("expected last template refusal again, got %v", err)
	}
}

func TestDeleteMissingTemplate(t *testing.T) {
	svc := NewService(newMemStore())
	if err := svc.Delete(context.Background(), "nope"); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddCriterionAppends(t *testing.T) {
	svc := NewService(newMemStore())

	tpl, err := svc.Create(context.Background(), newTestTemplate())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	updated, err := svc.AddCriterion(context.Background(), tpl.ID, NewCriterion{
		Criteria: "Communication", Description: "Clarity of updates", MaxMarks: 10,
	})
	if err != nil {
		t.Fatalf("add criterion error: %v", err)
	}
	if len(updated.Criteria) != 3 {
		t.Fatalf("expected 3 criteria, got %d", len(updated.Criteria))
	}
	last := updated.Criteria[2]
	if last.Criteria != "Communication" || last.ID == "" {
		t.Fatalf("unexpected appended criterion: %+v", last)
	}
}

func TestUpdateCriterionInPlace(t *testing.T) {
	svc := NewService(newMemStore())

	tpl, err := svc.Create(context.Background(), newTestTemplate())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	marks := 30
	updated, err := svc.UpdateCriterion(context.Background(), tpl.ID, tpl.Criteria[0].ID, CriterionUpdate{MaxMarks: &marks})
	if err != nil {
		t.Fatalf("update criterion error: %v", err)
	}
	if updated.Criteria[0].MaxMarks != 30 {
		t.Fatalf("expected max marks 30, got %d", updated.Criteria[0].MaxMarks)
	}
	if updated.Criteria[0].Criteria != "Technical Expertise" {
		t.Fatalf("untouched fields must survive, got %q", updated.Criteria[0].Criteria)
	}

	if _, err := svc.UpdateCriterion(context.Background(), tpl.ID, "ghost", CriterionUpdate{}); !errors.Is(err, ErrCriterionNotFound) {
		t.Fatalf("expected criterion not found, got %v", err)
	}
}

func TestDeleteLastCriterionRefused(t *testing.T) {
	svc := NewService(newMemStore())

	tpl, err := svc.Create(context.Background(), newTestTemplate())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	updated, err := svc.DeleteCriterion(context.Background(), tpl.ID, tpl.Criteria[0].ID)
	if err != nil {
		t.Fatalf("delete criterion error: %v", err)
	}
	if len(updated.Criteria) != 1 {
		t.Fatalf("expected 1 criterion left, got %d", len(updated.Criteria))
	}

	if _, err := svc.DeleteCriterion(context.Background(), tpl.ID, updated.Criteria[0].ID); !errors.Is(err, ErrLastCriterion) {
		t.Fatalf("expected last criterion refusal, got %v", err)
	}
}
