package template

import (
	"context"

	"perfeval/internal/domain/role"
)

type StoreAPI interface {
	ListTemplates(ctx context.Context) ([]Template, error)
	ListTemplatesByRole(ctx context.Context, r role.Role) ([]Template, error)
	GetTemplate(ctx context.Context, id string) (Template, error)
	InsertTemplate(ctx context.Context, name string, r role.Role, criteria []Criterion) (Template, error)
	UpdateTemplate(ctx context.Context, id string, name *string, r *role.Role, criteria []Criterion) (Template, error)
	DeleteTemplate(ctx context.Context, id string) error
	CountTemplates(ctx context.Context) (int, error)
}
