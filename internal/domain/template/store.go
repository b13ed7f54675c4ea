package template

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perfeval/internal/domain/role"
)

// Store keeps each template's ordered criteria as a single JSONB document;
// criteria have no life of their own outside their template.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const templateColumns = "id, name, role, criteria_json, created_at, updated_at"

func scanTemplate(row pgx.Row) (Template, error) {
	var tpl Template
	var criteriaJSON []byte
	if err := row.Scan(&tpl.ID, &tpl.Name, &tpl.Role, &criteriaJSON, &tpl.CreatedAt, &tpl.UpdatedAt); err != nil {
		return Template{}, err
	}
	if err := json.Unmarshal(criteriaJSON, &tpl.Criteria); err != nil {
		return Template{}, err
	}
	return tpl, nil
}

func (s *Store) ListTemplates(ctx context.Context) ([]Template, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+templateColumns+" FROM templates ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTemplates(rows)
}

func (s *Store) ListTemplatesByRole(ctx context.Context, r role.Role) ([]Template, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+templateColumns+" FROM templates WHERE role = $1 ORDER BY created_at DESC", string(r))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTemplates(rows)
}

func collectTemplates(rows pgx.Rows) ([]Template, error) {
	var out []Template
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tpl)
	}
	return out, rows.Err()
}

func (s *Store) GetTemplate(ctx context.Context, id string) (Template, error) {
	tpl, err := scanTemplate(s.DB.QueryRow(ctx, "SELECT "+templateColumns+" FROM templates WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Template{}, ErrTemplateNotFound
	}
	return tpl, err
}

func (s *Store) InsertTemplate(ctx context.Context, name string, r role.Role, criteria []Criterion) (Template, error) {
	criteriaJSON, err := json.Marshal(criteria)
	if err != nil {
		return Template{}, err
	}
	row := s.DB.QueryRow(ctx, `
    INSERT INTO templates (name, role, criteria_json)
    VALUES ($1,$2,$3)
    RETURNING `+templateColumns+`
  `, name, string(r), criteriaJSON)
	return scanTemplate(row)
}

func (s *Store) UpdateTemplate(ctx context.Context, id string, name *string, r *role.Role, criteria []Criterion) (Template, error) {
	var criteriaJSON []byte
	if criteria != nil {
		encoded, err := json.Marshal(criteria)
		if err != nil {
			return Template{}, err
		}
		criteriaJSON = encoded
	}
	var roleValue *string
	if r != nil {
		value := string(*r)
		roleValue = &value
	}
	row := s.DB.QueryRow(ctx, `
    UPDATE templates SET
      name = COALESCE($2, name),
      role = COALESCE($3, role),
      criteria_json = COALESCE($4, criteria_json),
      updated_at = now()
    WHERE id = $1
    RETURNING `+templateColumns+`
  `, id, name, roleValue, criteriaJSON)
	tpl, err := scanTemplate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Template{}, ErrTemplateNotFound
	}
	return tpl, err
}

func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM templates WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (s *Store) CountTemplates(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM templates").Scan(&count)
	return count, err
}
