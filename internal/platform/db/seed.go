package db

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"perfeval/internal/domain/auth"
	"perfeval/internal/domain/role"
	"perfeval/internal/platform/config"
)

// Seed is idempotent: every ensure step checks before inserting, so it is
// safe to run on each startup.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureAdminAccount(ctx, pool, cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
		return err
	}

	if err := ensureDefaultTemplates(ctx, pool); err != nil {
		return err
	}

	if cfg.SeedDemoData {
		if err := ensureDemoEmployees(ctx, pool); err != nil {
			return err
		}
	}

	return nil
}

func ensureAdminAccount(ctx context.Context, pool *pgxpool.Pool, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM admin_accounts WHERE username = $1", username).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, "INSERT INTO admin_accounts (username, password_hash) VALUES ($1, $2)", username, hash)
	return err
}

type seedCriterion struct {
	ID          string `json:"id"`
	Criteria    string `json:"criteria"`
	Description string `json:"description"`
	MaxMarks    int    `json:"maxMarks"`
}

// ensureDefaultTemplates installs one review template per role so a fresh
// deployment has a working portal for every role. Skipped entirely once any
// template exists, so admin edits are never overwritten.
func ensureDefaultTemplates(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM templates").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for r, tpl := range defaultTemplates() {
		criteria := make([]seedCriterion, 0, len(tpl.criteria))
		for _, c := range tpl.criteria {
			c.ID = uuid.NewString()
			criteria = append(criteria, c)
		}
		criteriaJSON, err := json.Marshal(criteria)
		if err != nil {
			return err
		}
		_, err = pool.Exec(ctx, `
      INSERT INTO templates (name, role, criteria_json)
      VALUES ($1, $2, $3)
    `, tpl.name, string(r), criteriaJSON)
		if err != nil {
			return err
		}
	}
	return nil
}

type seedTemplate struct {
	name     string
	criteria []seedCriterion
}

func defaultTemplates() map[role.Role]seedTemplate {
	return map[role.Role]seedTemplate{
		role.PrincipalConsultant: {
			name: "Principal Consultant Performance Review",
			criteria: []seedCriterion{
				{Criteria: "Practice Leadership", Description: "Direction-setting for the consulting practice and its standards", MaxMarks: 30},
				{Criteria: "Client Strategy", Description: "Strategic thinking in client engagements and solution architecture", MaxMarks: 25},
				{Criteria: "Business Development", Description: "Contribution to winning and growing client accounts", MaxMarks: 25},
				{Criteria: "Mentorship", Description: "Developing senior staff and building team capability", MaxMarks: 20},
			},
		},
		role.SeniorConsultant: {
			name: "Senior Consultant Performance Review",
			criteria: []seedCriterion{
				{Criteria: "Technical Leadership", Description: "Ability to lead technical initiatives and mentor junior team members", MaxMarks: 25},
				{Criteria: "Client Strategy", Description: "Strategic thinking in client engagements and solution architecture", MaxMarks: 25},
				{Criteria: "Project Delivery", Description: "Quality and timeliness of complex project deliverables", MaxMarks: 30},
				{Criteria: "Team Collaboration", Description: "Effectiveness in leading and collaborating with team members", MaxMarks: 20},
			},
		},
		role.Consultant: {
			name: "Consultant Performance Review",
			criteria: []seedCriterion{
				{Criteria: "Technical Expertise", Description: "Depth of knowledge in relevant technologies and frameworks", MaxMarks: 25},
				{Criteria: "Client Management", Description: "Ability to manage client relationships and expectations", MaxMarks: 25},
				{Criteria: "Project Execution", Description: "Quality and timeliness of project deliverables", MaxMarks: 30},
				{Criteria: "Team Collaboration", Description: "Effectiveness in working with team members", MaxMarks: 20},
			},
		},
		role.SeniorBIDeveloper: {
			name: "Senior BI Developer Performance Review",
			criteria: []seedCriterion{
				{Criteria: "Data Architecture", Description: "Design of robust data models, pipelines and reporting layers", MaxMarks: 30},
				{Criteria: "Technical Leadership", Description: "Guiding BI standards and mentoring developers", MaxMarks: 25},
				{Criteria: "Delivery Quality", Description: "Accuracy and timeliness of dashboards and data products", MaxMarks: 25},
				{Criteria: "Stakeholder Communication", Description: "Translating business questions into analytical solutions", MaxMarks: 20},
			},
		},
		role.BIDeveloper: {
			name: "BI Developer Performance Review",
			criteria: []seedCriterion{
				{Criteria: "Report Development", Description: "Quality of dashboards, reports and visualisations delivered", MaxMarks: 30},
				{Criteria: "Data Handling", Description: "Correctness of queries, transformations and data validation", MaxMarks: 25},
				{Criteria: "Learning & Development", Description: "Progress in learning new tools and techniques", MaxMarks: 25},
				{Criteria: "Communication", Description: "Effectiveness in communicating progress and challenges", MaxMarks: 20},
			},
		},
	}
}

func ensureDemoEmployees(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demo := []struct {
		name     string
		email    string
		role     role.Role
		username string
	}{
		{"Asha Fernando", "asha.fernando@example.com", role.SeniorConsultant, "asha"},
		{"Miguel Santos", "miguel.santos@example.com", role.Consultant, "miguel"},
		{"Priya Nair", "priya.nair@example.com", role.BIDeveloper, "priya"},
	}

	hash, err := auth.HashPassword("changeme")
	if err != nil {
		return err
	}

	for _, d := range demo {
		var id string
		err := pool.QueryRow(ctx, `
      INSERT INTO employees (name, email, role, department, position, join_date)
      VALUES ($1, $2, $3, 'Consulting', $4, now())
      RETURNING id
    `, d.name, d.email, string(d.role), d.role.Display()).Scan(&id)
		if err != nil {
			return err
		}
		_, err = pool.Exec(ctx, `
      INSERT INTO employee_auth (employee_id, username, password_hash)
      VALUES ($1, $2, $3)
    `, id, d.username, hash)
		if err != nil {
			return err
		}
	}
	return nil
}
