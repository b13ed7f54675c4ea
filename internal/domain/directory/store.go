package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"perfeval/internal/domain/role"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = "id, name, email, role, department, position, join_date, created_at"

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(&emp.ID, &emp.Name, &emp.Email, &emp.Role, &emp.Department, &emp.Position, &emp.JoinDate, &emp.CreatedAt)
	return emp, err
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+employeeColumns+" FROM employees ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEmployees(rows)
}

func (s *Store) ListEmployeesByRole(ctx context.Context, r role.Role) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+employeeColumns+" FROM employees WHERE role = $1 ORDER BY created_at DESC", string(r))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]Employee, error) {
	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, id string) (Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	return emp, err
}

func (s *Store) InsertEmployee(ctx context.Context, emp NewEmployee) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO employees (name, email, role, department, position, join_date)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING `+employeeColumns+`
  `, emp.Name, emp.Email, string(emp.Role), emp.Department, emp.Position, emp.JoinDate)
	created, err := scanEmployee(row)
	if isUniqueViolation(err) {
		return Employee{}, ErrDuplicateEmail
	}
	return created, err
}

func (s *Store) UpdateEmployee(ctx context.Context, id string, update EmployeeUpdate) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE employees SET
      name = COALESCE($2, name),
      email = COALESCE($3, email),
      role = COALESCE($4, role),
      department = COALESCE($5, department),
      position = COALESCE($6, position),
      join_date = COALESCE($7, join_date)
    WHERE id = $1
    RETURNING `+employeeColumns+`
  `, id, update.Name, update.Email, roleArg(update.Role), update.Department, update.Position, update.JoinDate)
	emp, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	if isUniqueViolation(err) {
		return Employee{}, ErrDuplicateEmail
	}
	return emp, err
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) InsertCredential(ctx context.Context, employeeID, username, passwordHash string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employee_auth (employee_id, username, password_hash)
    VALUES ($1,$2,$3)
  `, employeeID, username, passwordHash)
	return err
}

func (s *Store) UpdateCredential(ctx context.Context, employeeID, passwordHash string) error {
	_, err := s.DB.Exec(ctx, "UPDATE employee_auth SET password_hash = $1 WHERE employee_id = $2", passwordHash, employeeID)
	return err
}

func roleArg(r *role.Role) *string {
	if r == nil {
		return nil
	}
	value := string(*r)
	return &value
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
