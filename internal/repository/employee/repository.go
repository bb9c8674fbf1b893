package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Artexxx/HR-Registry/internal/dto"
)

type PgxPoolIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository struct {
	pool PgxPoolIface
}

func NewRepository(pool PgxPoolIface) *Repository {
	return &Repository{pool: pool}
}

const employeeColumns = `
employee_id,
first_name,
last_name,
email,
phone,
to_char(hire_date,'YYYY-MM-DD'),
job_id,
salary,
commission_pct,
manager_id,
department_id`

// NextID резервирует идентификатор сотрудника из последовательности.
// Нужен двухфазному созданию отдела, где id руководителя должен быть
// известен до вставки самой строки сотрудника.
func (r *Repository) NextID(ctx context.Context) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `SELECT nextval('employees_employee_id_seq')`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("row.Scan: %w", err)
	}

	return id, nil
}

// Insert создаёт сотрудника. Если e.EmployeeID == 0, идентификатор
// берётся из последовательности; иначе используется переданный
// (зарезервированный через NextID).
func (r *Repository) Insert(ctx context.Context, e dto.Employee) (int64, error) {
	query := `
insert into employees
  (employee_id, first_name, last_name, email, phone, hire_date, job_id, salary, commission_pct, manager_id, department_id)
values
  (coalesce(nullif(@employee_id, 0::bigint), nextval('employees_employee_id_seq')),
   @first_name, @last_name, @email, @phone, @hire_date::date, @job_id, @salary, @commission_pct, @manager_id, @department_id)
returning employee_id;
`
	args := pgx.NamedArgs{
		"employee_id":    e.EmployeeID,
		"first_name":     e.FirstName,
		"last_name":      e.LastName,
		"email":          e.Email,
		"phone":          e.Phone,
		"hire_date":      e.HireDate,
		"job_id":         e.JobID,
		"salary":         e.Salary,
		"commission_pct": e.CommissionPct,
		"manager_id":     e.ManagerID,
		"department_id":  e.DepartmentID,
	}

	var id int64
	err := r.pool.QueryRow(ctx, query, args).Scan(&id)
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == "23505" {
			return 0, dto.ErrAlreadyExists
		}

		return 0, fmt.Errorf("row.Scan: %w", err)
	}

	return id, nil
}

func (r *Repository) Update(ctx context.Context, e dto.Employee) error {
	query := `
update employees set
  first_name     = @first_name,
  last_name      = @last_name,
  email          = @email,
  phone          = @phone,
  hire_date      = @hire_date::date,
  job_id         = @job_id,
  salary         = @salary,
  commission_pct = @commission_pct,
  manager_id     = @manager_id,
  department_id  = @department_id
where employee_id = @employee_id;
`
	args := pgx.NamedArgs{
		"employee_id":    e.EmployeeID,
		"first_name":     e.FirstName,
		"last_name":      e.LastName,
		"email":          e.Email,
		"phone":          e.Phone,
		"hire_date":      e.HireDate,
		"job_id":         e.JobID,
		"salary":         e.Salary,
		"commission_pct": e.CommissionPct,
		"manager_id":     e.ManagerID,
		"department_id":  e.DepartmentID,
	}

	tag, err := r.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dto.ErrNotFound
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, employeeID int64) error {
	query := `delete from employees where employee_id = $1`

	tag, err := r.pool.Exec(ctx, query, employeeID)
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == "23503" {
			return dto.ErrHasReferences
		}

		return fmt.Errorf("pool.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dto.ErrNotFound
	}

	return nil
}

func (r *Repository) Exists(ctx context.Context, employeeID int64) (bool, error) {
	query := `SELECT 1 FROM employees WHERE employee_id = $1 LIMIT 1;`

	var x int
	err := r.pool.QueryRow(ctx, query, employeeID).Scan(&x)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (r *Repository) GetByID(ctx context.Context, employeeID int64) (*dto.Employee, error) {
	query := `select ` + employeeColumns + ` from employees where employee_id = $1;`

	row := r.pool.QueryRow(ctx, query, employeeID)

	out, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dto.ErrNotFound
		}

		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return out, nil
}

// GetForUpdate читает строку сотрудника с блокировкой FOR UPDATE —
// снимок «до» для Audit Recorder берётся под той же блокировкой,
// что и последующий update.
func (r *Repository) GetForUpdate(ctx context.Context, employeeID int64) (*dto.Employee, error) {
	query := `select ` + employeeColumns + ` from employees where employee_id = $1 for update;`

	row := r.pool.QueryRow(ctx, query, employeeID)

	out, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dto.ErrNotFound
		}

		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return out, nil
}

func (r *Repository) List(ctx context.Context) ([]dto.Employee, error) {
	query := `select ` + employeeColumns + ` from employees order by employee_id;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var out []dto.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return out, nil
}

func scanEmployee(row pgx.Row) (*dto.Employee, error) {
	var e dto.Employee

	err := row.Scan(
		&e.EmployeeID,
		&e.FirstName,
		&e.LastName,
		&e.Email,
		&e.Phone,
		&e.HireDate,
		&e.JobID,
		&e.Salary,
		&e.CommissionPct,
		&e.ManagerID,
		&e.DepartmentID,
	)
	if err != nil {
		return nil, err
	}

	return &e, nil
}
