package history

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

// Repository — хранилище записей истории назначений. Записи только
// добавляются; update/delete здесь намеренно отсутствуют.
type Repository struct {
	pool PgxPoolIface
}

func NewRepository(pool PgxPoolIface) *Repository {
	return &Repository{pool: pool}
}

// Insert добавляет запись истории. Пустой StartDate означает «сейчас»
// (время транзакции).
func (r *Repository) Insert(ctx context.Context, h dto.JobHistoryEntry) error {
	q := `
INSERT INTO job_history
	(employee_id, start_date, end_date, job_id, department_id)
VALUES
	(@employee_id,
	 coalesce(nullif(@start_date,'')::timestamptz, now()),
	 nullif(@end_date,'')::date,
	 @job_id,
	 @department_id);
`
	args := pgx.NamedArgs{
		"employee_id":   h.EmployeeID,
		"start_date":    h.StartDate,
		"end_date":      strptr(h.EndDate),
		"job_id":        h.JobID,
		"department_id": h.DepartmentID,
	}

	_, err := r.pool.Exec(ctx, q, args)
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == "23505" {
			return dto.ErrAlreadyExists
		}

		return fmt.Errorf("pool.Exec: %w", err)
	}

	return nil
}

func (r *Repository) CountByEmployee(ctx context.Context, employeeID int64) (int, error) {
	q := `SELECT count(*) FROM job_history WHERE employee_id = $1;`

	var n int
	if err := r.pool.QueryRow(ctx, q, employeeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("row.Scan: %w", err)
	}

	return n, nil
}

// ListByEmployee возвращает записи истории одного сотрудника,
// отсортированные по дате начала (сначала самая ранняя).
func (r *Repository) ListByEmployee(ctx context.Context, employeeID int64) ([]dto.JobHistoryEntry, error) {
	q := `
SELECT employee_id,
	   to_char(start_date,'YYYY-MM-DD"T"HH24:MI:SSOF'),
	   to_char(end_date,'YYYY-MM-DD'),
	   job_id,
	   department_id
FROM job_history
WHERE employee_id = $1
ORDER BY start_date ASC;
`
	rows, err := r.pool.Query(ctx, q, employeeID)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var out []dto.JobHistoryEntry
	for rows.Next() {
		var it dto.JobHistoryEntry

		err = rows.Scan(&it.EmployeeID, &it.StartDate, &it.EndDate, &it.JobID, &it.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		out = append(out, it)
	}

	return out, rows.Err()
}

// ListRecords — история сотрудника, слитая с его текущими атрибутами
// и зарплатной вилкой исторической должности.
func (r *Repository) ListRecords(ctx context.Context, employeeID int64) ([]dto.HistoryRecord, error) {
	q := `
SELECT h.employee_id,
	   to_char(h.start_date,'YYYY-MM-DD"T"HH24:MI:SSOF'),
	   to_char(h.end_date,'YYYY-MM-DD'),
	   e.first_name,
	   e.last_name,
	   e.email,
	   e.phone,
	   to_char(e.hire_date,'YYYY-MM-DD'),
	   h.job_id,
	   j.min_salary,
	   j.max_salary,
	   e.commission_pct,
	   e.manager_id,
	   h.department_id
FROM job_history h
JOIN employees e ON e.employee_id = h.employee_id
JOIN jobs j ON j.job_id = h.job_id
WHERE h.employee_id = $1
ORDER BY h.start_date ASC;
`
	rows, err := r.pool.Query(ctx, q, employeeID)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var out []dto.HistoryRecord
	for rows.Next() {
		var it dto.HistoryRecord

		err = rows.Scan(
			&it.EmployeeID,
			&it.StartDate,
			&it.EndDate,
			&it.FirstName,
			&it.LastName,
			&it.Email,
			&it.Phone,
			&it.HireDate,
			&it.JobID,
			&it.MinSalary,
			&it.MaxSalary,
			&it.CommissionPct,
			&it.ManagerID,
			&it.DepartmentID,
		)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		out = append(out, it)
	}

	return out, rows.Err()
}

func strptr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
