package department

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

// DeferConstraints откладывает проверку циклических FK
// (departments.manager_id и employees.department_id) до конца
// транзакции. Вызывается только внутри транзакции.
func (r *Repository) DeferConstraints(ctx context.Context) error {
	q := `SET CONSTRAINTS departments_manager_fk, employees_department_fk DEFERRED;`

	if _, err := r.pool.Exec(ctx, q); err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}

	return nil
}

func (r *Repository) Insert(ctx context.Context, d dto.Department) (int64, error) {
	q := `
insert into departments (department_name, manager_id, location_id)
values (@department_name, @manager_id, @location_id)
returning department_id;
`
	args := pgx.NamedArgs{
		"department_name": d.DepartmentName,
		"manager_id":      d.ManagerID,
		"location_id":     d.LocationID,
	}

	var id int64
	err := r.pool.QueryRow(ctx, q, args).Scan(&id)
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == "23505" {
			return 0, dto.ErrAlreadyExists
		}

		return 0, fmt.Errorf("row.Scan: %w", err)
	}

	return id, nil
}

func (r *Repository) GetByID(ctx context.Context, departmentID int64) (*dto.Department, error) {
	q := `
select department_id, department_name, manager_id, location_id
from departments
where department_id = $1;
`
	var it dto.Department
	err := r.pool.QueryRow(ctx, q, departmentID).Scan(&it.DepartmentID, &it.DepartmentName, &it.ManagerID, &it.LocationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dto.ErrNotFound
		}

		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return &it, nil
}

func (r *Repository) List(ctx context.Context) ([]dto.Department, error) {
	q := `
select department_id, department_name, manager_id, location_id
from departments
order by department_id;
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var out []dto.Department
	for rows.Next() {
		var it dto.Department

		err = rows.Scan(&it.DepartmentID, &it.DepartmentName, &it.ManagerID, &it.LocationID)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		out = append(out, it)
	}

	return out, rows.Err()
}
