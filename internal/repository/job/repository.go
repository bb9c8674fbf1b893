package job

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

func (r *Repository) GetByID(ctx context.Context, jobID string) (*dto.Job, error) {
	q := `select job_id, job_title, min_salary, max_salary from jobs where job_id = $1;`

	var it dto.Job
	err := r.pool.QueryRow(ctx, q, jobID).Scan(&it.JobID, &it.JobTitle, &it.MinSalary, &it.MaxSalary)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dto.ErrNotFound
		}

		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return &it, nil
}

func (r *Repository) List(ctx context.Context) ([]dto.Job, error) {
	q := `select job_id, job_title, min_salary, max_salary from jobs order by job_id;`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var out []dto.Job
	for rows.Next() {
		var it dto.Job

		err = rows.Scan(&it.JobID, &it.JobTitle, &it.MinSalary, &it.MaxSalary)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		out = append(out, it)
	}

	return out, rows.Err()
}
