package employees

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Artexxx/HR-Registry/internal/repository/department"
	"github.com/Artexxx/HR-Registry/internal/repository/employee"
	"github.com/Artexxx/HR-Registry/internal/repository/history"
)

type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PgxRunner открывает транзакцию pgx и отдаёт fn репозитории,
// работающие поверх неё. pgx.Tx реализует те же Query/QueryRow/Exec/Begin,
// что и пул, поэтому репозитории не различают пул и транзакцию.
type PgxRunner struct {
	pool TxStarter
}

func NewPgxRunner(pool TxStarter) *PgxRunner {
	return &PgxRunner{pool: pool}
}

func (p *PgxRunner) InTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	r := Repos{
		Employees:   employee.NewRepository(tx),
		History:     history.NewRepository(tx),
		Departments: department.NewRepository(tx),
	}

	if err := fn(ctx, r); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}
