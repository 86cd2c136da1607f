package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brainware-dev/cotizador-api/internal/application/quoting"
	"github.com/brainware-dev/cotizador-api/internal/domain/repository"
)

var _ quoting.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con un
// repositorio de cotizaciones atado a la tx. Cabecera y líneas se insertan
// juntas o no se insertan.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el repo atado a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(cotizaciones repository.CotizacionRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCotizacionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
