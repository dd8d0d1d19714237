// Package ledger implementa las mutaciones del ledger de stock
// (Receive, Issue, Adjust) y sus proyecciones de lectura. Toda mutación
// es atómica: fila de inventario, entrada del historial y rollup del
// producto se escriben en la misma transacción.
package ledger

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción serializada sobre el ledger.
// Los repositorios que recibe fn operan sobre esa transacción: si fn devuelve
// error se hace rollback completo; si devuelve nil se hace commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		inv repository.InventoryRepository,
		ops repository.StockOperationRepository,
		products repository.ProductRepository,
	) error) error
}
