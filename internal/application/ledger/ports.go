package ledger

import (
	"context"

	"github.com/tu-usuario/libreria-stock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad por título del motor
// de stock: leer-modificar-escribir más el append al log como unidad única.
// Commit si fn retorna nil, Rollback en caso contrario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
	) error) error
}
