package memory

import (
	"context"

	"github.com/tu-usuario/libreria-stock/internal/application/ledger"
	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones en memoria: el mutex del Store serializa las
// transacciones (equivalente funcional del bloqueo de fila) y un snapshot
// del estado da la semántica de rollback cuando fn retorna error.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos sin lock propio (el runner ya tiene el mutex).
// Si fn retorna error se restaura el snapshot previo.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stockSnap := make(map[int64]*entity.StockRecord, len(r.store.stocks))
	for id, rec := range r.store.stocks {
		stockSnap[id] = cloneStock(rec)
	}
	movLen := len(r.store.movements)

	stockRepo := &StockRepo{store: r.store, locked: true}
	movRepo := &MovementRepo{store: r.store, locked: true}

	if err := fn(stockRepo, movRepo); err != nil {
		r.store.stocks = stockSnap
		r.store.movements = r.store.movements[:movLen]
		return err
	}
	return nil
}
