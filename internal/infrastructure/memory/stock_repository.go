package memory

import (
	"sort"
	"time"

	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo vista de stock sobre el Store. Con locked=false cada método toma
// el mutex; con locked=true asume que el TxRunner ya lo tiene.
type StockRepo struct {
	store  *Store
	locked bool
}

// NewStockRepository adaptador de stock para uso fuera de transacción.
func NewStockRepository(store *Store) *StockRepo {
	return &StockRepo{store: store}
}

func (r *StockRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// Get devuelve el registro del título, o un registro en cero si no hay fila.
func (r *StockRepo) Get(bookID int64) (*entity.StockRecord, error) {
	defer r.lock()()
	if rec, ok := r.store.stocks[bookID]; ok {
		return cloneStock(rec), nil
	}
	return &entity.StockRecord{BookID: bookID}, nil
}

// GetForUpdate en memoria equivale a Get: el mutex del TxRunner ya serializa.
func (r *StockRepo) GetForUpdate(bookID int64) (*entity.StockRecord, error) {
	return r.Get(bookID)
}

// Upsert inserta o sobreescribe el registro.
func (r *StockRepo) Upsert(rec *entity.StockRecord) error {
	defer r.lock()()
	cp := *rec
	cp.UpdatedAt = time.Now()
	r.store.stocks[rec.BookID] = &cp
	return nil
}

// ListAll registros de stock ordenados por ID.
func (r *StockRepo) ListAll() ([]*entity.StockRecord, error) {
	defer r.lock()()
	out := make([]*entity.StockRecord, 0, len(r.store.stocks))
	for _, rec := range r.store.stocks {
		out = append(out, cloneStock(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookID < out[j].BookID })
	return out, nil
}

// ListBelowReorder títulos con disponible <= nivel de reorden (reorden > 0),
// ordenados por disponible ascendente.
func (r *StockRepo) ListBelowReorder() ([]*entity.StockRecord, error) {
	defer r.lock()()
	var out []*entity.StockRecord
	for _, rec := range r.store.stocks {
		if rec.ReorderLevel > 0 && rec.AvailableStock() <= rec.ReorderLevel {
			out = append(out, cloneStock(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvailableStock() != out[j].AvailableStock() {
			return out[i].AvailableStock() < out[j].AvailableStock()
		}
		return out[i].BookID < out[j].BookID
	})
	return out, nil
}

// ListOutOfStock títulos con stock físico total en cero.
func (r *StockRepo) ListOutOfStock() ([]*entity.StockRecord, error) {
	defer r.lock()()
	var out []*entity.StockRecord
	for _, rec := range r.store.stocks {
		if rec.TotalStock() == 0 {
			out = append(out, cloneStock(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookID < out[j].BookID })
	return out, nil
}
