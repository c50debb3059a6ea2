package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `book_id, store_stock, warehouse_stock, reserved_count,
	reorder_level, location_code, last_received_at, last_sold_at, updated_at`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el registro de stock de un título. Si no hay fila devuelve un
// registro en cero: para el ledger un título sin fila es un título con stock 0.
func (r *StockRepo) Get(bookID int64) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM inventory_stock WHERE book_id = $1`
	return r.scanOne(query, bookID, "get stock")
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(bookID int64) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM inventory_stock WHERE book_id = $1 FOR UPDATE`
	return r.scanOne(query, bookID, "get stock for update")
}

func (r *StockRepo) scanOne(query string, bookID int64, op string) (*entity.StockRecord, error) {
	var s entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, bookID).Scan(
		&s.BookID, &s.StoreStock, &s.WarehouseStock, &s.ReservedCount,
		&s.ReorderLevel, &s.LocationCode, &s.LastReceivedAt, &s.LastSoldAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockRecord{BookID: bookID}, nil
		}
		return nil, storageErr(op, err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el registro de stock de un título.
func (r *StockRepo) Upsert(rec *entity.StockRecord) error {
	query := `
		INSERT INTO inventory_stock (book_id, store_stock, warehouse_stock, reserved_count,
			reorder_level, location_code, last_received_at, last_sold_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (book_id)
		DO UPDATE SET
			store_stock      = EXCLUDED.store_stock,
			warehouse_stock  = EXCLUDED.warehouse_stock,
			reserved_count   = EXCLUDED.reserved_count,
			reorder_level    = EXCLUDED.reorder_level,
			location_code    = EXCLUDED.location_code,
			last_received_at = EXCLUDED.last_received_at,
			last_sold_at     = EXCLUDED.last_sold_at,
			updated_at       = now()`
	_, err := r.q.Exec(context.Background(), query,
		rec.BookID, rec.StoreStock, rec.WarehouseStock, rec.ReservedCount,
		rec.ReorderLevel, rec.LocationCode, rec.LastReceivedAt, rec.LastSoldAt,
	)
	if err != nil {
		return storageErr("upsert stock", err)
	}
	return nil
}

// ListAll devuelve los registros de stock de todo el catálogo, por ID.
func (r *StockRepo) ListAll() ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM inventory_stock ORDER BY book_id`
	return r.scanMany(query, "list stock")
}

// ListBelowReorder títulos con disponible en o por debajo de su nivel de
// reorden configurado (alertas de reposición).
func (r *StockRepo) ListBelowReorder() ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + `
		FROM inventory_stock
		WHERE reorder_level > 0
		  AND (store_stock + warehouse_stock - reserved_count) <= reorder_level
		ORDER BY (store_stock + warehouse_stock - reserved_count), book_id`
	return r.scanMany(query, "list below reorder")
}

// ListOutOfStock títulos con stock físico total en cero.
func (r *StockRepo) ListOutOfStock() ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + `
		FROM inventory_stock
		WHERE store_stock + warehouse_stock = 0
		ORDER BY book_id`
	return r.scanMany(query, "list out of stock")
}

func (r *StockRepo) scanMany(query, op string) ([]*entity.StockRecord, error) {
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	var out []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(
			&s.BookID, &s.StoreStock, &s.WarehouseStock, &s.ReservedCount,
			&s.ReorderLevel, &s.LocationCode, &s.LastReceivedAt, &s.LastSoldAt, &s.UpdatedAt,
		); err != nil {
			return nil, storageErr(op+" scan", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return out, nil
}
