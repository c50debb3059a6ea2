package repository

import "github.com/tu-usuario/libreria-stock/internal/domain/entity"

// StockRepository acceso al estado autoritativo de stock por título.
// Las implementaciones deben soportar read-modify-write atómico por clave:
// GetForUpdate bloquea la fila del título dentro de la transacción en curso
// sin bloquear filas de otros títulos.
type StockRepository interface {
	// Get devuelve el registro del título, o un registro en cero si el título
	// aún no tiene fila de stock.
	Get(bookID int64) (*entity.StockRecord, error)
	// GetForUpdate igual que Get pero bloqueando la fila (SELECT FOR UPDATE).
	GetForUpdate(bookID int64) (*entity.StockRecord, error)
	// Upsert inserta o sobreescribe los contadores del título.
	Upsert(rec *entity.StockRecord) error
	// ListAll todos los registros de stock.
	ListAll() ([]*entity.StockRecord, error)
	// ListBelowReorder títulos con disponible <= nivel de reorden (reorden > 0).
	ListBelowReorder() ([]*entity.StockRecord, error)
	// ListOutOfStock títulos con stock total cero.
	ListOutOfStock() ([]*entity.StockRecord, error)
}
