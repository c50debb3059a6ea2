package entity

import "time"

// Ubicaciones físicas de stock.
const (
	LocationStore     = "STORE"
	LocationWarehouse = "WAREHOUSE"
)

// StockRecord estado autoritativo de stock de un título. Una fila por libro;
// se crea con stock cero al dar de alta el título y nunca se elimina mientras
// el título exista (se deja en cero).
// Invariante: StoreStock >= 0, WarehouseStock >= 0, ReservedCount >= 0.
type StockRecord struct {
	BookID         int64
	StoreStock     int
	WarehouseStock int
	ReservedCount  int // comprometido a pedidos sin despachar (lo escribe el sistema de pedidos)
	ReorderLevel   int
	LocationCode   string // localizador libre de estantería/bodega, sin invariante
	LastReceivedAt *time.Time
	LastSoldAt     *time.Time
	UpdatedAt      time.Time
}

// TotalStock stock físico total (tienda + bodega). Derivado, nunca se persiste.
func (s *StockRecord) TotalStock() int {
	return s.StoreStock + s.WarehouseStock
}

// AvailableStock stock disponible (total - reservado). Puede ser negativo de
// forma transitoria cuando hay sobre-reserva; es una señal válida para el
// caller, no un estado a rechazar.
func (s *StockRecord) AvailableStock() int {
	return s.TotalStock() - s.ReservedCount
}
