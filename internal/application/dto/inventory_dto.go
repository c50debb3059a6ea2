package dto

import (
	"time"

	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/domain/inventory"
)

// ReceiveStockRequest cuerpo de POST /api/inventory/:bookId/receive.
type ReceiveStockRequest struct {
	Quantity     int    `json:"quantity" example:"25"`
	Location     string `json:"location" example:"WAREHOUSE"` // STORE o WAREHOUSE
	Reason       string `json:"reason,omitempty" example:"pedido proveedor #881"`
	DeliveryNote string `json:"deliveryNote,omitempty"`
}

// SellStockRequest cuerpo de POST /api/inventory/:bookId/sell.
type SellStockRequest struct {
	Quantity   int    `json:"quantity" example:"2"`
	CustomerID *int64 `json:"customerId,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// AdjustStockRequest cuerpo de POST /api/inventory/:bookId/adjust.
// Sobrescribe ambos contadores con el resultado del conteo físico.
type AdjustStockRequest struct {
	StoreStock     int    `json:"storeStock" example:"12"`
	WarehouseStock int    `json:"warehouseStock" example:"40"`
	Reason         string `json:"reason,omitempty" example:"conteo físico febrero"`
}

// StockRecordResponse snapshot de stock de un título, con derivados calculados
// al momento de la lectura.
type StockRecordResponse struct {
	BookID         int64      `json:"bookId"`
	StoreStock     int        `json:"storeStock"`
	WarehouseStock int        `json:"warehouseStock"`
	ReservedCount  int        `json:"reservedCount"`
	TotalStock     int        `json:"totalStock"`
	AvailableStock int        `json:"availableStock"`
	ReorderLevel   int        `json:"reorderLevel"`
	StockStatus    string     `json:"stockStatus"`
	LocationCode   string     `json:"locationCode,omitempty"`
	LastReceivedAt *time.Time `json:"lastReceivedAt,omitempty"`
	LastSoldAt     *time.Time `json:"lastSoldAt,omitempty"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// FromStockRecord mapea el registro de dominio a su respuesta.
func FromStockRecord(rec *entity.StockRecord, overstockCeiling int) *StockRecordResponse {
	return &StockRecordResponse{
		BookID:         rec.BookID,
		StoreStock:     rec.StoreStock,
		WarehouseStock: rec.WarehouseStock,
		ReservedCount:  rec.ReservedCount,
		TotalStock:     rec.TotalStock(),
		AvailableStock: rec.AvailableStock(),
		ReorderLevel:   rec.ReorderLevel,
		StockStatus:    inventory.StockStatus(rec, overstockCeiling),
		LocationCode:   rec.LocationCode,
		LastReceivedAt: rec.LastReceivedAt,
		LastSoldAt:     rec.LastSoldAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}

// FromStockRecords mapea una lista de registros.
func FromStockRecords(recs []*entity.StockRecord, overstockCeiling int) []*StockRecordResponse {
	out := make([]*StockRecordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, FromStockRecord(rec, overstockCeiling))
	}
	return out
}

// MovementResponse entrada del historial de movimientos de un título.
type MovementResponse struct {
	ID            string    `json:"id"`
	BookID        int64     `json:"bookId"`
	Kind          string    `json:"kind"`
	QuantityDelta int       `json:"quantityDelta"`
	Location      string    `json:"location"`
	Reason        string    `json:"reason,omitempty"`
	Note          string    `json:"note,omitempty"`
	CustomerID    *int64    `json:"customerId,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// FromMovements mapea el historial de movimientos.
func FromMovements(movs []*entity.Movement) []*MovementResponse {
	out := make([]*MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, &MovementResponse{
			ID:            m.ID,
			BookID:        m.BookID,
			Kind:          m.Kind,
			QuantityDelta: m.QuantityDelta,
			Location:      m.Location,
			Reason:        m.Reason,
			Note:          m.Note,
			CustomerID:    m.CustomerID,
			OccurredAt:    m.OccurredAt,
		})
	}
	return out
}
