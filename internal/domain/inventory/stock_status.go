package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
)

// Estados de stock de un título para reportes y alertas.
const (
	StatusNormal    = "NORMAL"
	StatusLow       = "LOW"
	StatusCritical  = "CRITICAL"
	StatusOut       = "OUT"
	StatusOverstock = "OVERSTOCK"
)

// StockStatus clasifica el estado de stock de un registro (servicio de dominio).
// overstockCeiling es el múltiplo del nivel de reorden a partir del cual el
// stock total se considera excesivo (0 desactiva la detección de sobre-stock).
//
// Reglas, en orden:
//   - OUT: stock total cero, sin importar reservas.
//   - OVERSTOCK: total > overstockCeiling * reorderLevel (con reorderLevel > 0).
//   - CRITICAL: disponible <= 0 (sobre-reserva) o disponible por debajo de la
//     mitad entera del nivel de reorden.
//   - LOW: disponible entre la mitad del reorden y el reorden, inclusive.
//   - NORMAL: el resto.
func StockStatus(rec *entity.StockRecord, overstockCeiling int) string {
	total := rec.TotalStock()
	if total == 0 {
		return StatusOut
	}
	if overstockCeiling > 0 && rec.ReorderLevel > 0 && total > overstockCeiling*rec.ReorderLevel {
		return StatusOverstock
	}
	available := rec.AvailableStock()
	if available <= 0 {
		return StatusCritical
	}
	if rec.ReorderLevel > 0 {
		if available < rec.ReorderLevel/2 {
			return StatusCritical
		}
		if available <= rec.ReorderLevel {
			return StatusLow
		}
	}
	return StatusNormal
}

// IsLowStock indica si el título debe entrar en las alertas de reposición
// (disponible en o por debajo del nivel de reorden, con reorden configurado).
func IsLowStock(rec *entity.StockRecord) bool {
	return rec.ReorderLevel > 0 && rec.AvailableStock() <= rec.ReorderLevel
}

// StockValue valor del stock físico total al precio de venta del título.
func StockValue(rec *entity.StockRecord, unitValue decimal.Decimal) decimal.Decimal {
	return unitValue.Mul(decimal.NewFromInt(int64(rec.TotalStock())))
}
