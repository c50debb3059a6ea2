package repository

import (
	"context"
	"time"
)

// MonthlySalesRow unidades vendidas de un título en un mes (solo SELL).
type MonthlySalesRow struct {
	BookID int64
	Month  time.Time // primer día del mes
	Units  int
}

// MonthlyDeltaRow delta neto de stock de un título en un mes (todos los
// movimientos), para reconstruir niveles históricos de inventario.
type MonthlyDeltaRow struct {
	BookID int64
	Month  time.Time
	Delta  int
}

// SoldUnitsRow unidades vendidas de un título desde una fecha.
type SoldUnitsRow struct {
	BookID int64
	Units  int
}

// LastSaleRow fecha de la venta más reciente de un título.
type LastSaleRow struct {
	BookID     int64
	LastSoldAt time.Time
}

// AnalyticsRepository agregaciones de solo lectura sobre el log de
// movimientos. Los cálculos son seguros de ejecutar en paralelo con
// mutaciones del ledger: leen un corte consistente y toleran resultados
// ligeramente desactualizados.
type AnalyticsRepository interface {
	// GetMonthlySales unidades SELL por título y mes desde `since`.
	GetMonthlySales(ctx context.Context, since time.Time) ([]MonthlySalesRow, error)
	// GetMonthlyNetDeltas delta neto por título y mes desde `since`.
	GetMonthlyNetDeltas(ctx context.Context, since time.Time) ([]MonthlyDeltaRow, error)
	// GetUnitsSoldSince unidades SELL por título desde `since`.
	GetUnitsSoldSince(ctx context.Context, since time.Time) ([]SoldUnitsRow, error)
	// GetLastSaleDates fecha de última venta por título (solo títulos con ventas).
	GetLastSaleDates(ctx context.Context) ([]LastSaleRow, error)
}
