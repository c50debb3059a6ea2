package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/libreria-stock/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregaciones de solo lectura sobre el log de movimientos.
// Siempre trabaja sobre el pool (fuera de transacción): la analítica lee un
// corte consistente y tolera quedar unos milisegundos detrás del ledger.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetMonthlySales unidades SELL por título y mes desde `since`.
// Los deltas de venta son negativos en el log; aquí se devuelven en positivo.
func (r *AnalyticsRepo) GetMonthlySales(ctx context.Context, since time.Time) ([]repository.MonthlySalesRow, error) {
	const query = `
	SELECT
	    book_id,
	    date_trunc('month', occurred_at) AS month,
	    SUM(-quantity_delta)::INT        AS units
	FROM stock_movements
	WHERE kind = 'SELL'
	  AND occurred_at >= $1
	GROUP BY book_id, date_trunc('month', occurred_at)
	ORDER BY book_id, month`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, storageErr("analytics.GetMonthlySales", err)
	}
	defer rows.Close()

	var results []repository.MonthlySalesRow
	for rows.Next() {
		var row repository.MonthlySalesRow
		if err := rows.Scan(&row.BookID, &row.Month, &row.Units); err != nil {
			return nil, storageErr("analytics.GetMonthlySales scan", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetMonthlyNetDeltas delta neto de stock por título y mes desde `since`
// (todos los movimientos, con signo). Insumo para reconstruir niveles
// históricos de inventario hacia atrás desde el stock actual.
func (r *AnalyticsRepo) GetMonthlyNetDeltas(ctx context.Context, since time.Time) ([]repository.MonthlyDeltaRow, error) {
	const query = `
	SELECT
	    book_id,
	    date_trunc('month', occurred_at) AS month,
	    SUM(quantity_delta)::INT         AS delta
	FROM stock_movements
	WHERE occurred_at >= $1
	GROUP BY book_id, date_trunc('month', occurred_at)
	ORDER BY book_id, month`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, storageErr("analytics.GetMonthlyNetDeltas", err)
	}
	defer rows.Close()

	var results []repository.MonthlyDeltaRow
	for rows.Next() {
		var row repository.MonthlyDeltaRow
		if err := rows.Scan(&row.BookID, &row.Month, &row.Delta); err != nil {
			return nil, storageErr("analytics.GetMonthlyNetDeltas scan", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetUnitsSoldSince unidades SELL por título desde `since` (ventana de
// velocidad del planificador de reposición).
func (r *AnalyticsRepo) GetUnitsSoldSince(ctx context.Context, since time.Time) ([]repository.SoldUnitsRow, error) {
	const query = `
	SELECT
	    book_id,
	    SUM(-quantity_delta)::INT AS units
	FROM stock_movements
	WHERE kind = 'SELL'
	  AND occurred_at >= $1
	GROUP BY book_id
	ORDER BY book_id`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, storageErr("analytics.GetUnitsSoldSince", err)
	}
	defer rows.Close()

	var results []repository.SoldUnitsRow
	for rows.Next() {
		var row repository.SoldUnitsRow
		if err := rows.Scan(&row.BookID, &row.Units); err != nil {
			return nil, storageErr("analytics.GetUnitsSoldSince scan", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetLastSaleDates fecha de última venta por título (solo títulos con al
// menos una venta registrada).
func (r *AnalyticsRepo) GetLastSaleDates(ctx context.Context) ([]repository.LastSaleRow, error) {
	const query = `
	SELECT book_id, MAX(occurred_at) AS last_sold_at
	FROM stock_movements
	WHERE kind = 'SELL'
	GROUP BY book_id
	ORDER BY book_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storageErr("analytics.GetLastSaleDates", err)
	}
	defer rows.Close()

	var results []repository.LastSaleRow
	for rows.Next() {
		var row repository.LastSaleRow
		if err := rows.Scan(&row.BookID, &row.LastSoldAt); err != nil {
			return nil, storageErr("analytics.GetLastSaleDates scan", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
