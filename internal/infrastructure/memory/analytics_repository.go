package memory

import (
	"context"
	"sort"
	"time"

	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregaciones en memoria sobre el log de movimientos.
// Replica la semántica de las consultas SQL del adaptador PostgreSQL
// (agrupación por mes con date_trunc, ventas en positivo).
type AnalyticsRepo struct {
	store *Store
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(store *Store) *AnalyticsRepo {
	return &AnalyticsRepo{store: store}
}

// GetMonthlySales unidades SELL por título y mes desde `since`.
func (r *AnalyticsRepo) GetMonthlySales(ctx context.Context, since time.Time) ([]repository.MonthlySalesRow, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	type key struct {
		bookID int64
		month  time.Time
	}
	agg := map[key]int{}
	for _, m := range r.store.movements {
		if m.Kind != entity.MovementKindSell || m.OccurredAt.Before(since) {
			continue
		}
		agg[key{m.BookID, truncMonth(m.OccurredAt)}] += -m.QuantityDelta
	}

	out := make([]repository.MonthlySalesRow, 0, len(agg))
	for k, units := range agg {
		out = append(out, repository.MonthlySalesRow{BookID: k.bookID, Month: k.month, Units: units})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BookID != out[j].BookID {
			return out[i].BookID < out[j].BookID
		}
		return out[i].Month.Before(out[j].Month)
	})
	return out, nil
}

// GetMonthlyNetDeltas delta neto por título y mes desde `since`.
func (r *AnalyticsRepo) GetMonthlyNetDeltas(ctx context.Context, since time.Time) ([]repository.MonthlyDeltaRow, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	type key struct {
		bookID int64
		month  time.Time
	}
	agg := map[key]int{}
	for _, m := range r.store.movements {
		if m.OccurredAt.Before(since) {
			continue
		}
		agg[key{m.BookID, truncMonth(m.OccurredAt)}] += m.QuantityDelta
	}

	out := make([]repository.MonthlyDeltaRow, 0, len(agg))
	for k, delta := range agg {
		out = append(out, repository.MonthlyDeltaRow{BookID: k.bookID, Month: k.month, Delta: delta})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BookID != out[j].BookID {
			return out[i].BookID < out[j].BookID
		}
		return out[i].Month.Before(out[j].Month)
	})
	return out, nil
}

// GetUnitsSoldSince unidades SELL por título desde `since`.
func (r *AnalyticsRepo) GetUnitsSoldSince(ctx context.Context, since time.Time) ([]repository.SoldUnitsRow, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	agg := map[int64]int{}
	for _, m := range r.store.movements {
		if m.Kind != entity.MovementKindSell || m.OccurredAt.Before(since) {
			continue
		}
		agg[m.BookID] += -m.QuantityDelta
	}

	out := make([]repository.SoldUnitsRow, 0, len(agg))
	for id, units := range agg {
		out = append(out, repository.SoldUnitsRow{BookID: id, Units: units})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookID < out[j].BookID })
	return out, nil
}

// GetLastSaleDates fecha de última venta por título.
func (r *AnalyticsRepo) GetLastSaleDates(ctx context.Context) ([]repository.LastSaleRow, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	last := map[int64]time.Time{}
	for _, m := range r.store.movements {
		if m.Kind != entity.MovementKindSell {
			continue
		}
		if t, ok := last[m.BookID]; !ok || m.OccurredAt.After(t) {
			last[m.BookID] = m.OccurredAt
		}
	}

	out := make([]repository.LastSaleRow, 0, len(last))
	for id, t := range last {
		out = append(out, repository.LastSaleRow{BookID: id, LastSoldAt: t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookID < out[j].BookID })
	return out, nil
}

func truncMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
