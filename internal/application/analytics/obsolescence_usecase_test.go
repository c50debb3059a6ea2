package analytics_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/tu-usuario/libreria-stock/internal/application/analytics"
	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/infrastructure/memory"
	"github.com/tu-usuario/libreria-stock/pkg/logger"
)

func buildObsolescence(store *memory.Store) *appanalytics.ObsolescenceUseCase {
	return appanalytics.NewObsolescenceUseCase(
		memory.NewStockRepository(store),
		memory.NewBookRepository(store),
		memory.NewAnalyticsRepository(store),
		testAnalyticsCfg(),
		logger.Nop(),
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Scoring de obsolescencia y dead stock
// ──────────────────────────────────────────────────────────────────────────────

func TestScore_BucketsDeDeadStockYAlertaTemprana(t *testing.T) {
	store := memory.NewStore()

	// Venta reciente: fuera de los buckets
	seedBook(store, 1, "Go", 40)
	store.SeedStock(&entity.StockRecord{BookID: 1, StoreStock: 10})
	seedSale(store, 1, 1, 5)

	// 70 días sin venta → alerta temprana (umbral 60, todavía < 90)
	seedBook(store, 2, "Python", 30)
	store.SeedStock(&entity.StockRecord{BookID: 2, StoreStock: 4})
	seedSale(store, 2, 1, 70)

	// 120 días sin venta y con stock → dead stock
	seedBook(store, 3, "Flash", 25)
	store.SeedStock(&entity.StockRecord{BookID: 3, WarehouseStock: 8})
	seedSale(store, 3, 1, 120)

	// Nunca vendido pero sin stock físico → no aparece
	seedBook(store, 4, "Perl", 20)
	store.SeedStock(&entity.StockRecord{BookID: 4})

	turnover := map[int64]float64{1: 6, 2: 1, 3: 0.2}
	report, err := buildObsolescence(store).Score(context.Background(), asOf, turnover)
	require.NoError(t, err)
	require.Len(t, report.Entries, 3, "solo títulos con stock físico entran al scoring")

	assert.Equal(t, 1, report.DeadStockCount)
	assert.True(t, decimal.NewFromInt(200).Equal(report.DeadStockValue), "8 × 25 del título muerto")
	assert.Equal(t, 1, report.EarlyWarningCount)
	assert.True(t, decimal.NewFromInt(120).Equal(report.EarlyWarningValue), "4 × 30 del título en alerta")

	byID := map[int64]*entity.ObsolescenceEntry{}
	for _, e := range report.Entries {
		byID[e.BookID] = e
	}
	assert.False(t, byID[1].DeadStock)
	assert.False(t, byID[2].DeadStock)
	assert.True(t, byID[3].DeadStock)
	assert.Equal(t, 120, byID[3].DaysSinceLastSale)

	// Flash carga decaimiento 95 y rotación 0.2: el más riesgoso del catálogo
	assert.Equal(t, report.Entries[0].BookID, int64(3), "entradas ordenadas por score descendente")
	assert.Greater(t, byID[3].RiskScore, byID[2].RiskScore)
	assert.Greater(t, byID[2].RiskScore, byID[1].RiskScore)
}

func TestScore_TituloNuncaVendidoUsaEdadDeCatalogo(t *testing.T) {
	store := memory.NewStore()
	// seedBook da de alta hace 2 años → recencia saturada al año
	seedBook(store, 1, "Go", 40)
	store.SeedStock(&entity.StockRecord{BookID: 1, StoreStock: 3})

	report, err := buildObsolescence(store).Score(context.Background(), asOf, nil)
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)

	entry := report.Entries[0]
	assert.Equal(t, 730, entry.DaysSinceLastSale, "sin ventas la recencia se mide desde el alta")
	assert.True(t, entry.DeadStock)
	// recencia 100×0.5 + rotación 100×0.3 + decay 20×0.2 = 84 → HIGH
	assert.InDelta(t, 84, entry.RiskScore, 0.01)
	assert.Equal(t, entity.RiskHigh, entry.RiskLevel)
}

func TestScore_IndicePonderadoPorValor(t *testing.T) {
	store := memory.NewStore()

	// Mucho capital en el título riesgoso → el índice se acerca a su score
	seedBook(store, 1, "Flash", 100)
	store.SeedStock(&entity.StockRecord{BookID: 1, WarehouseStock: 50}) // valor 5000
	seedSale(store, 1, 1, 300)

	seedBook(store, 2, "Go", 10)
	store.SeedStock(&entity.StockRecord{BookID: 2, StoreStock: 1}) // valor 10
	seedSale(store, 2, 1, 1)

	report, err := buildObsolescence(store).Score(context.Background(), asOf, map[int64]float64{1: 0.1, 2: 8})
	require.NoError(t, err)
	require.Len(t, report.Entries, 2)

	risky := report.Entries[0]
	require.Equal(t, int64(1), risky.BookID)
	assert.InDelta(t, risky.RiskScore, report.RiskIndex, 1.0,
		"con casi todo el valor en el título riesgoso el índice sigue su score")
}

func TestScore_CatalogoVacio(t *testing.T) {
	store := memory.NewStore()
	report, err := buildObsolescence(store).Score(context.Background(), asOf, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Entries)
	assert.Equal(t, 0.0, report.RiskIndex)
	assert.Equal(t, 0, report.DeadStockCount)
}
