package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/tu-usuario/libreria-stock/internal/application/analytics"
	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/infrastructure/memory"
	"github.com/tu-usuario/libreria-stock/pkg/config"
	"github.com/tu-usuario/libreria-stock/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers compartidos por los tests de analítica
// ──────────────────────────────────────────────────────────────────────────────

// asOf corte fijo para que los tests sean reproducibles.
var asOf = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func testAnalyticsCfg() config.AnalyticsConfig {
	return config.AnalyticsConfig{
		ClassificationMonths: 12,
		VelocityDays:         30,
		DeadStockDays:        90,
		EarlyWarningDays:     60,
		OverstockCeiling:     3,
		RiskWeightRecency:    0.5,
		RiskWeightTurnover:   0.3,
		RiskWeightDecay:      0.2,
		CategoryDecay:        map[string]float64{"Flash": 95},
		DefaultCategoryDecay: 20,
	}
}

func testReplenishmentCfg() config.ReplenishmentConfig {
	return config.ReplenishmentConfig{LeadTimeDays: 7, SafetyBuffer: 2, MinimumOrder: 1}
}

func seedBook(store *memory.Store, id int64, category string, price float64) {
	store.SeedBook(&entity.Book{
		ID:           id,
		ISBN13:       "9780000000000",
		Title:        "Libro " + category,
		Category:     category,
		Publisher:    "Editorial Técnica",
		Level:        entity.LevelIntermediate,
		SellingPrice: decimal.NewFromFloat(price),
		CreatedAt:    asOf.AddDate(-2, 0, 0),
	})
}

// seedSale registra una venta de `units` unidades hace `daysAgo` días.
func seedSale(store *memory.Store, bookID int64, units, daysAgo int) {
	when := asOf.AddDate(0, 0, -daysAgo)
	store.SeedMovement(&entity.Movement{
		BookID:        bookID,
		Kind:          entity.MovementKindSell,
		QuantityDelta: -units,
		Location:      entity.LocationStore,
		OccurredAt:    when,
		CreatedAt:     when,
	})
}

// seedReceive registra una recepción de `units` unidades hace `daysAgo` días.
func seedReceive(store *memory.Store, bookID int64, units, daysAgo int) {
	when := asOf.AddDate(0, 0, -daysAgo)
	store.SeedMovement(&entity.Movement{
		BookID:        bookID,
		Kind:          entity.MovementKindReceive,
		QuantityDelta: units,
		Location:      entity.LocationWarehouse,
		OccurredAt:    when,
		CreatedAt:     when,
	})
}

func buildClassification(store *memory.Store) *appanalytics.ClassificationUseCase {
	return appanalytics.NewClassificationUseCase(
		memory.NewStockRepository(store),
		memory.NewBookRepository(store),
		memory.NewAnalyticsRepository(store),
		testAnalyticsCfg(),
		logger.Nop(),
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación ABC/XYZ del catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify_ABCYDemandaEstable(t *testing.T) {
	store := memory.NewStore()
	seedBook(store, 1, "Go", 50)     // dominante: 10 u/mes × 50 = 6000/año
	seedBook(store, 2, "Python", 10) // menor: 1 venta puntual
	seedBook(store, 3, "Rust", 30)   // sin historial

	// 12 meses de ventas constantes para el título 1
	for m := 0; m < 12; m++ {
		seedSale(store, 1, 10, 30*m+5)
	}
	seedSale(store, 2, 1, 40)

	store.SeedStock(&entity.StockRecord{BookID: 1, WarehouseStock: 30})
	store.SeedStock(&entity.StockRecord{BookID: 2, StoreStock: 4})

	results, err := buildClassification(store).Classify(context.Background(), asOf)
	require.NoError(t, err)
	require.Len(t, results, 3, "todos los títulos del catálogo aparecen en el resultado")

	byID := map[int64]entity.Classification{}
	for _, r := range results {
		byID[r.BookID] = r
	}

	// Título 1 concentra >70% del valor → A; demanda constante → X
	assert.Equal(t, entity.ABCClassA, byID[1].ABCClass)
	assert.Equal(t, entity.XYZClassX, byID[1].XYZClass)
	assert.Equal(t, 120, byID[1].AnnualUnitsSold)
	assert.True(t, decimal.NewFromInt(6000).Equal(byID[1].AnnualSalesValue))
	assert.Greater(t, byID[1].TurnoverRate, 0.0)

	// Título 2 entra al ranking con participación acumulada previa ~99.8% → C;
	// una sola venta en 12 meses → demanda irregular Z
	assert.Equal(t, entity.ABCClassC, byID[2].ABCClass)
	assert.Equal(t, entity.XYZClassZ, byID[2].XYZClass)

	// Título 3 sin movimientos → UNCLASSIFIED, fuera del ranking
	assert.Equal(t, entity.ClassUnclassified, byID[3].ABCClass)
	assert.Equal(t, entity.ClassUnclassified, byID[3].XYZClass)
	assert.Equal(t, 0.0, byID[3].TurnoverRate)
}

// Dos corridas sobre el mismo corte producen exactamente el mismo resultado.
func TestClassify_Idempotente(t *testing.T) {
	store := memory.NewStore()
	for i := int64(1); i <= 5; i++ {
		seedBook(store, i, "Go", float64(10*i))
		seedSale(store, i, int(i), 20)
		seedReceive(store, i, 10, 200)
		store.SeedStock(&entity.StockRecord{BookID: i, WarehouseStock: 10 - int(i)})
	}
	uc := buildClassification(store)

	first, err := uc.Classify(context.Background(), asOf)
	require.NoError(t, err)
	second, err := uc.Classify(context.Background(), asOf)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestClassify_VentasFueraDeVentanaNoCuentan(t *testing.T) {
	store := memory.NewStore()
	seedBook(store, 1, "Go", 50)
	seedSale(store, 1, 100, 400) // hace más de un año
	store.SeedStock(&entity.StockRecord{BookID: 1, StoreStock: 5})

	results, err := buildClassification(store).Classify(context.Background(), asOf)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Sin movimientos dentro de la ventana el título queda sin clasificar
	assert.Equal(t, entity.ClassUnclassified, results[0].ABCClass)
	assert.Equal(t, 0, results[0].AnnualUnitsSold)
}

func TestClassify_ContextoCanceladoAborta(t *testing.T) {
	store := memory.NewStore()
	seedBook(store, 1, "Go", 50)
	seedSale(store, 1, 5, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := buildClassification(store).Classify(ctx, asOf)
	assert.ErrorIs(t, err, context.Canceled)
}
