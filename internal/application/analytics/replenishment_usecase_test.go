package analytics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/tu-usuario/libreria-stock/internal/application/analytics"
	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/infrastructure/memory"
	"github.com/tu-usuario/libreria-stock/pkg/logger"
)

func buildReplenishment(store *memory.Store) *appanalytics.ReplenishmentUseCase {
	return appanalytics.NewReplenishmentUseCase(
		memory.NewStockRepository(store),
		memory.NewBookRepository(store),
		memory.NewAnalyticsRepository(store),
		testReplenishmentCfg(),
		testAnalyticsCfg(),
		logger.Nop(),
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Planificador de reposición
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateSuggestions_CalificacionYOrden(t *testing.T) {
	store := memory.NewStore()

	// Agotado → HIGH, primero
	seedBook(store, 1, "Go", 40)
	store.SeedStock(&entity.StockRecord{BookID: 1, ReorderLevel: 5})
	seedSale(store, 1, 6, 10)

	// 2 disponibles vendiendo 15 u/30d (0.5/día) → 4 días → MEDIUM
	seedBook(store, 2, "Python", 35)
	store.SeedStock(&entity.StockRecord{BookID: 2, StoreStock: 2, ReorderLevel: 5})
	seedSale(store, 2, 15, 12)

	// Bajo reorden pero sin ventas → sin pronóstico → LOW, al final
	seedBook(store, 3, "Rust", 30)
	store.SeedStock(&entity.StockRecord{BookID: 3, StoreStock: 3, ReorderLevel: 5})

	// Stock sano: no califica
	seedBook(store, 4, "Java", 45)
	store.SeedStock(&entity.StockRecord{BookID: 4, StoreStock: 50, ReorderLevel: 5})

	suggestions, err := buildReplenishment(store).GenerateSuggestions(context.Background(), asOf)
	require.NoError(t, err)
	require.Len(t, suggestions, 3, "el título con stock sano queda fuera")

	// Orden: HIGH, MEDIUM, LOW; Priority 1..n
	assert.Equal(t, int64(1), suggestions[0].BookID)
	assert.Equal(t, entity.UrgencyHigh, suggestions[0].Urgency)
	assert.Equal(t, 1, suggestions[0].Priority)
	require.NotNil(t, suggestions[0].DaysUntilStockout)
	assert.Equal(t, 0, *suggestions[0].DaysUntilStockout)

	assert.Equal(t, int64(2), suggestions[1].BookID)
	assert.Equal(t, entity.UrgencyMedium, suggestions[1].Urgency)
	require.NotNil(t, suggestions[1].DaysUntilStockout)
	assert.Equal(t, 4, *suggestions[1].DaysUntilStockout)
	// ceil(0.5 × 7) + 2 − 2 = 4
	assert.Equal(t, 4, suggestions[1].SuggestedOrder)

	assert.Equal(t, int64(3), suggestions[2].BookID)
	assert.Equal(t, entity.UrgencyLow, suggestions[2].Urgency)
	assert.Nil(t, suggestions[2].DaysUntilStockout, "sin ventas no hay pronóstico")
	assert.Equal(t, 1, suggestions[2].SuggestedOrder, "pedido mínimo cuando no hay demanda observable")
	assert.Equal(t, 3, suggestions[2].Priority)
}

func TestGenerateSuggestions_VentasViejasNoCuentanParaVelocidad(t *testing.T) {
	store := memory.NewStore()
	seedBook(store, 1, "Go", 40)
	store.SeedStock(&entity.StockRecord{BookID: 1, StoreStock: 3, ReorderLevel: 5})
	seedSale(store, 1, 30, 45) // fuera de la ventana de 30 días

	suggestions, err := buildReplenishment(store).GenerateSuggestions(context.Background(), asOf)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Nil(t, suggestions[0].DaysUntilStockout, "ventas fuera de la ventana no generan pronóstico")
	assert.Equal(t, entity.UrgencyLow, suggestions[0].Urgency)
}

func TestGenerateSuggestions_SobreReservaCalificaConReordenCero(t *testing.T) {
	store := memory.NewStore()
	seedBook(store, 1, "Go", 40)
	// total 2, reservado 5 → disponible -3, sin nivel de reorden configurado
	store.SeedStock(&entity.StockRecord{BookID: 1, StoreStock: 2, ReservedCount: 5})

	suggestions, err := buildReplenishment(store).GenerateSuggestions(context.Background(), asOf)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, entity.UrgencyHigh, suggestions[0].Urgency, "disponible negativo es HIGH aunque no haya ventas")
	assert.Equal(t, -3, suggestions[0].CurrentStock)
	// ceil(0) + 2 − (−3) = 5
	assert.Equal(t, 5, suggestions[0].SuggestedOrder)
}

func TestGenerateSuggestions_CatalogoSanoListaVacia(t *testing.T) {
	store := memory.NewStore()
	seedBook(store, 1, "Go", 40)
	store.SeedStock(&entity.StockRecord{BookID: 1, StoreStock: 20, ReorderLevel: 5})

	suggestions, err := buildReplenishment(store).GenerateSuggestions(context.Background(), asOf)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}
