package memory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Log completo de movimientos (todos los títulos)
// ──────────────────────────────────────────────────────────────────────────────

func seedMovementAt(store *memory.Store, bookID int64, delta int, occurred, created time.Time) {
	store.SeedMovement(&entity.Movement{
		BookID:        bookID,
		Kind:          entity.MovementKindReceive,
		QuantityDelta: delta,
		Location:      entity.LocationWarehouse,
		OccurredAt:    occurred,
		CreatedAt:     created,
	})
}

func TestListAll_AscendentePorFechaEntreTitulos(t *testing.T) {
	store := memory.NewStore()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	// Sembrado deliberadamente fuera de orden y mezclando títulos
	seedMovementAt(store, 1, 5, base.AddDate(0, 0, 3), base.AddDate(0, 0, 3))
	seedMovementAt(store, 2, 8, base, base)
	seedMovementAt(store, 1, 2, base.AddDate(0, 0, 1), base.AddDate(0, 0, 1))

	// Misma fecha de ocurrencia: desempata la fecha de registro
	seedMovementAt(store, 2, 1, base.AddDate(0, 0, 2), base.AddDate(0, 0, 2).Add(time.Minute))
	seedMovementAt(store, 1, 3, base.AddDate(0, 0, 2), base.AddDate(0, 0, 2))

	movs, err := memory.NewMovementRepository(store).ListAll(nil)
	require.NoError(t, err)
	require.Len(t, movs, 5)

	// Orden global: por fecha de ocurrencia, luego por fecha de registro
	for i := 1; i < len(movs); i++ {
		prev, cur := movs[i-1], movs[i]
		assert.False(t, cur.OccurredAt.Before(prev.OccurredAt),
			"posición %d fuera de orden por occurredAt", i)
		if cur.OccurredAt.Equal(prev.OccurredAt) {
			assert.False(t, cur.CreatedAt.Before(prev.CreatedAt),
				"posición %d fuera de orden por createdAt en el empate", i)
		}
	}
	assert.Equal(t, int64(2), movs[0].BookID, "el movimiento más antiguo abre la secuencia")
	assert.Equal(t, 3, movs[2].QuantityDelta, "en el empate gana el registrado primero")
	assert.Equal(t, 1, movs[3].QuantityDelta)
}

func TestListAll_SinceEsInclusivo(t *testing.T) {
	store := memory.NewStore()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	seedMovementAt(store, 1, 5, base.AddDate(0, 0, -1), base.AddDate(0, 0, -1))
	seedMovementAt(store, 1, 7, base, base) // exactamente en el corte
	seedMovementAt(store, 2, 9, base.AddDate(0, 0, 1), base.AddDate(0, 0, 1))

	repo := memory.NewMovementRepository(store)

	movs, err := repo.ListAll(&base)
	require.NoError(t, err)
	require.Len(t, movs, 2, "el corte es inclusivo: occurred_at >= since")
	assert.Equal(t, 7, movs[0].QuantityDelta)
	assert.Equal(t, 9, movs[1].QuantityDelta)

	// since nil = desde el origen
	all, err := repo.ListAll(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
