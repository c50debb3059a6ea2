package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/libreria-stock/internal/domain/analytics"
	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
)

var defaultWeights = analytics.RiskWeights{Recency: 0.5, Turnover: 0.3, CategoryDecay: 0.2}

// ──────────────────────────────────────────────────────────────────────────────
// Score de obsolescencia
// ──────────────────────────────────────────────────────────────────────────────

func TestRiskScore_AcotadoACero100(t *testing.T) {
	// Peor caso: un año sin ventas, rotación 0, decaimiento máximo
	worst := analytics.RiskScore(365, 0, 100, defaultWeights)
	assert.InDelta(t, 100, worst, 1e-9)

	// Mejor caso: venta hoy, rotación altísima, sin decaimiento
	best := analytics.RiskScore(0, 1000, 0, defaultWeights)
	assert.GreaterOrEqual(t, best, 0.0)
	assert.Less(t, best, 1.0)
}

func TestRiskScore_RecenciaSaturaAlAño(t *testing.T) {
	atCap := analytics.RiskScore(365, 1, 20, defaultWeights)
	beyond := analytics.RiskScore(800, 1, 20, defaultWeights)
	assert.InDelta(t, atCap, beyond, 1e-9, "pasado el año la recencia no suma más")
}

func TestRiskScore_MonotonoEnRecencia(t *testing.T) {
	prev := -1.0
	for _, days := range []int{0, 30, 90, 180, 365} {
		s := analytics.RiskScore(days, 2, 20, defaultWeights)
		assert.Greater(t, s, prev, "más días sin venta nunca baja el score")
		prev = s
	}
}

func TestRiskScore_DecrecienteEnRotacion(t *testing.T) {
	slow := analytics.RiskScore(90, 0.5, 20, defaultWeights)
	fast := analytics.RiskScore(90, 8, 20, defaultWeights)
	assert.Greater(t, slow, fast, "rotar menos sube el riesgo")
}

func TestRiskScore_ComponentesConocidos(t *testing.T) {
	// 182 días → recencia 182/365×100 ≈ 49.86; rotación 1 → 50; decay 30
	// score = 0.5×49.86 + 0.3×50 + 0.2×30 = 24.93 + 15 + 6 = 45.93
	s := analytics.RiskScore(182, 1, 30, defaultWeights)
	assert.InDelta(t, 45.93, s, 0.01)
}

func TestRiskWeights_Normalizacion(t *testing.T) {
	// Pesos que no suman 1 se reescalan
	w := analytics.RiskWeights{Recency: 1, Turnover: 1, CategoryDecay: 2}.Normalized()
	assert.InDelta(t, 0.25, w.Recency, 1e-9)
	assert.InDelta(t, 0.25, w.Turnover, 1e-9)
	assert.InDelta(t, 0.5, w.CategoryDecay, 1e-9)

	// Todos cero → reparto por defecto
	w = analytics.RiskWeights{}.Normalized()
	assert.InDelta(t, 0.5, w.Recency, 1e-9)
	assert.InDelta(t, 0.3, w.Turnover, 1e-9)
	assert.InDelta(t, 0.2, w.CategoryDecay, 1e-9)
}

// ──────────────────────────────────────────────────────────────────────────────
// Niveles y dead stock
// ──────────────────────────────────────────────────────────────────────────────

func TestRiskLevel_Fronteras(t *testing.T) {
	assert.Equal(t, entity.RiskHigh, analytics.RiskLevel(70))
	assert.Equal(t, entity.RiskMedium, analytics.RiskLevel(69.99))
	assert.Equal(t, entity.RiskMedium, analytics.RiskLevel(40))
	assert.Equal(t, entity.RiskLow, analytics.RiskLevel(39.99))
	assert.Equal(t, entity.RiskLow, analytics.RiskLevel(0))
}

func TestIsDeadStock(t *testing.T) {
	assert.True(t, analytics.IsDeadStock(90, 10, 90), "el umbral es inclusivo")
	assert.True(t, analytics.IsDeadStock(400, 1, 90))
	assert.False(t, analytics.IsDeadStock(89, 10, 90))
	// Sin stock físico no hay capital inmovilizado: no es dead stock
	assert.False(t, analytics.IsDeadStock(400, 0, 90))
}
