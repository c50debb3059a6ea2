package analytics

import (
	"math"

	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
)

// Umbrales de urgencia en días hasta quiebre de stock.
const (
	urgencyHighDays   = 3
	urgencyMediumDays = 14
)

// PlanInput parámetros del cálculo de reposición de un título.
// LeadTimeDays, SafetyBuffer y MinimumOrder vienen de configuración.
type PlanInput struct {
	Available     int
	ReorderLevel  int
	DailyVelocity float64 // unidades SELL de los últimos 30 días / 30
	LeadTimeDays  int
	SafetyBuffer  int
	MinimumOrder  int
}

// Qualifies indica si el título entra al conjunto de sugerencias:
// disponible en o por debajo del nivel de reorden.
func Qualifies(available, reorderLevel int) bool {
	return available <= reorderLevel
}

// DaysUntilStockout días estimados hasta quedarse sin stock disponible.
// ok=false significa "sin pronóstico" (velocidad cero con stock positivo);
// con disponible <= 0 siempre devuelve 0, sin importar la velocidad.
func DaysUntilStockout(available int, dailyVelocity float64) (days int, ok bool) {
	if available <= 0 {
		return 0, true
	}
	if dailyVelocity <= 0 {
		return 0, false
	}
	return int(math.Floor(float64(available) / dailyVelocity)), true
}

// Urgency clasifica la urgencia de reposición. Sin pronóstico y con stock
// positivo la urgencia es LOW: no hay demanda observable que lo agote.
func Urgency(days int, hasForecast bool, available int) string {
	if available <= 0 {
		return entity.UrgencyHigh
	}
	if !hasForecast {
		return entity.UrgencyLow
	}
	switch {
	case days <= urgencyHighDays:
		return entity.UrgencyHigh
	case days <= urgencyMediumDays:
		return entity.UrgencyMedium
	default:
		return entity.UrgencyLow
	}
}

// SuggestedOrder cantidad sugerida de pedido: demanda esperada durante el lead
// time más el colchón de seguridad, menos lo disponible. Si el título califica
// nunca baja del pedido mínimo.
func SuggestedOrder(in PlanInput) int {
	qty := int(math.Ceil(in.DailyVelocity*float64(in.LeadTimeDays))) + in.SafetyBuffer - in.Available
	min := in.MinimumOrder
	if min < 1 {
		min = 1
	}
	if qty < min {
		return min
	}
	return qty
}
