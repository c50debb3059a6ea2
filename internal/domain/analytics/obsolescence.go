package analytics

import "github.com/tu-usuario/libreria-stock/internal/domain/entity"

// Tope de la contribución de recencia: pasado un año sin ventas el componente
// de recencia satura en 100.
const recencyCapDays = 365

// RiskWeights pesos de los tres componentes del score de obsolescencia.
// Deben sumar 1 para que el score quede naturalmente en [0,100].
type RiskWeights struct {
	Recency       float64 // días sin venta, normalizado y con tope
	Turnover      float64 // inversa de la rotación anual
	CategoryDecay float64 // señal externa de decaimiento tecnológico
}

// Normalized devuelve los pesos reescalados para que sumen 1; si todos son
// cero aplica el reparto por defecto 0.5/0.3/0.2.
func (w RiskWeights) Normalized() RiskWeights {
	sum := w.Recency + w.Turnover + w.CategoryDecay
	if sum <= 0 {
		return RiskWeights{Recency: 0.5, Turnover: 0.3, CategoryDecay: 0.2}
	}
	return RiskWeights{
		Recency:       w.Recency / sum,
		Turnover:      w.Turnover / sum,
		CategoryDecay: w.CategoryDecay / sum,
	}
}

// RiskScore score de obsolescencia en [0,100]. Monótonamente creciente en
// daysSinceLastSale y decreciente en turnoverRate; categoryDecay es un factor
// externo en [0,100] (peso público de obsolescencia de la tecnología).
func RiskScore(daysSinceLastSale int, turnoverRate, categoryDecay float64, w RiskWeights) float64 {
	nw := w.Normalized()

	days := daysSinceLastSale
	if days < 0 {
		days = 0
	}
	if days > recencyCapDays {
		days = recencyCapDays
	}
	recency := float64(days) / float64(recencyCapDays) * 100

	if turnoverRate < 0 {
		turnoverRate = 0
	}
	slowness := 100 / (1 + turnoverRate)

	if categoryDecay < 0 {
		categoryDecay = 0
	}
	if categoryDecay > 100 {
		categoryDecay = 100
	}

	score := nw.Recency*recency + nw.Turnover*slowness + nw.CategoryDecay*categoryDecay
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// RiskLevel mapea el score a su nivel: HIGH >= 70, MEDIUM >= 40, LOW < 40.
func RiskLevel(score float64) string {
	switch {
	case score >= 70:
		return entity.RiskHigh
	case score >= 40:
		return entity.RiskMedium
	default:
		return entity.RiskLow
	}
}

// IsDeadStock marca stock muerto: sin ventas desde hace thresholdDays o más
// y con stock físico positivo.
func IsDeadStock(daysSinceLastSale, currentStock, thresholdDays int) bool {
	return daysSinceLastSale >= thresholdDays && currentStock > 0
}
