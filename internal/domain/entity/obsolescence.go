package entity

import "github.com/shopspring/decimal"

// Niveles de riesgo de obsolescencia.
const (
	RiskHigh   = "HIGH"   // score >= 70
	RiskMedium = "MEDIUM" // 40 <= score < 70
	RiskLow    = "LOW"    // score < 40
)

// ObsolescenceEntry riesgo de obsolescencia de un título: combina recencia de
// venta, inversa de la rotación y el factor de decaimiento de su categoría
// tecnológica. Score acotado a [0,100].
type ObsolescenceEntry struct {
	BookID            int64
	Category          string
	DaysSinceLastSale int // edad de catálogo si nunca se vendió
	RiskScore         float64
	RiskLevel         string
	DeadStock         bool // sin ventas por encima del umbral y con stock > 0
	StockValue        decimal.Decimal
}
