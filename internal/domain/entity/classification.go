package entity

import "github.com/shopspring/decimal"

// Clases ABC (contribución al valor de ventas) y XYZ (variabilidad de demanda).
const (
	ABCClassA = "A"
	ABCClassB = "B"
	ABCClassC = "C"

	XYZClassX = "X"
	XYZClassY = "Y"
	XYZClassZ = "Z"

	// ClassUnclassified se asigna a títulos sin historial de movimientos:
	// quedan fuera del ranking ABC pero no abortan el batch.
	ClassUnclassified = "UNCLASSIFIED"
)

// Classification resultado derivado de clasificar un título. Se recalcula
// a demanda desde el log de movimientos; nunca es sistema de registro.
type Classification struct {
	BookID           int64
	ABCClass         string
	XYZClass         string
	TurnoverRate     float64 // unidades vendidas al año / inventario promedio
	AnnualUnitsSold  int
	AnnualSalesValue decimal.Decimal
}
