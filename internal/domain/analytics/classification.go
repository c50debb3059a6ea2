package analytics

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
)

// Umbrales de clasificación: ABC por participación acumulada en el valor de
// ventas (70/20/10) y XYZ por coeficiente de variación de la demanda mensual.
const (
	abcShareA = 0.70
	abcShareB = 0.90 // 70% + 20%

	xyzCVStable   = 0.5
	xyzCVVariable = 1.0
)

// TitleSales serie de ventas de un título dentro de la ventana de
// clasificación: unidades vendidas por mes (orden cronológico) y el nivel
// medio de inventario de la misma ventana.
type TitleSales struct {
	BookID       int64
	UnitValue    decimal.Decimal
	MonthlyUnits []int
	AvgInventory float64
}

// AnnualUnits total de unidades vendidas en la ventana.
func AnnualUnits(monthlyUnits []int) int {
	total := 0
	for _, u := range monthlyUnits {
		total += u
	}
	return total
}

// TurnoverRate rotación anual: unidades vendidas / inventario promedio.
// Devuelve 0 cuando el inventario promedio es cero (evita división por cero).
func TurnoverRate(annualUnits int, avgInventory float64) float64 {
	if avgInventory <= 0 {
		return 0
	}
	return float64(annualUnits) / avgInventory
}

// AverageInventoryLevel reconstruye el nivel medio de inventario de la ventana
// a partir del stock total actual y los deltas netos mensuales de movimientos
// (orden cronológico). La muestra del mes i es el stock a fin de ese mes,
// obtenida restando hacia atrás los deltas posteriores. Sin deltas devuelve el
// stock actual (un título sin historial usa su nivel presente).
func AverageInventoryLevel(currentTotal int, monthlyNetDeltas []int) float64 {
	if len(monthlyNetDeltas) == 0 {
		return float64(currentTotal)
	}
	samples := make([]int, len(monthlyNetDeltas))
	level := currentTotal
	for i := len(monthlyNetDeltas) - 1; i >= 0; i-- {
		samples[i] = level
		level -= monthlyNetDeltas[i]
	}
	sum := 0
	for _, s := range samples {
		sum += s
	}
	return float64(sum) / float64(len(samples))
}

// CoefficientOfVariation CV = desviación estándar / media de las unidades
// mensuales. ok=false cuando la media es cero (CV indefinido → clase Z).
func CoefficientOfVariation(monthlyUnits []int) (cv float64, ok bool) {
	if len(monthlyUnits) == 0 {
		return 0, false
	}
	mean := float64(AnnualUnits(monthlyUnits)) / float64(len(monthlyUnits))
	if mean == 0 {
		return 0, false
	}
	var variance float64
	for _, u := range monthlyUnits {
		d := float64(u) - mean
		variance += d * d
	}
	variance /= float64(len(monthlyUnits))
	return math.Sqrt(variance) / mean, true
}

// XYZClass clasifica la variabilidad de demanda de un título:
// X estable (CV < 0.5), Y variable (0.5 <= CV < 1.0), Z irregular (resto,
// incluida la media cero).
func XYZClass(monthlyUnits []int) string {
	cv, ok := CoefficientOfVariation(monthlyUnits)
	if !ok || cv >= xyzCVVariable {
		return entity.XYZClassZ
	}
	if cv < xyzCVStable {
		return entity.XYZClassX
	}
	return entity.XYZClassY
}

// ClassifyABC asigna clase ABC por participación acumulada en el valor anual
// de ventas: se ordena descendente por valor (orden estable, los empates
// conservan el orden de entrada) y se clasifica A mientras el acumulado previo
// no alcance el 70%, B hasta el 90% y C el resto. Con valor total cero todos
// los títulos quedan en C.
func ClassifyABC(titles []TitleSales) map[int64]string {
	type ranked struct {
		bookID int64
		value  decimal.Decimal
	}
	items := make([]ranked, 0, len(titles))
	total := decimal.Zero
	for _, t := range titles {
		value := t.UnitValue.Mul(decimal.NewFromInt(int64(AnnualUnits(t.MonthlyUnits))))
		items = append(items, ranked{bookID: t.BookID, value: value})
		total = total.Add(value)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].value.GreaterThan(items[j].value)
	})

	classes := make(map[int64]string, len(items))
	if total.IsZero() {
		for _, it := range items {
			classes[it.bookID] = entity.ABCClassC
		}
		return classes
	}

	cumulative := decimal.Zero
	for _, it := range items {
		share, _ := cumulative.Div(total).Float64()
		switch {
		case share < abcShareA:
			classes[it.bookID] = entity.ABCClassA
		case share < abcShareB:
			classes[it.bookID] = entity.ABCClassB
		default:
			classes[it.bookID] = entity.ABCClassC
		}
		cumulative = cumulative.Add(it.value)
	}
	return classes
}
