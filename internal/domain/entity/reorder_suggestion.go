package entity

// Niveles de urgencia de reposición.
const (
	UrgencyHigh   = "HIGH"
	UrgencyMedium = "MEDIUM"
	UrgencyLow    = "LOW"
)

// ReorderSuggestion sugerencia de pedido para un título bajo su nivel de
// reorden. DaysUntilStockout nil significa "sin pronóstico" (no hubo ventas
// en la ventana de velocidad y todavía hay stock); 0 significa ya agotado.
type ReorderSuggestion struct {
	BookID            int64
	Title             string
	CurrentStock      int // stock disponible al momento del cálculo
	SuggestedOrder    int
	Urgency           string
	DaysUntilStockout *int
	Priority          int // 1 = más urgente, asignado tras ordenar
}
