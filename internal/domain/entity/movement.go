package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementKindReceive = "RECEIVE"
	MovementKindSell    = "SELL"
	MovementKindAdjust  = "ADJUST"
)

// Movement registro inmutable de un evento que afectó el stock de un título.
// Propiedad exclusiva del log de movimientos: una vez escrito no se modifica.
// Es la única fuente de verdad para rotación, dead stock y clasificación.
type Movement struct {
	ID            string
	BookID        int64
	Kind          string
	QuantityDelta int    // firmado: positivo RECEIVE/ajuste+, negativo SELL/ajuste-
	Location      string // STORE o WAREHOUSE
	Reason        string
	Note          string // nota de entrega en recepciones
	CustomerID    *int64 // solo ventas, opcional
	OccurredAt    time.Time
	CreatedAt     time.Time
}
