package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("título no encontrado en el catálogo")
	ErrInvalidQuantity        = errors.New("la cantidad debe ser un entero positivo")
	ErrInvalidLocation        = errors.New("la ubicación debe ser STORE o WAREHOUSE")
	ErrInsufficientStoreStock = errors.New("stock de tienda insuficiente")
	ErrInvalidAdjustment      = errors.New("el ajuste no admite valores negativos")
	ErrInvalidPriceRange      = errors.New("rango de precio inválido: se espera underN, N-M u overN")
	ErrStorage                = errors.New("fallo de la capa de almacenamiento")
)

// LedgerError envuelve un error de una operación del libro de stock con el
// título afectado y la operación que lo produjo. Todo fallo visible al usuario
// reporta el bookID y el invariante violado; el sentinel sigue siendo
// accesible vía errors.Is gracias a Unwrap.
type LedgerError struct {
	BookID int64
	Op     string // RECEIVE, SELL, ADJUST, SNAPSHOT
	Err    error
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("%s libro %d: %v", e.Op, e.BookID, e.Err)
}

func (e *LedgerError) Unwrap() error { return e.Err }

// NewLedgerError construye el wrapper para la operación y título indicados.
func NewLedgerError(op string, bookID int64, err error) *LedgerError {
	return &LedgerError{BookID: bookID, Op: op, Err: err}
}
