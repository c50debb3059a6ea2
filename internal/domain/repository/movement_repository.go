package repository

import (
	"time"

	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
)

// MovementRepository log append-only de movimientos de stock, ordenado en el
// tiempo por la serialización del ledger (no por llegada). Append nunca se
// reintenta en silencio: un fallo de almacenamiento es fatal para la
// operación y se propaga (reintentar duplicaría el movimiento).
type MovementRepository interface {
	// Append agrega un movimiento; el ID se genera si viene vacío.
	Append(mov *entity.Movement) error
	// ListByBook movimientos de un título en orden ascendente por fecha.
	// since nil = desde el origen. Cada llamada produce una secuencia fresca.
	ListByBook(bookID int64, since *time.Time, limit, offset int) ([]*entity.Movement, error)
	// ListAll movimientos de todos los títulos, ascendente por fecha.
	ListAll(since *time.Time) ([]*entity.Movement, error)
}
