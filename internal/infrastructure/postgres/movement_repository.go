package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, book_id, kind, quantity_delta, location, reason,
	note, customer_id, occurred_at, created_at`

// MovementRepo log append-only de movimientos sobre PostgreSQL.
// La tabla no tiene UPDATE ni DELETE en ningún código de este repo.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del log. Pasar pool o tx.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append agrega un movimiento al log. Genera el UUID si viene vacío.
func (r *MovementRepo) Append(mov *entity.Movement) error {
	if mov.ID == "" {
		mov.ID = uuid.NewString()
	}
	query := `
		INSERT INTO stock_movements (id, book_id, kind, quantity_delta, location,
			reason, note, customer_id, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.BookID, mov.Kind, mov.QuantityDelta, mov.Location,
		mov.Reason, mov.Note, mov.CustomerID, mov.OccurredAt,
	)
	if err != nil {
		return storageErr("append movement", err)
	}
	return nil
}

// ListByBook historial de un título ascendente por fecha, con paginación.
func (r *MovementRepo) ListByBook(bookID int64, since *time.Time, limit, offset int) ([]*entity.Movement, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE book_id = $1 AND ($2::timestamptz IS NULL OR occurred_at >= $2)
		ORDER BY occurred_at, created_at
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, bookID, since, limit, offset)
	if err != nil {
		return nil, storageErr("list movements", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListAll movimientos de todos los títulos, ascendente por fecha.
func (r *MovementRepo) ListAll(since *time.Time) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE $1::timestamptz IS NULL OR occurred_at >= $1
		ORDER BY occurred_at, created_at`
	rows, err := r.q.Query(context.Background(), query, since)
	if err != nil {
		return nil, storageErr("list all movements", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.BookID, &m.Kind, &m.QuantityDelta, &m.Location,
			&m.Reason, &m.Note, &m.CustomerID, &m.OccurredAt, &m.CreatedAt,
		); err != nil {
			return nil, storageErr("scan movement", err)
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("read movements", err)
	}
	return out, nil
}
