package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo log append-only en memoria.
type MovementRepo struct {
	store  *Store
	locked bool
}

// NewMovementRepository adaptador del log para uso fuera de transacción.
func NewMovementRepository(store *Store) *MovementRepo {
	return &MovementRepo{store: store}
}

func (r *MovementRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// Append agrega un movimiento al log. Genera el UUID si viene vacío.
func (r *MovementRepo) Append(mov *entity.Movement) error {
	defer r.lock()()
	if mov.ID == "" {
		mov.ID = uuid.NewString()
	}
	if mov.CreatedAt.IsZero() {
		mov.CreatedAt = time.Now()
	}
	r.store.movements = append(r.store.movements, cloneMovement(mov))
	return nil
}

// ListByBook historial de un título ascendente por fecha, con paginación.
func (r *MovementRepo) ListByBook(bookID int64, since *time.Time, limit, offset int) ([]*entity.Movement, error) {
	defer r.lock()()
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	var all []*entity.Movement
	for _, m := range r.store.movements {
		if m.BookID != bookID {
			continue
		}
		if since != nil && m.OccurredAt.Before(*since) {
			continue
		}
		all = append(all, cloneMovement(m))
	}
	sortMovements(all)

	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// ListAll movimientos de todos los títulos, ascendente por fecha.
func (r *MovementRepo) ListAll(since *time.Time) ([]*entity.Movement, error) {
	defer r.lock()()
	var all []*entity.Movement
	for _, m := range r.store.movements {
		if since != nil && m.OccurredAt.Before(*since) {
			continue
		}
		all = append(all, cloneMovement(m))
	}
	sortMovements(all)
	return all, nil
}

func sortMovements(movs []*entity.Movement) {
	sort.SliceStable(movs, func(i, j int) bool {
		if !movs[i].OccurredAt.Equal(movs[j].OccurredAt) {
			return movs[i].OccurredAt.Before(movs[j].OccurredAt)
		}
		return movs[i].CreatedAt.Before(movs[j].CreatedAt)
	})
}
