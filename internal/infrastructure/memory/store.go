// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Lo usan los tests de casos de uso y de handlers; el comportamiento
// observable (registro en cero sin fila, rollback ante error, orden de
// listados) replica el del adaptador PostgreSQL.
package memory

import (
	"sync"

	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
)

// Store estado compartido de todos los adaptadores en memoria.
// El mutex serializa transacciones y lecturas; el snapshot en el TxRunner da
// la semántica de rollback.
type Store struct {
	mu        sync.Mutex
	stocks    map[int64]*entity.StockRecord
	movements []*entity.Movement
	books     map[int64]*entity.Book
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		stocks: map[int64]*entity.StockRecord{},
		books:  map[int64]*entity.Book{},
	}
}

// SeedBook agrega un título al catálogo (los tests actúan de sistema de catálogo).
func (s *Store) SeedBook(b *entity.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *b
	s.books[b.ID] = &cp
}

// SeedStock fija el registro de stock de un título sin pasar por el ledger.
func (s *Store) SeedStock(rec *entity.StockRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.stocks[rec.BookID] = &cp
}

// SeedMovement agrega un movimiento histórico sin pasar por el ledger.
func (s *Store) SeedMovement(mov *entity.Movement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *mov
	s.movements = append(s.movements, &cp)
}

// copias para no filtrar punteros al estado interno

func cloneStock(rec *entity.StockRecord) *entity.StockRecord {
	cp := *rec
	return &cp
}

func cloneMovement(mov *entity.Movement) *entity.Movement {
	cp := *mov
	return &cp
}

func cloneBook(b *entity.Book) *entity.Book {
	cp := *b
	return &cp
}
