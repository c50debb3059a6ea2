package memory

import (
	"sort"

	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/domain/repository"
)

var _ repository.BookRepository = (*BookRepo)(nil)

// BookRepo catálogo en memoria (se alimenta con SeedBook).
type BookRepo struct {
	store *Store
}

// NewBookRepository adaptador del catálogo.
func NewBookRepository(store *Store) *BookRepo {
	return &BookRepo{store: store}
}

// GetByID devuelve el título, o (nil, nil) si no existe.
func (r *BookRepo) GetByID(id int64) (*entity.Book, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if b, ok := r.store.books[id]; ok {
		return cloneBook(b), nil
	}
	return nil, nil
}

// ListAll catálogo completo ordenado por ID.
func (r *BookRepo) ListAll() ([]*entity.Book, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Book, 0, len(r.store.books))
	for _, b := range r.store.books {
		out = append(out, cloneBook(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ListCategories categorías distintas, ordenadas.
func (r *BookRepo) ListCategories() ([]string, error) {
	return r.listDistinct(func(b *entity.Book) string { return b.Category })
}

// ListPublishers editoriales distintas, ordenadas.
func (r *BookRepo) ListPublishers() ([]string, error) {
	return r.listDistinct(func(b *entity.Book) string { return b.Publisher })
}

func (r *BookRepo) listDistinct(field func(*entity.Book) string) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, b := range r.store.books {
		v := field(b)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}
