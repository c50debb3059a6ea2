package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/domain/repository"
)

var _ repository.BookRepository = (*BookRepo)(nil)

const bookColumns = `id, isbn13, title, category, publisher, level,
	publication_year, selling_price, created_at`

// BookRepo lectura del catálogo de títulos. Este motor nunca escribe en la
// tabla books; la administra el sistema de catálogo.
type BookRepo struct {
	q Querier
}

// NewBookRepository construye el adaptador del catálogo.
func NewBookRepository(q Querier) *BookRepo {
	return &BookRepo{q: q}
}

// GetByID devuelve el título, o (nil, nil) si no existe.
func (r *BookRepo) GetByID(id int64) (*entity.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	var b entity.Book
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.ISBN13, &b.Title, &b.Category, &b.Publisher, &b.Level,
		&b.PublicationYear, &b.SellingPrice, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get book", err)
	}
	return &b, nil
}

// ListAll devuelve el catálogo completo ordenado por ID.
func (r *BookRepo) ListAll() ([]*entity.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, storageErr("list books", err)
	}
	defer rows.Close()

	var out []*entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(
			&b.ID, &b.ISBN13, &b.Title, &b.Category, &b.Publisher, &b.Level,
			&b.PublicationYear, &b.SellingPrice, &b.CreatedAt,
		); err != nil {
			return nil, storageErr("scan book", err)
		}
		out = append(out, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("read books", err)
	}
	return out, nil
}

// ListCategories categorías distintas del catálogo, ordenadas.
func (r *BookRepo) ListCategories() ([]string, error) {
	return r.listDistinct("category")
}

// ListPublishers editoriales distintas del catálogo, ordenadas.
func (r *BookRepo) ListPublishers() ([]string, error) {
	return r.listDistinct("publisher")
}

func (r *BookRepo) listDistinct(column string) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM books WHERE %s <> '' ORDER BY %s`, column, column, column)
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, storageErr("list distinct "+column, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, storageErr("scan "+column, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("read "+column, err)
	}
	return out, nil
}
