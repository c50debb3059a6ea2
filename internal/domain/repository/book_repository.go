package repository

import "github.com/tu-usuario/libreria-stock/internal/domain/entity"

// BookRepository puerto de solo lectura hacia el catálogo (colaborador
// externo): identidad del título y metadatos que consume la analítica.
// Las enumeraciones de categoría y editorial salen de aquí, nunca de
// constantes embebidas.
type BookRepository interface {
	GetByID(id int64) (*entity.Book, error)
	ListAll() ([]*entity.Book, error)
	ListCategories() ([]string, error)
	ListPublishers() ([]string, error)
}
