package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Niveles técnicos de un título (catálogo de librería especializada).
const (
	LevelBeginner     = "BEGINNER"
	LevelIntermediate = "INTERMEDIATE"
	LevelAdvanced     = "ADVANCED"
	LevelExpert       = "EXPERT"
)

// Book metadatos de un título del catálogo (colaborador externo de este motor).
// El motor de stock no crea ni edita títulos; solo consume identidad, valor
// unitario y señales de categoría para la analítica.
type Book struct {
	ID              int64
	ISBN13          string
	Title           string
	Category        string // tecnología principal: "Java", "Python", "React", ...
	Publisher       string
	Level           string
	PublicationYear int
	SellingPrice    decimal.Decimal // valor unitario para valoración y ranking ABC
	CreatedAt       time.Time       // fecha de alta en catálogo (edad para títulos nunca vendidos)
}
