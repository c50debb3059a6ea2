package analytics

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/libreria-stock/internal/domain"
	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/domain/inventory"
	"github.com/tu-usuario/libreria-stock/internal/domain/repository"
	"github.com/tu-usuario/libreria-stock/pkg/config"
	"github.com/tu-usuario/libreria-stock/pkg/logger"
)

// ReportFilters filtros del reporte unificado. Campos vacíos o cero no
// filtran. PriceRange acepta "underN", "N-M" u "overN" sobre el precio de
// venta del título.
type ReportFilters struct {
	Category        string
	Level           string
	Publisher       string
	StockStatus     string
	PriceRange      string
	PublicationYear int
}

// ReportItem fila del reporte: un título con su stock, estado, clasificación
// y (si tiene stock físico) su entrada de obsolescencia.
type ReportItem struct {
	Book           *entity.Book
	Stock          *entity.StockRecord
	Status         string
	StockValue     decimal.Decimal
	Classification *entity.Classification
	Obsolescence   *entity.ObsolescenceEntry
}

// CategoryTurnover rotación promedio de una categoría.
type CategoryTurnover struct {
	Category        string
	AverageTurnover float64
	Titles          int
}

// TurnoverSummary resumen de rotación del conjunto filtrado.
type TurnoverSummary struct {
	AverageTurnoverRate   float64
	FastestMovingCategory string
	SlowestMovingCategory string
	ByCategory            []CategoryTurnover
}

// InventoryReport reporte unificado de inventario: KPIs, filas por título,
// sugerencias de reposición y resumen de rotación, todo sobre el mismo corte
// y restringido por los filtros.
type InventoryReport struct {
	GeneratedAt time.Time
	Filters     ReportFilters

	TotalTitles         int
	LowStockCount       int
	CriticalCount       int
	OutOfStockCount     int
	OverstockCount      int
	TotalInventoryValue decimal.Decimal

	DeadStockCount        int
	DeadStockValue        decimal.Decimal
	EarlyWarningCount     int
	EarlyWarningValue     decimal.Decimal
	ObsolescenceRiskIndex float64

	Items              []*ReportItem
	ReorderSuggestions []*entity.ReorderSuggestion
	Turnover           *TurnoverSummary
}

// ReportUseCase orquesta los tres motores analíticos sobre un único corte:
// clasifica una sola vez y reutiliza la rotación resultante en el scoring de
// obsolescencia. Los KPIs agregados se calculan sobre el conjunto filtrado,
// no sobre el catálogo completo.
type ReportUseCase struct {
	classification *ClassificationUseCase
	replenishment  *ReplenishmentUseCase
	obsolescence   *ObsolescenceUseCase
	stockRepo      repository.StockRepository
	bookRepo       repository.BookRepository
	cfg            config.AnalyticsConfig
	log            *logger.Logger
}

// NewReportUseCase construye el generador de reportes.
func NewReportUseCase(
	classification *ClassificationUseCase,
	replenishment *ReplenishmentUseCase,
	obsolescence *ObsolescenceUseCase,
	stockRepo repository.StockRepository,
	bookRepo repository.BookRepository,
	cfg config.AnalyticsConfig,
	log *logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		classification: classification,
		replenishment:  replenishment,
		obsolescence:   obsolescence,
		stockRepo:      stockRepo,
		bookRepo:       bookRepo,
		cfg:            cfg,
		log:            log,
	}
}

// Generate produce el reporte unificado al corte asOf con los filtros dados.
// Devuelve ErrInvalidPriceRange (envuelto) si PriceRange no parsea.
func (uc *ReportUseCase) Generate(ctx context.Context, asOf time.Time, filters ReportFilters) (*InventoryReport, error) {
	priceMin, priceMax, err := parsePriceRange(filters.PriceRange)
	if err != nil {
		return nil, err
	}

	books, err := uc.bookRepo.ListAll()
	if err != nil {
		return nil, err
	}
	stocks, err := uc.stockRepo.ListAll()
	if err != nil {
		return nil, err
	}
	classifications, err := uc.classification.Classify(ctx, asOf)
	if err != nil {
		return nil, err
	}

	turnoverByBook := make(map[int64]float64, len(classifications))
	classByBook := make(map[int64]*entity.Classification, len(classifications))
	for i := range classifications {
		c := &classifications[i]
		turnoverByBook[c.BookID] = c.TurnoverRate
		classByBook[c.BookID] = c
	}

	obsReport, err := uc.obsolescence.Score(ctx, asOf, turnoverByBook)
	if err != nil {
		return nil, err
	}
	obsByBook := make(map[int64]*entity.ObsolescenceEntry, len(obsReport.Entries))
	for _, e := range obsReport.Entries {
		obsByBook[e.BookID] = e
	}

	suggestions, err := uc.replenishment.GenerateSuggestions(ctx, asOf)
	if err != nil {
		return nil, err
	}

	stockByBook := make(map[int64]*entity.StockRecord, len(stocks))
	for _, s := range stocks {
		stockByBook[s.BookID] = s
	}

	report := &InventoryReport{
		GeneratedAt:         asOf,
		Filters:             filters,
		TotalInventoryValue: decimal.Zero,
		DeadStockValue:      decimal.Zero,
		EarlyWarningValue:   decimal.Zero,
	}
	included := make(map[int64]bool, len(books))
	riskWeightedSum := 0.0
	riskTotalValue := decimal.Zero

	deadDays := uc.cfg.DeadStockDays
	if deadDays <= 0 {
		deadDays = 90
	}
	warnDays := uc.cfg.EarlyWarningDays
	if warnDays <= 0 || warnDays >= deadDays {
		warnDays = deadDays * 2 / 3
	}

	for _, book := range books {
		rec := stockByBook[book.ID]
		if rec == nil {
			// Título sin fila de stock: registro en cero
			rec = &entity.StockRecord{BookID: book.ID}
		}
		status := inventory.StockStatus(rec, uc.cfg.OverstockCeiling)

		if !matches(book, status, filters, priceMin, priceMax) {
			continue
		}
		included[book.ID] = true

		stockValue := inventory.StockValue(rec, book.SellingPrice)
		item := &ReportItem{
			Book:           book,
			Stock:          rec,
			Status:         status,
			StockValue:     stockValue,
			Classification: classByBook[book.ID],
			Obsolescence:   obsByBook[book.ID],
		}
		report.Items = append(report.Items, item)

		report.TotalTitles++
		report.TotalInventoryValue = report.TotalInventoryValue.Add(stockValue)
		switch status {
		case inventory.StatusLow:
			report.LowStockCount++
		case inventory.StatusCritical:
			report.CriticalCount++
		case inventory.StatusOut:
			report.OutOfStockCount++
		case inventory.StatusOverstock:
			report.OverstockCount++
		}

		if obs := item.Obsolescence; obs != nil {
			if obs.DeadStock {
				report.DeadStockCount++
				report.DeadStockValue = report.DeadStockValue.Add(obs.StockValue)
			} else if obs.DaysSinceLastSale >= warnDays {
				report.EarlyWarningCount++
				report.EarlyWarningValue = report.EarlyWarningValue.Add(obs.StockValue)
			}
			v, _ := obs.StockValue.Float64()
			riskWeightedSum += obs.RiskScore * v
			riskTotalValue = riskTotalValue.Add(obs.StockValue)
		}
	}

	if tv, _ := riskTotalValue.Float64(); tv > 0 {
		report.ObsolescenceRiskIndex = riskWeightedSum / tv
	}

	// Las sugerencias conservan su prioridad global aunque el filtro excluya
	// posiciones intermedias.
	for _, s := range suggestions {
		if included[s.BookID] {
			report.ReorderSuggestions = append(report.ReorderSuggestions, s)
		}
	}

	report.Turnover = turnoverSummary(report.Items)

	uc.log.Info().Int("titulos", report.TotalTitles).
		Time("as_of", asOf).Msg("reporte de inventario generado")
	return report, nil
}

// TurnoverByCategory resumen de rotación del catálogo completo (endpoint
// /api/reports/turnover).
func (uc *ReportUseCase) TurnoverByCategory(ctx context.Context, asOf time.Time) (*TurnoverSummary, error) {
	report, err := uc.Generate(ctx, asOf, ReportFilters{})
	if err != nil {
		return nil, err
	}
	return report.Turnover, nil
}

func matches(book *entity.Book, status string, f ReportFilters, priceMin, priceMax *decimal.Decimal) bool {
	if f.Category != "" && !strings.EqualFold(book.Category, f.Category) {
		return false
	}
	if f.Level != "" && !strings.EqualFold(book.Level, f.Level) {
		return false
	}
	if f.Publisher != "" && !strings.EqualFold(book.Publisher, f.Publisher) {
		return false
	}
	if f.StockStatus != "" && !strings.EqualFold(status, f.StockStatus) {
		return false
	}
	if f.PublicationYear != 0 && book.PublicationYear != f.PublicationYear {
		return false
	}
	if priceMin != nil && book.SellingPrice.LessThan(*priceMin) {
		return false
	}
	if priceMax != nil && book.SellingPrice.GreaterThan(*priceMax) {
		return false
	}
	return true
}

// parsePriceRange interpreta "underN" (precio < N), "N-M" (inclusivo) y
// "overN" (precio > N). Cadena vacía no filtra.
func parsePriceRange(s string) (min, max *decimal.Decimal, err error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return nil, nil, nil
	}
	switch {
	case strings.HasPrefix(s, "under"):
		n, derr := decimal.NewFromString(strings.TrimPrefix(s, "under"))
		if derr != nil {
			return nil, nil, domain.ErrInvalidPriceRange
		}
		// under es estricto: lo representamos como max = N - centavo
		m := n.Sub(decimal.New(1, -2))
		return nil, &m, nil
	case strings.HasPrefix(s, "over"):
		n, derr := decimal.NewFromString(strings.TrimPrefix(s, "over"))
		if derr != nil {
			return nil, nil, domain.ErrInvalidPriceRange
		}
		m := n.Add(decimal.New(1, -2))
		return &m, nil, nil
	case strings.Contains(s, "-"):
		parts := strings.SplitN(s, "-", 2)
		lo, e1 := decimal.NewFromString(strings.TrimSpace(parts[0]))
		hi, e2 := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if e1 != nil || e2 != nil || lo.GreaterThan(hi) {
			return nil, nil, domain.ErrInvalidPriceRange
		}
		return &lo, &hi, nil
	default:
		return nil, nil, domain.ErrInvalidPriceRange
	}
}

func turnoverSummary(items []*ReportItem) *TurnoverSummary {
	sum := &TurnoverSummary{}
	type acc struct {
		total float64
		count int
	}
	byCat := map[string]*acc{}
	total, count := 0.0, 0

	for _, it := range items {
		c := it.Classification
		if c == nil || c.ABCClass == entity.ClassUnclassified {
			continue
		}
		total += c.TurnoverRate
		count++
		a, ok := byCat[it.Book.Category]
		if !ok {
			a = &acc{}
			byCat[it.Book.Category] = a
		}
		a.total += c.TurnoverRate
		a.count++
	}
	if count > 0 {
		sum.AverageTurnoverRate = total / float64(count)
	}

	for cat, a := range byCat {
		sum.ByCategory = append(sum.ByCategory, CategoryTurnover{
			Category:        cat,
			AverageTurnover: a.total / float64(a.count),
			Titles:          a.count,
		})
	}
	sort.Slice(sum.ByCategory, func(i, j int) bool {
		if sum.ByCategory[i].AverageTurnover != sum.ByCategory[j].AverageTurnover {
			return sum.ByCategory[i].AverageTurnover > sum.ByCategory[j].AverageTurnover
		}
		return sum.ByCategory[i].Category < sum.ByCategory[j].Category
	})
	if len(sum.ByCategory) > 0 {
		sum.FastestMovingCategory = sum.ByCategory[0].Category
		sum.SlowestMovingCategory = sum.ByCategory[len(sum.ByCategory)-1].Category
	}
	return sum
}
