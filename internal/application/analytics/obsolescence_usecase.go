package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	domanalytics "github.com/tu-usuario/libreria-stock/internal/domain/analytics"
	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/domain/inventory"
	"github.com/tu-usuario/libreria-stock/internal/domain/repository"
	"github.com/tu-usuario/libreria-stock/pkg/config"
	"github.com/tu-usuario/libreria-stock/pkg/logger"
)

// ObsolescenceReport resultado del scoring de obsolescencia del catálogo.
// RiskIndex es el promedio de scores ponderado por valor de stock: el riesgo
// de un título con mucho capital inmovilizado pesa más que el de uno casi
// agotado.
type ObsolescenceReport struct {
	Entries []*entity.ObsolescenceEntry

	RiskIndex      float64
	DeadStockCount int
	DeadStockValue decimal.Decimal

	// Bucket de alerta temprana: sin ventas por encima del umbral temprano
	// pero todavía por debajo del de dead stock.
	EarlyWarningCount int
	EarlyWarningValue decimal.Decimal
}

// ObsolescenceUseCase califica el riesgo de obsolescencia de cada título con
// stock físico. La rotación por título la aporta el llamador (la calcula la
// clasificación ABC/XYZ) para no recomputar la misma agregación dos veces.
type ObsolescenceUseCase struct {
	stockRepo     repository.StockRepository
	bookRepo      repository.BookRepository
	analyticsRepo repository.AnalyticsRepository
	cfg           config.AnalyticsConfig
	log           *logger.Logger
}

// NewObsolescenceUseCase construye el caso de uso.
func NewObsolescenceUseCase(
	stockRepo repository.StockRepository,
	bookRepo repository.BookRepository,
	analyticsRepo repository.AnalyticsRepository,
	cfg config.AnalyticsConfig,
	log *logger.Logger,
) *ObsolescenceUseCase {
	return &ObsolescenceUseCase{
		stockRepo:     stockRepo,
		bookRepo:      bookRepo,
		analyticsRepo: analyticsRepo,
		cfg:           cfg,
		log:           log,
	}
}

// Score evalúa todos los títulos con stock físico positivo al corte asOf.
// Para un título que nunca se vendió, la recencia se mide desde su alta en el
// catálogo. Las entradas salen ordenadas por score descendente (ID como
// desempate) para que el reporte liste primero lo más riesgoso.
func (uc *ObsolescenceUseCase) Score(ctx context.Context, asOf time.Time, turnoverByBook map[int64]float64) (*ObsolescenceReport, error) {
	deadDays := uc.cfg.DeadStockDays
	if deadDays <= 0 {
		deadDays = 90
	}
	warnDays := uc.cfg.EarlyWarningDays
	if warnDays <= 0 || warnDays >= deadDays {
		warnDays = deadDays * 2 / 3
	}

	stocks, err := uc.stockRepo.ListAll()
	if err != nil {
		return nil, err
	}
	books, err := uc.bookRepo.ListAll()
	if err != nil {
		return nil, err
	}
	lastSales, err := uc.analyticsRepo.GetLastSaleDates(ctx)
	if err != nil {
		return nil, err
	}

	bookByID := make(map[int64]*entity.Book, len(books))
	for _, b := range books {
		bookByID[b.ID] = b
	}
	lastSaleByBook := make(map[int64]time.Time, len(lastSales))
	for _, row := range lastSales {
		lastSaleByBook[row.BookID] = row.LastSoldAt
	}

	weights := domanalytics.RiskWeights{
		Recency:       uc.cfg.RiskWeightRecency,
		Turnover:      uc.cfg.RiskWeightTurnover,
		CategoryDecay: uc.cfg.RiskWeightDecay,
	}

	report := &ObsolescenceReport{
		DeadStockValue:    decimal.Zero,
		EarlyWarningValue: decimal.Zero,
	}
	weightedSum := 0.0
	totalValue := decimal.Zero

	for _, rec := range stocks {
		if rec.TotalStock() <= 0 {
			continue
		}
		book, ok := bookByID[rec.BookID]
		if !ok {
			continue
		}

		var ref time.Time
		if last, sold := lastSaleByBook[rec.BookID]; sold {
			ref = last
		} else {
			ref = book.CreatedAt
		}
		days := int(asOf.Sub(ref).Hours() / 24)
		if days < 0 {
			days = 0
		}

		stockValue := inventory.StockValue(rec, book.SellingPrice)
		score := domanalytics.RiskScore(days, turnoverByBook[rec.BookID], uc.cfg.DecayFor(book.Category), weights)

		entry := &entity.ObsolescenceEntry{
			BookID:            rec.BookID,
			Category:          book.Category,
			DaysSinceLastSale: days,
			RiskScore:         score,
			RiskLevel:         domanalytics.RiskLevel(score),
			DeadStock:         domanalytics.IsDeadStock(days, rec.TotalStock(), deadDays),
			StockValue:        stockValue,
		}
		report.Entries = append(report.Entries, entry)

		if entry.DeadStock {
			report.DeadStockCount++
			report.DeadStockValue = report.DeadStockValue.Add(stockValue)
		} else if days >= warnDays {
			report.EarlyWarningCount++
			report.EarlyWarningValue = report.EarlyWarningValue.Add(stockValue)
		}

		v, _ := stockValue.Float64()
		weightedSum += score * v
		totalValue = totalValue.Add(stockValue)
	}

	if tv, _ := totalValue.Float64(); tv > 0 {
		report.RiskIndex = weightedSum / tv
	} else if n := len(report.Entries); n > 0 {
		// Todo el stock con valor cero: promedio simple
		sum := 0.0
		for _, e := range report.Entries {
			sum += e.RiskScore
		}
		report.RiskIndex = sum / float64(n)
	}

	sort.SliceStable(report.Entries, func(i, j int) bool {
		if report.Entries[i].RiskScore != report.Entries[j].RiskScore {
			return report.Entries[i].RiskScore > report.Entries[j].RiskScore
		}
		return report.Entries[i].BookID < report.Entries[j].BookID
	})

	uc.log.Debug().Int("titulos", len(report.Entries)).
		Int("dead_stock", report.DeadStockCount).Msg("scoring de obsolescencia calculado")
	return report, nil
}
