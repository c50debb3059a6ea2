package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	domanalytics "github.com/tu-usuario/libreria-stock/internal/domain/analytics"
	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/domain/repository"
	"github.com/tu-usuario/libreria-stock/pkg/config"
	"github.com/tu-usuario/libreria-stock/pkg/logger"
)

// ClassificationUseCase clasifica el catálogo en clases ABC (contribución al
// valor de ventas) y XYZ (variabilidad de demanda) y calcula la rotación
// anual por título. Solo lectura: función pura del log de movimientos y del
// estado de stock al instante del cálculo, dos corridas sobre el mismo corte
// producen el mismo resultado.
type ClassificationUseCase struct {
	stockRepo     repository.StockRepository
	bookRepo      repository.BookRepository
	analyticsRepo repository.AnalyticsRepository
	cfg           config.AnalyticsConfig
	log           *logger.Logger
}

// NewClassificationUseCase construye el caso de uso.
func NewClassificationUseCase(
	stockRepo repository.StockRepository,
	bookRepo repository.BookRepository,
	analyticsRepo repository.AnalyticsRepository,
	cfg config.AnalyticsConfig,
	log *logger.Logger,
) *ClassificationUseCase {
	return &ClassificationUseCase{
		stockRepo:     stockRepo,
		bookRepo:      bookRepo,
		analyticsRepo: analyticsRepo,
		cfg:           cfg,
		log:           log,
	}
}

// Classify ejecuta la clasificación completa del catálogo con la ventana
// configurada terminando en asOf. Un título sin historial de movimientos no
// aborta el batch: queda UNCLASSIFIED y fuera del ranking ABC. El contexto se
// revisa entre títulos (checkpoint cooperativo), nunca a mitad de un título.
func (uc *ClassificationUseCase) Classify(ctx context.Context, asOf time.Time) ([]entity.Classification, error) {
	months := uc.cfg.ClassificationMonths
	if months <= 0 {
		months = 12
	}
	since := monthStart(asOf).AddDate(0, -(months - 1), 0)

	books, err := uc.bookRepo.ListAll()
	if err != nil {
		return nil, err
	}
	stocks, err := uc.stockRepo.ListAll()
	if err != nil {
		return nil, err
	}
	sales, err := uc.analyticsRepo.GetMonthlySales(ctx, since)
	if err != nil {
		return nil, err
	}
	deltas, err := uc.analyticsRepo.GetMonthlyNetDeltas(ctx, since)
	if err != nil {
		return nil, err
	}

	stockByBook := make(map[int64]*entity.StockRecord, len(stocks))
	for _, s := range stocks {
		stockByBook[s.BookID] = s
	}

	salesBuckets := make(map[int64][]int)
	for _, row := range sales {
		b := bucketsFor(salesBuckets, row.BookID, months)
		if i, ok := monthIndex(row.Month, since, months); ok {
			b[i] += row.Units
		}
	}
	deltaBuckets := make(map[int64][]int)
	for _, row := range deltas {
		b := bucketsFor(deltaBuckets, row.BookID, months)
		if i, ok := monthIndex(row.Month, since, months); ok {
			b[i] += row.Delta
		}
	}

	// Solo los títulos con historial entran al ranking ABC; el orden de
	// entrada es estable (por ID) para que los empates sean deterministas.
	withHistory := make([]int64, 0, len(deltaBuckets))
	for id := range deltaBuckets {
		withHistory = append(withHistory, id)
	}
	sort.Slice(withHistory, func(i, j int) bool { return withHistory[i] < withHistory[j] })

	bookByID := make(map[int64]*entity.Book, len(books))
	for _, b := range books {
		bookByID[b.ID] = b
	}

	titles := make([]domanalytics.TitleSales, 0, len(withHistory))
	for _, id := range withHistory {
		unitValue := decimal.Zero
		if b, ok := bookByID[id]; ok {
			unitValue = b.SellingPrice
		}
		titles = append(titles, domanalytics.TitleSales{
			BookID:       id,
			UnitValue:    unitValue,
			MonthlyUnits: bucketsFor(salesBuckets, id, months),
		})
	}
	abc := domanalytics.ClassifyABC(titles)

	results := make([]entity.Classification, 0, len(books))
	for _, book := range books {
		// Checkpoint cooperativo entre títulos
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		deltasFor, hasHistory := deltaBuckets[book.ID]
		if !hasHistory {
			results = append(results, entity.Classification{
				BookID:           book.ID,
				ABCClass:         entity.ClassUnclassified,
				XYZClass:         entity.ClassUnclassified,
				AnnualSalesValue: decimal.Zero,
			})
			continue
		}

		monthly := bucketsFor(salesBuckets, book.ID, months)
		annualUnits := domanalytics.AnnualUnits(monthly)

		currentTotal := 0
		if rec, ok := stockByBook[book.ID]; ok {
			currentTotal = rec.TotalStock()
		}
		avgInventory := domanalytics.AverageInventoryLevel(currentTotal, deltasFor)

		results = append(results, entity.Classification{
			BookID:           book.ID,
			ABCClass:         abc[book.ID],
			XYZClass:         domanalytics.XYZClass(monthly),
			TurnoverRate:     domanalytics.TurnoverRate(annualUnits, avgInventory),
			AnnualUnitsSold:  annualUnits,
			AnnualSalesValue: book.SellingPrice.Mul(decimal.NewFromInt(int64(annualUnits))),
		})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].BookID < results[j].BookID })
	return results, nil
}

// monthStart trunca al primer día del mes en UTC.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// monthIndex posición del mes dentro de la ventana [since, since+months).
func monthIndex(month, since time.Time, months int) (int, bool) {
	i := (month.Year()-since.Year())*12 + int(month.Month()) - int(since.Month())
	if i < 0 || i >= months {
		return 0, false
	}
	return i, true
}

func bucketsFor(m map[int64][]int, bookID int64, months int) []int {
	if b, ok := m[bookID]; ok {
		return b
	}
	b := make([]int, months)
	m[bookID] = b
	return b
}
