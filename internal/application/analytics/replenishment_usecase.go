package analytics

import (
	"context"
	"sort"
	"time"

	domanalytics "github.com/tu-usuario/libreria-stock/internal/domain/analytics"
	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/domain/repository"
	"github.com/tu-usuario/libreria-stock/pkg/config"
	"github.com/tu-usuario/libreria-stock/pkg/logger"
)

// ReplenishmentUseCase genera las sugerencias de pedido a proveedor.
// Califica todo título con disponible en o por debajo de su nivel de reorden
// (incluidos los de reorden 0 con disponible negativo) y estima cuánto pedir
// con la velocidad de venta de la ventana configurada.
type ReplenishmentUseCase struct {
	stockRepo     repository.StockRepository
	bookRepo      repository.BookRepository
	analyticsRepo repository.AnalyticsRepository
	repCfg        config.ReplenishmentConfig
	anaCfg        config.AnalyticsConfig
	log           *logger.Logger
}

// NewReplenishmentUseCase construye el planificador de reposición.
func NewReplenishmentUseCase(
	stockRepo repository.StockRepository,
	bookRepo repository.BookRepository,
	analyticsRepo repository.AnalyticsRepository,
	repCfg config.ReplenishmentConfig,
	anaCfg config.AnalyticsConfig,
	log *logger.Logger,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		stockRepo:     stockRepo,
		bookRepo:      bookRepo,
		analyticsRepo: analyticsRepo,
		repCfg:        repCfg,
		anaCfg:        anaCfg,
		log:           log,
	}
}

// GenerateSuggestions devuelve las sugerencias ordenadas por urgencia
// (HIGH, MEDIUM, LOW), dentro de cada urgencia por días hasta quiebre
// ascendente (sin pronóstico al final) y por ID como desempate. Priority es
// la posición 1..n en ese orden.
func (uc *ReplenishmentUseCase) GenerateSuggestions(ctx context.Context, asOf time.Time) ([]*entity.ReorderSuggestion, error) {
	velocityDays := uc.anaCfg.VelocityDays
	if velocityDays <= 0 {
		velocityDays = 30
	}
	since := asOf.AddDate(0, 0, -velocityDays)

	stocks, err := uc.stockRepo.ListAll()
	if err != nil {
		return nil, err
	}
	books, err := uc.bookRepo.ListAll()
	if err != nil {
		return nil, err
	}
	sold, err := uc.analyticsRepo.GetUnitsSoldSince(ctx, since)
	if err != nil {
		return nil, err
	}

	titleByID := make(map[int64]string, len(books))
	for _, b := range books {
		titleByID[b.ID] = b.Title
	}
	unitsByBook := make(map[int64]int, len(sold))
	for _, row := range sold {
		unitsByBook[row.BookID] = row.Units
	}

	suggestions := make([]*entity.ReorderSuggestion, 0)
	for _, rec := range stocks {
		available := rec.AvailableStock()
		if !domanalytics.Qualifies(available, rec.ReorderLevel) {
			continue
		}

		velocity := float64(unitsByBook[rec.BookID]) / float64(velocityDays)
		days, hasForecast := domanalytics.DaysUntilStockout(available, velocity)

		var daysPtr *int
		if hasForecast {
			d := days
			daysPtr = &d
		}

		suggestions = append(suggestions, &entity.ReorderSuggestion{
			BookID:       rec.BookID,
			Title:        titleByID[rec.BookID],
			CurrentStock: available,
			SuggestedOrder: domanalytics.SuggestedOrder(domanalytics.PlanInput{
				Available:     available,
				ReorderLevel:  rec.ReorderLevel,
				DailyVelocity: velocity,
				LeadTimeDays:  uc.repCfg.LeadTimeDays,
				SafetyBuffer:  uc.repCfg.SafetyBuffer,
				MinimumOrder:  uc.repCfg.MinimumOrder,
			}),
			Urgency:           domanalytics.Urgency(days, hasForecast, available),
			DaysUntilStockout: daysPtr,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if ra, rb := urgencyRank(a.Urgency), urgencyRank(b.Urgency); ra != rb {
			return ra < rb
		}
		// Sin pronóstico al final dentro de la misma urgencia
		switch {
		case a.DaysUntilStockout == nil && b.DaysUntilStockout != nil:
			return false
		case a.DaysUntilStockout != nil && b.DaysUntilStockout == nil:
			return true
		case a.DaysUntilStockout != nil && b.DaysUntilStockout != nil &&
			*a.DaysUntilStockout != *b.DaysUntilStockout:
			return *a.DaysUntilStockout < *b.DaysUntilStockout
		}
		return a.BookID < b.BookID
	})
	for i, s := range suggestions {
		s.Priority = i + 1
	}

	uc.log.Debug().Int("suggestions", len(suggestions)).Msg("sugerencias de reposición generadas")
	return suggestions, nil
}

func urgencyRank(u string) int {
	switch u {
	case entity.UrgencyHigh:
		return 0
	case entity.UrgencyMedium:
		return 1
	default:
		return 2
	}
}
