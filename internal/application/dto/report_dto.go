package dto

import (
	"time"

	"github.com/shopspring/decimal"
	appanalytics "github.com/tu-usuario/libreria-stock/internal/application/analytics"
	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/domain/inventory"
)

// ReportItemResponse fila del reporte unificado de inventario.
type ReportItemResponse struct {
	BookID          int64           `json:"bookId"`
	ISBN13          string          `json:"isbn13"`
	Title           string          `json:"title"`
	Category        string          `json:"category"`
	Publisher       string          `json:"publisher,omitempty"`
	Level           string          `json:"level,omitempty"`
	PublicationYear int             `json:"publicationYear,omitempty"`
	SellingPrice    decimal.Decimal `json:"sellingPrice"`

	StoreStock     int    `json:"storeStock"`
	WarehouseStock int    `json:"warehouseStock"`
	ReservedCount  int    `json:"reservedCount"`
	TotalStock     int    `json:"totalStock"`
	AvailableStock int    `json:"availableStock"`
	ReorderLevel   int    `json:"reorderLevel"`
	StockStatus    string `json:"stockStatus"`

	StockValue decimal.Decimal `json:"stockValue"`

	ABCClass         string          `json:"abcClass"`
	XYZClass         string          `json:"xyzClass"`
	TurnoverRate     float64         `json:"turnoverRate"`
	AnnualUnitsSold  int             `json:"annualUnitsSold"`
	AnnualSalesValue decimal.Decimal `json:"annualSalesValue"`

	DaysSinceLastSale *int     `json:"daysSinceLastSale,omitempty"`
	RiskScore         *float64 `json:"riskScore,omitempty"`
	RiskLevel         string   `json:"riskLevel,omitempty"`
	DeadStock         bool     `json:"deadStock"`
}

// ReorderSuggestionResponse sugerencia de pedido a proveedor.
type ReorderSuggestionResponse struct {
	BookID            int64  `json:"bookId"`
	Title             string `json:"title"`
	CurrentStock      int    `json:"currentStock"`
	SuggestedOrder    int    `json:"suggestedOrder"`
	Urgency           string `json:"urgency"`
	DaysUntilStockout *int   `json:"daysUntilStockout"` // null = sin pronóstico
	Priority          int    `json:"priority"`
}

// CategoryTurnoverResponse rotación promedio de una categoría.
type CategoryTurnoverResponse struct {
	Category        string  `json:"category"`
	AverageTurnover float64 `json:"averageTurnover"`
	Titles          int     `json:"titles"`
}

// TurnoverSummaryResponse resumen de rotación.
type TurnoverSummaryResponse struct {
	AverageTurnoverRate   float64                    `json:"averageTurnoverRate"`
	FastestMovingCategory string                     `json:"fastestMovingCategory,omitempty"`
	SlowestMovingCategory string                     `json:"slowestMovingCategory,omitempty"`
	ByCategory            []CategoryTurnoverResponse `json:"byCategory"`
}

// InventoryReportResponse respuesta de GET /api/reports/inventory.
type InventoryReportResponse struct {
	GeneratedAt time.Time `json:"generatedAt"`

	TotalProducts       int             `json:"totalProducts"`
	LowStockCount       int             `json:"lowStockCount"`
	CriticalStockCount  int             `json:"criticalStockCount"`
	OutOfStockCount     int             `json:"outOfStockCount"`
	OverstockCount      int             `json:"overstockCount"`
	TotalInventoryValue decimal.Decimal `json:"totalInventoryValue"`

	DeadStockItems        int             `json:"deadStockItems"`
	DeadStockValue        decimal.Decimal `json:"deadStockValue"`
	EarlyWarningItems     int             `json:"earlyWarningItems"`
	EarlyWarningValue     decimal.Decimal `json:"earlyWarningValue"`
	ObsolescenceRiskIndex float64         `json:"obsolescenceRiskIndex"`

	Items              []*ReportItemResponse        `json:"items"`
	ReorderSuggestions []*ReorderSuggestionResponse `json:"reorderSuggestions"`
	TurnoverSummary    *TurnoverSummaryResponse     `json:"turnoverSummary"`
}

// ReportFilterOptionsResponse valores vigentes para los filtros del reporte.
// Categorías y editoriales salen del catálogo; niveles y estados de stock son
// enumeraciones de dominio.
type ReportFilterOptionsResponse struct {
	Categories    []string `json:"categories"`
	Publishers    []string `json:"publishers"`
	Levels        []string `json:"levels"`
	StockStatuses []string `json:"stockStatuses"`
}

// NewReportFilterOptions arma la respuesta de filtros con las enumeraciones
// de dominio fijas y los valores de catálogo recibidos.
func NewReportFilterOptions(categories, publishers []string) *ReportFilterOptionsResponse {
	if categories == nil {
		categories = []string{}
	}
	if publishers == nil {
		publishers = []string{}
	}
	return &ReportFilterOptionsResponse{
		Categories: categories,
		Publishers: publishers,
		Levels: []string{
			entity.LevelBeginner, entity.LevelIntermediate,
			entity.LevelAdvanced, entity.LevelExpert,
		},
		StockStatuses: []string{
			inventory.StatusNormal, inventory.StatusLow, inventory.StatusCritical,
			inventory.StatusOut, inventory.StatusOverstock,
		},
	}
}

// FromInventoryReport mapea el reporte de aplicación a su respuesta JSON.
func FromInventoryReport(r *appanalytics.InventoryReport) *InventoryReportResponse {
	resp := &InventoryReportResponse{
		GeneratedAt:           r.GeneratedAt,
		TotalProducts:         r.TotalTitles,
		LowStockCount:         r.LowStockCount,
		CriticalStockCount:    r.CriticalCount,
		OutOfStockCount:       r.OutOfStockCount,
		OverstockCount:        r.OverstockCount,
		TotalInventoryValue:   r.TotalInventoryValue,
		DeadStockItems:        r.DeadStockCount,
		DeadStockValue:        r.DeadStockValue,
		EarlyWarningItems:     r.EarlyWarningCount,
		EarlyWarningValue:     r.EarlyWarningValue,
		ObsolescenceRiskIndex: r.ObsolescenceRiskIndex,
		Items:                 make([]*ReportItemResponse, 0, len(r.Items)),
		ReorderSuggestions:    FromReorderSuggestions(r.ReorderSuggestions),
		TurnoverSummary:       FromTurnoverSummary(r.Turnover),
	}
	for _, it := range r.Items {
		resp.Items = append(resp.Items, fromReportItem(it))
	}
	return resp
}

func fromReportItem(it *appanalytics.ReportItem) *ReportItemResponse {
	resp := &ReportItemResponse{
		BookID:          it.Book.ID,
		ISBN13:          it.Book.ISBN13,
		Title:           it.Book.Title,
		Category:        it.Book.Category,
		Publisher:       it.Book.Publisher,
		Level:           it.Book.Level,
		PublicationYear: it.Book.PublicationYear,
		SellingPrice:    it.Book.SellingPrice,
		StoreStock:      it.Stock.StoreStock,
		WarehouseStock:  it.Stock.WarehouseStock,
		ReservedCount:   it.Stock.ReservedCount,
		TotalStock:      it.Stock.TotalStock(),
		AvailableStock:  it.Stock.AvailableStock(),
		ReorderLevel:    it.Stock.ReorderLevel,
		StockStatus:     it.Status,
		StockValue:      it.StockValue,
	}
	if c := it.Classification; c != nil {
		resp.ABCClass = c.ABCClass
		resp.XYZClass = c.XYZClass
		resp.TurnoverRate = c.TurnoverRate
		resp.AnnualUnitsSold = c.AnnualUnitsSold
		resp.AnnualSalesValue = c.AnnualSalesValue
	} else {
		resp.ABCClass = entity.ClassUnclassified
		resp.XYZClass = entity.ClassUnclassified
		resp.AnnualSalesValue = decimal.Zero
	}
	if o := it.Obsolescence; o != nil {
		days := o.DaysSinceLastSale
		score := o.RiskScore
		resp.DaysSinceLastSale = &days
		resp.RiskScore = &score
		resp.RiskLevel = o.RiskLevel
		resp.DeadStock = o.DeadStock
	}
	return resp
}

// FromReorderSuggestions mapea la lista de sugerencias.
func FromReorderSuggestions(suggestions []*entity.ReorderSuggestion) []*ReorderSuggestionResponse {
	out := make([]*ReorderSuggestionResponse, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, &ReorderSuggestionResponse{
			BookID:            s.BookID,
			Title:             s.Title,
			CurrentStock:      s.CurrentStock,
			SuggestedOrder:    s.SuggestedOrder,
			Urgency:           s.Urgency,
			DaysUntilStockout: s.DaysUntilStockout,
			Priority:          s.Priority,
		})
	}
	return out
}

// FromTurnoverSummary mapea el resumen de rotación.
func FromTurnoverSummary(t *appanalytics.TurnoverSummary) *TurnoverSummaryResponse {
	if t == nil {
		return nil
	}
	resp := &TurnoverSummaryResponse{
		AverageTurnoverRate:   t.AverageTurnoverRate,
		FastestMovingCategory: t.FastestMovingCategory,
		SlowestMovingCategory: t.SlowestMovingCategory,
		ByCategory:            make([]CategoryTurnoverResponse, 0, len(t.ByCategory)),
	}
	for _, c := range t.ByCategory {
		resp.ByCategory = append(resp.ByCategory, CategoryTurnoverResponse{
			Category:        c.Category,
			AverageTurnover: c.AverageTurnover,
			Titles:          c.Titles,
		})
	}
	return resp
}
