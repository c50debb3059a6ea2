package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/tu-usuario/libreria-stock/internal/application/analytics"
	"github.com/tu-usuario/libreria-stock/internal/application/dto"
	"github.com/tu-usuario/libreria-stock/internal/domain"
	"github.com/tu-usuario/libreria-stock/internal/domain/repository"
)

// ReportHandler maneja los reportes de inventario y analítica (protegido).
type ReportHandler struct {
	reportUC *appanalytics.ReportUseCase
	replUC   *appanalytics.ReplenishmentUseCase
	bookRepo repository.BookRepository
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(reportUC *appanalytics.ReportUseCase, replUC *appanalytics.ReplenishmentUseCase, bookRepo repository.BookRepository) *ReportHandler {
	return &ReportHandler{reportUC: reportUC, replUC: replUC, bookRepo: bookRepo}
}

// InventoryReport godoc
// @Summary      Reporte unificado de inventario
// @Description  KPIs, clasificación ABC/XYZ, rotación, obsolescencia y sugerencias
//
//	de reposición sobre un mismo corte. Todos los filtros son opcionales.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        category         query  string  false  "Categoría exacta (ej. Java)"
// @Param        level            query  string  false  "Nivel: BEGINNER|INTERMEDIATE|ADVANCED|EXPERT"
// @Param        publisher        query  string  false  "Editorial"
// @Param        stockStatus      query  string  false  "NORMAL|LOW|CRITICAL|OUT|OVERSTOCK"
// @Param        priceRange       query  string  false  "underN, N-M u overN"
// @Param        publicationYear  query  int     false  "Año de publicación"
// @Success      200  {object}  dto.InventoryReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) InventoryReport(c *fiber.Ctx) error {
	filters := appanalytics.ReportFilters{
		Category:        c.Query("category"),
		Level:           c.Query("level"),
		Publisher:       c.Query("publisher"),
		StockStatus:     c.Query("stockStatus"),
		PriceRange:      c.Query("priceRange"),
		PublicationYear: c.QueryInt("publicationYear", 0),
	}
	report, err := h.reportUC.Generate(c.Context(), time.Now(), filters)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPriceRange) {
			return badRequest(c, err.Error())
		}
		return internalError(c, err)
	}
	return c.JSON(dto.FromInventoryReport(report))
}

// TurnoverReport godoc
// @Summary      Rotación promedio por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TurnoverSummaryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/turnover [get]
func (h *ReportHandler) TurnoverReport(c *fiber.Ctx) error {
	summary, err := h.reportUC.TurnoverByCategory(c.Context(), time.Now())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(dto.FromTurnoverSummary(summary))
}

// FilterOptions godoc
// @Summary      Valores disponibles para los filtros del reporte
// @Description  Categorías y editoriales vienen del catálogo vigente, nunca de
//
//	constantes embebidas; alimentan los dropdowns de las pantallas de reporte.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReportFilterOptionsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/filters [get]
func (h *ReportHandler) FilterOptions(c *fiber.Ctx) error {
	categories, err := h.bookRepo.ListCategories()
	if err != nil {
		return internalError(c, err)
	}
	publishers, err := h.bookRepo.ListPublishers()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(dto.NewReportFilterOptions(categories, publishers))
}

// ReorderReport godoc
// @Summary      Sugerencias de pedido a proveedor
// @Description  Títulos bajo su nivel de reorden con cantidad sugerida, urgencia
//
//	y días estimados hasta quiebre, ordenados por prioridad.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReorderSuggestionResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/reorder [get]
func (h *ReportHandler) ReorderReport(c *fiber.Ctx) error {
	suggestions, err := h.replUC.GenerateSuggestions(c.Context(), time.Now())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":       len(suggestions),
		"suggestions": dto.FromReorderSuggestions(suggestions),
	})
}
