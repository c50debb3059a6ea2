package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/libreria-stock/internal/application/dto"
	"github.com/tu-usuario/libreria-stock/internal/application/ledger"
	"github.com/tu-usuario/libreria-stock/internal/domain"
	"github.com/tu-usuario/libreria-stock/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP del libro de stock (protegido).
type InventoryHandler struct {
	uc               *ledger.UseCase
	stockRepo        repository.StockRepository
	overstockCeiling int
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.UseCase, stockRepo repository.StockRepository, overstockCeiling int) *InventoryHandler {
	return &InventoryHandler{uc: uc, stockRepo: stockRepo, overstockCeiling: overstockCeiling}
}

// Receive godoc
// @Summary      Registrar recepción de mercancía
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        bookId  path  int  true  "ID del título"
// @Param        body  body  dto.ReceiveStockRequest  true  "quantity, location (STORE|WAREHOUSE), reason, deliveryNote"
// @Success      200   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{bookId}/receive [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	bookID, err := parseBookID(c)
	if err != nil {
		return badRequest(c, "bookId inválido")
	}
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	rec, err := h.uc.Receive(c.Context(), ledger.ReceiveInput{
		BookID:       bookID,
		Quantity:     in.Quantity,
		Location:     in.Location,
		Reason:       in.Reason,
		DeliveryNote: in.DeliveryNote,
	})
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(dto.FromStockRecord(rec, h.overstockCeiling))
}

// Sell godoc
// @Summary      Registrar venta de mostrador
// @Description  Descuenta del stock de tienda; la bodega nunca se descuenta automáticamente.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        bookId  path  int  true  "ID del título"
// @Param        body  body  dto.SellStockRequest  true  "quantity, customerId, reason"
// @Success      200   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{bookId}/sell [post]
func (h *InventoryHandler) Sell(c *fiber.Ctx) error {
	bookID, err := parseBookID(c)
	if err != nil {
		return badRequest(c, "bookId inválido")
	}
	var in dto.SellStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	rec, err := h.uc.Sell(c.Context(), ledger.SellInput{
		BookID:     bookID,
		Quantity:   in.Quantity,
		CustomerID: in.CustomerID,
		Reason:     in.Reason,
	})
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(dto.FromStockRecord(rec, h.overstockCeiling))
}

// Adjust godoc
// @Summary      Corrección por conteo físico
// @Description  Sobrescribe los contadores de tienda y bodega; el delta queda en el log para auditoría.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        bookId  path  int  true  "ID del título"
// @Param        body  body  dto.AdjustStockRequest  true  "storeStock, warehouseStock, reason"
// @Success      200   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{bookId}/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	bookID, err := parseBookID(c)
	if err != nil {
		return badRequest(c, "bookId inválido")
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	rec, err := h.uc.Adjust(c.Context(), ledger.AdjustInput{
		BookID:         bookID,
		StoreStock:     in.StoreStock,
		WarehouseStock: in.WarehouseStock,
		Reason:         in.Reason,
	})
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(dto.FromStockRecord(rec, h.overstockCeiling))
}

// Get godoc
// @Summary      Snapshot de stock de un título
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        bookId  path  int  true  "ID del título"
// @Success      200  {object}  dto.StockRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{bookId} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	bookID, err := parseBookID(c)
	if err != nil {
		return badRequest(c, "bookId inválido")
	}
	rec, err := h.uc.Snapshot(c.Context(), bookID)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(dto.FromStockRecord(rec, h.overstockCeiling))
}

// List godoc
// @Summary      Stock de todo el catálogo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockRecordResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	recs, err := h.stockRepo.ListAll()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(dto.FromStockRecords(recs, h.overstockCeiling))
}

// Alerts godoc
// @Summary      Títulos en o por debajo de su nivel de reorden
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockRecordResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	recs, err := h.stockRepo.ListBelowReorder()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(dto.FromStockRecords(recs, h.overstockCeiling))
}

// OutOfStock godoc
// @Summary      Títulos con stock físico en cero
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockRecordResponse
// @Router       /api/inventory/out-of-stock [get]
func (h *InventoryHandler) OutOfStock(c *fiber.Ctx) error {
	recs, err := h.stockRepo.ListOutOfStock()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(dto.FromStockRecords(recs, h.overstockCeiling))
}

// Movements godoc
// @Summary      Historial de movimientos de un título
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        bookId  path   int     true   "ID del título"
// @Param        since   query  string  false  "Desde (RFC3339)"
// @Param        limit   query  int     false  "Máximo de filas (default 100)"
// @Param        offset  query  int     false  "Offset de paginación"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{bookId}/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	bookID, err := parseBookID(c)
	if err != nil {
		return badRequest(c, "bookId inválido")
	}
	var since *time.Time
	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "since debe ser RFC3339")
		}
		since = &t
	}
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	movs, err := h.uc.ListMovements(c.Context(), bookID, since, limit, offset)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(dto.FromMovements(movs))
}

func parseBookID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("bookId"), 10, 64)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// mapLedgerError traduce errores de dominio a códigos HTTP. El wrapper
// LedgerError conserva el sentinel accesible vía errors.Is.
func mapLedgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "título no encontrado"})
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidLocation),
		errors.Is(err, domain.ErrInvalidAdjustment):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStoreStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrStorage):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: err.Error()})
	default:
		return internalError(c, err)
	}
}
