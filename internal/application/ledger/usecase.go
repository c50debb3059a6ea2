package ledger

import (
	"context"
	"time"

	"github.com/tu-usuario/libreria-stock/internal/domain"
	"github.com/tu-usuario/libreria-stock/internal/domain/entity"
	"github.com/tu-usuario/libreria-stock/internal/domain/repository"
	"github.com/tu-usuario/libreria-stock/pkg/logger"
)

// UseCase operaciones del libro de stock (RECEIVE, SELL, ADJUST, SNAPSHOT).
// Cada mutación se ejecuta como transacción con bloqueo de fila por título
// (SELECT FOR UPDATE): dos ventas concurrentes del mismo libro nunca pueden
// exceder el stock de tienda, y operaciones sobre títulos distintos no se
// bloquean entre sí. Ante cualquier error de validación el estado queda
// intacto (rollback, sin mutación parcial).
type UseCase struct {
	tx        TxRunner
	stockRepo repository.StockRepository // lecturas fuera de transacción
	movRepo   repository.MovementRepository
	bookRepo  repository.BookRepository
	log       *logger.Logger
}

// NewUseCase construye el caso de uso del ledger.
func NewUseCase(
	tx TxRunner,
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
	bookRepo repository.BookRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{tx: tx, stockRepo: stockRepo, movRepo: movRepo, bookRepo: bookRepo, log: log}
}

// ReceiveInput entrada para registrar una recepción de mercancía.
type ReceiveInput struct {
	BookID       int64
	Quantity     int
	Location     string // STORE o WAREHOUSE
	Reason       string
	DeliveryNote string
}

// SellInput entrada para registrar una venta de mostrador.
// Las ventas consumen solo stock de tienda; la bodega nunca se descuenta
// automáticamente (modelo físico de punto de venta).
type SellInput struct {
	BookID     int64
	Quantity   int
	CustomerID *int64
	Reason     string
}

// AdjustInput entrada para una corrección de conteo físico (stocktake).
// Sobrescribe ambos contadores; el delta firmado queda en el log para
// auditoría, un movimiento ADJUST por ubicación que cambió.
type AdjustInput struct {
	BookID         int64
	StoreStock     int
	WarehouseStock int
	Reason         string
}

// Receive suma quantity al contador de la ubicación indicada y registra el
// movimiento RECEIVE. Falla con ErrInvalidQuantity si quantity no es un
// entero positivo y con ErrNotFound si el título no existe en el catálogo.
func (uc *UseCase) Receive(ctx context.Context, in ReceiveInput) (*entity.StockRecord, error) {
	if in.Quantity <= 0 {
		return nil, domain.NewLedgerError(entity.MovementKindReceive, in.BookID, domain.ErrInvalidQuantity)
	}
	if in.Location != entity.LocationStore && in.Location != entity.LocationWarehouse {
		return nil, domain.NewLedgerError(entity.MovementKindReceive, in.BookID, domain.ErrInvalidLocation)
	}
	if err := uc.ensureBook(entity.MovementKindReceive, in.BookID); err != nil {
		return nil, err
	}

	var updated *entity.StockRecord
	err := uc.tx.Run(ctx, func(stockRepo repository.StockRepository, movRepo repository.MovementRepository) error {
		// Bloquea la fila del título: la mutación y el append son una unidad atómica
		rec, err := stockRepo.GetForUpdate(in.BookID)
		if err != nil {
			return err
		}
		now := time.Now()
		if in.Location == entity.LocationStore {
			rec.StoreStock += in.Quantity
		} else {
			rec.WarehouseStock += in.Quantity
		}
		rec.LastReceivedAt = &now
		rec.UpdatedAt = now
		if err := stockRepo.Upsert(rec); err != nil {
			return err
		}
		mov := &entity.Movement{
			BookID:        in.BookID,
			Kind:          entity.MovementKindReceive,
			QuantityDelta: in.Quantity,
			Location:      in.Location,
			Reason:        in.Reason,
			Note:          in.DeliveryNote,
			OccurredAt:    now,
			CreatedAt:     now,
		}
		if err := movRepo.Append(mov); err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("book_id", in.BookID).Int("quantity", in.Quantity).
		Str("location", in.Location).Msg("recepción registrada")
	return updated, nil
}

// Sell descuenta quantity del stock de tienda y registra el movimiento SELL.
// Falla con ErrInsufficientStoreStock si quantity excede el stock de tienda
// al momento de la llamada; el chequeo ocurre con la fila bloqueada, así que
// ventas concurrentes nunca se aplican parcialmente ni sobre-venden.
func (uc *UseCase) Sell(ctx context.Context, in SellInput) (*entity.StockRecord, error) {
	if in.Quantity <= 0 {
		return nil, domain.NewLedgerError(entity.MovementKindSell, in.BookID, domain.ErrInvalidQuantity)
	}
	if err := uc.ensureBook(entity.MovementKindSell, in.BookID); err != nil {
		return nil, err
	}

	var updated *entity.StockRecord
	err := uc.tx.Run(ctx, func(stockRepo repository.StockRepository, movRepo repository.MovementRepository) error {
		rec, err := stockRepo.GetForUpdate(in.BookID)
		if err != nil {
			return err
		}
		if in.Quantity > rec.StoreStock {
			return domain.NewLedgerError(entity.MovementKindSell, in.BookID, domain.ErrInsufficientStoreStock)
		}
		now := time.Now()
		rec.StoreStock -= in.Quantity
		rec.LastSoldAt = &now
		rec.UpdatedAt = now
		if err := stockRepo.Upsert(rec); err != nil {
			return err
		}
		mov := &entity.Movement{
			BookID:        in.BookID,
			Kind:          entity.MovementKindSell,
			QuantityDelta: -in.Quantity,
			Location:      entity.LocationStore,
			Reason:        in.Reason,
			CustomerID:    in.CustomerID,
			OccurredAt:    now,
			CreatedAt:     now,
		}
		if err := movRepo.Append(mov); err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("book_id", in.BookID).Int("quantity", in.Quantity).Msg("venta registrada")
	return updated, nil
}

// Adjust sobrescribe los contadores de tienda y bodega tras un conteo físico.
// Falla con ErrInvalidAdjustment si algún valor es negativo. Escribe un
// movimiento ADJUST con el delta firmado por cada ubicación que cambió.
func (uc *UseCase) Adjust(ctx context.Context, in AdjustInput) (*entity.StockRecord, error) {
	if in.StoreStock < 0 || in.WarehouseStock < 0 {
		return nil, domain.NewLedgerError(entity.MovementKindAdjust, in.BookID, domain.ErrInvalidAdjustment)
	}
	if err := uc.ensureBook(entity.MovementKindAdjust, in.BookID); err != nil {
		return nil, err
	}

	var updated *entity.StockRecord
	err := uc.tx.Run(ctx, func(stockRepo repository.StockRepository, movRepo repository.MovementRepository) error {
		rec, err := stockRepo.GetForUpdate(in.BookID)
		if err != nil {
			return err
		}
		now := time.Now()
		storeDelta := in.StoreStock - rec.StoreStock
		warehouseDelta := in.WarehouseStock - rec.WarehouseStock

		rec.StoreStock = in.StoreStock
		rec.WarehouseStock = in.WarehouseStock
		rec.UpdatedAt = now
		if err := stockRepo.Upsert(rec); err != nil {
			return err
		}
		if storeDelta != 0 {
			if err := movRepo.Append(&entity.Movement{
				BookID:        in.BookID,
				Kind:          entity.MovementKindAdjust,
				QuantityDelta: storeDelta,
				Location:      entity.LocationStore,
				Reason:        in.Reason,
				OccurredAt:    now,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
		}
		if warehouseDelta != 0 {
			if err := movRepo.Append(&entity.Movement{
				BookID:        in.BookID,
				Kind:          entity.MovementKindAdjust,
				QuantityDelta: warehouseDelta,
				Location:      entity.LocationWarehouse,
				Reason:        in.Reason,
				OccurredAt:    now,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("book_id", in.BookID).Int("store", in.StoreStock).
		Int("warehouse", in.WarehouseStock).Msg("ajuste de inventario registrado")
	return updated, nil
}

// Snapshot devuelve el registro actual del título; los derivados (total,
// disponible) se calculan en el momento de la lectura, nunca se cachean.
func (uc *UseCase) Snapshot(ctx context.Context, bookID int64) (*entity.StockRecord, error) {
	if err := uc.ensureBook("SNAPSHOT", bookID); err != nil {
		return nil, err
	}
	rec, err := uc.stockRepo.Get(bookID)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListMovements historial de movimientos de un título, ascendente por fecha.
func (uc *UseCase) ListMovements(ctx context.Context, bookID int64, since *time.Time, limit, offset int) ([]*entity.Movement, error) {
	if err := uc.ensureBook("SNAPSHOT", bookID); err != nil {
		return nil, err
	}
	return uc.movRepo.ListByBook(bookID, since, limit, offset)
}

func (uc *UseCase) ensureBook(op string, bookID int64) error {
	book, err := uc.bookRepo.GetByID(bookID)
	if err != nil {
		return err
	}
	if book == nil {
		return domain.NewLedgerError(op, bookID, domain.ErrNotFound)
	}
	return nil
}
