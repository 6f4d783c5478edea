package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Costos-api/internal/domain"
	"github.com/jhoicas/Costos-api/internal/domain/repository"
)

// ReservationUseCase aparta y libera stock reservado bajo el mismo bloqueo
// de fila que los movimientos. Las reservas no son movimientos del libro:
// solo ajustan reserved_stock, el disponible sigue siendo derivado.
type ReservationUseCase struct {
	txRunner TxRunner
}

// NewReservationUseCase construye el caso de uso.
func NewReservationUseCase(txRunner TxRunner) *ReservationUseCase {
	return &ReservationUseCase{txRunner: txRunner}
}

// Reserve aparta quantity del stock disponible de la entidad.
// Falla con InsufficientStockError si el disponible no alcanza.
func (uc *ReservationUseCase) Reserve(ctx context.Context, stockedEntityID string, quantity decimal.Decimal) error {
	if stockedEntityID == "" || !quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		stockRepo repository.StockedEntityRepository,
		_ repository.StockMovementRepository,
	) error {
		stocked, err := stockRepo.GetForUpdate(ctx, stockedEntityID)
		if err != nil {
			return err
		}
		if stocked == nil {
			return fmt.Errorf("%w: entidad de stock %s", domain.ErrNotFound, stockedEntityID)
		}
		if stocked.Available().LessThan(quantity) {
			return &domain.InsufficientStockError{
				StockedEntityID: stockedEntityID,
				Current:         stocked.Available(),
				Requested:       quantity,
			}
		}
		stocked.ReservedStock = stocked.ReservedStock.Add(quantity)
		stocked.UpdatedAt = time.Now()
		return stockRepo.Save(ctx, stocked)
	})
}

// Release devuelve quantity reservada al disponible. Liberar más de lo
// reservado es una entrada inválida, no un ajuste.
func (uc *ReservationUseCase) Release(ctx context.Context, stockedEntityID string, quantity decimal.Decimal) error {
	if stockedEntityID == "" || !quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		stockRepo repository.StockedEntityRepository,
		_ repository.StockMovementRepository,
	) error {
		stocked, err := stockRepo.GetForUpdate(ctx, stockedEntityID)
		if err != nil {
			return err
		}
		if stocked == nil {
			return fmt.Errorf("%w: entidad de stock %s", domain.ErrNotFound, stockedEntityID)
		}
		if stocked.ReservedStock.LessThan(quantity) {
			return fmt.Errorf("%w: liberar %s con %s reservado", domain.ErrInvalidInput,
				quantity.String(), stocked.ReservedStock.String())
		}
		stocked.ReservedStock = stocked.ReservedStock.Sub(quantity)
		stocked.UpdatedAt = time.Now()
		return stockRepo.Save(ctx, stocked)
	})
}
