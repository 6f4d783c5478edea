package stock

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Costos-api/internal/domain"
	"github.com/jhoicas/Costos-api/internal/domain/repository"
)

// ReorderUseCase actualiza los niveles de reorden de una entidad de stock.
// Es una actualización de metadatos, no un movimiento del libro.
type ReorderUseCase struct {
	stockRepo repository.StockedEntityRepository
}

// NewReorderUseCase construye el caso de uso.
func NewReorderUseCase(stockRepo repository.StockedEntityRepository) *ReorderUseCase {
	return &ReorderUseCase{stockRepo: stockRepo}
}

// SetReorderLevel fija el punto de reorden y, opcionalmente, el stock máximo.
func (uc *ReorderUseCase) SetReorderLevel(ctx context.Context, stockedEntityID string, reorderLevel decimal.Decimal, maxStockLevel *decimal.Decimal) error {
	if stockedEntityID == "" || reorderLevel.IsNegative() {
		return domain.ErrInvalidInput
	}
	if maxStockLevel != nil && maxStockLevel.LessThan(reorderLevel) {
		return fmt.Errorf("%w: stock máximo menor que el punto de reorden", domain.ErrInvalidInput)
	}

	stocked, err := uc.stockRepo.GetByID(ctx, stockedEntityID)
	if err != nil {
		return err
	}
	if stocked == nil {
		return fmt.Errorf("%w: entidad de stock %s", domain.ErrNotFound, stockedEntityID)
	}
	return uc.stockRepo.UpdateReorderLevel(ctx, stockedEntityID, reorderLevel, maxStockLevel)
}
