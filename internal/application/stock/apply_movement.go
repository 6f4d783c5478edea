package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Costos-api/internal/domain"
	"github.com/jhoicas/Costos-api/internal/domain/entity"
	"github.com/jhoicas/Costos-api/internal/domain/repository"
)

// ApplyMovementUseCase aplica movimientos al libro de stock de forma
// transaccional: bloqueo de fila (SELECT FOR UPDATE), verificación de stock,
// registro inmutable del movimiento y sobreescritura del stock actual, todo
// o nada. Movimientos sobre entidades distintas proceden en paralelo.
type ApplyMovementUseCase struct {
	txRunner TxRunner
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner}
}

// ApplyMovementInput entrada para aplicar un movimiento.
// RefID/RefKind solo se usan al abastecer una entidad por primera vez
// (la fila de stock se crea con la primera entrada).
type ApplyMovementInput struct {
	StockedEntityID string
	Type            string // in | out
	Quantity        decimal.Decimal
	Reason          string
	UnitCost        *decimal.Decimal
	ReferenceType   string
	ReferenceID     string
	CreatedBy       string
	RefID           string
	RefKind         string
}

// Apply valida y aplica el movimiento. Si falla, nada queda visible.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, input ApplyMovementInput) (*entity.StockMovement, error) {
	if input.StockedEntityID == "" || !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if input.Type != entity.MovementTypeIn && input.Type != entity.MovementTypeOut {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, input.Type)
	}
	if !entity.IsValidReason(input.Reason) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownReason, input.Reason)
	}

	now := time.Now()
	var movement *entity.StockMovement

	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockedEntityRepository,
		movRepo repository.StockMovementRepository,
	) error {
		stocked, err := stockRepo.GetForUpdate(ctx, input.StockedEntityID)
		if err != nil {
			return err
		}
		if stocked == nil {
			if input.Type == entity.MovementTypeOut {
				return fmt.Errorf("%w: entidad de stock %s", domain.ErrNotFound, input.StockedEntityID)
			}
			stocked, err = newStockedEntity(input)
			if err != nil {
				return err
			}
		}

		before := stocked.CurrentStock
		var after decimal.Decimal
		switch input.Type {
		case entity.MovementTypeIn:
			after = before.Add(input.Quantity)
		case entity.MovementTypeOut:
			after = before.Sub(input.Quantity)
			// Una salida no puede invadir lo reservado: el stock resultante
			// debe cubrir las reservas vigentes, o el disponible derivado
			// (actual - reservado) quedaría negativo en estado persistido.
			if after.LessThan(stocked.ReservedStock) {
				return &domain.InsufficientStockError{
					StockedEntityID: input.StockedEntityID,
					Current:         stocked.Available(),
					Requested:       input.Quantity,
				}
			}
		}

		var totalCost *decimal.Decimal
		if input.UnitCost != nil {
			t := input.Quantity.Mul(*input.UnitCost)
			totalCost = &t
		}

		movement = &entity.StockMovement{
			StockedEntityID: input.StockedEntityID,
			Type:            input.Type,
			Quantity:        input.Quantity,
			StockBefore:     before,
			StockAfter:      after,
			UnitCost:        input.UnitCost,
			TotalCost:       totalCost,
			Reason:          input.Reason,
			ReferenceType:   input.ReferenceType,
			ReferenceID:     input.ReferenceID,
			CreatedBy:       input.CreatedBy,
			OccurredAt:      now,
		}
		if err := movRepo.Create(ctx, movement); err != nil {
			return err
		}

		stocked.CurrentStock = after
		stocked.UpdatedAt = now
		return stockRepo.Save(ctx, stocked)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// newStockedEntity crea la fila de stock en el primer abastecimiento.
func newStockedEntity(input ApplyMovementInput) (*entity.StockedEntity, error) {
	refID, refKind := input.RefID, input.RefKind
	if refID == "" {
		return nil, fmt.Errorf("%w: ref_id requerido al abastecer por primera vez", domain.ErrInvalidInput)
	}
	if refKind != entity.NodeKindRawItem && refKind != entity.NodeKindComposite {
		return nil, fmt.Errorf("%w: ref_kind %q", domain.ErrInvalidInput, refKind)
	}
	return &entity.StockedEntity{
		ID:            input.StockedEntityID,
		RefID:         refID,
		RefKind:       refKind,
		CurrentStock:  decimal.Zero,
		ReservedStock: decimal.Zero,
		ReorderLevel:  decimal.Zero,
	}, nil
}
