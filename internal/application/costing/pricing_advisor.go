package costing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Costos-api/internal/application/dto"
	"github.com/jhoicas/Costos-api/internal/domain"
	"github.com/jhoicas/Costos-api/internal/domain/costing"
	"github.com/jhoicas/Costos-api/internal/domain/repository"
	"github.com/jhoicas/Costos-api/pkg/logger"
)

// PricingAdvisor deriva precios sugeridos a partir del rollup de costo y
// mantiene la caché consultiva de costo de las entidades compuestas.
type PricingAdvisor struct {
	computeUC     *ComputeCostUseCase
	compositeRepo repository.CompositeEntityRepository
	log           *logger.Logger
	defaultMarkup decimal.Decimal
}

// NewPricingAdvisor construye el asesor. defaultMarkup es el % de margen a
// usar cuando el caller no indica uno.
func NewPricingAdvisor(
	computeUC *ComputeCostUseCase,
	compositeRepo repository.CompositeEntityRepository,
	log *logger.Logger,
	defaultMarkup decimal.Decimal,
) *PricingAdvisor {
	return &PricingAdvisor{
		computeUC:     computeUC,
		compositeRepo: compositeRepo,
		log:           log,
		defaultMarkup: defaultMarkup,
	}
}

var hundred = decimal.NewFromInt(100)

// SuggestPrice calcula costo y precio sugerido con el markup dado.
// suggested = cost * (1 + markup/100). Si el costo es 0 el margen reportado
// es 0, no un error de división.
func (a *PricingAdvisor) SuggestPrice(ctx context.Context, entityID string, policy costing.Policy, markupPct *decimal.Decimal) (*dto.PriceSuggestionDTO, error) {
	markup := a.defaultMarkup
	if markupPct != nil {
		markup = *markupPct
	}

	result, err := a.computeUC.Compute(ctx, entityID, policy, nil)
	if err != nil {
		return nil, err
	}

	cost := result.TotalCost
	suggested := cost.Mul(decimal.NewFromInt(1).Add(markup.Div(hundred)))
	margin := decimal.Zero
	if suggested.GreaterThan(decimal.Zero) {
		margin = suggested.Sub(cost).Div(suggested).Mul(hundred).Round(2)
	}

	return &dto.PriceSuggestionDTO{
		EntityID:       entityID,
		Policy:         policy.String(),
		Cost:           cost,
		MarkupPct:      markup,
		SuggestedPrice: suggested.Round(2),
		MarginPct:      margin,
	}, nil
}

// ApplyCostToEntity recalcula el costo y persiste la caché
// (last_computed_cost/last_costing_policy/last_computed_at) en una sola
// escritura, fuera del libro de movimientos. Devuelve costo anterior, nuevo
// y delta.
func (a *PricingAdvisor) ApplyCostToEntity(ctx context.Context, entityID string, policy costing.Policy) (*dto.CostUpdateResultDTO, error) {
	root, err := a.compositeRepo.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("%w: entidad compuesta %s", domain.ErrNotFound, entityID)
	}

	oldCost := decimal.Zero
	if root.LastComputedCost != nil {
		oldCost = *root.LastComputedCost
	}

	result, err := a.computeUC.Compute(ctx, entityID, policy, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := a.compositeRepo.UpdateCostCache(ctx, entityID, result.TotalCost, policy.String(), now); err != nil {
		// La caché es consultiva: el cálculo en sí fue exitoso. Se reporta
		// como fallo de persistencia, no de cómputo.
		return nil, fmt.Errorf("persistir caché de costo de %s: %w", entityID, err)
	}

	return &dto.CostUpdateResultDTO{
		EntityID: entityID,
		Policy:   policy.String(),
		OldCost:  oldCost,
		NewCost:  result.TotalCost,
		Delta:    result.TotalCost.Sub(oldCost),
	}, nil
}

// bulkPageSize tamaño de página al recorrer todas las entidades compuestas.
const bulkPageSize = 100

// BulkApplyCost recalcula y persiste la caché de costo de todas las
// entidades compuestas bajo la misma política. No es transaccional como
// conjunto: cada entidad es su propia unidad atómica y los fallos
// individuales se registran y no detienen el lote.
func (a *PricingAdvisor) BulkApplyCost(ctx context.Context, policy costing.Policy) ([]dto.CostUpdateOutcomeDTO, error) {
	var outcomes []dto.CostUpdateOutcomeDTO

	offset := 0
	for {
		page, err := a.compositeRepo.List(ctx, bulkPageSize, offset)
		if err != nil {
			return outcomes, err
		}
		for _, ent := range page {
			res, err := a.ApplyCostToEntity(ctx, ent.ID, policy)
			if err != nil {
				a.log.Warn().Err(err).Str("entity_id", ent.ID).Msg("recálculo de costo fallido en lote")
				outcomes = append(outcomes, dto.CostUpdateOutcomeDTO{EntityID: ent.ID, Error: err.Error()})
				continue
			}
			outcomes = append(outcomes, dto.CostUpdateOutcomeDTO{EntityID: ent.ID, Result: res})
		}
		if len(page) < bulkPageSize {
			return outcomes, nil
		}
		offset += bulkPageSize
	}
}
