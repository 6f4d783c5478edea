package costing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Costos-api/internal/domain"
	"github.com/jhoicas/Costos-api/internal/domain/costing"
	"github.com/jhoicas/Costos-api/internal/domain/repository"
)

// CostSheetUseCase genera la hoja de costos imprimible de una entidad:
// rollup fresco bajo la política pedida, renderizado como PDF.
type CostSheetUseCase struct {
	computeUC     *ComputeCostUseCase
	compositeRepo repository.CompositeEntityRepository
	pdfGen        CostSheetPDFGenerator
}

// NewCostSheetUseCase construye el caso de uso.
func NewCostSheetUseCase(
	computeUC *ComputeCostUseCase,
	compositeRepo repository.CompositeEntityRepository,
	pdfGen CostSheetPDFGenerator,
) *CostSheetUseCase {
	return &CostSheetUseCase{computeUC: computeUC, compositeRepo: compositeRepo, pdfGen: pdfGen}
}

// Generate calcula el costo y devuelve los bytes del PDF de la hoja.
func (uc *CostSheetUseCase) Generate(ctx context.Context, entityID string, policy costing.Policy) ([]byte, error) {
	root, err := uc.compositeRepo.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("%w: entidad compuesta %s", domain.ErrNotFound, entityID)
	}

	result, err := uc.computeUC.Compute(ctx, entityID, policy, nil)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateCostSheet(ctx, root, result)
}
