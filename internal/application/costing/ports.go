package costing

import (
	"context"

	"github.com/jhoicas/Costos-api/internal/domain/entity"
)

// CostSheetPDFGenerator puerto para renderizar la hoja de costos (HPP) de
// una entidad compuesta como documento imprimible.
type CostSheetPDFGenerator interface {
	GenerateCostSheet(ctx context.Context, root *entity.CompositeEntity, result *CostResult) ([]byte, error)
}
