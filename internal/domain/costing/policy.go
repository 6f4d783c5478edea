package costing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Costos-api/internal/domain"
	"github.com/jhoicas/Costos-api/internal/domain/entity"
)

// DefaultAverageWindow ventana N por defecto de PolicyAverage.
const DefaultAverageWindow = 10

// Policy es la regla con la que se resuelve el precio unitario de una materia
// prima durante un rollup. Variante cerrada: agregar una política nueva exige
// tocar ParsePolicy, String y ResolveUnitPrice, verificado en compilación.
type Policy int

const (
	// PolicyCurrent usa RawItem.CurrentCost tal como lo mantiene el catálogo.
	PolicyCurrent Policy = iota
	// PolicyLatest usa la compra más reciente con OccurredAt <= asOf;
	// sin compras cae a CurrentCost.
	PolicyLatest
	// PolicyAverage usa la media aritmética de las últimas N compras con
	// OccurredAt <= asOf (N = ventana configurada). Se eligió ventana por
	// cantidad y no por tiempo: es reproducible sin importar la cadencia de
	// compras de cada ítem. Sin compras cae a CurrentCost.
	PolicyAverage
)

// ParsePolicy convierte el nombre externo de la política.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "current":
		return PolicyCurrent, nil
	case "latest":
		return PolicyLatest, nil
	case "average":
		return PolicyAverage, nil
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidPolicy, s)
	}
}

// String devuelve el nombre externo de la política.
func (p Policy) String() string {
	switch p {
	case PolicyCurrent:
		return "current"
	case PolicyLatest:
		return "latest"
	case PolicyAverage:
		return "average"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ResolveUnitPrice resuelve el precio unitario de una materia prima bajo la
// política dada. purchases debe venir ordenado por OccurredAt descendente y
// acotado a asOf por el caller; avgWindow es la N de PolicyAverage.
func ResolveUnitPrice(p Policy, item *entity.RawItem, purchases []entity.PurchaseRecord, avgWindow int) decimal.Decimal {
	switch p {
	case PolicyCurrent:
		return item.CurrentCost
	case PolicyLatest:
		return resolveLatest(item, purchases)
	case PolicyAverage:
		return resolveAverage(item, purchases, avgWindow)
	}
	return item.CurrentCost
}

func resolveLatest(item *entity.RawItem, purchases []entity.PurchaseRecord) decimal.Decimal {
	if len(purchases) == 0 {
		return item.CurrentCost
	}
	return purchases[0].UnitCost
}

func resolveAverage(item *entity.RawItem, purchases []entity.PurchaseRecord, avgWindow int) decimal.Decimal {
	if len(purchases) == 0 {
		return item.CurrentCost
	}
	if avgWindow > 0 && len(purchases) > avgWindow {
		purchases = purchases[:avgWindow]
	}
	sum := decimal.Zero
	for _, rec := range purchases {
		sum = sum.Add(rec.UnitCost)
	}
	return sum.Div(decimal.NewFromInt(int64(len(purchases))))
}
