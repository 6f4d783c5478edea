package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompositeEntity representa un producto vendible o sub-receta intermedia
// cuyo costo se deriva de su composición.
// Los campos LastComputed* son una caché consultiva escrita solo por el
// Pricing Advisor tras un cálculo exitoso; nunca son autoritativos: el
// recálculo desde el grafo siempre debe producir el mismo resultado.
type CompositeEntity struct {
	ID                string
	Name              string
	SellPrice         decimal.Decimal
	LastComputedCost  *decimal.Decimal
	LastCostingPolicy *string
	LastComputedAt    *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
