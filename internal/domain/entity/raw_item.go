package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawItem representa una materia prima (hoja del grafo de composición).
// CurrentCost es el costo "actual" mantenido por el catálogo externo;
// el núcleo solo lo lee.
type RawItem struct {
	ID          string
	Name        string
	UnitMeasure string
	CurrentCost decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
