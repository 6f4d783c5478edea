package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockedEntity mantiene el estado autoritativo de existencias de una materia
// prima o variante de producto. CurrentStock y ReservedStock nunca pueden ser
// negativos; el disponible se deriva siempre en lectura, jamás se almacena.
type StockedEntity struct {
	ID            string
	RefID         string // RawItem o CompositeEntity referenciado
	RefKind       string // raw_item | composite
	CurrentStock  decimal.Decimal
	ReservedStock decimal.Decimal
	ReorderLevel  decimal.Decimal
	MaxStockLevel *decimal.Decimal
	UpdatedAt     time.Time
}

// Available devuelve el stock disponible (actual - reservado), derivado
// en el momento de la lectura.
func (s *StockedEntity) Available() decimal.Decimal {
	return s.CurrentStock.Sub(s.ReservedStock)
}

// BelowReorder indica si el stock actual está en o bajo el punto de reorden.
func (s *StockedEntity) BelowReorder() bool {
	return s.CurrentStock.LessThanOrEqual(s.ReorderLevel)
}
