package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRecord es un registro inmutable del costo unitario pagado por una
// materia prima en una compra. Solo-append, ordenado por OccurredAt; el
// núcleo nunca lo muta ni lo borra.
type PurchaseRecord struct {
	ID         string
	ItemID     string
	UnitCost   decimal.Decimal
	OccurredAt time.Time
}
