package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// Motivos de movimiento (conjunto cerrado; cualquier otro valor se rechaza).
const (
	ReasonPurchase       = "purchase"
	ReasonSale           = "sale"
	ReasonAdjustment     = "adjustment"
	ReasonReturnCustomer = "return_customer"
	ReasonReturnSupplier = "return_supplier"
	ReasonExpired        = "expired"
	ReasonTransferIn     = "transfer_in"
	ReasonTransferOut    = "transfer_out"
	ReasonProduction     = "production"
	ReasonWaste          = "waste"
)

var validReasons = map[string]struct{}{
	ReasonPurchase:       {},
	ReasonSale:           {},
	ReasonAdjustment:     {},
	ReasonReturnCustomer: {},
	ReasonReturnSupplier: {},
	ReasonExpired:        {},
	ReasonTransferIn:     {},
	ReasonTransferOut:    {},
	ReasonProduction:     {},
	ReasonWaste:          {},
}

// IsValidReason indica si el motivo pertenece al conjunto cerrado.
func IsValidReason(reason string) bool {
	_, ok := validReasons[reason]
	return ok
}

// StockMovement es una fila inmutable del libro de movimientos.
// Invariante: StockAfter = StockBefore + Quantity para "in" y
// StockBefore - Quantity para "out". Un movimiento nunca se edita ni se
// borra; las correcciones son nuevos movimientos compensatorios.
type StockMovement struct {
	ID              string
	StockedEntityID string
	Type            string          // in | out
	Quantity        decimal.Decimal // siempre > 0
	StockBefore     decimal.Decimal
	StockAfter      decimal.Decimal
	UnitCost        *decimal.Decimal
	TotalCost       *decimal.Decimal
	Reason          string
	ReferenceType   string
	ReferenceID     string
	CreatedBy       string
	OccurredAt      time.Time
}
