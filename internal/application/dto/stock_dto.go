package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyMovementRequest body para POST /api/stock/:id/movements.
type ApplyMovementRequest struct {
	Type          string           `json:"type"`
	Quantity      decimal.Decimal  `json:"quantity"`
	Reason        string           `json:"reason"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceType string           `json:"reference_type,omitempty"`
	ReferenceID   string           `json:"reference_id,omitempty"`
	CreatedBy     string           `json:"created_by,omitempty"`
	RefID         string           `json:"ref_id,omitempty"`
	RefKind       string           `json:"ref_kind,omitempty"`
}

// MovementDTO representación de un movimiento del libro.
type MovementDTO struct {
	ID              string           `json:"id"`
	StockedEntityID string           `json:"stocked_entity_id"`
	Type            string           `json:"type"`
	Quantity        decimal.Decimal  `json:"quantity"`
	StockBefore     decimal.Decimal  `json:"stock_before"`
	StockAfter      decimal.Decimal  `json:"stock_after"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalCost       *decimal.Decimal `json:"total_cost,omitempty"`
	Reason          string           `json:"reason"`
	ReferenceType   string           `json:"reference_type,omitempty"`
	ReferenceID     string           `json:"reference_id,omitempty"`
	CreatedBy       string           `json:"created_by,omitempty"`
	OccurredAt      time.Time        `json:"occurred_at"`
}

// StockSnapshotDTO estado actual de una entidad de stock; el disponible se
// deriva en la lectura, nunca se almacena.
type StockSnapshotDTO struct {
	StockedEntityID string           `json:"stocked_entity_id"`
	RefID           string           `json:"ref_id"`
	RefKind         string           `json:"ref_kind"`
	CurrentStock    decimal.Decimal  `json:"current_stock"`
	ReservedStock   decimal.Decimal  `json:"reserved_stock"`
	AvailableStock  decimal.Decimal  `json:"available_stock"`
	ReorderLevel    decimal.Decimal  `json:"reorder_level"`
	MaxStockLevel   *decimal.Decimal `json:"max_stock_level,omitempty"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// SetReorderLevelRequest body para PUT /api/stock/:id/reorder-level.
type SetReorderLevelRequest struct {
	ReorderLevel  decimal.Decimal  `json:"reorder_level"`
	MaxStockLevel *decimal.Decimal `json:"max_stock_level,omitempty"`
}

// ReserveRequest body para reservar o liberar stock.
type ReserveRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// LowStockItemDTO entidad en o bajo su punto de reorden.
type LowStockItemDTO struct {
	StockedEntityID   string           `json:"stocked_entity_id"`
	RefID             string           `json:"ref_id"`
	RefKind           string           `json:"ref_kind"`
	CurrentStock      decimal.Decimal  `json:"current_stock"`
	ReservedStock     decimal.Decimal  `json:"reserved_stock"`
	AvailableStock    decimal.Decimal  `json:"available_stock"`
	ReorderLevel      decimal.Decimal  `json:"reorder_level"`
	MaxStockLevel     *decimal.Decimal `json:"max_stock_level,omitempty"`
	SuggestedOrderQty decimal.Decimal  `json:"suggested_order_qty"`
}
