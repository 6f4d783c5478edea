package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BreakdownLineDTO renglón de la hoja de costos: hijo directo de la raíz.
type BreakdownLineDTO struct {
	NodeID     string          `json:"node_id"`
	NodeKind   string          `json:"node_kind"`
	Unit       string          `json:"unit,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	LineTotal  decimal.Decimal `json:"line_total"`
	NoCostData bool            `json:"no_cost_data,omitempty"`
}

// CostResultDTO respuesta de GET /api/costing/:id.
type CostResultDTO struct {
	EntityID   string             `json:"entity_id"`
	Policy     string             `json:"policy"`
	TotalCost  decimal.Decimal    `json:"total_cost"`
	AsOf       time.Time          `json:"as_of"`
	ComputedAt time.Time          `json:"computed_at"`
	Breakdown  []BreakdownLineDTO `json:"breakdown"`
}

// PriceSuggestionDTO respuesta del asesor de precios.
type PriceSuggestionDTO struct {
	EntityID       string          `json:"entity_id"`
	Policy         string          `json:"policy"`
	Cost           decimal.Decimal `json:"cost"`
	MarkupPct      decimal.Decimal `json:"markup_pct"`
	SuggestedPrice decimal.Decimal `json:"suggested_price"`
	MarginPct      decimal.Decimal `json:"margin_pct"`
}

// CostUpdateResultDTO antes/después de persistir la caché de costo.
type CostUpdateResultDTO struct {
	EntityID string          `json:"entity_id"`
	Policy   string          `json:"policy"`
	OldCost  decimal.Decimal `json:"old_cost"`
	NewCost  decimal.Decimal `json:"new_cost"`
	Delta    decimal.Decimal `json:"delta"`
}

// CostUpdateOutcomeDTO resultado por entidad del recálculo en lote:
// Result poblado en éxito, Error con el detalle en fallo.
type CostUpdateOutcomeDTO struct {
	EntityID string               `json:"entity_id"`
	Result   *CostUpdateResultDTO `json:"result,omitempty"`
	Error    string               `json:"error,omitempty"`
}
