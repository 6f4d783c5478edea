package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	appcosting "github.com/jhoicas/Costos-api/internal/application/costing"
	"github.com/jhoicas/Costos-api/internal/application/dto"
	"github.com/jhoicas/Costos-api/internal/domain"
	"github.com/jhoicas/Costos-api/internal/domain/costing"
)

// CostingHandler maneja las peticiones HTTP del motor de costeo y el asesor
// de precios.
type CostingHandler struct {
	computeUC *appcosting.ComputeCostUseCase
	advisor   *appcosting.PricingAdvisor
	sheetUC   *appcosting.CostSheetUseCase
}

// NewCostingHandler construye el handler.
func NewCostingHandler(
	computeUC *appcosting.ComputeCostUseCase,
	advisor *appcosting.PricingAdvisor,
	sheetUC *appcosting.CostSheetUseCase,
) *CostingHandler {
	return &CostingHandler{computeUC: computeUC, advisor: advisor, sheetUC: sheetUC}
}

// parsePolicyQuery lee ?policy= con "current" por defecto.
func parsePolicyQuery(c *fiber.Ctx) (costing.Policy, error) {
	return costing.ParsePolicy(c.Query("policy", "current"))
}

// ComputeCost godoc
// @Summary      Calcular costo de producción (rollup)
// @Tags         costing
// @Produce      json
// @Param        id      path   string  true   "ID de la entidad compuesta"
// @Param        policy  query  string  false  "current | latest | average"
// @Param        as_of   query  string  false  "Corte RFC3339 para recálculo histórico"
// @Success      200  {object}  dto.CostResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/costing/{id} [get]
func (h *CostingHandler) ComputeCost(c *fiber.Ctx) error {
	policy, err := parsePolicyQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_POLICY", Message: err.Error()})
	}

	var asOf *time.Time
	if raw := c.Query("as_of"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_AS_OF", Message: "as_of debe ser RFC3339"})
		}
		asOf = &t
	}

	result, err := h.computeUC.Compute(c.Context(), c.Params("id"), policy, asOf)
	if err != nil {
		return costingError(c, err)
	}
	return c.JSON(toCostResultDTO(result))
}

// SuggestPrice godoc
// @Summary      Precio sugerido a partir del costo
// @Tags         costing
// @Produce      json
// @Param        id          path   string  true   "ID de la entidad compuesta"
// @Param        policy      query  string  false  "current | latest | average"
// @Param        markup_pct  query  number  false  "Porcentaje de markup"
// @Success      200  {object}  dto.PriceSuggestionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/costing/{id}/suggest-price [get]
func (h *CostingHandler) SuggestPrice(c *fiber.Ctx) error {
	policy, err := parsePolicyQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_POLICY", Message: err.Error()})
	}

	var markup *decimal.Decimal
	if raw := c.Query("markup_pct"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_MARKUP", Message: "markup_pct inválido"})
		}
		markup = &d
	}

	suggestion, err := h.advisor.SuggestPrice(c.Context(), c.Params("id"), policy, markup)
	if err != nil {
		return costingError(c, err)
	}
	return c.JSON(suggestion)
}

// ApplyCost godoc
// @Summary      Recalcular y persistir la caché de costo
// @Tags         costing
// @Produce      json
// @Param        id      path   string  true   "ID de la entidad compuesta"
// @Param        policy  query  string  false  "current | latest | average"
// @Success      200  {object}  dto.CostUpdateResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/costing/{id}/apply [post]
func (h *CostingHandler) ApplyCost(c *fiber.Ctx) error {
	policy, err := parsePolicyQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_POLICY", Message: err.Error()})
	}
	result, err := h.advisor.ApplyCostToEntity(c.Context(), c.Params("id"), policy)
	if err != nil {
		return costingError(c, err)
	}
	return c.JSON(result)
}

// BulkApplyCost godoc
// @Summary      Recalcular costos de todas las entidades compuestas
// @Description  Lote con éxito parcial: cada entidad es su propia unidad atómica y los fallos individuales no detienen el resto.
// @Tags         costing
// @Produce      json
// @Param        policy  query  string  false  "current | latest | average"
// @Success      200  {array}   dto.CostUpdateOutcomeDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/costing/bulk-apply [post]
func (h *CostingHandler) BulkApplyCost(c *fiber.Ctx) error {
	policy, err := parsePolicyQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_POLICY", Message: err.Error()})
	}
	outcomes, err := h.advisor.BulkApplyCost(c.Context(), policy)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(outcomes), "outcomes": outcomes})
}

// CostSheetPDF godoc
// @Summary      Hoja de costos en PDF
// @Tags         costing
// @Produce      application/pdf
// @Param        id      path   string  true   "ID de la entidad compuesta"
// @Param        policy  query  string  false  "current | latest | average"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/costing/{id}/sheet.pdf [get]
func (h *CostingHandler) CostSheetPDF(c *fiber.Ctx) error {
	policy, err := parsePolicyQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_POLICY", Message: err.Error()})
	}
	pdfBytes, err := h.sheetUC.Generate(c.Context(), c.Params("id"), policy)
	if err != nil {
		return costingError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdfBytes)
}

// costingError mapea errores del motor de costeo a estados HTTP.
func costingError(c *fiber.Ctx, err error) error {
	var cycleErr *domain.CompositionCycleError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidPolicy), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.As(err, &cycleErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "COMPOSITION_CYCLE", Message: cycleErr.Error()})
	case errors.Is(err, domain.ErrNoCompositionData):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NO_COMPOSITION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// toCostResultDTO adapta el resultado del caso de uso al contrato JSON.
func toCostResultDTO(result *appcosting.CostResult) dto.CostResultDTO {
	breakdown := make([]dto.BreakdownLineDTO, 0, len(result.Breakdown))
	for _, b := range result.Breakdown {
		breakdown = append(breakdown, dto.BreakdownLineDTO{
			NodeID:     b.NodeID,
			NodeKind:   b.NodeKind,
			Unit:       b.Unit,
			Quantity:   b.Quantity,
			UnitCost:   b.UnitCost,
			LineTotal:  b.LineTotal,
			NoCostData: b.NoCostData,
		})
	}
	return dto.CostResultDTO{
		EntityID:   result.EntityID,
		Policy:     result.Policy.String(),
		TotalCost:  result.TotalCost,
		AsOf:       result.AsOf,
		ComputedAt: result.ComputedAt,
		Breakdown:  breakdown,
	}
}
