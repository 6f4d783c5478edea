package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Costos-api/internal/application/dto"
	"github.com/jhoicas/Costos-api/internal/application/stock"
	"github.com/jhoicas/Costos-api/internal/domain"
	"github.com/jhoicas/Costos-api/internal/domain/entity"
	"github.com/jhoicas/Costos-api/internal/domain/repository"
)

// StockHandler maneja las peticiones HTTP del libro de stock.
type StockHandler struct {
	applyUC   *stock.ApplyMovementUseCase
	reserveUC *stock.ReservationUseCase
	historyUC *stock.MovementHistoryUseCase
	reorderUC *stock.ReorderUseCase
	lowUC     *stock.LowStockUseCase
	stockRepo repository.StockedEntityRepository
}

// NewStockHandler construye el handler.
func NewStockHandler(
	applyUC *stock.ApplyMovementUseCase,
	reserveUC *stock.ReservationUseCase,
	historyUC *stock.MovementHistoryUseCase,
	reorderUC *stock.ReorderUseCase,
	lowUC *stock.LowStockUseCase,
	stockRepo repository.StockedEntityRepository,
) *StockHandler {
	return &StockHandler{
		applyUC:   applyUC,
		reserveUC: reserveUC,
		historyUC: historyUC,
		reorderUC: reorderUC,
		lowUC:     lowUC,
		stockRepo: stockRepo,
	}
}

// ApplyMovement godoc
// @Summary      Aplicar un movimiento de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la entidad de stock"
// @Param        body  body  dto.ApplyMovementRequest  true  "type, quantity, reason, metadatos"
// @Success      201  {object}  dto.MovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/movements [post]
func (h *StockHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	movement, err := h.applyUC.Apply(c.Context(), stock.ApplyMovementInput{
		StockedEntityID: c.Params("id"),
		Type:            in.Type,
		Quantity:        in.Quantity,
		Reason:          in.Reason,
		UnitCost:        in.UnitCost,
		ReferenceType:   in.ReferenceType,
		ReferenceID:     in.ReferenceID,
		CreatedBy:       in.CreatedBy,
		RefID:           in.RefID,
		RefKind:         in.RefKind,
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementDTO(movement))
}

// GetStock godoc
// @Summary      Estado actual de stock
// @Tags         stock
// @Produce      json
// @Param        id  path  string  true  "ID de la entidad de stock"
// @Success      200  {object}  dto.StockSnapshotDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [get]
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	stocked, err := h.stockRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return stockError(c, err)
	}
	if stocked == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entidad de stock no encontrada"})
	}
	return c.JSON(dto.StockSnapshotDTO{
		StockedEntityID: stocked.ID,
		RefID:           stocked.RefID,
		RefKind:         stocked.RefKind,
		CurrentStock:    stocked.CurrentStock,
		ReservedStock:   stocked.ReservedStock,
		AvailableStock:  stocked.Available(),
		ReorderLevel:    stocked.ReorderLevel,
		MaxStockLevel:   stocked.MaxStockLevel,
		UpdatedAt:       stocked.UpdatedAt,
	})
}

// MovementHistory godoc
// @Summary      Historial de movimientos
// @Description  Orden cronológico inverso, filtrable por tipo, motivo y rango de fechas.
// @Tags         stock
// @Produce      json
// @Param        id      path   string  true   "ID de la entidad de stock"
// @Param        type    query  string  false  "in | out"
// @Param        reason  query  string  false  "Motivo"
// @Param        from    query  string  false  "Desde (RFC3339)"
// @Param        to      query  string  false  "Hasta (RFC3339)"
// @Success      200  {array}   dto.MovementDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/movements [get]
func (h *StockHandler) MovementHistory(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		Type:   c.Query("type"),
		Reason: c.Query("reason"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RANGE", Message: "from debe ser RFC3339"})
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RANGE", Message: "to debe ser RFC3339"})
		}
		filter.To = &t
	}

	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()

	movements, err := h.historyUC.Page(c.Context(), c.Params("id"), filter, page.Limit, page.Offset)
	if err != nil {
		return stockError(c, err)
	}

	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementDTO(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// SetReorderLevel godoc
// @Summary      Fijar punto de reorden
// @Tags         stock
// @Accept       json
// @Param        id    path  string                      true  "ID de la entidad de stock"
// @Param        body  body  dto.SetReorderLevelRequest  true  "reorder_level, max_stock_level"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/reorder-level [put]
func (h *StockHandler) SetReorderLevel(c *fiber.Ctx) error {
	var in dto.SetReorderLevelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.reorderUC.SetReorderLevel(c.Context(), c.Params("id"), in.ReorderLevel, in.MaxStockLevel); err != nil {
		return stockError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reserve godoc
// @Summary      Reservar stock disponible
// @Tags         stock
// @Accept       json
// @Param        id    path  string              true  "ID de la entidad de stock"
// @Param        body  body  dto.ReserveRequest  true  "quantity"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/reserve [post]
func (h *StockHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReserveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.reserveUC.Reserve(c.Context(), c.Params("id"), in.Quantity); err != nil {
		return stockError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Release godoc
// @Summary      Liberar stock reservado
// @Tags         stock
// @Accept       json
// @Param        id    path  string              true  "ID de la entidad de stock"
// @Param        body  body  dto.ReserveRequest  true  "quantity"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/release [post]
func (h *StockHandler) Release(c *fiber.Ctx) error {
	var in dto.ReserveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.reserveUC.Release(c.Context(), c.Params("id"), in.Quantity); err != nil {
		return stockError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LowStock godoc
// @Summary      Entidades en o bajo su punto de reorden
// @Tags         stock
// @Produce      json
// @Param        limit  query  int  false  "Máximo de filas"
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.lowUC.List(c.Context(), c.QueryInt("limit", 100))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// stockError mapea errores del libro de stock a estados HTTP.
// InsufficientStock es regla de negocio esperada (409), distinguible de
// fallos de infraestructura (500).
func stockError(c *fiber.Ctx, err error) error {
	var insufficientErr *domain.InsufficientStockError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownReason):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.As(err, &insufficientErr):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: insufficientErr.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// toMovementDTO adapta un movimiento al contrato JSON.
func toMovementDTO(m *entity.StockMovement) dto.MovementDTO {
	return dto.MovementDTO{
		ID:              m.ID,
		StockedEntityID: m.StockedEntityID,
		Type:            m.Type,
		Quantity:        m.Quantity,
		StockBefore:     m.StockBefore,
		StockAfter:      m.StockAfter,
		UnitCost:        m.UnitCost,
		TotalCost:       m.TotalCost,
		Reason:          m.Reason,
		ReferenceType:   m.ReferenceType,
		ReferenceID:     m.ReferenceID,
		CreatedBy:       m.CreatedBy,
		OccurredAt:      m.OccurredAt,
	}
}
