package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// InventoryHandler maneja saldos, movimientos, asignaciones y traslados (protegido).
type InventoryHandler struct {
	queryUC *inventory.QueryUseCase
	allocUC *inventory.AllocationUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(queryUC *inventory.QueryUseCase, allocUC *inventory.AllocationUseCase) *InventoryHandler {
	return &InventoryHandler{queryUC: queryUC, allocUC: allocUC}
}

func toBalanceResponse(b inventory.Balance) dto.BalanceResponse {
	rec := b.Record
	return dto.BalanceResponse{
		ID:                rec.ID,
		ProductID:         rec.ProductID,
		LotID:             rec.LotID,
		LocationID:        rec.LocationID,
		QuantityOnHand:    rec.QuantityOnHand,
		QuantityAllocated: rec.QuantityAllocated,
		QuantityAvailable: b.Available,
		LastCountedAt:     rec.LastCountedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		Type:           m.Type,
		ProductID:      m.ProductID,
		LotID:          m.LotID,
		FromLocationID: m.FromLocationID,
		ToLocationID:   m.ToLocationID,
		Quantity:       m.Quantity,
		Reason:         m.Reason,
		ReferenceType:  m.ReferenceType,
		ReferenceID:    m.ReferenceID,
		CreatedBy:      m.CreatedBy,
		OccurredAt:     m.OccurredAt,
	}
}

// ListBalances godoc
// @Summary      Listar saldos de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "filtrar por producto"
// @Param        location_id  query  string  false  "filtrar por ubicación"
// @Success      200  {object}  dto.BalanceListResponse
// @Router       /api/inventory/balances [get]
func (h *InventoryHandler) ListBalances(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	balances, err := h.queryUC.ListBalances(c.Context(), repository.InventoryFilter{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		items = append(items, toBalanceResponse(b))
	}
	return c.JSON(dto.BalanceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// ListMovements godoc
// @Summary      Consultar el log de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id      query  string  false  "filtrar por producto"
// @Param        location_id     query  string  false  "origen o destino"
// @Param        reference_type  query  string  false  "Receipt, Shipment, StockTake, Manual"
// @Param        reference_id    query  string  false  "documento que originó el movimiento"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	movements, err := h.queryUC.ListMovements(c.Context(), repository.MovementFilter{
		ProductID:     c.Query("product_id"),
		LocationID:    c.Query("location_id"),
		ReferenceType: c.Query("reference_type"),
		ReferenceID:   c.Query("reference_id"),
		Limit:         page.Limit,
		Offset:        page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, toMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Allocate godoc
// @Summary      Reservar stock de un producto (FIFO)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AllocateRequest  true  "product_id, quantity"
// @Success      200   {object}  dto.AllocateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/allocations [post]
func (h *InventoryHandler) Allocate(c *fiber.Ctx) error {
	var in dto.AllocateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.allocUC.Allocate(c.Context(), in.ProductID, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AllocateResponse{
		ProductID: in.ProductID,
		Requested: in.Quantity,
		Allocated: result.Allocated,
		Shortfall: result.Shortfall,
	})
}

// Deallocate godoc
// @Summary      Liberar stock reservado de una fila de saldo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeallocateRequest  true  "inventory_record_id, quantity"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/deallocations [post]
func (h *InventoryHandler) Deallocate(c *fiber.Ctx) error {
	var in dto.DeallocateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.allocUC.Deallocate(c.Context(), in.InventoryRecordID, in.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "reserva liberada"})
}

// Transfer godoc
// @Summary      Trasladar stock entre ubicaciones
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "product_id, from_location_id, to_location_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.allocUC.Transfer(c.Context(), inventory.TransferInput{
		ProductID:      in.ProductID,
		LotID:          in.LotID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		Reason:         in.Reason,
		UserID:         userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}
