package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// OrderHandler maneja órdenes de salida y despachos (protegido).
type OrderHandler struct {
	uc *inventory.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *inventory.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func toOrderResponse(o *entity.OutboundOrder) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		CustomerRef: o.CustomerRef,
		CreatedAt:   o.CreatedAt,
	}
	for _, line := range o.Lines {
		out.Lines = append(out.Lines, dto.OrderLineResponse{
			ID:                line.ID,
			ProductID:         line.ProductID,
			QuantityOrdered:   line.QuantityOrdered,
			QuantityAllocated: line.QuantityAllocated,
			QuantityShipped:   line.QuantityShipped,
		})
	}
	return out
}

func toShipmentResponse(s *entity.Shipment) dto.ShipmentResponse {
	out := dto.ShipmentResponse{
		ID:             s.ID,
		ShipmentNumber: s.ShipmentNumber,
		OrderID:        s.OrderID,
		ShippedBy:      s.ShippedBy,
		ShippedAt:      s.ShippedAt,
		CarrierName:    s.CarrierName,
		TrackingNumber: s.TrackingNumber,
	}
	for _, line := range s.Lines {
		out.Lines = append(out.Lines, dto.ShipmentLineResponse{
			ID:                line.ID,
			OrderLineID:       line.OrderLineID,
			ProductID:         line.ProductID,
			InventoryRecordID: line.InventoryRecordID,
			Quantity:          line.Quantity,
		})
	}
	return out
}

// Create godoc
// @Summary      Crear orden de salida
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "lines con product_id y quantity"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]inventory.OrderLineInput, 0, len(in.Lines))
	for _, line := range in.Lines {
		lines = append(lines, inventory.OrderLineInput{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	order, err := h.uc.CreateOrder(c.Context(), inventory.CreateOrderInput{
		CustomerRef: in.CustomerRef,
		UserID:      GetUserID(c),
		Lines:       lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}

// AddLine godoc
// @Summary      Agregar una línea a una orden Pending
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.OrderLineRequest  true  "product_id y quantity"
// @Success      201   {object}  dto.OrderLineResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/lines [post]
func (h *OrderHandler) AddLine(c *fiber.Ctx) error {
	var in dto.OrderLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	line, err := h.uc.AddLine(c.Context(), c.Params("id"), inventory.OrderLineInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OrderLineResponse{
		ID:                line.ID,
		ProductID:         line.ProductID,
		QuantityOrdered:   line.QuantityOrdered,
		QuantityAllocated: line.QuantityAllocated,
		QuantityShipped:   line.QuantityShipped,
	})
}

// Allocate godoc
// @Summary      Reservar inventario para las líneas de la orden (FIFO)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Order ID"
// @Success      200  {array}   dto.LineAllocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/allocate [post]
func (h *OrderHandler) Allocate(c *fiber.Ctx) error {
	results, err := h.uc.AllocateOrder(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.LineAllocationResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dto.LineAllocationResponse{
			LineID:    r.LineID,
			ProductID: r.ProductID,
			Allocated: r.Allocated,
			Shortfall: r.Shortfall,
		})
	}
	return c.JSON(out)
}

// Ship godoc
// @Summary      Despachar lo asignado de la orden
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.ShipRequest  true  "carrier_name, tracking_number"
// @Success      201   {object}  dto.ShipmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/ship [post]
func (h *OrderHandler) Ship(c *fiber.Ctx) error {
	var in dto.ShipRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	shipment, err := h.uc.Ship(c.Context(), c.Params("id"), inventory.ShipInput{
		CarrierName:    in.CarrierName,
		TrackingNumber: in.TrackingNumber,
		UserID:         GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toShipmentResponse(shipment))
}

// GetByID godoc
// @Summary      Obtener orden con líneas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// List godoc
// @Summary      Listar órdenes de salida
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Pending, Processing, PartiallyAllocated, Shipped, Cancelled"
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	orders, err := h.uc.List(c.Context(), repository.OrderFilter{
		Status: c.Query("status"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, toOrderResponse(o))
	}
	return c.JSON(dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}
