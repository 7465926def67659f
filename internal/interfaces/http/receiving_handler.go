package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ReceivingHandler maneja el flujo de recepciones (protegido).
type ReceivingHandler struct {
	uc *inventory.ReceivingUseCase
}

// NewReceivingHandler construye el handler.
func NewReceivingHandler(uc *inventory.ReceivingUseCase) *ReceivingHandler {
	return &ReceivingHandler{uc: uc}
}

func toReceiptResponse(r *entity.Receipt) dto.ReceiptResponse {
	out := dto.ReceiptResponse{
		ID:             r.ID,
		SupplierID:     r.SupplierID,
		Status:         r.Status,
		PONumber:       r.PONumber,
		CarrierName:    r.CarrierName,
		TrackingNumber: r.TrackingNumber,
		ReceivedBy:     r.ReceivedBy,
		ReceivedAt:     r.ReceivedAt,
		Notes:          r.Notes,
		CreatedAt:      r.CreatedAt,
	}
	for _, line := range r.Lines {
		out.Lines = append(out.Lines, dto.ReceiptLineResponse{
			ID:               line.ID,
			ProductID:        line.ProductID,
			LocationID:       line.LocationID,
			ExpectedQuantity: line.ExpectedQuantity,
			ReceivedQuantity: line.ReceivedQuantity,
			LotNumber:        line.LotNumber,
			ExpirationDate:   line.ExpirationDate,
		})
	}
	return out
}

// Create godoc
// @Summary      Crear recepción en borrador
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  true  "supplier_id"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *ReceivingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	receipt, err := h.uc.CreateReceipt(c.Context(), inventory.CreateReceiptInput{
		SupplierID:     in.SupplierID,
		PONumber:       in.PONumber,
		CarrierName:    in.CarrierName,
		TrackingNumber: in.TrackingNumber,
		Notes:          in.Notes,
		UserID:         GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReceiptResponse(receipt))
}

// AddLine godoc
// @Summary      Agregar línea a una recepción Draft
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Receipt ID"
// @Param        body  body  dto.AddReceiptLineRequest  true  "product_id, location_id, received_quantity"
// @Success      201   {object}  dto.ReceiptLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/lines [post]
func (h *ReceivingHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddReceiptLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	line, err := h.uc.AddLine(c.Context(), c.Params("id"), inventory.AddLineInput{
		ProductID:        in.ProductID,
		LocationID:       in.LocationID,
		ExpectedQuantity: in.ExpectedQuantity,
		ReceivedQuantity: in.ReceivedQuantity,
		LotNumber:        in.LotNumber,
		ExpirationDate:   in.ExpirationDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReceiptLineResponse{
		ID:               line.ID,
		ProductID:        line.ProductID,
		LocationID:       line.LocationID,
		ExpectedQuantity: line.ExpectedQuantity,
		ReceivedQuantity: line.ReceivedQuantity,
		LotNumber:        line.LotNumber,
		ExpirationDate:   line.ExpirationDate,
	})
}

// Receive godoc
// @Summary      Procesar una recepción Draft contra el libro de inventario
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Receipt ID"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/receive [post]
func (h *ReceivingHandler) Receive(c *fiber.Ctx) error {
	movements, err := h.uc.Receive(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, toMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{Items: items})
}

// Cancel godoc
// @Summary      Cancelar una recepción Draft
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Receipt ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/cancel [post]
func (h *ReceivingHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "recepción cancelada"})
}

// GetByID godoc
// @Summary      Obtener recepción con líneas
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Receipt ID"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceivingHandler) GetByID(c *fiber.Ctx) error {
	receipt, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toReceiptResponse(receipt))
}

// List godoc
// @Summary      Listar recepciones
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        supplier_id  query  string  false  "filtrar por proveedor"
// @Param        status       query  string  false  "Draft, Received, Cancelled"
// @Success      200  {object}  dto.ReceiptListResponse
// @Router       /api/receipts [get]
func (h *ReceivingHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	receipts, err := h.uc.List(c.Context(), repository.ReceiptFilter{
		SupplierID: c.Query("supplier_id"),
		Status:     c.Query("status"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		items = append(items, toReceiptResponse(r))
	}
	return c.JSON(dto.ReceiptListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}
