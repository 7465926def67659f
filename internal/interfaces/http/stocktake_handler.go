package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/pdf"
)

// StockTakeHandler maneja el ciclo de vida de los conteos físicos (protegido).
type StockTakeHandler struct {
	uc     *inventory.StockTakeUseCase
	report *pdf.StockTakeReportGenerator
}

// NewStockTakeHandler construye el handler.
func NewStockTakeHandler(uc *inventory.StockTakeUseCase, report *pdf.StockTakeReportGenerator) *StockTakeHandler {
	return &StockTakeHandler{uc: uc, report: report}
}

func toStockTakeResponse(st *entity.StockTake) dto.StockTakeResponse {
	out := dto.StockTakeResponse{
		ID:          st.ID,
		Number:      st.Number,
		Status:      st.Status,
		InitiatedBy: st.InitiatedBy,
		StartedAt:   st.StartedAt,
		CompletedAt: st.CompletedAt,
		Notes:       st.Notes,
	}
	for _, item := range st.Items {
		out.Items = append(out.Items, dto.StockTakeItemResponse{
			ID:                   item.ID,
			InventoryRecordID:    item.InventoryRecordID,
			ProductID:            item.ProductID,
			LotID:                item.LotID,
			LocationID:           item.LocationID,
			ExpectedQuantity:     item.ExpectedQuantity,
			CountedQuantity:      item.CountedQuantity,
			CountedBy:            item.CountedBy,
			CountedAt:            item.CountedAt,
			ReasonForDiscrepancy: item.ReasonForDiscrepancy,
			AdjustmentMovementID: item.AdjustmentMovementID,
		})
	}
	return out
}

// Initiate godoc
// @Summary      Iniciar conteo físico con foto del libro
// @Tags         stock-takes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitiateStockTakeRequest  true  "filtros opcionales por producto y ubicación"
// @Success      201   {object}  dto.StockTakeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-takes [post]
func (h *StockTakeHandler) Initiate(c *fiber.Ctx) error {
	var in dto.InitiateStockTakeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	stockTake, err := h.uc.Initiate(c.Context(), inventory.InitiateInput{
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		Notes:      in.Notes,
		UserID:     GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockTakeResponse(stockTake))
}

// Start godoc
// @Summary      Pasar el conteo a InProgress
// @Tags         stock-takes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "StockTake ID"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-takes/{id}/start [post]
func (h *StockTakeHandler) Start(c *fiber.Ctx) error {
	if err := h.uc.Start(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "conteo en progreso"})
}

// SubmitCount godoc
// @Summary      Registrar la cantidad contada de un ítem
// @Tags         stock-takes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "StockTake ID"
// @Param        itemId  path  string  true  "Item ID"
// @Param        body    body  dto.SubmitCountRequest  true  "counted_quantity"
// @Success      200     {object}  map[string]string
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/stock-takes/{id}/items/{itemId}/count [post]
func (h *StockTakeHandler) SubmitCount(c *fiber.Ctx) error {
	var in dto.SubmitCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.SubmitCount(c.Context(), c.Params("itemId"), inventory.SubmitCountInput{
		CountedQuantity:      in.CountedQuantity,
		ReasonForDiscrepancy: in.ReasonForDiscrepancy,
		UserID:               GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "conteo registrado"})
}

// Process godoc
// @Summary      Conciliar el conteo contra el libro de inventario
// @Tags         stock-takes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "StockTake ID"
// @Success      200  {object}  dto.StockTakeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-takes/{id}/process [post]
func (h *StockTakeHandler) Process(c *fiber.Ctx) error {
	stockTake, err := h.uc.Process(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockTakeResponse(stockTake))
}

// Verify godoc
// @Summary      Marcar el conteo conciliado como verificado
// @Tags         stock-takes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "StockTake ID"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-takes/{id}/verify [post]
func (h *StockTakeHandler) Verify(c *fiber.Ctx) error {
	if err := h.uc.Verify(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "conteo verificado"})
}

// Cancel godoc
// @Summary      Cancelar un conteo en Planning o InProgress
// @Tags         stock-takes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "StockTake ID"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-takes/{id}/cancel [post]
func (h *StockTakeHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "conteo cancelado"})
}

// GetByID godoc
// @Summary      Obtener conteo con sus ítems
// @Tags         stock-takes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "StockTake ID"
// @Success      200  {object}  dto.StockTakeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-takes/{id} [get]
func (h *StockTakeHandler) GetByID(c *fiber.Ctx) error {
	stockTake, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockTakeResponse(stockTake))
}

// List godoc
// @Summary      Listar conteos físicos
// @Tags         stock-takes
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Planning, InProgress, Completed, Verified, Cancelled"
// @Success      200  {object}  dto.StockTakeListResponse
// @Router       /api/stock-takes [get]
func (h *StockTakeHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	stockTakes, err := h.uc.List(c.Context(), repository.StockTakeFilter{
		Status: c.Query("status"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.StockTakeResponse, 0, len(stockTakes))
	for _, st := range stockTakes {
		items = append(items, toStockTakeResponse(st))
	}
	return c.JSON(dto.StockTakeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Report godoc
// @Summary      Descargar el acta de conteo físico en PDF
// @Tags         stock-takes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "StockTake ID"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-takes/{id}/report [get]
func (h *StockTakeHandler) Report(c *fiber.Ctx) error {
	stockTake, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.report.Generate(c.Context(), stockTake)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="acta-%s.pdf"`, stockTake.Number))
	return c.Send(doc)
}
