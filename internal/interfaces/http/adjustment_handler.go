package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kitakita/inventory-api/internal/application/dto"
	"github.com/kitakita/inventory-api/internal/application/ledger"
)

// AdjustmentHandler maneja los ajustes manuales de inventario (protegido).
type AdjustmentHandler struct {
	uc *ledger.LedgerUseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *ledger.LedgerUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar ajuste de inventario (ADD, REMOVE o CORRECTION)
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "Datos del ajuste"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/adjustments [post]
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.RecordAdjustment(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// HistoryByProduct godoc
// @Summary      Historial de ajustes de un producto
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/adjustments [get]
func (h *AdjustmentHandler) HistoryByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ProductAdjustmentHistory(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
