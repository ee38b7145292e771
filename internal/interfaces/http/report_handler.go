package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kitakita/inventory-api/internal/application/analytics"
)

// ReportHandler expone los reportes analíticos agregados (protegido).
type ReportHandler struct {
	uc *analytics.ReportsUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportsUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Reports godoc
// @Summary      Reportes de ventas, márgenes y rankings
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReportsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) Reports(c *fiber.Ctx) error {
	out, err := h.uc.GetReports(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
