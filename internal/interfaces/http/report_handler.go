package http

import (
	"bytes"
	"encoding/csv"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kaimfung/InventoryDashboard/internal/application/dto"
	"github.com/kaimfung/InventoryDashboard/internal/application/report"
	"github.com/kaimfung/InventoryDashboard/internal/domain"
)

// ReportHandler expone la vista conciliada de inventario.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Search godoc
// @Summary      Vista conciliada de las 5 semanas para una búsqueda
// @Description  Devuelve cantidades por semana y deltas semana a semana para
//               las identidades que matchean la query (substring, sin
//               mayúsculas, sobre Sub Group / Brand / Desc). Query vacía
//               devuelve el estado "no_query".
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Término de búsqueda"
// @Success      200  {object}  dto.InventoryReportDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/report [get]
func (h *ReportHandler) Search(c *fiber.Ctx) error {
	rep, err := h.uc.Search(c.Context(), c.Query("q"))
	if err != nil {
		return writeReportError(c, err)
	}
	return c.JSON(rep)
}

// SearchCSV godoc
// @Summary      Export CSV de la vista conciliada
// @Tags         inventory
// @Security     Bearer
// @Produce      text/csv
// @Param        q  query  string  false  "Término de búsqueda"
// @Success      200  {string}  string
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/report.csv [get]
func (h *ReportHandler) SearchCSV(c *fiber.Ctx) error {
	rep, err := h.uc.Search(c.Context(), c.Query("q"))
	if err != nil {
		return writeReportError(c, err)
	}
	return sendCSV(c, "inventory_search_result.csv", rep.CSVRecords())
}

// sendCSV serializa los registros y los envía como descarga.
func sendCSV(c *fiber.Ctx, filename string, records [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return writeReportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// writeReportError traduce la taxonomía de errores del dominio a HTTP.
// Los fallos del origen remoto son 502: el problema está aguas arriba.
func writeReportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrSourceUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "SOURCE_UNAVAILABLE", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrSchema):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "SCHEMA_ERROR", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "error interno generando el reporte",
		})
	}
}
