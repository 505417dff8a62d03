package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kaimfung/InventoryDashboard/internal/application/report"
)

// LowStockHandler expone el reporte de stock bajo y su histórico.
type LowStockHandler struct {
	uc *report.LowStockUseCase
}

// NewLowStockHandler construye el handler.
func NewLowStockHandler(uc *report.LowStockUseCase) *LowStockHandler {
	return &LowStockHandler{uc: uc}
}

// Report godoc
// @Summary      Ítems cuyo stock actual no cubre el uso de la última semana
// @Description  Agrega cantidades por (Sub Group, Brand, Desc, Unit) sumando
//               ubicaciones y marca los ítems con stock de la semana 1 menor
//               que el uso observado entre semana 2 y semana 1.
// @Tags         lowstock
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Término de búsqueda"
// @Success      200  {object}  dto.LowStockReportDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *LowStockHandler) Report(c *fiber.Ctx) error {
	rep, err := h.uc.Report(c.Context(), c.Query("q"))
	if err != nil {
		return writeReportError(c, err)
	}
	return c.JSON(rep)
}

// ReportCSV godoc
// @Summary      Export CSV del reporte de stock bajo
// @Tags         lowstock
// @Security     Bearer
// @Produce      text/csv
// @Param        q  query  string  false  "Término de búsqueda"
// @Success      200  {string}  string
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock.csv [get]
func (h *LowStockHandler) ReportCSV(c *fiber.Ctx) error {
	rep, err := h.uc.Report(c.Context(), c.Query("q"))
	if err != nil {
		return writeReportError(c, err)
	}
	return sendCSV(c, "low_stock_result.csv", rep.CSVRecords())
}

// ReportPDF godoc
// @Summary      Export PDF del reporte de stock bajo
// @Tags         lowstock
// @Security     Bearer
// @Produce      application/pdf
// @Param        q  query  string  false  "Término de búsqueda"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock.pdf [get]
func (h *LowStockHandler) ReportPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.ReportPDF(c.Context(), c.Query("q"))
	if err != nil {
		return writeReportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="low_stock_report.pdf"`)
	return c.Send(pdfBytes)
}

// History godoc
// @Summary      Corridas archivadas del reporte de stock bajo
// @Description  Devuelve las corridas más recientes primero. Solo admin.
// @Tags         lowstock
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de corridas (default 20, máx 100)"
// @Success      200  {array}   dto.LowStockRunDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock/history [get]
func (h *LowStockHandler) History(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	runs, err := h.uc.History(c.Context(), limit)
	if err != nil {
		return writeReportError(c, err)
	}
	return c.JSON(runs)
}
