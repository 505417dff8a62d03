package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kaimfung/InventoryDashboard/internal/application/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReportUC   *report.ReportUseCase
	LowStockUC *report.LowStockUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/inventory", AuthMiddleware(deps.JWTSecret))

	// Vista conciliada (protegido)
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/report", reportHandler.Search)
	protected.Get("/report.csv", reportHandler.SearchCSV)

	// Stock bajo (protegido)
	lowStockHandler := NewLowStockHandler(deps.LowStockUC)
	protected.Get("/low-stock", lowStockHandler.Report)
	protected.Get("/low-stock.csv", lowStockHandler.ReportCSV)
	protected.Get("/low-stock.pdf", lowStockHandler.ReportPDF)

	// Histórico de corridas (protegido, solo admin)
	protected.Get("/low-stock/history", RequireRole("admin"), lowStockHandler.History)
}
