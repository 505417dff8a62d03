package report

import (
	"context"

	"github.com/kaimfung/InventoryDashboard/internal/application/dto"
)

// SheetSource acceso de solo lectura al origen remoto de hojas de cálculo.
// Cada período vive en una hoja con nombre propio ("week 1" … "week 5").
//
// Los adaptadores deben devolver domain.ErrSourceUnavailable (envuelto)
// cuando la hoja o la celda pedida no existe.
type SheetSource interface {
	// Rows devuelve todas las filas de la hoja; la primera es el encabezado.
	Rows(ctx context.Context, worksheet string) ([][]string, error)
	// Cell devuelve el valor de una celda en notación A1 (ej. "I1").
	Cell(ctx context.Context, worksheet, ref string) (string, error)
}

// LowStockPDFGenerator renderiza el reporte de faltantes como PDF.
type LowStockPDFGenerator interface {
	GenerateLowStockPDF(ctx context.Context, report *dto.LowStockReportDTO) ([]byte, error)
}
