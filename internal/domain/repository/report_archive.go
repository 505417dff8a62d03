package repository

import (
	"context"

	"github.com/kaimfung/InventoryDashboard/internal/domain/entity"
)

// ReportArchiveRepository persistencia opcional de las ejecuciones del
// clasificador de faltantes, para consultar el histórico.
type ReportArchiveRepository interface {
	// SaveRun guarda la ejecución y sus items de forma atómica.
	SaveRun(ctx context.Context, run *entity.LowStockRun) error
	// ListRuns devuelve las ejecuciones más recientes primero, con sus items.
	ListRuns(ctx context.Context, limit int) ([]*entity.LowStockRun, error)
}
