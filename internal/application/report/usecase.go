// Package report contiene los casos de uso del reporte semanal de inventario:
// la vista conciliada por ubicación y el reporte de faltantes agregado.
package report

import (
	"context"

	"github.com/kaimfung/InventoryDashboard/internal/application/dto"
	"github.com/kaimfung/InventoryDashboard/internal/domain/reconcile"
)

// ReportUseCase construye la vista conciliada de los cinco períodos para las
// identidades que matchean la búsqueda. Puro request/response: cada llamada
// vuelve a traer los snapshots del origen (o de su caché TTL) y recalcula todo.
type ReportUseCase struct {
	source SheetSource
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(source SheetSource) *ReportUseCase {
	return &ReportUseCase{source: source}
}

// Search devuelve la vista conciliada para una query de búsqueda.
//
// Query vacía → estado "no_query" sin tocar el origen: el contrato distingue
// "sin término" de "término sin resultados". La búsqueda es un parámetro
// explícito; el core no guarda estado de sesión.
func (uc *ReportUseCase) Search(ctx context.Context, query string) (*dto.InventoryReportDTO, error) {
	if !reconcile.HasQuery(query) {
		return &dto.InventoryReportDTO{State: dto.SearchStateNoQuery, Query: query}, nil
	}

	snaps, warnings, err := loadSnapshots(ctx, uc.source)
	if err != nil {
		return nil, err
	}

	rows, err := reconcile.Reconcile(snaps, reconcile.QueryMatcher(query))
	if err != nil {
		return nil, err
	}

	asOf := asOfLabels(snaps)
	out := &dto.InventoryReportDTO{
		State:       dto.SearchStateOK,
		Query:       query,
		Periods:     periodDTOs(snaps),
		DeltaLabels: deltaLabels(asOf),
		Rows:        make([]dto.ReconciledRowDTO, 0, len(rows)),
		Warnings:    warningDTOs(warnings),
	}
	for _, row := range rows {
		out.Rows = append(out.Rows, rowDTO(row))
	}
	if len(out.Rows) == 0 {
		out.State = dto.SearchStateEmpty
	}
	return out, nil
}
