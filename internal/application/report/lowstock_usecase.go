package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kaimfung/InventoryDashboard/internal/application/dto"
	"github.com/kaimfung/InventoryDashboard/internal/domain"
	"github.com/kaimfung/InventoryDashboard/internal/domain/entity"
	"github.com/kaimfung/InventoryDashboard/internal/domain/reconcile"
	"github.com/kaimfung/InventoryDashboard/internal/domain/repository"
)

// LowStockUseCase genera el reporte de faltantes: vista agregada por
// producto (las ubicaciones se suman), señal de consumo de la última semana
// y marca cuando el stock actual no cubre ese consumo.
//
// archive es opcional (nil = sin histórico); pdfGen es opcional (nil = sin
// export PDF). El archivado nunca hace fallar el reporte: se loggea y sigue.
type LowStockUseCase struct {
	source  SheetSource
	archive repository.ReportArchiveRepository
	pdfGen  LowStockPDFGenerator
	log     zerolog.Logger
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(
	source SheetSource,
	archive repository.ReportArchiveRepository,
	pdfGen LowStockPDFGenerator,
	log zerolog.Logger,
) *LowStockUseCase {
	return &LowStockUseCase{source: source, archive: archive, pdfGen: pdfGen, log: log}
}

// Report clasifica faltantes sobre la vista agregada y aplica la búsqueda
// como filtro posterior. A diferencia de la vista conciliada, la query vacía
// devuelve la lista completa (estado "no_query" = sin filtro aplicado):
// el reporte de faltantes existe aunque nadie busque nada.
//
// Solo la depleción agregada marca un producto: una ubicación agotada no
// cuenta si otras compensan.
func (uc *LowStockUseCase) Report(ctx context.Context, query string) (*dto.LowStockReportDTO, error) {
	snaps, warnings, err := loadSnapshots(ctx, uc.source)
	if err != nil {
		return nil, err
	}

	agg, err := reconcile.ReconcileAggregate(snaps, nil)
	if err != nil {
		return nil, err
	}
	flagged := reconcile.LowStock(agg)

	asOf := asOfLabels(snaps)
	uc.archiveRun(ctx, flagged, asOf)

	state := dto.SearchStateNoQuery
	visible := flagged
	if reconcile.HasQuery(query) {
		visible = reconcile.FilterRows(flagged, query)
		state = dto.SearchStateOK
		if len(visible) == 0 {
			state = dto.SearchStateEmpty
		}
	}

	out := &dto.LowStockReportDTO{
		State:       state,
		Query:       query,
		Periods:     periodDTOs(snaps),
		DeltaLabels: deltaLabels(asOf),
		Rows:        make([]dto.LowStockRowDTO, 0, len(visible)),
		Warnings:    warningDTOs(warnings),
	}
	for _, row := range visible {
		out.Rows = append(out.Rows, dto.LowStockRowDTO{
			ReconciledRowDTO: rowDTO(row),
			Usage:            row.Usage.StringFixed(2),
		})
	}
	return out, nil
}

// ReportPDF genera el reporte y lo renderiza como PDF.
func (uc *LowStockUseCase) ReportPDF(ctx context.Context, query string) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, fmt.Errorf("generador PDF no configurado: %w", domain.ErrNotFound)
	}
	rep, err := uc.Report(ctx, query)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateLowStockPDF(ctx, rep)
}

// History devuelve las ejecuciones archivadas, la más reciente primero.
func (uc *LowStockUseCase) History(ctx context.Context, limit int) ([]dto.LowStockRunDTO, error) {
	if uc.archive == nil {
		return nil, fmt.Errorf("histórico de reportes no configurado: %w", domain.ErrNotFound)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	runs, err := uc.archive.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listar ejecuciones: %w", err)
	}

	out := make([]dto.LowStockRunDTO, 0, len(runs))
	for _, run := range runs {
		d := dto.LowStockRunDTO{
			ID:           run.ID,
			GeneratedAt:  run.GeneratedAt,
			Week1Label:   run.Week1Label,
			PeriodLabels: run.PeriodLabels,
			Items:        make([]dto.LowStockRunItemDTO, 0, len(run.Items)),
		}
		for _, it := range run.Items {
			d.Items = append(d.Items, dto.LowStockRunItemDTO{
				SubGroup:  it.SubGroup,
				Brand:     it.Brand,
				Desc:      it.Desc,
				Unit:      it.Unit,
				Locations: it.Locations,
				LatestQty: it.LatestQty.StringFixed(2),
				UsageQty:  it.UsageQty.StringFixed(2),
			})
		}
		out = append(out, d)
	}
	return out, nil
}

// archiveRun persiste el conjunto completo de faltantes (sin filtro de
// búsqueda, para que el histórico sea comparable entre ejecuciones).
func (uc *LowStockUseCase) archiveRun(ctx context.Context, flagged []entity.ReconciledRow, asOf [entity.PeriodCount]string) {
	if uc.archive == nil {
		return
	}
	run := &entity.LowStockRun{
		ID:           uuid.NewString(),
		GeneratedAt:  time.Now().UTC(),
		Week1Label:   asOf[0],
		PeriodLabels: asOf[:],
		Items:        make([]entity.LowStockItem, 0, len(flagged)),
	}
	for _, row := range flagged {
		run.Items = append(run.Items, entity.LowStockItem{
			SubGroup:  row.Identity.SubGroup,
			Brand:     row.Identity.Brand,
			Desc:      row.Identity.Desc,
			Unit:      row.Identity.Unit,
			Locations: row.Locations,
			LatestQty: row.Quantities[0].Decimal,
			UsageQty:  row.Usage,
		})
	}
	if err := uc.archive.SaveRun(ctx, run); err != nil {
		uc.log.Warn().Err(err).Str("run_id", run.ID).Msg("archivar reporte de faltantes")
	}
}
