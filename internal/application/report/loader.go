package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/kaimfung/InventoryDashboard/internal/application/dto"
	"github.com/kaimfung/InventoryDashboard/internal/domain"
	"github.com/kaimfung/InventoryDashboard/internal/domain/entity"
	"github.com/kaimfung/InventoryDashboard/internal/domain/reconcile"
)

// asOfCellRef celda fija de cada hoja con la fecha del snapshot.
const asOfCellRef = "I1"

// loadSnapshots trae y normaliza los cinco períodos desde el origen.
// Todo se recalcula en cada invocación; no se persiste nada entre llamadas.
//
// Falla con domain.ErrSourceUnavailable si falta una hoja o su celda de
// fecha, y con domain.ErrSchema si a una hoja le falta una columna. Las
// advertencias por fila se acumulan sin detener la carga.
func loadSnapshots(ctx context.Context, source SheetSource) ([]entity.Snapshot, []entity.InconsistencyWarning, error) {
	snaps := make([]entity.Snapshot, entity.PeriodCount)
	var warnings []entity.InconsistencyWarning

	for i, period := range entity.Periods {
		rows, err := source.Rows(ctx, period)
		if err != nil {
			return nil, nil, fmt.Errorf("hoja %q: %w", period, err)
		}
		records, ws, err := reconcile.NormalizeSheet(period, rows)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, ws...)

		asOf, err := source.Cell(ctx, period, asOfCellRef)
		if err != nil {
			return nil, nil, fmt.Errorf("hoja %q, celda %s: %w", period, asOfCellRef, err)
		}
		asOf = strings.TrimSpace(asOf)
		if asOf == "" {
			return nil, nil, fmt.Errorf("hoja %q: celda %s vacía: %w",
				period, asOfCellRef, domain.ErrSourceUnavailable)
		}

		snaps[i] = entity.Snapshot{Period: period, AsOf: asOf, Records: records}
	}
	return snaps, warnings, nil
}

// ── Helpers de presentación compartidos por los dos casos de uso ─────────────

// naValue marcador explícito para cantidades sin match (nunca un 0 engañoso).
const naValue = "N/A"

func asOfLabels(snaps []entity.Snapshot) [entity.PeriodCount]string {
	var labels [entity.PeriodCount]string
	for i, s := range snaps {
		labels[i] = s.AsOf
	}
	return labels
}

func periodDTOs(snaps []entity.Snapshot) []dto.PeriodDTO {
	out := make([]dto.PeriodDTO, len(snaps))
	for i, s := range snaps {
		out[i] = dto.PeriodDTO{Name: s.Period, AsOf: s.AsOf}
	}
	return out
}

func deltaLabels(asOf [entity.PeriodCount]string) []string {
	keys := entity.DeltaKeys()
	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = k.Label(asOf)
	}
	return labels
}

func warningDTOs(warnings []entity.InconsistencyWarning) []dto.WarningDTO {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]dto.WarningDTO, len(warnings))
	for i, w := range warnings {
		out[i] = dto.WarningDTO{Worksheet: w.Worksheet, Row: w.Row, Fields: w.Fields}
	}
	return out
}

// rowDTO formatea una fila conciliada: dos decimales fijos sin locale, o el
// marcador "N/A" cuando el valor está ausente.
func rowDTO(row entity.ReconciledRow) dto.ReconciledRowDTO {
	location := row.Identity.Location
	if row.Locations != "" {
		location = row.Locations
	}
	out := dto.ReconciledRowDTO{
		SubGroup:   row.Identity.SubGroup,
		Brand:      row.Identity.Brand,
		Desc:       row.Identity.Desc,
		Location:   location,
		Unit:       row.Identity.Unit,
		Quantities: make([]string, entity.PeriodCount),
		Deltas:     make([]string, entity.PeriodCount-1),
	}
	for i, q := range row.Quantities {
		if q.Valid {
			out.Quantities[i] = q.Decimal.StringFixed(2)
		} else {
			out.Quantities[i] = naValue
		}
	}
	for i, d := range row.Deltas {
		if d.Valid {
			out.Deltas[i] = d.Decimal.StringFixed(2)
		} else {
			out.Deltas[i] = naValue
		}
	}
	return out
}
