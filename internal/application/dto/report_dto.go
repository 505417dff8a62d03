package dto

import "time"

// Valores numéricos ya formateados para presentación: dos decimales sin
// locale ("12.00") o el marcador explícito "N/A" cuando no hubo match.

// PeriodDTO un período del reporte con su etiqueta as-of.
type PeriodDTO struct {
	Name string `json:"name"`  // "week 1" … "week 5"
	AsOf string `json:"as_of"` // etiqueta de fecha leída de la hoja
}

// WarningDTO fila con campos de identidad vacíos (no fatal).
type WarningDTO struct {
	Worksheet string   `json:"worksheet"`
	Row       int      `json:"row"`
	Fields    []string `json:"fields"`
}

// ReconciledRowDTO una identidad con sus cantidades y deltas por período.
// Quantities y Deltas van alineados con Periods y DeltaLabels del reporte.
type ReconciledRowDTO struct {
	SubGroup   string   `json:"sub_group"`
	Brand      string   `json:"brand"`
	Desc       string   `json:"desc"`
	Location   string   `json:"location"`
	Unit       string   `json:"unit"`
	Quantities []string `json:"quantities"`
	Deltas     []string `json:"deltas"`
}

// InventoryReportDTO respuesta de GET /api/inventory/report.
type InventoryReportDTO struct {
	State       SearchState        `json:"state"`
	Query       string             `json:"query"`
	Periods     []PeriodDTO        `json:"periods"`
	DeltaLabels []string           `json:"delta_labels"`
	Rows        []ReconciledRowDTO `json:"rows"`
	Warnings    []WarningDTO       `json:"warnings,omitempty"`
}

// CSVRecords proyección serializable del reporte: encabezado + una fila por
// identidad, con las mismas columnas del JSON.
func (r *InventoryReportDTO) CSVRecords() [][]string {
	header := []string{"Sub Group", "Brand", "Desc", "Location", "Unit"}
	for _, p := range r.Periods {
		header = append(header, p.AsOf)
	}
	header = append(header, r.DeltaLabels...)

	records := make([][]string, 0, len(r.Rows)+1)
	records = append(records, header)
	for _, row := range r.Rows {
		rec := []string{row.SubGroup, row.Brand, row.Desc, row.Location, row.Unit}
		rec = append(rec, row.Quantities...)
		rec = append(rec, row.Deltas...)
		records = append(records, rec)
	}
	return records
}

// LowStockRowDTO identidad marcada como faltante, con la señal de consumo.
type LowStockRowDTO struct {
	ReconciledRowDTO
	Usage string `json:"last_week_usage"`
}

// LowStockReportDTO respuesta de GET /api/inventory/low-stock.
// State describe el filtro de búsqueda: con "no_query" la lista completa de
// faltantes se devuelve sin filtrar.
type LowStockReportDTO struct {
	State       SearchState      `json:"state"`
	Query       string           `json:"query"`
	Periods     []PeriodDTO      `json:"periods"`
	DeltaLabels []string         `json:"delta_labels"`
	Rows        []LowStockRowDTO `json:"rows"`
	Warnings    []WarningDTO     `json:"warnings,omitempty"`
}

// CSVRecords proyección serializable del reporte de faltantes.
func (r *LowStockReportDTO) CSVRecords() [][]string {
	header := []string{"Sub Group", "Brand", "Desc", "Location", "Unit"}
	for _, p := range r.Periods {
		header = append(header, p.AsOf)
	}
	header = append(header, r.DeltaLabels...)
	header = append(header, "Last Week Usage")

	records := make([][]string, 0, len(r.Rows)+1)
	records = append(records, header)
	for _, row := range r.Rows {
		rec := []string{row.SubGroup, row.Brand, row.Desc, row.Location, row.Unit}
		rec = append(rec, row.Quantities...)
		rec = append(rec, row.Deltas...)
		rec = append(rec, row.Usage)
		records = append(records, rec)
	}
	return records
}

// LowStockRunItemDTO item de una ejecución archivada.
type LowStockRunItemDTO struct {
	SubGroup  string `json:"sub_group"`
	Brand     string `json:"brand"`
	Desc      string `json:"desc"`
	Unit      string `json:"unit"`
	Locations string `json:"locations"`
	LatestQty string `json:"latest_qty"`
	UsageQty  string `json:"usage_qty"`
}

// LowStockRunDTO ejecución archivada del clasificador.
type LowStockRunDTO struct {
	ID           string               `json:"id"`
	GeneratedAt  time.Time            `json:"generated_at"`
	Week1Label   string               `json:"week1_label"`
	PeriodLabels []string             `json:"period_labels"`
	Items        []LowStockRunItemDTO `json:"items"`
}
