// Package reconcile implementa el motor de conciliación semanal de inventario:
// normalización de hojas, join multi-período por identidad compuesta,
// agregación por ubicación y clasificación de faltantes.
//
// Todo el paquete es puro: funciones de sus entradas, sin estado compartido.
package reconcile

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kaimfung/InventoryDashboard/internal/domain"
	"github.com/kaimfung/InventoryDashboard/internal/domain/entity"
)

// Nombres canónicos de columnas después de la normalización.
const (
	ColSubGroup = "Sub Group"
	ColBrand    = "Brand"
	ColDesc     = "Desc"
	ColLocation = "Location"
	ColUnit     = "Unit"
	ColQuantity = "Quantity"
)

// headerAliases mapea los encabezados del origen a su nombre canónico.
// Los nombres canónicos también se aceptan tal cual (hojas ya renombradas).
var headerAliases = map[string]string{
	"G-Sub Group(Name)": ColSubGroup,
	"G-Loc/Brand(Name)": ColBrand,
	"Description":       ColDesc,
	"Location Name":     ColLocation,
	ColSubGroup:         ColSubGroup,
	ColBrand:            ColBrand,
	ColDesc:             ColDesc,
	ColLocation:         ColLocation,
	ColUnit:             ColUnit,
	ColQuantity:         ColQuantity,
}

var requiredColumns = []string{ColSubGroup, ColBrand, ColDesc, ColLocation, ColUnit, ColQuantity}

// NormalizeSheet convierte las filas crudas de una hoja (primera fila =
// encabezados) en StockRecords canónicos.
//
// Reglas:
//   - encabezados con espacios al inicio/fin se recortan antes del mapeo;
//   - si falta una columna requerida devuelve domain.ErrSchema (fatal);
//   - Quantity no numérica o negativa queda en 0 (no se reporta por fila);
//   - filas con campos de identidad vacíos generan un InconsistencyWarning
//     pero se procesan igualmente.
func NormalizeSheet(worksheet string, rows [][]string) ([]entity.StockRecord, []entity.InconsistencyWarning, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("hoja %q sin encabezados: %w", worksheet, domain.ErrSchema)
	}

	colIdx := make(map[string]int, len(requiredColumns))
	for i, h := range rows[0] {
		if canonical, ok := headerAliases[strings.TrimSpace(h)]; ok {
			if _, dup := colIdx[canonical]; !dup {
				colIdx[canonical] = i
			}
		}
	}
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, nil, fmt.Errorf("hoja %q: falta la columna %q: %w", worksheet, col, domain.ErrSchema)
		}
	}

	records := make([]entity.StockRecord, 0, len(rows)-1)
	var warnings []entity.InconsistencyWarning

	for n, row := range rows[1:] {
		cell := func(col string) string {
			i := colIdx[col]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		id := entity.Identity{
			SubGroup: cell(ColSubGroup),
			Brand:    cell(ColBrand),
			Desc:     cell(ColDesc),
			Location: cell(ColLocation),
			Unit:     cell(ColUnit),
		}
		if missing := blankIdentityFields(id); len(missing) > 0 {
			warnings = append(warnings, entity.InconsistencyWarning{
				Worksheet: worksheet,
				Row:       n + 2, // +1 encabezado, +1 base 1
				Fields:    missing,
			})
		}
		records = append(records, entity.StockRecord{
			Identity: id,
			Quantity: CoerceQuantity(cell(ColQuantity)),
		})
	}
	return records, warnings, nil
}

// CoerceQuantity interpreta una celda como cantidad. No numérico → 0;
// negativo → 0. Nunca devuelve valores negativos.
func CoerceQuantity(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func blankIdentityFields(id entity.Identity) []string {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{ColSubGroup, id.SubGroup},
		{ColBrand, id.Brand},
		{ColDesc, id.Desc},
		{ColLocation, id.Location},
		{ColUnit, id.Unit},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
