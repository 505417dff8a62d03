package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DeltaKey identifica el cambio entre dos períodos consecutivos de forma
// tipada: From es el período más reciente del par, To el más antiguo.
// El valor asociado es cantidad(To) − cantidad(From): positivo = consumo.
// La etiqueta visible se deriva de las fechas pero no tiene peso semántico.
type DeltaKey struct {
	From int // índice en Periods (más reciente)
	To   int // From + 1 (más antiguo)
}

// Label etiqueta de presentación "M/D-M/D" construida con las fechas as-of
// de ambos períodos. Si una fecha no tiene partes "/" se usa tal cual.
func (k DeltaKey) Label(asOf [PeriodCount]string) string {
	return shortDate(asOf[k.To]) + "-" + shortDate(asOf[k.From])
}

// shortDate reduce "6/2/2026" a "6/2"; cualquier otro formato pasa intacto.
func shortDate(s string) string {
	parts := strings.Split(s, "/")
	if len(parts) < 2 {
		return s
	}
	return parts[0] + "/" + parts[1]
}

// DeltaKeys los cuatro pares consecutivos en orden canónico.
func DeltaKeys() []DeltaKey {
	keys := make([]DeltaKey, 0, PeriodCount-1)
	for i := 0; i < PeriodCount-1; i++ {
		keys = append(keys, DeltaKey{From: i, To: i + 1})
	}
	return keys
}

// ReconciledRow cantidades y deltas de una identidad a través de los cinco
// períodos. Quantities[i] corresponde a Periods[i]; Valid=false marca la
// ausencia de match en ese período (se muestra "N/A" y se excluye del delta).
// Locations solo se llena en la vista agregada (join abreviado y ordenado).
type ReconciledRow struct {
	Identity   Identity
	Locations  string
	Quantities [PeriodCount]decimal.NullDecimal
	Deltas     [PeriodCount - 1]decimal.NullDecimal
	Usage      decimal.Decimal // señal de consumo; solo la calcula el clasificador
}

// LowStockRun resultado archivado de una ejecución del clasificador.
type LowStockRun struct {
	ID           string
	GeneratedAt  time.Time
	Week1Label   string
	PeriodLabels []string
	Items        []LowStockItem
}

// LowStockItem una identidad marcada como faltante en una ejecución.
type LowStockItem struct {
	SubGroup  string
	Brand     string
	Desc      string
	Unit      string
	Locations string
	LatestQty decimal.Decimal
	UsageQty  decimal.Decimal
}
