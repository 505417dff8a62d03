package entity

import "github.com/shopspring/decimal"

// Períodos fijos del reporte. El índice 0 ("week 1") es el más reciente y
// define el conjunto base de identidades; el índice 4 es el más antiguo.
var Periods = [...]string{"week 1", "week 2", "week 3", "week 4", "week 5"}

// PeriodCount número de snapshots por invocación. Fijo por contrato del origen.
const PeriodCount = len(Periods)

// Identity clave compuesta que distingue una combinación producto/ubicación.
// El match entre períodos es por igualdad exacta de los cinco campos.
type Identity struct {
	SubGroup string
	Brand    string
	Desc     string
	Location string
	Unit     string
}

// AggregateKey identidad sin ubicación, para la vista agregada
// (las cantidades de todas las ubicaciones se suman por período).
type AggregateKey struct {
	SubGroup string
	Brand    string
	Desc     string
	Unit     string
}

// Aggregate devuelve la clave agregada de la identidad.
func (id Identity) Aggregate() AggregateKey {
	return AggregateKey{SubGroup: id.SubGroup, Brand: id.Brand, Desc: id.Desc, Unit: id.Unit}
}

// StockRecord una fila normalizada de un snapshot. Quantity nunca es negativa:
// valores no numéricos o negativos del origen quedan en 0 al normalizar.
type StockRecord struct {
	Identity Identity
	Quantity decimal.Decimal
}

// Snapshot el conjunto completo de registros capturado en un período,
// junto con la etiqueta de fecha leída de la celda fija de la hoja.
type Snapshot struct {
	Period  string // "week 1" … "week 5"
	AsOf    string // etiqueta de fecha, ej. "6/2/2026"
	Records []StockRecord
}

// InconsistencyWarning fila con campos de identidad vacíos; no detiene el
// procesamiento, se acumula y se expone junto al resultado.
type InconsistencyWarning struct {
	Worksheet string
	Row       int // número de fila en la hoja (1 = encabezado)
	Fields    []string
}
