package reconcile

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kaimfung/InventoryDashboard/internal/domain"
	"github.com/kaimfung/InventoryDashboard/internal/domain/entity"
)

// Matcher predicado sobre identidades para acotar el conjunto base.
// nil equivale a "todas las identidades del snapshot de referencia".
type Matcher func(entity.Identity) bool

// Reconcile construye una fila conciliada por cada registro del snapshot más
// reciente (week 1, el de referencia), opcionalmente filtrado por match.
//
// Política de match ausente (vista por ubicación): un registro sin match en
// un período queda como NullDecimal inválido ("N/A") y el delta de los pares
// que lo tocan queda indefinido. Se prefiere la lectura conservadora de
// calidad de datos sobre confundir "sin dato" con "stock cero".
//
// Identidades duplicadas dentro de un mismo snapshot: gana la primera
// aparición, igual que el origen.
func Reconcile(snaps []entity.Snapshot, match Matcher) ([]entity.ReconciledRow, error) {
	if err := validatePeriods(snaps); err != nil {
		return nil, err
	}

	// Índice por identidad de cada período posterior (primera aparición gana).
	indexes := make([]map[entity.Identity]decimal.Decimal, entity.PeriodCount)
	for i := 1; i < entity.PeriodCount; i++ {
		idx := make(map[entity.Identity]decimal.Decimal, len(snaps[i].Records))
		for _, rec := range snaps[i].Records {
			if _, ok := idx[rec.Identity]; !ok {
				idx[rec.Identity] = rec.Quantity
			}
		}
		indexes[i] = idx
	}

	rows := make([]entity.ReconciledRow, 0, len(snaps[0].Records))
	for _, base := range snaps[0].Records {
		if match != nil && !match(base.Identity) {
			continue
		}
		row := entity.ReconciledRow{Identity: base.Identity}
		row.Quantities[0] = decimal.NewNullDecimal(base.Quantity)
		for i := 1; i < entity.PeriodCount; i++ {
			if q, ok := indexes[i][base.Identity]; ok {
				row.Quantities[i] = decimal.NewNullDecimal(q)
			}
		}
		fillDeltas(&row)
		rows = append(rows, row)
	}

	sortRows(rows, true)
	return rows, nil
}

// ReconcileAggregate construye la vista agregada: una fila por clave
// (SubGroup, Brand, Desc, Unit), sumando las cantidades de todas las
// ubicaciones presentes en el snapshot de referencia.
//
// En esta vista un match ausente cuenta como 0 dentro de la suma (igual que
// el clasificador de faltantes), por lo que todas las cantidades son válidas.
// La columna Location es el join abreviado, ordenado y sin duplicados de las
// ubicaciones contribuyentes.
func ReconcileAggregate(snaps []entity.Snapshot, match Matcher) ([]entity.ReconciledRow, error) {
	if err := validatePeriods(snaps); err != nil {
		return nil, err
	}

	indexes := make([]map[entity.Identity]decimal.Decimal, entity.PeriodCount)
	for i := 1; i < entity.PeriodCount; i++ {
		idx := make(map[entity.Identity]decimal.Decimal, len(snaps[i].Records))
		for _, rec := range snaps[i].Records {
			// Duplicados exactos dentro del período se suman en la vista agregada.
			idx[rec.Identity] = idx[rec.Identity].Add(rec.Quantity)
		}
		indexes[i] = idx
	}

	type group struct {
		key       entity.AggregateKey
		locations []string
		totals    [entity.PeriodCount]decimal.Decimal
	}
	groups := make(map[entity.AggregateKey]*group)
	var order []entity.AggregateKey

	for _, base := range snaps[0].Records {
		if match != nil && !match(base.Identity) {
			continue
		}
		key := base.Identity.Aggregate()
		g, ok := groups[key]
		if !ok {
			g = &group{key: key}
			groups[key] = g
			order = append(order, key)
		}
		g.locations = append(g.locations, base.Identity.Location)
		g.totals[0] = g.totals[0].Add(base.Quantity)
		for i := 1; i < entity.PeriodCount; i++ {
			// Ausente → 0: solo cuentan las ubicaciones del snapshot base.
			g.totals[i] = g.totals[i].Add(indexes[i][base.Identity])
		}
	}

	rows := make([]entity.ReconciledRow, 0, len(order))
	for _, key := range order {
		g := groups[key]
		row := entity.ReconciledRow{
			Identity: entity.Identity{
				SubGroup: key.SubGroup,
				Brand:    key.Brand,
				Desc:     key.Desc,
				Unit:     key.Unit,
			},
			Locations: JoinLocations(g.locations),
		}
		for i := 0; i < entity.PeriodCount; i++ {
			row.Quantities[i] = decimal.NewNullDecimal(g.totals[i])
		}
		fillDeltas(&row)
		rows = append(rows, row)
	}

	sortRows(rows, false)
	return rows, nil
}

// fillDeltas calcula Deltas[i] = Quantities[i+1] − Quantities[i] (el período
// más antiguo menos el más reciente: positivo = consumo). Solo se define
// cuando ambos operandos están presentes.
func fillDeltas(row *entity.ReconciledRow) {
	for _, k := range entity.DeltaKeys() {
		from, to := row.Quantities[k.From], row.Quantities[k.To]
		if from.Valid && to.Valid {
			row.Deltas[k.From] = decimal.NewNullDecimal(to.Decimal.Sub(from.Decimal))
		}
	}
}

func sortRows(rows []entity.ReconciledRow, byLocation bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Identity, rows[j].Identity
		if a.SubGroup != b.SubGroup {
			return a.SubGroup < b.SubGroup
		}
		if a.Brand != b.Brand {
			return a.Brand < b.Brand
		}
		if a.Desc != b.Desc {
			return a.Desc < b.Desc
		}
		if byLocation {
			return a.Location < b.Location
		}
		return false
	})
}

func validatePeriods(snaps []entity.Snapshot) error {
	if len(snaps) != entity.PeriodCount {
		return fmt.Errorf("se esperaban %d períodos, hay %d: %w",
			entity.PeriodCount, len(snaps), domain.ErrInvalidInput)
	}
	return nil
}
