package reconcile_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaimfung/InventoryDashboard/internal/domain"
	"github.com/kaimfung/InventoryDashboard/internal/domain/entity"
	"github.com/kaimfung/InventoryDashboard/internal/domain/reconcile"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func ident(desc, location string) entity.Identity {
	return entity.Identity{SubGroup: "Dairy", Brand: "Acme", Desc: desc, Location: location, Unit: "ea"}
}

func rec(desc, location string, qty float64) entity.StockRecord {
	return entity.StockRecord{Identity: ident(desc, location), Quantity: decimal.NewFromFloat(qty)}
}

// snaps construye los 5 snapshots con los registros dados por período.
func snaps(perPeriod ...[]entity.StockRecord) []entity.Snapshot {
	labels := [...]string{"6/23/2026", "6/16/2026", "6/9/2026", "6/2/2026", "5/26/2026"}
	out := make([]entity.Snapshot, entity.PeriodCount)
	for i := 0; i < entity.PeriodCount; i++ {
		out[i] = entity.Snapshot{Period: entity.Periods[i], AsOf: labels[i]}
		if i < len(perPeriod) {
			out[i].Records = perPeriod[i]
		}
	}
	return out
}

func qty(row entity.ReconciledRow, i int) decimal.Decimal {
	return row.Quantities[i].Decimal
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconcile (vista por ubicación)
// ──────────────────────────────────────────────────────────────────────────────

// Propiedad: para identidades presentes en todos los períodos,
// delta(i→i+1) = cantidad(i+1) − cantidad(i), exactamente.
func TestReconcile_DeltasExactosEntrePeriodosConsecutivos(t *testing.T) {
	s := snaps(
		[]entity.StockRecord{rec("Milk 1L", "TIN WAN", 3)},
		[]entity.StockRecord{rec("Milk 1L", "TIN WAN", 10)},
		[]entity.StockRecord{rec("Milk 1L", "TIN WAN", 10)},
		[]entity.StockRecord{rec("Milk 1L", "TIN WAN", 14)},
		[]entity.StockRecord{rec("Milk 1L", "TIN WAN", 20)},
	)
	rows, err := reconcile.Reconcile(s, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	for _, k := range entity.DeltaKeys() {
		require.True(t, row.Deltas[k.From].Valid)
		want := qty(row, k.To).Sub(qty(row, k.From))
		assert.True(t, row.Deltas[k.From].Decimal.Equal(want),
			"delta %d→%d debe ser %s", k.From, k.To, want)
	}
	// Espot: 10 − 3 = 7 en el primer par.
	assert.True(t, row.Deltas[0].Decimal.Equal(decimal.NewFromInt(7)))
}

// Match ausente en la vista por ubicación: cantidad N/A y delta indefinido,
// nunca un 0 engañoso.
func TestReconcile_SinMatch_CantidadYDeltaQuedanNA(t *testing.T) {
	s := snaps(
		[]entity.StockRecord{rec("Milk 1L", "TIN WAN", 3)},
		nil, // week 2 no trae la identidad
		[]entity.StockRecord{rec("Milk 1L", "TIN WAN", 9)},
	)
	rows, err := reconcile.Reconcile(s, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.True(t, row.Quantities[0].Valid)
	assert.False(t, row.Quantities[1].Valid, "sin match → ausente, no 0")
	assert.True(t, row.Quantities[2].Valid)
	assert.False(t, row.Deltas[0].Valid, "delta con operando ausente queda indefinido")
	assert.False(t, row.Deltas[1].Valid)
}

// El conjunto base son las identidades de week 1: lo que solo existe en
// semanas anteriores no genera fila.
func TestReconcile_BaseEsElSnapshotMasReciente(t *testing.T) {
	s := snaps(
		[]entity.StockRecord{rec("Milk 1L", "TIN WAN", 3)},
		[]entity.StockRecord{rec("Butter", "TIN WAN", 5)}, // solo en week 2
	)
	rows, err := reconcile.Reconcile(s, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Milk 1L", rows[0].Identity.Desc)
}

func TestReconcile_MatchExigeIgualdadExactaDeLosCincoCampos(t *testing.T) {
	week2 := rec("Milk 1L", "TIN WAN", 10)
	week2.Identity.Unit = "box" // difiere solo la unidad
	s := snaps(
		[]entity.StockRecord{rec("Milk 1L", "TIN WAN", 3)},
		[]entity.StockRecord{week2},
	)
	rows, err := reconcile.Reconcile(s, nil)
	require.NoError(t, err)
	assert.False(t, rows[0].Quantities[1].Valid, "unidad distinta no debe matchear")
}

func TestReconcile_OrdenaPorSubGroupBrandDescYLuegoLocation(t *testing.T) {
	s := snaps([]entity.StockRecord{
		rec("Yogurt", "TIN WAN", 1),
		rec("Milk 1L", "TIN WAN", 1),
		rec("Milk 1L", "KERRY 1", 1),
	})
	rows, err := reconcile.Reconcile(s, nil)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "KERRY 1", rows[0].Identity.Location)
	assert.Equal(t, "TIN WAN", rows[1].Identity.Location)
	assert.Equal(t, "Yogurt", rows[2].Identity.Desc)
}

func TestReconcile_NumeroDePeriodosIncorrecto_DevuelveError(t *testing.T) {
	_, err := reconcile.Reconcile([]entity.Snapshot{{Period: "week 1"}}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReconcileAggregate (vista agregada por producto)
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcileAggregate_SumaUbicacionesYAbreviaElJoin(t *testing.T) {
	s := snaps(
		[]entity.StockRecord{
			rec("Milk 1L", "TIN WAN", 3),
			rec("Milk 1L", "Direct Shipment Warehouse", 2),
		},
		[]entity.StockRecord{
			rec("Milk 1L", "TIN WAN", 8),
			rec("Milk 1L", "Direct Shipment Warehouse", 4),
		},
	)
	rows, err := reconcile.ReconcileAggregate(s, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.True(t, qty(row, 0).Equal(decimal.NewFromInt(5)), "week 1: 3+2")
	assert.True(t, qty(row, 1).Equal(decimal.NewFromInt(12)), "week 2: 8+4")
	// Abreviado, ordenado y sin duplicados.
	assert.Equal(t, "DSW, TW", row.Locations)
	// Ubicaciones sin dato en semanas previas cuentan como 0 en la suma.
	assert.True(t, qty(row, 2).IsZero())
}

// Propiedad: con exactamente una ubicación por identidad, agregar es la
// identidad — la señal de consumo coincide con la de la vista sin agregar.
func TestReconcileAggregate_UnaSolaUbicacion_EsNoOp(t *testing.T) {
	s := snaps(
		[]entity.StockRecord{rec("Milk 1L", "TIN WAN", 3)},
		[]entity.StockRecord{rec("Milk 1L", "TIN WAN", 10)},
	)
	plain, err := reconcile.Reconcile(s, nil)
	require.NoError(t, err)
	agg, err := reconcile.ReconcileAggregate(s, nil)
	require.NoError(t, err)
	require.Len(t, agg, 1)

	assert.True(t, reconcile.UsageSignal(agg[0]).Equal(reconcile.UsageSignal(plain[0])),
		"agregar con una sola ubicación no debe cambiar la señal de consumo")
	assert.True(t, qty(agg[0], 0).Equal(qty(plain[0], 0)))
}

func TestReconcileAggregate_FiltroAcotaElConjuntoBase(t *testing.T) {
	s := snaps([]entity.StockRecord{
		rec("Milk 1L", "TIN WAN", 3),
		rec("Yogurt", "TIN WAN", 5),
	})
	rows, err := reconcile.ReconcileAggregate(s, reconcile.QueryMatcher("milk"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Milk 1L", rows[0].Identity.Desc)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeltaKey
// ──────────────────────────────────────────────────────────────────────────────

func TestDeltaKeyLabel_SeDerivaDeLasFechasAsOf(t *testing.T) {
	asOf := [entity.PeriodCount]string{"6/23/2026", "6/16/2026", "6/9/2026", "6/2/2026", "5/26/2026"}
	k := entity.DeltaKey{From: 0, To: 1}
	assert.Equal(t, "6/16-6/23", k.Label(asOf))

	// Etiqueta sin partes "/" pasa tal cual.
	asOf[0], asOf[1] = "inicial", "final"
	assert.Equal(t, "final-inicial", k.Label(asOf))
}
