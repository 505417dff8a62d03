package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/kaimfung/InventoryDashboard/internal/domain/entity"
)

// UsageSignal estimación de consumo de la última semana: la parte positiva
// del delta entre los dos períodos más recientes (week 2 − week 1). Delta
// cero o negativo (stock plano o en aumento) da consumo 0.
//
// Cantidades ausentes cuentan como 0 antes de calcular, igual en todas las
// variantes del clasificador. El par de períodos es fijo, no configurable.
func UsageSignal(row entity.ReconciledRow) decimal.Decimal {
	latest := orZero(row.Quantities[0])
	prev := orZero(row.Quantities[1])
	usage := prev.Sub(latest)
	if usage.IsNegative() {
		return decimal.Zero
	}
	return usage
}

// LowStock filtra las filas cuya cantidad más reciente es estrictamente
// menor que su señal de consumo, con Usage ya calculado en cada fila
// devuelta. Pensado para la vista agregada: una ubicación individualmente
// agotada no marca el producto si otras ubicaciones compensan.
//
// Las filas de entrada deben venir ordenadas por (SubGroup, Brand, Desc);
// el filtro preserva el orden.
func LowStock(rows []entity.ReconciledRow) []entity.ReconciledRow {
	flagged := make([]entity.ReconciledRow, 0)
	for _, row := range rows {
		usage := UsageSignal(row)
		if orZero(row.Quantities[0]).LessThan(usage) {
			row.Usage = usage
			flagged = append(flagged, row)
		}
	}
	return flagged
}

func orZero(q decimal.NullDecimal) decimal.Decimal {
	if !q.Valid {
		return decimal.Zero
	}
	return q.Decimal
}
