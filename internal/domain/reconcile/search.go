package reconcile

import (
	"strings"

	"github.com/kaimfung/InventoryDashboard/internal/domain/entity"
)

// La búsqueda es un parámetro explícito de cada invocación: el core no
// guarda estado de sesión (eso es del caller, si lo necesita).

// MatchQuery match por substring sin distinguir mayúsculas contra SubGroup,
// Brand o Desc (semántica OR: basta un campo). La query vacía no matchea
// nada aquí; el estado "sin query" lo distingue el caller con HasQuery.
func MatchQuery(query string, id entity.Identity) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	return strings.Contains(strings.ToLower(id.SubGroup), q) ||
		strings.Contains(strings.ToLower(id.Brand), q) ||
		strings.Contains(strings.ToLower(id.Desc), q)
}

// HasQuery true si la query tiene contenido útil. Una query vacía produce el
// estado explícito "sin query", distinto de "cero resultados".
func HasQuery(query string) bool {
	return strings.TrimSpace(query) != ""
}

// QueryMatcher devuelve el Matcher del motor para una query, o nil si no hay
// query (sin filtro).
func QueryMatcher(query string) Matcher {
	if !HasQuery(query) {
		return nil
	}
	return func(id entity.Identity) bool { return MatchQuery(query, id) }
}

// FilterRows aplica la query sobre filas ya conciliadas (la vista de
// faltantes filtra después de clasificar).
func FilterRows(rows []entity.ReconciledRow, query string) []entity.ReconciledRow {
	if !HasQuery(query) {
		return rows
	}
	out := make([]entity.ReconciledRow, 0, len(rows))
	for _, r := range rows {
		if MatchQuery(query, r.Identity) {
			out = append(out, r)
		}
	}
	return out
}
