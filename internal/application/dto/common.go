package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SearchState estado explícito del filtro de búsqueda en una respuesta.
// "no_query" (sin término) es distinto de "empty" (término sin resultados).
type SearchState string

const (
	SearchStateNoQuery SearchState = "no_query"
	SearchStateOK      SearchState = "ok"
	SearchStateEmpty   SearchState = "empty"
)
