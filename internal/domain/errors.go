package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrSourceUnavailable: una hoja o la celda de fecha requerida no existe
	// en el origen remoto. Aborta la invocación completa.
	ErrSourceUnavailable = errors.New("origen de datos no disponible")
	// ErrSchema: falta una columna requerida después de normalizar encabezados.
	ErrSchema = errors.New("esquema de hoja inválido")

	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)
