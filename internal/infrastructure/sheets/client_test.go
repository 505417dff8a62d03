package sheets_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaimfung/InventoryDashboard/internal/domain"
	"github.com/kaimfung/InventoryDashboard/internal/infrastructure/sheets"
)

// newSheetServer emula spreadsheets.values.get para un spreadsheet con una
// hoja "week 1" y la celda de fecha en I1.
func newSheetServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		require.Equal(t, "clave-de-prueba", r.URL.Query().Get("key"))
		require.True(t, strings.HasPrefix(r.URL.Path, "/v4/spreadsheets/sheet-id/values/"))

		rng := strings.TrimPrefix(r.URL.Path, "/v4/spreadsheets/sheet-id/values/")
		w.Header().Set("Content-Type", "application/json")
		switch rng {
		case "'week 1'":
			json.NewEncoder(w).Encode(map[string]any{
				"range": "'week 1'!A1:F3",
				"values": [][]any{
					{"G-Sub Group(Name)", "G-Loc/Brand(Name)", "Description", "Location Name", "Unit", "Quantity"},
					{"Dairy", "Acme", "Milk 1L", "TIN WAN", "ea", 3}, // número crudo tolerado
				},
			})
		case "'week 1'!I1":
			json.NewEncoder(w).Encode(map[string]any{
				"range":  "'week 1'!I1",
				"values": [][]any{{"6/23/2026"}},
			})
		case "'week 1'!Z9":
			// Celda vacía: la API omite "values".
			json.NewEncoder(w).Encode(map[string]any{"range": rng})
		default:
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": 400, "status": "INVALID_ARGUMENT", "message": "Unable to parse range: " + rng},
			})
		}
	}))
}

func TestClientRows_DecodificaFilasYNumeros(t *testing.T) {
	srv := newSheetServer(t, nil)
	defer srv.Close()
	c := sheets.NewClient(srv.URL, "sheet-id", "clave-de-prueba")

	rows, err := c.Rows(context.Background(), "week 1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Quantity", rows[0][5])
	assert.Equal(t, "3", rows[1][5], "celda numérica cruda se vuelve string")
}

func TestClientCell_ValorYCeldaVacia(t *testing.T) {
	srv := newSheetServer(t, nil)
	defer srv.Close()
	c := sheets.NewClient(srv.URL, "sheet-id", "clave-de-prueba")

	v, err := c.Cell(context.Background(), "week 1", "I1")
	require.NoError(t, err)
	assert.Equal(t, "6/23/2026", v)

	v, err = c.Cell(context.Background(), "week 1", "Z9")
	require.NoError(t, err, "celda vacía no es error del adaptador")
	assert.Empty(t, v)
}

func TestClientRows_HojaInexistente_ErrSourceUnavailable(t *testing.T) {
	srv := newSheetServer(t, nil)
	defer srv.Close()
	c := sheets.NewClient(srv.URL, "sheet-id", "clave-de-prueba")

	_, err := c.Rows(context.Background(), "week 99")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "Unable to parse range")
}

func TestCachedSource_MemoizaDentroDelTTL(t *testing.T) {
	var hits atomic.Int64
	srv := newSheetServer(t, &hits)
	defer srv.Close()
	src := sheets.NewCachedSource(sheets.NewClient(srv.URL, "sheet-id", "clave-de-prueba"), time.Minute)

	for i := 0; i < 3; i++ {
		_, err := src.Rows(context.Background(), "week 1")
		require.NoError(t, err)
		_, err = src.Cell(context.Background(), "week 1", "I1")
		require.NoError(t, err)
	}
	assert.Equal(t, int64(2), hits.Load(), "un hit remoto por clave dentro del TTL")
}

func TestCachedSource_NoCacheaErrores(t *testing.T) {
	var hits atomic.Int64
	srv := newSheetServer(t, &hits)
	defer srv.Close()
	src := sheets.NewCachedSource(sheets.NewClient(srv.URL, "sheet-id", "clave-de-prueba"), time.Minute)

	for i := 0; i < 2; i++ {
		_, err := src.Rows(context.Background(), "week 99")
		require.Error(t, err)
	}
	assert.Equal(t, int64(2), hits.Load(), "cada intento fallido vuelve al origen")
}

func TestNewCachedSource_TTLCeroDeshabilita(t *testing.T) {
	c := sheets.NewClient("http://localhost", "sheet-id", "k")
	assert.Same(t, c, sheets.NewCachedSource(c, 0))
}
