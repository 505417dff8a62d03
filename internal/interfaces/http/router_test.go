package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaimfung/InventoryDashboard/internal/application/dto"
	"github.com/kaimfung/InventoryDashboard/internal/application/report"
	"github.com/kaimfung/InventoryDashboard/internal/domain"
	apphttp "github.com/kaimfung/InventoryDashboard/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del origen de hojas
// ──────────────────────────────────────────────────────────────────────────────

type stubSource struct {
	sheets map[string][][]string
	cells  map[string]string
	err    error
}

func (s *stubSource) Rows(_ context.Context, worksheet string) ([][]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	rows, ok := s.sheets[worksheet]
	if !ok {
		return nil, fmt.Errorf("hoja %q no encontrada: %w", worksheet, domain.ErrSourceUnavailable)
	}
	return rows, nil
}

func (s *stubSource) Cell(_ context.Context, worksheet, ref string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.cells[worksheet+"!"+ref], nil
}

// newStubSource arma cinco semanas con un ítem en depleción (Milk) y otro
// estable (Butter). Semana 1 es la más reciente.
func newStubSource() *stubSource {
	header := []string{"G-Sub Group(Name)", "G-Loc/Brand(Name)", "Description", "Location Name", "Unit", "Quantity"}
	milk := func(qty string) []string {
		return []string{"Dairy", "Kowloon Dairy", "Milk 1L", "Direct Shipment Warehouse", "CTN", qty}
	}
	butter := func(qty string) []string {
		return []string{"Dairy", "President", "Butter 500g", "TIN WAN", "PCS", qty}
	}
	asOf := [5]string{"6/23/2026", "6/16/2026", "6/9/2026", "6/2/2026", "5/26/2026"}
	milkQty := [5]string{"3", "10", "10", "14", "20"}
	butterQty := [5]string{"8", "6", "5", "4", "4"}

	s := &stubSource{sheets: map[string][][]string{}, cells: map[string]string{}}
	for i := 0; i < 5; i++ {
		ws := fmt.Sprintf("week %d", i+1)
		s.sheets[ws] = [][]string{header, milk(milkQty[i]), butter(butterQty[i])}
		s.cells[ws+"!I1"] = asOf[i]
	}
	return s
}

func buildRouterApp(source report.SheetSource) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ReportUC:   report.NewReportUseCase(source),
		LowStockUC: report.NewLowStockUseCase(source, nil, nil, zerolog.Nop()),
		JWTSecret:  testJWTSecret,
	})
	return app
}

func getWithToken(t *testing.T, app *fiber.App, path, role string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de rutas
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ReportSinToken_Retorna401(t *testing.T) {
	app := buildRouterApp(newStubSource())
	resp := getWithToken(t, app, "/api/inventory/report", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_ReportConQuery_DevuelveFilasConciliadas(t *testing.T) {
	app := buildRouterApp(newStubSource())
	resp := getWithToken(t, app, "/api/inventory/report?q=milk", "viewer")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rep dto.InventoryReportDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	assert.Equal(t, dto.SearchStateOK, rep.State)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "Milk 1L", rep.Rows[0].Desc)
	assert.Equal(t, "3.00", rep.Rows[0].Quantities[0])
	assert.Equal(t, "7.00", rep.Rows[0].Deltas[0], "delta semana 2 a semana 1")
}

func TestRouter_ReportSinQuery_EstadoNoQuery(t *testing.T) {
	app := buildRouterApp(newStubSource())
	resp := getWithToken(t, app, "/api/inventory/report", "viewer")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rep dto.InventoryReportDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	assert.Equal(t, dto.SearchStateNoQuery, rep.State)
	assert.Empty(t, rep.Rows)
}

func TestRouter_ReportCSV_DescargaConEncabezados(t *testing.T) {
	app := buildRouterApp(newStubSource())
	resp := getWithToken(t, app, "/api/inventory/report.csv?q=milk", "viewer")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "inventory_search_result.csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.GreaterOrEqual(t, len(lines), 2, "encabezado + al menos una fila")
	assert.Contains(t, lines[0], "Sub Group")
	assert.Contains(t, lines[1], "Milk 1L")
}

func TestRouter_LowStock_MarcaItemEnDepleción(t *testing.T) {
	app := buildRouterApp(newStubSource())
	resp := getWithToken(t, app, "/api/inventory/low-stock", "viewer")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rep dto.LowStockReportDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	require.Len(t, rep.Rows, 1, "solo Milk está en depleción (3 < 7)")
	assert.Equal(t, "Milk 1L", rep.Rows[0].Desc)
	assert.Equal(t, "7.00", rep.Rows[0].Usage)
}

func TestRouter_LowStockPDF_SinGenerador_Retorna404(t *testing.T) {
	app := buildRouterApp(newStubSource())
	resp := getWithToken(t, app, "/api/inventory/low-stock.pdf", "viewer")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_History_ViewerBloqueado(t *testing.T) {
	app := buildRouterApp(newStubSource())
	resp := getWithToken(t, app, "/api/inventory/low-stock/history", "viewer")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_History_AdminSinArchivo_Retorna404(t *testing.T) {
	app := buildRouterApp(newStubSource())
	resp := getWithToken(t, app, "/api/inventory/low-stock/history", "admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_OrigenCaido_Retorna502(t *testing.T) {
	src := &stubSource{err: fmt.Errorf("timeout: %w", domain.ErrSourceUnavailable)}
	app := buildRouterApp(src)
	resp := getWithToken(t, app, "/api/inventory/report?q=milk", "viewer")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "SOURCE_UNAVAILABLE")
}
