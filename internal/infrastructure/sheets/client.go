// Package sheets implementa el puerto SheetSource contra la API REST de
// valores de Google Sheets (spreadsheets.values.get, API key). Usa net/http
// de la librería estándar; no requiere el SDK oficial.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kaimfung/InventoryDashboard/internal/application/report"
	"github.com/kaimfung/InventoryDashboard/internal/domain"
)

// Verificar en tiempo de compilación que Client implementa SheetSource.
var _ report.SheetSource = (*Client)(nil)

const defaultBaseURL = "https://sheets.googleapis.com"

// Client adaptador de solo lectura sobre un spreadsheet remoto.
type Client struct {
	baseURL       string
	spreadsheetID string
	apiKey        string
	httpClient    *http.Client
}

// NewClient construye el adaptador. baseURL vacío usa el endpoint público de
// Google; se puede apuntar a un mock en tests.
func NewClient(baseURL, spreadsheetID, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:       baseURL,
		spreadsheetID: spreadsheetID,
		apiKey:        apiKey,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// valuesResponse respuesta de spreadsheets.values.get. Las celdas llegan
// como string con el render por defecto (FORMATTED_VALUE), pero se toleran
// números crudos por si el render cambia.
type valuesResponse struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
	Error  *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Rows devuelve todas las filas de la hoja (la primera es el encabezado).
// Hoja inexistente → domain.ErrSourceUnavailable.
func (c *Client) Rows(ctx context.Context, worksheet string) ([][]string, error) {
	resp, err := c.getValues(ctx, fmt.Sprintf("'%s'", worksheet))
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, v := range raw {
			row[i] = cellString(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Cell devuelve el valor de una celda en notación A1. Celda vacía o fuera de
// rango devuelve "" sin error; decidir si eso es fatal es del caller.
func (c *Client) Cell(ctx context.Context, worksheet, ref string) (string, error) {
	resp, err := c.getValues(ctx, fmt.Sprintf("'%s'!%s", worksheet, ref))
	if err != nil {
		return "", err
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return "", nil
	}
	return cellString(resp.Values[0][0]), nil
}

func (c *Client) getValues(ctx context.Context, rng string) (*valuesResponse, error) {
	u := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?key=%s",
		c.baseURL,
		url.PathEscape(c.spreadsheetID),
		url.PathEscape(rng),
		url.QueryEscape(c.apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("sheets: crear request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheets: %s: %v: %w", rng, err, domain.ErrSourceUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sheets: leer respuesta: %w", err)
	}

	var out valuesResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("sheets: decodificar respuesta (%d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := http.StatusText(resp.StatusCode)
		if out.Error != nil {
			msg = out.Error.Message
		}
		// 400 INVALID_ARGUMENT es la respuesta de la API para una hoja inexistente.
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("sheets: %s: %s: %w", rng, msg, domain.ErrSourceUnavailable)
		}
		return nil, fmt.Errorf("sheets: %s: HTTP %d: %s", rng, resp.StatusCode, msg)
	}
	return &out, nil
}

func cellString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
