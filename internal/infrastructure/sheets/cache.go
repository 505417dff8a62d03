package sheets

import (
	"context"
	"sync"
	"time"

	"github.com/kaimfung/InventoryDashboard/internal/application/report"
)

var _ report.SheetSource = (*CachedSource)(nil)

// CachedSource decorador de memoización con TTL sobre un SheetSource.
//
// El dato servido puede estar desactualizado hasta ttl respecto del origen;
// esa es la cota explícita de staleness. Expirada la entrada se vuelve a
// pedir al origen (sin invalidación anticipada). Seguro para handlers
// concurrentes; los errores no se cachean.
type CachedSource struct {
	source report.SheetSource
	ttl    time.Duration

	mu    sync.Mutex
	rows  map[string]rowsEntry
	cells map[string]cellEntry
}

type rowsEntry struct {
	rows    [][]string
	fetched time.Time
}

type cellEntry struct {
	value   string
	fetched time.Time
}

// NewCachedSource envuelve source con una caché de ttl. ttl <= 0 devuelve el
// source sin envolver (caché deshabilitada).
func NewCachedSource(source report.SheetSource, ttl time.Duration) report.SheetSource {
	if ttl <= 0 {
		return source
	}
	return &CachedSource{
		source: source,
		ttl:    ttl,
		rows:   make(map[string]rowsEntry),
		cells:  make(map[string]cellEntry),
	}
}

func (c *CachedSource) Rows(ctx context.Context, worksheet string) ([][]string, error) {
	c.mu.Lock()
	if e, ok := c.rows[worksheet]; ok && time.Since(e.fetched) < c.ttl {
		c.mu.Unlock()
		return e.rows, nil
	}
	c.mu.Unlock()

	rows, err := c.source.Rows(ctx, worksheet)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.rows[worksheet] = rowsEntry{rows: rows, fetched: time.Now()}
	c.mu.Unlock()
	return rows, nil
}

func (c *CachedSource) Cell(ctx context.Context, worksheet, ref string) (string, error) {
	key := worksheet + "!" + ref
	c.mu.Lock()
	if e, ok := c.cells[key]; ok && time.Since(e.fetched) < c.ttl {
		c.mu.Unlock()
		return e.value, nil
	}
	c.mu.Unlock()

	value, err := c.source.Cell(ctx, worksheet, ref)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.cells[key] = cellEntry{value: value, fetched: time.Now()}
	c.mu.Unlock()
	return value, nil
}
