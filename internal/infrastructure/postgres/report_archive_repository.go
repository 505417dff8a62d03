package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaimfung/InventoryDashboard/internal/domain/entity"
	"github.com/kaimfung/InventoryDashboard/internal/domain/repository"
)

var _ repository.ReportArchiveRepository = (*ReportArchiveRepo)(nil)

// ReportArchiveRepo persistencia del histórico de faltantes.
//
// Esquema:
//
//	low_stock_runs(id uuid PK, generated_at timestamptz, week1_label text,
//	               period_labels text[], item_count int)
//	low_stock_run_items(run_id uuid FK, position int, sub_group text,
//	               brand text, description text, unit text, locations text,
//	               latest_qty numeric, usage_qty numeric)
type ReportArchiveRepo struct {
	pool *pgxpool.Pool
}

// NewReportArchiveRepository construye el adaptador sobre el pool.
func NewReportArchiveRepository(pool *pgxpool.Pool) *ReportArchiveRepo {
	return &ReportArchiveRepo{pool: pool}
}

// SaveRun inserta la ejecución y sus items en una sola transacción;
// Commit si todo ok, Rollback si algo falla.
func (r *ReportArchiveRepo) SaveRun(ctx context.Context, run *entity.LowStockRun) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO low_stock_runs (id, generated_at, week1_label, period_labels, item_count)
		VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.GeneratedAt, run.Week1Label, run.PeriodLabels, len(run.Items),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, it := range run.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO low_stock_run_items
				(run_id, position, sub_group, brand, description, unit, locations, latest_qty, usage_qty)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			run.ID, i, it.SubGroup, it.Brand, it.Desc, it.Unit, it.Locations, it.LatestQty, it.UsageQty,
		)
		if err != nil {
			return fmt.Errorf("insert run item %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ListRuns devuelve las ejecuciones más recientes primero, con sus items en
// el orden original del reporte.
func (r *ReportArchiveRepo) ListRuns(ctx context.Context, limit int) ([]*entity.LowStockRun, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, generated_at, week1_label, period_labels
		FROM low_stock_runs
		ORDER BY generated_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*entity.LowStockRun
	for rows.Next() {
		var run entity.LowStockRun
		if err := rows.Scan(&run.ID, &run.GeneratedAt, &run.Week1Label, &run.PeriodLabels); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	for _, run := range runs {
		if err := r.loadItems(ctx, run); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (r *ReportArchiveRepo) loadItems(ctx context.Context, run *entity.LowStockRun) error {
	rows, err := r.pool.Query(ctx, `
		SELECT sub_group, brand, description, unit, locations, latest_qty, usage_qty
		FROM low_stock_run_items
		WHERE run_id = $1
		ORDER BY position`, run.ID)
	if err != nil {
		return fmt.Errorf("list run items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.LowStockItem
		if err := rows.Scan(&it.SubGroup, &it.Brand, &it.Desc, &it.Unit, &it.Locations, &it.LatestQty, &it.UsageQty); err != nil {
			return fmt.Errorf("scan run item: %w", err)
		}
		run.Items = append(run.Items, it)
	}
	return rows.Err()
}
