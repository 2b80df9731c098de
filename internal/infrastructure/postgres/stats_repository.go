package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/repository"
)

var _ repository.InventoryStatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas agregadas de solo lectura para el dashboard de inventario.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador de estadísticas. Pasar pool (no requiere tx).
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// GetProductStockStats agregados de stock sobre el catálogo activo.
func (r *StatsRepo) GetProductStockStats(ctx context.Context) (*repository.ProductStockStats, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(stock_total), 0),
			COALESCE(SUM(stock_reserved), 0),
			COALESCE(SUM(stock_total * price), 0),
			COUNT(*) FILTER (WHERE stock_total - stock_reserved <= 0),
			COUNT(*) FILTER (WHERE stock_total - stock_reserved <= low_stock_threshold)
		FROM products WHERE active = true`
	var s repository.ProductStockStats
	err := r.q.QueryRow(ctx, query).Scan(
		&s.ProductCount, &s.TotalUnits, &s.ReservedUnits, &s.StockValue, &s.OutOfStock, &s.LowStock,
	)
	if err != nil {
		return nil, fmt.Errorf("product stock stats: %w", err)
	}
	return &s, nil
}

// CountLedgerSince número de entradas del libro desde una fecha.
func (r *StatsRepo) CountLedgerSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_ledger WHERE created_at >= $1`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count ledger since: %w", err)
	}
	return n, nil
}

// ActionBreakdownSince entradas del libro por tipo de acción desde una fecha.
func (r *StatsRepo) ActionBreakdownSince(ctx context.Context, since time.Time) (map[entity.StockActionType]int64, error) {
	query := `
		SELECT action_type, COUNT(*)
		FROM stock_ledger WHERE created_at >= $1
		GROUP BY action_type`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("action breakdown: %w", err)
	}
	defer rows.Close()
	out := make(map[entity.StockActionType]int64)
	for rows.Next() {
		var action string
		var n int64
		if err := rows.Scan(&action, &n); err != nil {
			return nil, fmt.Errorf("scan action breakdown: %w", err)
		}
		out[entity.StockActionType(action)] = n
	}
	return out, rows.Err()
}
