package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
)

// ProductStockStats agregados de stock sobre todo el catálogo.
type ProductStockStats struct {
	ProductCount   int64
	TotalUnits     int64
	ReservedUnits  int64
	StockValue     decimal.Decimal // SUM(stock_total * price)
	OutOfStock     int64           // productos con disponible <= 0
	LowStock       int64           // productos con disponible <= umbral
}

// InventoryStatsRepository consultas de solo lectura para el dashboard de inventario.
type InventoryStatsRepository interface {
	GetProductStockStats(ctx context.Context) (*ProductStockStats, error)
	// CountLedgerSince número de entradas del libro desde una fecha (actividad reciente).
	CountLedgerSince(ctx context.Context, since time.Time) (int64, error)
	// ActionBreakdownSince entradas del libro por tipo de acción desde una fecha.
	ActionBreakdownSince(ctx context.Context, since time.Time) (map[entity.StockActionType]int64, error)
}
