package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/AgroPedidos-api/internal/application/dto"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/repository"
)

// recentActivityWindow ventana móvil para actividad reciente y desglose por acción.
const recentActivityWindow = 30 * 24 * time.Hour

// QueryUseCase lecturas de inventario: libro de auditoría, estadísticas
// agregadas y listados de alerta. No muta estado, no requiere transacción.
type QueryUseCase struct {
	ledgerRepo  repository.StockLedgerRepository
	productRepo repository.ProductRepository
	statsRepo   repository.InventoryStatsRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(
	ledgerRepo repository.StockLedgerRepository,
	productRepo repository.ProductRepository,
	statsRepo repository.InventoryStatsRepository,
) *QueryUseCase {
	return &QueryUseCase{ledgerRepo: ledgerRepo, productRepo: productRepo, statsRepo: statsRepo}
}

// GetLogs lista entradas del libro con filtros opcionales, paginadas.
func (uc *QueryUseCase) GetLogs(ctx context.Context, filter repository.LedgerFilter, page dto.PageRequest) (*dto.LedgerPageResponse, error) {
	page.DefaultPage()
	entries, total, err := uc.ledgerRepo.List(filter, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	resp := &dto.LedgerPageResponse{
		Logs: make([]dto.LedgerEntryResponse, 0, len(entries)),
		Pagination: dto.PageResponse{
			Page:  page.Page,
			Limit: page.Limit,
			Total: total,
		},
	}
	for _, e := range entries {
		resp.Logs = append(resp.Logs, dto.ToLedgerEntryResponse(e))
	}
	return resp, nil
}

// GetStats estadísticas agregadas de stock y actividad del libro en los últimos 30 días.
func (uc *QueryUseCase) GetStats(ctx context.Context) (*dto.InventoryStatsResponse, error) {
	stats, err := uc.statsRepo.GetProductStockStats(ctx)
	if err != nil {
		return nil, err
	}
	since := time.Now().Add(-recentActivityWindow)
	recent, err := uc.statsRepo.CountLedgerSince(ctx, since)
	if err != nil {
		return nil, err
	}
	breakdown, err := uc.statsRepo.ActionBreakdownSince(ctx, since)
	if err != nil {
		return nil, err
	}

	byAction := make(map[string]int64, len(breakdown))
	for action, n := range breakdown {
		byAction[string(action)] = n
	}
	return &dto.InventoryStatsResponse{
		Products: dto.ProductStockStatsResponse{
			Count:         stats.ProductCount,
			TotalUnits:    stats.TotalUnits,
			ReservedUnits: stats.ReservedUnits,
			StockValue:    stats.StockValue,
			OutOfStock:    stats.OutOfStock,
			LowStock:      stats.LowStock,
		},
		RecentActivityCount: recent,
		ActionBreakdown:     byAction,
	}, nil
}

// ListLowStock productos con disponible en o por debajo de su umbral de alerta.
func (uc *QueryUseCase) ListLowStock(ctx context.Context, page dto.PageRequest) ([]*entity.Product, error) {
	page.DefaultPage()
	return uc.productRepo.ListLowStock(page.Limit, page.Offset())
}

// ListOutOfStock productos sin stock disponible (disponible <= 0).
func (uc *QueryUseCase) ListOutOfStock(ctx context.Context, page dto.PageRequest) ([]*entity.Product, error) {
	page.DefaultPage()
	return uc.productRepo.ListOutOfStock(page.Limit, page.Offset())
}
