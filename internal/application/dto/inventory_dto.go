package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
)

// StockMovementRequest body para las operaciones de stock administrativas
// (POST /api/inventory/add, /adjust, /damaged).
type StockMovementRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"` // ADJUST admite delta negativo; el resto exige > 0
	Reason    string `json:"reason,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// MovementResponse producto actualizado + entrada del libro generada.
type MovementResponse struct {
	Product ProductResponse     `json:"product"`
	Entry   LedgerEntryResponse `json:"ledger_entry"`
}

// LedgerEntryResponse entrada del libro de auditoría de stock.
type LedgerEntryResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	Action       string    `json:"action_type"`
	Quantity     int64     `json:"quantity"`
	PrevTotal    int64     `json:"previous_stock_total"`
	PrevReserved int64     `json:"previous_stock_reserved"`
	NewTotal     int64     `json:"new_stock_total"`
	NewReserved  int64     `json:"new_stock_reserved"`
	PerformedBy  string    `json:"performed_by"`
	OrderID      string    `json:"order_id,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToLedgerEntryResponse convierte la entidad a su representación HTTP.
func ToLedgerEntryResponse(e *entity.StockLedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:           e.ID,
		ProductID:    e.ProductID,
		Action:       string(e.Action),
		Quantity:     e.Quantity,
		PrevTotal:    e.PrevTotal,
		PrevReserved: e.PrevReserved,
		NewTotal:     e.NewTotal,
		NewReserved:  e.NewReserved,
		PerformedBy:  e.PerformedBy,
		OrderID:      e.OrderID,
		Reason:       e.Reason,
		Notes:        e.Notes,
		CreatedAt:    e.CreatedAt,
	}
}

// LedgerPageResponse página del libro de auditoría.
type LedgerPageResponse struct {
	Logs       []LedgerEntryResponse `json:"logs"`
	Pagination PageResponse          `json:"pagination"`
}

// ProductStockStatsResponse agregados de stock del catálogo.
type ProductStockStatsResponse struct {
	Count         int64           `json:"count"`
	TotalUnits    int64           `json:"total_units"`
	ReservedUnits int64           `json:"reserved_units"`
	StockValue    decimal.Decimal `json:"stock_value"`
	OutOfStock    int64           `json:"out_of_stock"`
	LowStock      int64           `json:"low_stock"`
}

// InventoryStatsResponse respuesta de GET /api/inventory/stats.
type InventoryStatsResponse struct {
	Products            ProductStockStatsResponse `json:"products"`
	RecentActivityCount int64                     `json:"recent_activity_count"`
	ActionBreakdown     map[string]int64          `json:"action_breakdown"`
}
