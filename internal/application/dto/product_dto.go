package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
// El stock inicial se carga después con el motor de inventario (ADD), nunca aquí.
type CreateProductRequest struct {
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Category          string          `json:"category"`
	Unit              string          `json:"unit"`
	Price             decimal.Decimal `json:"price"`
	TaxRate           decimal.Decimal `json:"tax_rate"`
	LowStockThreshold int64           `json:"low_stock_threshold"`
}

// UpdateProductRequest body para PUT /api/products/:id. Solo campos de catálogo.
type UpdateProductRequest struct {
	Name              string           `json:"name,omitempty"`
	Description       string           `json:"description,omitempty"`
	Category          string           `json:"category,omitempty"`
	Unit              string           `json:"unit,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	TaxRate           *decimal.Decimal `json:"tax_rate,omitempty"`
	LowStockThreshold *int64           `json:"low_stock_threshold,omitempty"`
	Active            *bool            `json:"active,omitempty"`
}

// ProductResponse representación HTTP del producto con stock derivado.
type ProductResponse struct {
	ID                string          `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Category          string          `json:"category"`
	Unit              string          `json:"unit"`
	Price             decimal.Decimal `json:"price"`
	TaxRate           decimal.Decimal `json:"tax_rate"`
	StockTotal        int64           `json:"stock_total"`
	StockReserved     int64           `json:"stock_reserved"`
	StockAvailable    int64           `json:"stock_available"`
	LowStockThreshold int64           `json:"low_stock_threshold"`
	LowStock          bool            `json:"low_stock"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToProductResponse convierte la entidad a su representación HTTP.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.Name,
		Description:       p.Description,
		Category:          p.Category,
		Unit:              p.Unit,
		Price:             p.Price,
		TaxRate:           p.TaxRate,
		StockTotal:        p.StockTotal,
		StockReserved:     p.StockReserved,
		StockAvailable:    p.StockAvailable(),
		LowStockThreshold: p.LowStockThreshold,
		LowStock:          p.LowStock(),
		Active:            p.Active,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
