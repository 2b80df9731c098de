package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo mayorista (semillas, fertilizantes,
// plaguicidas). Los campos de stock (StockTotal, StockReserved) se mutan
// exclusivamente a través del motor de inventario; el CRUD de catálogo nunca los toca.
type Product struct {
	ID                string
	SKU               string // código único
	Name              string
	Description       string
	Category          string          // seeds, fertilizers, pesticides, ...
	Unit              string          // kg, litro, bulto, unidad
	Price             decimal.Decimal // precio de venta mayorista
	TaxRate           decimal.Decimal // IVA: 0, 0.05 (5%), 0.19 (19%)
	StockTotal        int64           // unidades físicas totales (>= 0)
	StockReserved     int64           // unidades retenidas por pedidos en curso (0 <= reservado <= total)
	LowStockThreshold int64           // dispara alerta cuando disponible <= umbral
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// StockAvailable devuelve el stock disponible para nuevas reservas (total - reservado).
// Es un valor derivado, nunca se persiste.
func (p *Product) StockAvailable() int64 {
	return p.StockTotal - p.StockReserved
}

// LowStock indica si el disponible está en o por debajo del umbral de alerta.
func (p *Product) LowStock() bool {
	return p.StockAvailable() <= p.LowStockThreshold
}

// Snapshot devuelve la copia congelada del producto que se incrusta en las
// líneas de pedido, para que ediciones posteriores del catálogo no alteren
// pedidos históricos.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		SKU:      p.SKU,
		Name:     p.Name,
		Category: p.Category,
		Unit:     p.Unit,
		Price:    p.Price,
		TaxRate:  p.TaxRate,
	}
}

// ProductSnapshot copia denormalizada de los datos del producto al momento del pedido.
type ProductSnapshot struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
	TaxRate  decimal.Decimal `json:"tax_rate"`
}
