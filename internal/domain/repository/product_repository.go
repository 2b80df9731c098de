package repository

import "github.com/jhoicas/AgroPedidos-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos del catálogo.
// Los campos de stock solo se escriben vía UpdateStock, y únicamente dentro
// de la transacción de una operación del motor de inventario.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(onlyActive bool, limit, offset int) ([]*entity.Product, error)
	// Update escribe solo campos de catálogo (nombre, precio, umbral, etc.);
	// nunca toca stock_total/stock_reserved.
	Update(product *entity.Product) error
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar mutaciones de stock concurrentes.
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock persiste únicamente stock_total y stock_reserved.
	UpdateStock(product *entity.Product) error
	// ListLowStock productos con disponible <= umbral de alerta.
	ListLowStock(limit, offset int) ([]*entity.Product, error)
	// ListOutOfStock productos con disponible <= 0.
	ListOutOfStock(limit, offset int) ([]*entity.Product, error)
}
