package repository

import "github.com/jhoicas/AgroPedidos-api/internal/domain/entity"

// OrderRepository puerto de persistencia para pedidos (cabecera + líneas).
type OrderRepository interface {
	// Create persiste el pedido con sus líneas en la transacción actual.
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila del pedido (SELECT FOR UPDATE) para que
	// transiciones concurrentes (webhook duplicado, staff + gateway) se serialicen.
	GetForUpdate(id string) (*entity.Order, error)
	GetByGatewayRef(gatewayOrderRef string) (*entity.Order, error)
	// Update persiste cabecera, historial y estado de pago; las líneas son
	// inmutables después de Create.
	Update(order *entity.Order) error
	ListByUser(userID string, limit, offset int) ([]*entity.Order, error)
	List(status string, limit, offset int) ([]*entity.Order, error)
}
