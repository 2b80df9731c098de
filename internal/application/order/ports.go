package order

import (
	"context"

	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del ciclo de vida del pedido atados a esa tx. La creación
// de un pedido multi-ítem reserva todas sus líneas aquí: si una falla,
// el rollback deshace el pedido y todas las reservas anteriores.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		ledgerRepo repository.StockLedgerRepository,
	) error) error
}

// PaymentVerifier verifica la firma que el gateway adjunta a cada
// confirmación de pago. Una firma inválida debe rechazar la confirmación
// sin tocar el stock.
type PaymentVerifier interface {
	VerifySignature(gatewayOrderRef, paymentRef, signature string) error
}

// Notifier consumidor fire-and-forget de eventos del pedido. Un fallo de
// notificación nunca revierte la transición que lo originó.
type Notifier interface {
	NotifyOrderEvent(eventType string, order *entity.Order, note string)
	NotifyLowStock(product *entity.Product)
}
