package inventory

import (
	"context"

	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la escritura de stock y su
// entrada en el libro de auditoría se confirman o revierten juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.StockLedgerRepository,
	) error) error
}

// Notifier consumidor fire-and-forget de alertas de stock. Un fallo de
// notificación nunca debe fallar la operación de stock que la originó.
type Notifier interface {
	NotifyLowStock(product *entity.Product)
}
