package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroPedidos-api/internal/application/dto"
	"github.com/jhoicas/AgroPedidos-api/internal/application/inventory"
	"github.com/jhoicas/AgroPedidos-api/internal/domain"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/repository"
)

// Eventos que emite el ciclo de vida del pedido hacia el despachador
// de notificaciones.
const (
	EventOrderCreated       = "order.created"
	EventOrderPaid          = "order.paid"
	EventOrderCancelled     = "order.cancelled"
	EventOrderStatusChanged = "order.status_changed"
)

// CreateOrderUseCase crea pedidos reservando stock de forma atómica:
// pedido, líneas y todas las reservas (con sus entradas en el libro)
// confirman o revierten juntas en una sola transacción.
type CreateOrderUseCase struct {
	txRunner TxRunner
	userRepo repository.UserRepository
	stock    *inventory.StockUseCase
	notifier Notifier
}

// NewCreateOrderUseCase construye el caso de uso de creación de pedidos.
func NewCreateOrderUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	stock *inventory.StockUseCase,
	notifier Notifier,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner: txRunner,
		userRepo: userRepo,
		stock:    stock,
		notifier: notifier,
	}
}

// Execute valida el carrito, congela snapshots de cliente y productos,
// reserva el stock de cada línea y persiste el pedido en pending_payment.
// Si cualquier línea no tiene stock suficiente, ninguna reserva queda
// aplicada y no se crea el pedido.
func (uc *CreateOrderUseCase) Execute(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*entity.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: el pedido debe tener al menos un ítem", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(req.Items))
	for _, it := range req.Items {
		if it.ProductID == "" {
			return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidQuantity)
		}
		if seen[it.ProductID] {
			return nil, fmt.Errorf("%w: ítem duplicado para el producto %s", domain.ErrInvalidInput, it.ProductID)
		}
		seen[it.ProductID] = true
	}
	if req.ShippingAddress.Line1 == "" || req.ShippingAddress.City == "" {
		return nil, fmt.Errorf("%w: la dirección de envío requiere línea 1 y ciudad", domain.ErrInvalidInput)
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	order := &entity.Order{
		ID:              uuid.New().String(),
		OrderNumber:     newOrderNumber(now),
		UserID:          user.ID,
		Customer:        user.Snapshot(),
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Status:          entity.OrderStatusPendingPayment,
		PaymentStatus:   entity.PaymentStatusPending,
		PaymentMethod:   req.PaymentMethod,
		CustomerNotes:   req.CustomerNotes,
		ShippingCost:    decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	order.AppendStatus(entity.OrderStatusPendingPayment, "pedido creado", user.ID, now)

	var reserved []*entity.Product
	err = uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		ledgerRepo repository.StockLedgerRepository,
	) error {
		reserved = reserved[:0]
		subtotal := decimal.Zero
		taxTotal := decimal.Zero
		order.Items = order.Items[:0]

		for _, it := range req.Items {
			// ReserveInTx bloquea la fila del producto y valida el disponible;
			// el snapshot se toma del producto ya bloqueado para que el precio
			// congelado coincida con el que vio la reserva.
			res, err := uc.stock.ReserveInTx(productRepo, ledgerRepo, it.ProductID, it.Quantity, order.ID, user.ID)
			if err != nil {
				return err
			}
			p := res.Product
			if !p.Active {
				return fmt.Errorf("%w: %q no está disponible para la venta", domain.ErrInvalidInput, p.Name)
			}
			reserved = append(reserved, p)

			qty := decimal.NewFromInt(it.Quantity)
			lineSubtotal := p.Price.Mul(qty)
			lineTax := lineSubtotal.Mul(p.TaxRate)
			order.Items = append(order.Items, entity.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: p.ID,
				Product:   p.Snapshot(),
				Quantity:  it.Quantity,
				UnitPrice: p.Price,
				Discount:  decimal.Zero,
				Subtotal:  lineSubtotal,
				TaxRate:   p.TaxRate,
				TaxAmount: lineTax,
				Total:     lineSubtotal.Add(lineTax),
			})
			subtotal = subtotal.Add(lineSubtotal)
			taxTotal = taxTotal.Add(lineTax)
		}

		// El total se calcula una sola vez al crear; nunca se recalcula después.
		order.Subtotal = subtotal
		order.TaxTotal = taxTotal
		grand := subtotal.Add(taxTotal).Add(order.ShippingCost)
		rounded := grand.Round(2)
		order.RoundOff = rounded.Sub(grand)
		order.TotalAmount = rounded

		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.NotifyOrderEvent(EventOrderCreated, order, "")
		for _, p := range reserved {
			if p.LowStock() {
				uc.notifier.NotifyLowStock(p)
			}
		}
	}
	return order, nil
}

// newOrderNumber genera un número legible y único: fecha + fragmento de uuid.
func newOrderNumber(t time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", t.Format("20060102"), uuid.New().String()[:8])
}
