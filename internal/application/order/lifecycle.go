package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/AgroPedidos-api/internal/application/dto"
	"github.com/jhoicas/AgroPedidos-api/internal/application/inventory"
	"github.com/jhoicas/AgroPedidos-api/internal/domain"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/repository"
)

// LifecycleUseCase maneja las transiciones del pedido después de creado:
// envío de pago, confirmación (idempotente), fallo de pago, cancelación y
// avance del estado de entrega. Toda transición que toca stock corre en una
// transacción con la fila del pedido bloqueada (SELECT FOR UPDATE), de modo
// que webhooks duplicados y confirmaciones concurrentes se serialicen.
type LifecycleUseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
	stock     *inventory.StockUseCase
	verifier  PaymentVerifier
	notifier  Notifier
}

// NewLifecycleUseCase construye el caso de uso del ciclo de vida del pedido.
func NewLifecycleUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	stock *inventory.StockUseCase,
	verifier PaymentVerifier,
	notifier Notifier,
) *LifecycleUseCase {
	return &LifecycleUseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		stock:     stock,
		verifier:  verifier,
		notifier:  notifier,
	}
}

// SubmitPayment registra que el comprador inició el pago: guarda el método y
// la referencia del gateway. No toca el stock ni el estado del pedido; la
// reserva sigue vigente hasta la confirmación o la cancelación.
func (uc *LifecycleUseCase) SubmitPayment(ctx context.Context, orderID, userID string, req *dto.SubmitPaymentRequest) (*entity.Order, error) {
	var updated *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.ProductRepository,
		_ repository.StockLedgerRepository,
	) error {
		o, err := lockOrder(orderRepo, orderID)
		if err != nil {
			return err
		}
		if o.UserID != userID {
			return domain.ErrForbidden
		}
		if o.Status != entity.OrderStatusPendingPayment {
			return fmt.Errorf("%w: no se puede enviar pago de un pedido %s", domain.ErrIllegalTransition, o.Status)
		}
		if o.PaymentStatus == entity.PaymentStatusConfirmed {
			return fmt.Errorf("%w: el pago ya fue confirmado", domain.ErrIllegalTransition)
		}
		now := time.Now()
		if req.PaymentMethod != "" {
			o.PaymentMethod = req.PaymentMethod
		}
		o.PaymentStatus = entity.PaymentStatusSubmitted
		o.Payment.GatewayOrderRef = req.GatewayOrderRef
		o.UpdatedAt = now
		updated = o
		return orderRepo.Update(o)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ConfirmPayment confirma el pago de un pedido y descuenta el stock reservado.
// Es idempotente: una segunda confirmación (webhook reintentado, doble clic
// del staff) devuelve el pedido sin repetir el descuento. Con firma presente
// se verifica contra el gateway antes de tocar nada.
func (uc *LifecycleUseCase) ConfirmPayment(ctx context.Context, orderID, actorID string, req *dto.ConfirmPaymentRequest) (*entity.Order, error) {
	if req.Signature != "" {
		if err := uc.verifier.VerifySignature(req.GatewayOrderRef, req.PaymentRef, req.Signature); err != nil {
			return nil, err
		}
	}

	var (
		updated   *entity.Order
		alreadyOK bool
	)
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		ledgerRepo repository.StockLedgerRepository,
	) error {
		o, err := lockOrder(orderRepo, orderID)
		if err != nil {
			return err
		}
		// Chequeo de idempotencia con la fila ya bloqueada: el segundo webhook
		// espera el lock y al leer ve el pago confirmado.
		if o.PaymentStatus == entity.PaymentStatusConfirmed {
			updated, alreadyOK = o, true
			return nil
		}
		if o.Status != entity.OrderStatusPendingPayment {
			return fmt.Errorf("%w: no se puede confirmar pago de un pedido %s", domain.ErrIllegalTransition, o.Status)
		}

		now := time.Now()
		for _, it := range o.Items {
			if _, err := uc.stock.DeductInTx(productRepo, ledgerRepo, it.ProductID, it.Quantity, o.ID, actorID); err != nil {
				return err
			}
		}

		o.PaymentStatus = entity.PaymentStatusConfirmed
		if req.GatewayOrderRef != "" {
			o.Payment.GatewayOrderRef = req.GatewayOrderRef
		}
		o.Payment.PaymentRef = req.PaymentRef
		o.Payment.Signature = req.Signature
		o.Payment.PaidAt = &now
		o.InvoiceNumber = newInvoiceNumber(now)
		o.InvoiceDate = &now
		o.AppendStatus(entity.OrderStatusPaid, "pago confirmado", actorID, now)
		updated = o
		return orderRepo.Update(o)
	})
	if err != nil {
		return nil, err
	}
	if !alreadyOK && uc.notifier != nil {
		uc.notifier.NotifyOrderEvent(EventOrderPaid, updated, "")
	}
	return updated, nil
}

// ConfirmByGatewayRef resuelve el pedido por la referencia del gateway y
// delega en ConfirmPayment. Lo usa el webhook de pagos.
func (uc *LifecycleUseCase) ConfirmByGatewayRef(ctx context.Context, req *dto.ConfirmPaymentRequest) (*entity.Order, error) {
	o, err := uc.orderRepo.GetByGatewayRef(req.GatewayOrderRef)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: pedido con referencia %s", domain.ErrOrderNotFound, req.GatewayOrderRef)
	}
	return uc.ConfirmPayment(ctx, o.ID, "gateway", req)
}

// FailPayment marca el pago como fallido (webhook payment.failed). El pedido
// sigue en pending_payment con su reserva vigente para que el comprador
// reintente; la reserva solo se libera cancelando.
func (uc *LifecycleUseCase) FailPayment(ctx context.Context, gatewayOrderRef string) (*entity.Order, error) {
	var updated *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.ProductRepository,
		_ repository.StockLedgerRepository,
	) error {
		o, err := orderRepo.GetByGatewayRef(gatewayOrderRef)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("%w: pedido con referencia %s", domain.ErrOrderNotFound, gatewayOrderRef)
		}
		o, err = lockOrder(orderRepo, o.ID)
		if err != nil {
			return err
		}
		// Un fallo que llega después de la confirmación (reintento tardío del
		// gateway) no debe pisar el pago confirmado.
		if o.PaymentStatus == entity.PaymentStatusConfirmed {
			updated = o
			return nil
		}
		o.PaymentStatus = entity.PaymentStatusFailed
		o.UpdatedAt = time.Now()
		updated = o
		return orderRepo.Update(o)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Cancel cancela un pedido liberando su reserva. Solo es posible mientras el
// pago no esté confirmado: después de confirmado el stock ya salió y la
// devolución requiere un flujo de reembolso que no existe aquí. La cancelación
// es idempotente y nunca borra el pedido.
func (uc *LifecycleUseCase) Cancel(ctx context.Context, orderID, actorID, reason string) (*entity.Order, error) {
	var (
		updated   *entity.Order
		alreadyOK bool
	)
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		ledgerRepo repository.StockLedgerRepository,
	) error {
		o, err := lockOrder(orderRepo, orderID)
		if err != nil {
			return err
		}
		if o.Status == entity.OrderStatusCancelled {
			updated, alreadyOK = o, true
			return nil
		}
		if o.PaymentStatus == entity.PaymentStatusConfirmed {
			return fmt.Errorf("%w: el pago ya fue confirmado; la devolución requiere reembolso", domain.ErrIllegalTransition)
		}
		if !entity.CanTransition(o.Status, entity.OrderStatusCancelled) {
			return fmt.Errorf("%w: no se puede cancelar un pedido %s", domain.ErrIllegalTransition, o.Status)
		}

		now := time.Now()
		// La reserva solo existe mientras el pedido espera el pago.
		if o.Status == entity.OrderStatusPendingPayment {
			for _, it := range o.Items {
				if _, err := uc.stock.ReleaseInTx(productRepo, ledgerRepo, it.ProductID, it.Quantity, o.ID, actorID, reason); err != nil {
					return err
				}
			}
		}

		o.CancelReason = reason
		o.CancelledAt = &now
		o.CancelledBy = actorID
		o.AppendStatus(entity.OrderStatusCancelled, reason, actorID, now)
		updated = o
		return orderRepo.Update(o)
	})
	if err != nil {
		return nil, err
	}
	if !alreadyOK && uc.notifier != nil {
		uc.notifier.NotifyOrderEvent(EventOrderCancelled, updated, reason)
	}
	return updated, nil
}

// UpdateStatus avanza el estado de entrega (paid → accepted → in_transit →
// delivered). paid y cancelled no se asignan por aquí: el primero solo lo
// produce la confirmación de pago y el segundo tiene su propia operación.
func (uc *LifecycleUseCase) UpdateStatus(ctx context.Context, orderID, actorID string, req *dto.UpdateOrderStatusRequest) (*entity.Order, error) {
	switch req.Status {
	case entity.OrderStatusAccepted, entity.OrderStatusInTransit, entity.OrderStatusDelivered:
	case entity.OrderStatusPaid:
		return nil, fmt.Errorf("%w: paid solo se asigna confirmando el pago", domain.ErrInvalidInput)
	case entity.OrderStatusCancelled:
		return nil, fmt.Errorf("%w: usar la operación de cancelación", domain.ErrInvalidInput)
	default:
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, req.Status)
	}

	var (
		updated *entity.Order
		noop    bool
	)
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.ProductRepository,
		_ repository.StockLedgerRepository,
	) error {
		o, err := lockOrder(orderRepo, orderID)
		if err != nil {
			return err
		}
		if o.Status == req.Status {
			updated, noop = o, true
			return nil
		}
		if !entity.CanTransition(o.Status, req.Status) {
			return fmt.Errorf("%w: de %s a %s", domain.ErrIllegalTransition, o.Status, req.Status)
		}
		o.AppendStatus(req.Status, req.Note, actorID, time.Now())
		updated = o
		return orderRepo.Update(o)
	})
	if err != nil {
		return nil, err
	}
	if !noop && uc.notifier != nil {
		uc.notifier.NotifyOrderEvent(EventOrderStatusChanged, updated, req.Note)
	}
	return updated, nil
}

// lockOrder obtiene el pedido con su fila bloqueada o ErrOrderNotFound.
func lockOrder(orderRepo repository.OrderRepository, orderID string) (*entity.Order, error) {
	o, err := orderRepo.GetForUpdate(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	return o, nil
}

// newInvoiceNumber genera el número de factura al confirmar el pago.
func newInvoiceNumber(t time.Time) string {
	return fmt.Sprintf("INV-%s-%s", t.Format("20060102"), uuid.New().String()[:8])
}
