package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/AgroPedidos-api/internal/domain"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/AgroPedidos-api/internal/domain/inventory"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/repository"
)

// StockUseCase es el motor de inventario: el único escritor de los campos de
// stock del producto. Cada operación lee la fila bloqueada (SELECT FOR UPDATE),
// calcula los nuevos contadores con domaininv.Levels y persiste producto +
// entrada del libro en una sola transacción (todo o nada).
type StockUseCase struct {
	txRunner TxRunner
	notifier Notifier
}

// NewStockUseCase construye el motor de inventario.
func NewStockUseCase(txRunner TxRunner, notifier Notifier) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, notifier: notifier}
}

// MovementResult producto actualizado + entrada del libro creada por la operación.
type MovementResult struct {
	Product *entity.Product
	Entry   *entity.StockLedgerEntry
}

// movement describe una mutación pendiente: la acción del libro, la función
// pura que la aplica sobre Levels y la convención de signo de Quantity.
type movement struct {
	action   entity.StockActionType
	apply    func(domaininv.Levels) (domaininv.Levels, error)
	quantity int64 // valor a registrar en el libro (con signo según la convención)
	orderID  string
	reason   string
	notes    string
	actorID  string
}

// AddStock entrada de mercancía: stock_total += quantity.
func (uc *StockUseCase) AddStock(ctx context.Context, productID string, quantity int64, actorID, notes string) (*MovementResult, error) {
	return uc.applyMovement(ctx, productID, movement{
		action:   entity.StockActionAdd,
		apply:    func(l domaininv.Levels) (domaininv.Levels, error) { return l.Add(quantity) },
		quantity: quantity,
		notes:    notes,
		actorID:  actorID,
	})
}

// AdjustStock ajuste manual con delta con signo; el motivo es obligatorio.
func (uc *StockUseCase) AdjustStock(ctx context.Context, productID string, delta int64, actorID, reason string) (*MovementResult, error) {
	return uc.applyMovement(ctx, productID, movement{
		action:   entity.StockActionAdjust,
		apply:    func(l domaininv.Levels) (domaininv.Levels, error) { return l.Adjust(delta, reason) },
		quantity: delta,
		reason:   reason,
		actorID:  actorID,
	})
}

// ReserveStock retiene unidades disponibles contra un pedido en curso.
func (uc *StockUseCase) ReserveStock(ctx context.Context, productID string, quantity int64, orderID, actorID string) (*MovementResult, error) {
	return uc.applyMovement(ctx, productID, movement{
		action:   entity.StockActionReserve,
		apply:    func(l domaininv.Levels) (domaininv.Levels, error) { return l.Reserve(quantity) },
		quantity: quantity,
		orderID:  orderID,
		actorID:  actorID,
	})
}

// ReleaseStock devuelve al disponible unidades reservadas (cancelación antes del pago).
func (uc *StockUseCase) ReleaseStock(ctx context.Context, productID string, quantity int64, orderID, actorID, reason string) (*MovementResult, error) {
	return uc.applyMovement(ctx, productID, movement{
		action:   entity.StockActionRelease,
		apply:    func(l domaininv.Levels) (domaininv.Levels, error) { return l.Release(quantity) },
		quantity: quantity,
		orderID:  orderID,
		reason:   reason,
		actorID:  actorID,
	})
}

// DeductStock convierte la reserva en salida definitiva (pago confirmado).
func (uc *StockUseCase) DeductStock(ctx context.Context, productID string, quantity int64, orderID, actorID string) (*MovementResult, error) {
	return uc.applyMovement(ctx, productID, movement{
		action:   entity.StockActionDeduct,
		apply:    func(l domaininv.Levels) (domaininv.Levels, error) { return l.Deduct(quantity) },
		quantity: quantity,
		orderID:  orderID,
		actorID:  actorID,
	})
}

// MarkDamaged baja por daño o vencimiento; se registra en negativo en el libro.
func (uc *StockUseCase) MarkDamaged(ctx context.Context, productID string, quantity int64, actorID, reason string) (*MovementResult, error) {
	return uc.applyMovement(ctx, productID, movement{
		action:   entity.StockActionDamaged,
		apply:    func(l domaininv.Levels) (domaininv.Levels, error) { return l.MarkDamaged(quantity, reason) },
		quantity: -quantity,
		reason:   reason,
		actorID:  actorID,
	})
}

// applyMovement ejecuta la mutación dentro de una transacción y, tras el commit,
// emite la alerta de stock bajo si la operación redujo el disponible hasta el umbral.
func (uc *StockUseCase) applyMovement(ctx context.Context, productID string, m movement) (*MovementResult, error) {
	var res *MovementResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.StockLedgerRepository,
	) error {
		var err error
		res, err = applyLocked(productRepo, ledgerRepo, productID, m)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Alerta fire-and-forget fuera de la transacción: un fallo al notificar
	// nunca revierte la operación de stock.
	if uc.notifier != nil && reducesAvailable(res.Entry) && res.Product.LowStock() {
		uc.notifier.NotifyLowStock(res.Product)
	}
	return res, nil
}

// ReserveInTx aplica una reserva usando los repositorios del caller (misma
// transacción). Lo usa la creación de pedidos para que todas las reservas de
// un pedido multi-ítem confirmen o reviertan juntas.
func (uc *StockUseCase) ReserveInTx(
	productRepo repository.ProductRepository,
	ledgerRepo repository.StockLedgerRepository,
	productID string, quantity int64, orderID, actorID string,
) (*MovementResult, error) {
	return applyLocked(productRepo, ledgerRepo, productID, movement{
		action:   entity.StockActionReserve,
		apply:    func(l domaininv.Levels) (domaininv.Levels, error) { return l.Reserve(quantity) },
		quantity: quantity,
		orderID:  orderID,
		actorID:  actorID,
	})
}

// ReleaseInTx libera una reserva en la transacción del caller (cancelación de pedido).
func (uc *StockUseCase) ReleaseInTx(
	productRepo repository.ProductRepository,
	ledgerRepo repository.StockLedgerRepository,
	productID string, quantity int64, orderID, actorID, reason string,
) (*MovementResult, error) {
	return applyLocked(productRepo, ledgerRepo, productID, movement{
		action:   entity.StockActionRelease,
		apply:    func(l domaininv.Levels) (domaininv.Levels, error) { return l.Release(quantity) },
		quantity: quantity,
		orderID:  orderID,
		reason:   reason,
		actorID:  actorID,
	})
}

// DeductInTx descuenta una reserva en la transacción del caller (confirmación de pago).
func (uc *StockUseCase) DeductInTx(
	productRepo repository.ProductRepository,
	ledgerRepo repository.StockLedgerRepository,
	productID string, quantity int64, orderID, actorID string,
) (*MovementResult, error) {
	return applyLocked(productRepo, ledgerRepo, productID, movement{
		action:   entity.StockActionDeduct,
		apply:    func(l domaininv.Levels) (domaininv.Levels, error) { return l.Deduct(quantity) },
		quantity: quantity,
		orderID:  orderID,
		actorID:  actorID,
	})
}

// applyLocked bloquea la fila del producto, valida y aplica la mutación, y
// persiste producto + entrada del libro. Ante cualquier error no se escribe nada.
func applyLocked(
	productRepo repository.ProductRepository,
	ledgerRepo repository.StockLedgerRepository,
	productID string, m movement,
) (*MovementResult, error) {
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}

	prev := domaininv.NewLevels(product.StockTotal, product.StockReserved)
	next, err := m.apply(prev)
	if err != nil {
		if err == domain.ErrInsufficientStock || err == domain.ErrInsufficientAvailable {
			// El mensaje al usuario nombra el producto y el disponible actual.
			return nil, fmt.Errorf("%w: %q tiene %d %s disponibles",
				err, product.Name, prev.Available(), product.Unit)
		}
		return nil, err
	}

	now := time.Now()
	product.StockTotal = next.Total()
	product.StockReserved = next.Reserved()
	product.UpdatedAt = now
	if err := productRepo.UpdateStock(product); err != nil {
		return nil, err
	}

	entry := &entity.StockLedgerEntry{
		ID:           uuid.New().String(),
		ProductID:    product.ID,
		Action:       m.action,
		Quantity:     m.quantity,
		PrevTotal:    prev.Total(),
		PrevReserved: prev.Reserved(),
		NewTotal:     next.Total(),
		NewReserved:  next.Reserved(),
		PerformedBy:  m.actorID,
		OrderID:      m.orderID,
		Reason:       m.reason,
		Notes:        m.notes,
		CreatedAt:    now,
	}
	if err := ledgerRepo.Create(entry); err != nil {
		return nil, err
	}
	return &MovementResult{Product: product, Entry: entry}, nil
}

// reducesAvailable indica si la entrada redujo el stock disponible
// (RESERVE, DAMAGED o ADJUST negativo); solo esas disparan alerta de stock bajo.
func reducesAvailable(e *entity.StockLedgerEntry) bool {
	prevAvail := e.PrevTotal - e.PrevReserved
	newAvail := e.NewTotal - e.NewReserved
	return newAvail < prevAvail
}
