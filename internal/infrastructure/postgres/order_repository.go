package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/AgroPedidos-api/internal/domain"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, order_number, user_id, customer_snapshot, shipping_address, billing_address,
		subtotal, tax_total, shipping_cost, round_off, total_amount,
		status, status_history, payment_status, payment_method, payment_details,
		invoice_number, invoice_date, customer_notes, assigned_employee,
		cancel_reason, cancelled_at, cancelled_by, created_at, updated_at`

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
// Los snapshots, direcciones, historial y datos de pago van en columnas jsonb.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste cabecera y líneas del pedido en la transacción actual.
func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders (id, order_number, user_id, customer_snapshot, shipping_address, billing_address,
			subtotal, tax_total, shipping_cost, round_off, total_amount,
			status, status_history, payment_status, payment_method, payment_details,
			invoice_number, invoice_date, customer_notes, assigned_employee,
			cancel_reason, cancelled_at, cancelled_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.OrderNumber, o.UserID, o.Customer, o.ShippingAddress, o.BillingAddress,
		o.Subtotal, o.TaxTotal, o.ShippingCost, o.RoundOff, o.TotalAmount,
		o.Status, o.StatusHistory, o.PaymentStatus, o.PaymentMethod, o.Payment,
		o.InvoiceNumber, o.InvoiceDate, o.CustomerNotes, o.AssignedEmployee,
		o.CancelReason, o.CancelledAt, o.CancelledBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, product_snapshot, quantity,
			unit_price, discount, subtotal, tax_rate, tax_amount, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, it := range o.Items {
		if _, err := r.q.Exec(context.Background(), itemQuery,
			it.ID, it.OrderID, it.ProductID, it.Product, it.Quantity,
			it.UnitPrice, it.Discount, it.Subtotal, it.TaxRate, it.TaxAmount, it.Total,
		); err != nil {
			return fmt.Errorf("create order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un pedido con sus líneas (nil si no existe).
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate bloquea la fila del pedido para serializar transiciones concurrentes.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

// GetByGatewayRef resuelve un pedido por la referencia del gateway de pagos.
func (r *OrderRepo) GetByGatewayRef(gatewayOrderRef string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE payment_details->>'gateway_order_ref' = $1`
	return r.getOne(query, gatewayOrderRef)
}

// Update persiste cabecera, historial y estado de pago; las líneas son inmutables.
func (r *OrderRepo) Update(o *entity.Order) error {
	query := `
		UPDATE orders
		SET status = $2, status_history = $3, payment_status = $4, payment_method = $5,
			payment_details = $6, invoice_number = $7, invoice_date = $8,
			assigned_employee = $9, cancel_reason = $10, cancelled_at = $11, cancelled_by = $12,
			updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		o.ID, o.Status, o.StatusHistory, o.PaymentStatus, o.PaymentMethod,
		o.Payment, o.InvoiceNumber, o.InvoiceDate,
		o.AssignedEmployee, o.CancelReason, o.CancelledAt, o.CancelledBy,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// ListByUser pedidos de un comprador, más recientes primero.
func (r *OrderRepo) ListByUser(userID string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.listOrders(query, userID, limit, offset)
}

// List pedidos de la plataforma, opcionalmente filtrados por estado.
func (r *OrderRepo) List(status string, limit, offset int) ([]*entity.Order, error) {
	if status != "" {
		query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		return r.listOrders(query, status, limit, offset)
	}
	query := `SELECT ` + orderColumns + ` FROM orders
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.listOrders(query, limit, offset)
}

func (r *OrderRepo) getOne(query string, arg any) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepo) listOrders(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		if err := r.loadItems(o); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *OrderRepo) loadItems(o *entity.Order) error {
	query := `
		SELECT id, order_id, product_id, product_snapshot, quantity,
			unit_price, discount, subtotal, tax_rate, tax_amount, total
		FROM order_items WHERE order_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, o.ID)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Product, &it.Quantity,
			&it.UnitPrice, &it.Discount, &it.Subtotal, &it.TaxRate, &it.TaxAmount, &it.Total); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.Customer, &o.ShippingAddress, &o.BillingAddress,
		&o.Subtotal, &o.TaxTotal, &o.ShippingCost, &o.RoundOff, &o.TotalAmount,
		&o.Status, &o.StatusHistory, &o.PaymentStatus, &o.PaymentMethod, &o.Payment,
		&o.InvoiceNumber, &o.InvoiceDate, &o.CustomerNotes, &o.AssignedEmployee,
		&o.CancelReason, &o.CancelledAt, &o.CancelledBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
