package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido. delivered y cancelled son terminales.
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusAccepted       = "accepted"
	OrderStatusInTransit      = "in_transit"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// Estados de pago.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSubmitted = "submitted"
	PaymentStatusConfirmed = "confirmed"
	PaymentStatusFailed    = "failed"
)

// orderTransitions define la máquina de estados del pedido.
// cancelled es alcanzable desde pending_payment, paid y accepted (no desde
// in_transit ni delivered); el camino feliz avanza en orden estricto.
var orderTransitions = map[string][]string{
	OrderStatusPendingPayment: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:           {OrderStatusAccepted, OrderStatusCancelled},
	OrderStatusAccepted:       {OrderStatusInTransit, OrderStatusCancelled},
	OrderStatusInTransit:      {OrderStatusDelivered},
	OrderStatusDelivered:      {},
	OrderStatusCancelled:      {},
}

// CanTransition indica si la máquina de estados permite pasar de from a to.
func CanTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TerminalStatus indica si el estado no admite más transiciones.
func TerminalStatus(status string) bool {
	return len(orderTransitions[status]) == 0
}

// StatusChange entrada del historial de estados del pedido.
type StatusChange struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
	Note   string    `json:"note,omitempty"`
	By     string    `json:"by,omitempty"` // actor (usuario, empleado o "gateway")
}

// CustomerSnapshot copia congelada de los datos del comprador al momento del pedido.
type CustomerSnapshot struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
}

// Address dirección de envío o facturación incrustada en el pedido.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// PaymentDetails referencias del gateway de pago.
type PaymentDetails struct {
	GatewayOrderRef string     `json:"gateway_order_ref,omitempty"`
	PaymentRef      string     `json:"payment_ref,omitempty"`
	Signature       string     `json:"signature,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
}

// OrderItem línea de pedido con snapshot del producto y montos calculados al crear.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Product   ProductSnapshot
	Quantity  int64
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Subtotal  decimal.Decimal // (unit_price - discount) * quantity
	TaxRate   decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal // subtotal + tax_amount
}

// Order agregado transaccional de una compra. Los snapshots (cliente y producto)
// se congelan al crear; TotalAmount se calcula una sola vez y nunca se recalcula
// tras la confirmación. El pedido nunca se borra físicamente: la cancelación es
// un estado terminal, no una eliminación.
type Order struct {
	ID               string
	OrderNumber      string // único, generado al crear
	UserID           string
	Customer         CustomerSnapshot
	ShippingAddress  Address
	BillingAddress   *Address // nil = igual a la de envío
	Items            []OrderItem
	Subtotal         decimal.Decimal
	TaxTotal         decimal.Decimal
	ShippingCost     decimal.Decimal
	RoundOff         decimal.Decimal
	TotalAmount      decimal.Decimal
	Status           string
	StatusHistory    []StatusChange
	PaymentStatus    string
	PaymentMethod    string // online, transfer, credit
	Payment          PaymentDetails
	InvoiceNumber    string // asignado al confirmar el pago
	InvoiceDate      *time.Time
	CustomerNotes    string
	AssignedEmployee string
	CancelReason     string
	CancelledAt      *time.Time
	CancelledBy      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AppendStatus registra una transición en el historial y actualiza el estado.
func (o *Order) AppendStatus(status, note, by string, at time.Time) {
	o.Status = status
	o.StatusHistory = append(o.StatusHistory, StatusChange{
		Status: status,
		At:     at,
		Note:   note,
		By:     by,
	})
	o.UpdatedAt = at
}
