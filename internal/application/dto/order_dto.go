package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
)

// OrderItemRequest línea del carrito al crear un pedido.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress entity.Address     `json:"shipping_address"`
	BillingAddress  *entity.Address    `json:"billing_address,omitempty"`
	CustomerNotes   string             `json:"customer_notes,omitempty"`
	PaymentMethod   string             `json:"payment_method"` // online, transfer, credit
}

// SubmitPaymentRequest body para POST /api/orders/:id/payment.
// Registra método y referencia del gateway; no afecta el stock.
type SubmitPaymentRequest struct {
	PaymentMethod   string `json:"payment_method"`
	GatewayOrderRef string `json:"gateway_order_ref,omitempty"`
}

// ConfirmPaymentRequest body para POST /api/orders/:id/confirm-payment.
// Con firma presente se verifica contra el gateway; sin firma es una
// confirmación manual de staff (transferencia, crédito).
type ConfirmPaymentRequest struct {
	GatewayOrderRef string `json:"gateway_order_ref,omitempty"`
	PaymentRef      string `json:"payment_ref,omitempty"`
	Signature       string `json:"signature,omitempty"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// CancelOrderRequest body para POST /api/orders/:id/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

// OrderItemResponse línea de pedido con snapshot y montos congelados.
type OrderItemResponse struct {
	ID        string                 `json:"id"`
	ProductID string                 `json:"product_id"`
	Product   entity.ProductSnapshot `json:"product_snapshot"`
	Quantity  int64                  `json:"quantity"`
	UnitPrice decimal.Decimal        `json:"unit_price"`
	Discount  decimal.Decimal        `json:"discount"`
	Subtotal  decimal.Decimal        `json:"subtotal"`
	TaxAmount decimal.Decimal        `json:"tax_amount"`
	Total     decimal.Decimal        `json:"total"`
}

// OrderResponse representación HTTP del pedido.
type OrderResponse struct {
	ID               string                  `json:"id"`
	OrderNumber      string                  `json:"order_number"`
	UserID           string                  `json:"user_id"`
	Customer         entity.CustomerSnapshot `json:"customer_snapshot"`
	ShippingAddress  entity.Address          `json:"shipping_address"`
	BillingAddress   *entity.Address         `json:"billing_address,omitempty"`
	Items            []OrderItemResponse     `json:"items"`
	Subtotal         decimal.Decimal         `json:"subtotal"`
	TaxTotal         decimal.Decimal         `json:"tax_total"`
	ShippingCost     decimal.Decimal         `json:"shipping_cost"`
	RoundOff         decimal.Decimal         `json:"round_off"`
	TotalAmount      decimal.Decimal         `json:"total_amount"`
	Status           string                  `json:"status"`
	StatusHistory    []entity.StatusChange   `json:"status_history"`
	PaymentStatus    string                  `json:"payment_status"`
	PaymentMethod    string                  `json:"payment_method,omitempty"`
	Payment          entity.PaymentDetails   `json:"payment_details"`
	InvoiceNumber    string                  `json:"invoice_number,omitempty"`
	InvoiceDate      *time.Time              `json:"invoice_date,omitempty"`
	CustomerNotes    string                  `json:"customer_notes,omitempty"`
	AssignedEmployee string                  `json:"assigned_employee,omitempty"`
	CancelReason     string                  `json:"cancel_reason,omitempty"`
	CancelledAt      *time.Time              `json:"cancelled_at,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// ToOrderResponse convierte la entidad a su representación HTTP.
func ToOrderResponse(o *entity.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		UserID:           o.UserID,
		Customer:         o.Customer,
		ShippingAddress:  o.ShippingAddress,
		BillingAddress:   o.BillingAddress,
		Items:            make([]OrderItemResponse, 0, len(o.Items)),
		Subtotal:         o.Subtotal,
		TaxTotal:         o.TaxTotal,
		ShippingCost:     o.ShippingCost,
		RoundOff:         o.RoundOff,
		TotalAmount:      o.TotalAmount,
		Status:           o.Status,
		StatusHistory:    o.StatusHistory,
		PaymentStatus:    o.PaymentStatus,
		PaymentMethod:    o.PaymentMethod,
		Payment:          o.Payment,
		InvoiceNumber:    o.InvoiceNumber,
		InvoiceDate:      o.InvoiceDate,
		CustomerNotes:    o.CustomerNotes,
		AssignedEmployee: o.AssignedEmployee,
		CancelReason:     o.CancelReason,
		CancelledAt:      o.CancelledAt,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Product:   it.Product,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
			Subtotal:  it.Subtotal,
			TaxAmount: it.TaxAmount,
			Total:     it.Total,
		})
	}
	return resp
}
