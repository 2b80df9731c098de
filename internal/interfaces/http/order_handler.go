package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/AgroPedidos-api/internal/application/dto"
	"github.com/jhoicas/AgroPedidos-api/internal/application/order"
	"github.com/jhoicas/AgroPedidos-api/internal/domain"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
)

// InvoicePDF genera el PDF de la factura de un pedido pagado.
type InvoicePDF interface {
	GenerateOrderInvoice(o *entity.Order) ([]byte, error)
}

// OrderHandler maneja el ciclo de vida del pedido por HTTP.
type OrderHandler struct {
	create    *order.CreateOrderUseCase
	lifecycle *order.LifecycleUseCase
	query     *order.QueryUseCase
	invoice   InvoicePDF
}

// NewOrderHandler construye el handler.
func NewOrderHandler(
	create *order.CreateOrderUseCase,
	lifecycle *order.LifecycleUseCase,
	query *order.QueryUseCase,
	invoice InvoicePDF,
) *OrderHandler {
	return &OrderHandler{create: create, lifecycle: lifecycle, query: query, invoice: invoice}
}

// Create godoc
// @Summary      Crear pedido (reserva stock de todas las líneas o de ninguna)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "items, shipping_address, payment_method"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	o, err := h.create.Execute(c.Context(), GetUserID(c), &in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToOrderResponse(o))
}

// GetByID godoc
// @Summary      Obtener pedido (retailer solo ve los suyos)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Order ID (UUID)"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	o, err := h.query.Get(c.Context(), c.Params("id"), GetUserID(c), GetRole(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToOrderResponse(o))
}

// ListMine godoc
// @Summary      Pedidos del comprador autenticado
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página (desde 1)"
// @Param        limit  query  int  false  "Tamaño de página (max 100)"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders/mine [get]
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	orders, err := h.query.ListByUser(c.Context(), GetUserID(c), page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toOrderResponses(orders))
}

// List godoc
// @Summary      Pedidos de la plataforma (staff), opcionalmente por estado
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending_payment, paid, accepted, in_transit, delivered, cancelled"
// @Param        page    query  int     false  "Página (desde 1)"
// @Param        limit   query  int     false  "Tamaño de página (max 100)"
// @Success      200  {array}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	orders, err := h.query.List(c.Context(), c.Query("status"), page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toOrderResponses(orders))
}

// SubmitPayment godoc
// @Summary      Registrar inicio de pago (no toca el stock)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Order ID (UUID)"
// @Param        body  body  dto.SubmitPaymentRequest  true  "payment_method, gateway_order_ref"
// @Success      200   {object}  dto.OrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/payment [post]
func (h *OrderHandler) SubmitPayment(c *fiber.Ctx) error {
	var in dto.SubmitPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	o, err := h.lifecycle.SubmitPayment(c.Context(), c.Params("id"), GetUserID(c), &in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToOrderResponse(o))
}

// ConfirmPayment godoc
// @Summary      Confirmar pago (staff; idempotente, descuenta la reserva)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Order ID (UUID)"
// @Param        body  body  dto.ConfirmPaymentRequest  true  "payment_ref; signature opcional para verificación"
// @Success      200   {object}  dto.OrderResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/confirm-payment [post]
func (h *OrderHandler) ConfirmPayment(c *fiber.Ctx) error {
	var in dto.ConfirmPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	o, err := h.lifecycle.ConfirmPayment(c.Context(), c.Params("id"), GetUserID(c), &in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToOrderResponse(o))
}

// Cancel godoc
// @Summary      Cancelar pedido (libera la reserva; imposible tras confirmar el pago)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Order ID (UUID)"
// @Param        body  body  dto.CancelOrderRequest  true  "reason"
// @Success      200   {object}  dto.OrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// Un retailer solo cancela sus propios pedidos; staff y admin cualquiera.
	if GetRole(c) == entity.RoleRetailer {
		o, err := h.query.Get(c.Context(), c.Params("id"), GetUserID(c), GetRole(c))
		if err != nil {
			return errorResponse(c, err)
		}
		if o.UserID != GetUserID(c) {
			return errorResponse(c, domain.ErrForbidden)
		}
	}
	o, err := h.lifecycle.Cancel(c.Context(), c.Params("id"), GetUserID(c), in.Reason)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToOrderResponse(o))
}

// UpdateStatus godoc
// @Summary      Avanzar estado de entrega (staff): accepted, in_transit, delivered
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "Order ID (UUID)"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "status, note"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	o, err := h.lifecycle.UpdateStatus(c.Context(), c.Params("id"), GetUserID(c), &in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToOrderResponse(o))
}

// InvoicePDF godoc
// @Summary      Descargar factura en PDF (solo pedidos con pago confirmado)
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "Order ID (UUID)"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/invoice.pdf [get]
func (h *OrderHandler) InvoicePDF(c *fiber.Ctx) error {
	o, err := h.query.Get(c.Context(), c.Params("id"), GetUserID(c), GetRole(c))
	if err != nil {
		return errorResponse(c, err)
	}
	if o.InvoiceNumber == "" {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_INVOICE", Message: "el pedido aún no tiene pago confirmado"})
	}
	pdfBytes, err := h.invoice.GenerateOrderInvoice(o)
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+o.InvoiceNumber+`.pdf"`)
	return c.Send(pdfBytes)
}

func toOrderResponses(orders []*entity.Order) []*dto.OrderResponse {
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.ToOrderResponse(o))
	}
	return out
}
