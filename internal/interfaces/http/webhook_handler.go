package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/AgroPedidos-api/internal/application/dto"
	"github.com/jhoicas/AgroPedidos-api/internal/application/order"
	"github.com/jhoicas/AgroPedidos-api/internal/infrastructure/payment"
	"github.com/jhoicas/AgroPedidos-api/pkg/logger"
)

// WebhookHandler recibe los webhooks del gateway de pagos. La ruta es pública:
// la autenticidad la da la firma HMAC del cuerpo, no un token de usuario.
type WebhookHandler struct {
	gateway   *payment.Gateway
	lifecycle *order.LifecycleUseCase
	log       *logger.Logger
}

// NewWebhookHandler construye el handler de webhooks.
func NewWebhookHandler(gateway *payment.Gateway, lifecycle *order.LifecycleUseCase, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{gateway: gateway, lifecycle: lifecycle, log: log}
}

// HandlePayment godoc
// @Summary      Webhook del gateway de pagos (payment.captured, payment.failed)
// @Description  Verifica la firma HMAC del cuerpo (header X-Webhook-Signature) y
// @Description  aplica el evento. Los reintentos del gateway son seguros: la
// @Description  confirmación es idempotente.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Signature  header  string  true  "HMAC-SHA256 hex del cuerpo"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/webhooks/payment [post]
func (h *WebhookHandler) HandlePayment(c *fiber.Ctx) error {
	body := c.Body()
	if err := h.gateway.VerifyWebhook(body, c.Get("X-Webhook-Signature")); err != nil {
		h.log.Warn().Err(err).Msg("webhook de pago con firma inválida")
		return errorResponse(c, err)
	}
	ev, err := h.gateway.ParseWebhook(body)
	if err != nil {
		return errorResponse(c, err)
	}

	log := h.log.With().Str("event", ev.Type).Str("gateway_order_ref", ev.GatewayOrderRef).Logger()
	switch ev.Type {
	case payment.WebhookPaymentCaptured:
		o, err := h.lifecycle.ConfirmByGatewayRef(c.Context(), &dto.ConfirmPaymentRequest{
			GatewayOrderRef: ev.GatewayOrderRef,
			PaymentRef:      ev.PaymentRef,
			Signature:       ev.Signature,
		})
		if err != nil {
			log.Error().Err(err).Msg("fallo confirmando pago desde webhook")
			return errorResponse(c, err)
		}
		log.Info().Str("order_id", o.ID).Msg("pago confirmado desde webhook")
	case payment.WebhookPaymentFailed:
		o, err := h.lifecycle.FailPayment(c.Context(), ev.GatewayOrderRef)
		if err != nil {
			log.Error().Err(err).Msg("fallo marcando pago fallido desde webhook")
			return errorResponse(c, err)
		}
		log.Info().Str("order_id", o.ID).Msg("pago marcado como fallido desde webhook")
	default:
		// Eventos que no nos interesan se aceptan para que el gateway no reintente.
		log.Debug().Msg("evento de webhook ignorado")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
