package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/AgroPedidos-api/internal/application/order"
	"github.com/jhoicas/AgroPedidos-api/internal/domain"
	"github.com/jhoicas/AgroPedidos-api/pkg/config"
)

var _ order.PaymentVerifier = (*Gateway)(nil)

// Tipos de evento que envía el gateway por webhook.
const (
	WebhookPaymentCaptured = "payment.captured"
	WebhookPaymentFailed   = "payment.failed"
)

// Gateway adaptador del gateway de pagos. Verifica las firmas HMAC-SHA256
// que acompañan confirmaciones y webhooks; nunca llama al gateway por red
// (la confirmación llega siempre empujada por el gateway o por el staff).
type Gateway struct {
	cfg config.PaymentConfig
}

// NewGateway construye el adaptador con las credenciales de la app.
func NewGateway(cfg config.PaymentConfig) *Gateway {
	return &Gateway{cfg: cfg}
}

// VerifySignature valida la firma de una confirmación de pago:
// HMAC-SHA256(gateway_order_ref + "|" + payment_ref) con la key secret.
// Sin secret configurado (solo dev) la verificación queda deshabilitada.
func (g *Gateway) VerifySignature(gatewayOrderRef, paymentRef, signature string) error {
	if g.cfg.KeySecret == "" {
		return nil
	}
	expected := sign(g.cfg.KeySecret, gatewayOrderRef+"|"+paymentRef)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("%w: firma de pago inválida", domain.ErrSignatureMismatch)
	}
	return nil
}

// VerifyWebhook valida la firma del cuerpo crudo de un webhook con el
// webhook secret (header X-Webhook-Signature).
func (g *Gateway) VerifyWebhook(body []byte, signature string) error {
	if g.cfg.WebhookSecret == "" {
		return nil
	}
	mac := hmac.New(sha256.New, []byte(g.cfg.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("%w: firma de webhook inválida", domain.ErrSignatureMismatch)
	}
	return nil
}

// WebhookEvent payload normalizado de un webhook del gateway.
type WebhookEvent struct {
	Type            string `json:"event"`
	GatewayOrderRef string `json:"gateway_order_ref"`
	PaymentRef      string `json:"payment_ref"`
	Signature       string `json:"signature"`
}

// ParseWebhook decodifica el cuerpo del webhook ya verificado.
func (g *Gateway) ParseWebhook(body []byte) (*WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("%w: webhook malformado", domain.ErrInvalidInput)
	}
	if ev.Type == "" || ev.GatewayOrderRef == "" {
		return nil, fmt.Errorf("%w: webhook sin event o gateway_order_ref", domain.ErrInvalidInput)
	}
	return &ev, nil
}

func sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
