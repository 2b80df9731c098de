package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AgroPedidos-api/internal/domain"
	"github.com/jhoicas/AgroPedidos-api/pkg/config"
)

func hmacHex(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_FirmaValida(t *testing.T) {
	g := NewGateway(config.PaymentConfig{KeySecret: "key-secret"})
	sig := hmacHex("key-secret", "gw_123|pay_456")
	assert.NoError(t, g.VerifySignature("gw_123", "pay_456", sig))
}

func TestVerifySignature_FirmaInvalida(t *testing.T) {
	g := NewGateway(config.PaymentConfig{KeySecret: "key-secret"})

	err := g.VerifySignature("gw_123", "pay_456", "deadbeef")
	assert.ErrorIs(t, err, domain.ErrSignatureMismatch)

	// Firma correcta pero de otra referencia.
	sig := hmacHex("key-secret", "gw_999|pay_456")
	err = g.VerifySignature("gw_123", "pay_456", sig)
	assert.ErrorIs(t, err, domain.ErrSignatureMismatch)
}

func TestVerifySignature_SinSecretDeshabilitada(t *testing.T) {
	// Solo dev: sin key secret cualquier firma pasa.
	g := NewGateway(config.PaymentConfig{})
	assert.NoError(t, g.VerifySignature("gw_123", "pay_456", "cualquiera"))
}

func TestVerifyWebhook(t *testing.T) {
	g := NewGateway(config.PaymentConfig{WebhookSecret: "wh-secret"})
	body := []byte(`{"event":"payment.captured","gateway_order_ref":"gw_1"}`)

	assert.NoError(t, g.VerifyWebhook(body, hmacHex("wh-secret", string(body))))

	err := g.VerifyWebhook(body, hmacHex("otro-secret", string(body)))
	assert.ErrorIs(t, err, domain.ErrSignatureMismatch)

	// El cuerpo alterado en tránsito invalida la firma original.
	sig := hmacHex("wh-secret", string(body))
	err = g.VerifyWebhook([]byte(`{"event":"payment.captured","gateway_order_ref":"gw_2"}`), sig)
	assert.ErrorIs(t, err, domain.ErrSignatureMismatch)
}

func TestParseWebhook(t *testing.T) {
	g := NewGateway(config.PaymentConfig{})

	ev, err := g.ParseWebhook([]byte(`{"event":"payment.captured","gateway_order_ref":"gw_1","payment_ref":"pay_1","signature":"abc"}`))
	require.NoError(t, err)
	assert.Equal(t, WebhookPaymentCaptured, ev.Type)
	assert.Equal(t, "gw_1", ev.GatewayOrderRef)
	assert.Equal(t, "pay_1", ev.PaymentRef)

	_, err = g.ParseWebhook([]byte(`{esto no es json`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = g.ParseWebhook([]byte(`{"payment_ref":"pay_1"}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin event ni gateway_order_ref")
}
