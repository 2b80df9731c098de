package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
)

func TestCanTransition_CaminoFeliz(t *testing.T) {
	camino := []string{
		entity.OrderStatusPendingPayment,
		entity.OrderStatusPaid,
		entity.OrderStatusAccepted,
		entity.OrderStatusInTransit,
		entity.OrderStatusDelivered,
	}
	for i := 0; i < len(camino)-1; i++ {
		assert.True(t, entity.CanTransition(camino[i], camino[i+1]),
			"debe permitirse %s -> %s", camino[i], camino[i+1])
	}
}

func TestCanTransition_NoPermiteSaltos(t *testing.T) {
	assert.False(t, entity.CanTransition(entity.OrderStatusPendingPayment, entity.OrderStatusAccepted))
	assert.False(t, entity.CanTransition(entity.OrderStatusPaid, entity.OrderStatusDelivered))
	assert.False(t, entity.CanTransition(entity.OrderStatusAccepted, entity.OrderStatusDelivered))
}

func TestCanTransition_NoPermiteRetrocesos(t *testing.T) {
	assert.False(t, entity.CanTransition(entity.OrderStatusPaid, entity.OrderStatusPendingPayment))
	assert.False(t, entity.CanTransition(entity.OrderStatusDelivered, entity.OrderStatusInTransit))
}

func TestCanTransition_Cancelacion(t *testing.T) {
	// Cancelable desde los tres primeros estados.
	for _, from := range []string{
		entity.OrderStatusPendingPayment,
		entity.OrderStatusPaid,
		entity.OrderStatusAccepted,
	} {
		assert.True(t, entity.CanTransition(from, entity.OrderStatusCancelled), "desde %s", from)
	}
	// No cancelable en tránsito ni entregado.
	assert.False(t, entity.CanTransition(entity.OrderStatusInTransit, entity.OrderStatusCancelled))
	assert.False(t, entity.CanTransition(entity.OrderStatusDelivered, entity.OrderStatusCancelled))
}

func TestTerminalStatus(t *testing.T) {
	assert.True(t, entity.TerminalStatus(entity.OrderStatusDelivered))
	assert.True(t, entity.TerminalStatus(entity.OrderStatusCancelled))
	assert.False(t, entity.TerminalStatus(entity.OrderStatusPendingPayment))
	assert.False(t, entity.TerminalStatus(entity.OrderStatusInTransit))
}

func TestAppendStatus_RegistraHistorial(t *testing.T) {
	o := &entity.Order{Status: entity.OrderStatusPendingPayment}
	t1 := time.Now()
	o.AppendStatus(entity.OrderStatusPaid, "pago confirmado", "staff-1", t1)
	t2 := t1.Add(time.Hour)
	o.AppendStatus(entity.OrderStatusAccepted, "", "staff-2", t2)

	assert.Equal(t, entity.OrderStatusAccepted, o.Status)
	assert.Len(t, o.StatusHistory, 2)
	assert.Equal(t, entity.OrderStatusPaid, o.StatusHistory[0].Status)
	assert.Equal(t, "staff-1", o.StatusHistory[0].By)
	assert.Equal(t, t2, o.UpdatedAt)
}
