package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AgroPedidos-api/internal/domain"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Add
// ──────────────────────────────────────────────────────────────────────────────

func TestAdd_SumaAlTotal(t *testing.T) {
	l, err := inventory.NewLevels(10, 3).Add(5)
	require.NoError(t, err)
	assert.Equal(t, int64(15), l.Total())
	assert.Equal(t, int64(3), l.Reserved(), "la reserva no cambia con una entrada")
	assert.Equal(t, int64(12), l.Available())
}

func TestAdd_CantidadNoPositiva(t *testing.T) {
	for _, q := range []int64{0, -4} {
		_, err := inventory.NewLevels(10, 0).Add(q)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_DeltaPositivoYNegativo(t *testing.T) {
	l, err := inventory.NewLevels(10, 2).Adjust(4, "conteo físico")
	require.NoError(t, err)
	assert.Equal(t, int64(14), l.Total())

	l, err = l.Adjust(-6, "merma detectada")
	require.NoError(t, err)
	assert.Equal(t, int64(8), l.Total())
	assert.Equal(t, int64(2), l.Reserved())
}

func TestAdjust_SinMotivo(t *testing.T) {
	_, err := inventory.NewLevels(10, 0).Adjust(-2, "   ")
	assert.ErrorIs(t, err, domain.ErrMissingReason)
}

func TestAdjust_DeltaCero(t *testing.T) {
	_, err := inventory.NewLevels(10, 0).Adjust(0, "nada")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestAdjust_NoPermiteTotalNegativo(t *testing.T) {
	_, err := inventory.NewLevels(5, 0).Adjust(-6, "error de conteo")
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
}

func TestAdjust_NoPermiteTotalBajoReservado(t *testing.T) {
	// Con 4 reservadas, el total no puede bajar de 4.
	_, err := inventory.NewLevels(10, 4).Adjust(-7, "merma")
	assert.ErrorIs(t, err, domain.ErrBelowReserved)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reserve / Release / Deduct
// ──────────────────────────────────────────────────────────────────────────────

func TestReserve_RetieneDisponible(t *testing.T) {
	l, err := inventory.NewLevels(10, 3).Reserve(5)
	require.NoError(t, err)
	assert.Equal(t, int64(10), l.Total(), "reservar no cambia el total")
	assert.Equal(t, int64(8), l.Reserved())
	assert.Equal(t, int64(2), l.Available())
}

func TestReserve_SinDisponibleSuficiente(t *testing.T) {
	// Total 10 pero 8 ya reservadas: solo hay 2 disponibles.
	_, err := inventory.NewLevels(10, 8).Reserve(3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestRelease_DevuelveAlDisponible(t *testing.T) {
	l, err := inventory.NewLevels(10, 5).Release(5)
	require.NoError(t, err)
	assert.Equal(t, int64(10), l.Total())
	assert.Equal(t, int64(0), l.Reserved())
}

func TestRelease_MasDeLoReservado(t *testing.T) {
	_, err := inventory.NewLevels(10, 2).Release(3)
	assert.ErrorIs(t, err, domain.ErrOverRelease)
}

func TestDeduct_ConvierteReservaEnSalida(t *testing.T) {
	l, err := inventory.NewLevels(10, 4).Deduct(4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), l.Total())
	assert.Equal(t, int64(0), l.Reserved())
	assert.Equal(t, int64(6), l.Available(), "el disponible no cambia al descontar una reserva")
}

func TestDeduct_MasDeLoReservado(t *testing.T) {
	_, err := inventory.NewLevels(10, 2).Deduct(5)
	assert.ErrorIs(t, err, domain.ErrOverDeduct)
}

func TestReserveLuegoRelease_VuelveAlEstadoInicial(t *testing.T) {
	inicial := inventory.NewLevels(20, 5)
	reservado, err := inicial.Reserve(7)
	require.NoError(t, err)
	liberado, err := reservado.Release(7)
	require.NoError(t, err)
	assert.Equal(t, inicial, liberado)
}

// ──────────────────────────────────────────────────────────────────────────────
// MarkDamaged
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkDamaged_BajaDelDisponible(t *testing.T) {
	l, err := inventory.NewLevels(10, 3).MarkDamaged(4, "vencido")
	require.NoError(t, err)
	assert.Equal(t, int64(6), l.Total())
	assert.Equal(t, int64(3), l.Reserved(), "la reserva pertenece a pedidos en curso y no se toca")
}

func TestMarkDamaged_NoTocaStockReservado(t *testing.T) {
	// 10 total, 8 reservadas: solo 2 elegibles para baja.
	_, err := inventory.NewLevels(10, 8).MarkDamaged(3, "daño en bodega")
	assert.ErrorIs(t, err, domain.ErrInsufficientAvailable)
}

func TestMarkDamaged_SinMotivo(t *testing.T) {
	_, err := inventory.NewLevels(10, 0).MarkDamaged(1, "")
	assert.ErrorIs(t, err, domain.ErrMissingReason)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariantes
// ──────────────────────────────────────────────────────────────────────────────

// Ninguna operación válida deja el disponible negativo ni la reserva por
// encima del total.
func TestInvariante_DisponibleNuncaNegativo(t *testing.T) {
	ops := []struct {
		name  string
		apply func(inventory.Levels) (inventory.Levels, error)
	}{
		{"add", func(l inventory.Levels) (inventory.Levels, error) { return l.Add(3) }},
		{"adjust", func(l inventory.Levels) (inventory.Levels, error) { return l.Adjust(-1, "x") }},
		{"reserve", func(l inventory.Levels) (inventory.Levels, error) { return l.Reserve(2) }},
		{"release", func(l inventory.Levels) (inventory.Levels, error) { return l.Release(1) }},
		{"deduct", func(l inventory.Levels) (inventory.Levels, error) { return l.Deduct(1) }},
		{"damaged", func(l inventory.Levels) (inventory.Levels, error) { return l.MarkDamaged(1, "x") }},
	}
	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			next, err := op.apply(inventory.NewLevels(10, 4))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, next.Available(), int64(0))
			assert.GreaterOrEqual(t, next.Total(), next.Reserved())
			assert.GreaterOrEqual(t, next.Reserved(), int64(0))
		})
	}
}
