// Package inventory contiene las reglas puras de contabilidad de stock.
// Levels es el único camino para calcular una mutación de stock: las seis
// operaciones nombradas son su superficie pública completa y ningún otro
// código escribe StockTotal/StockReserved directamente.
package inventory

import (
	"strings"

	"github.com/jhoicas/AgroPedidos-api/internal/domain"
)

// Levels valor inmutable con los contadores de stock de un producto.
// Invariante: 0 <= reservado <= total; disponible nunca negativo.
type Levels struct {
	total    int64
	reserved int64
}

// NewLevels construye el valor desde los contadores persistidos.
func NewLevels(total, reserved int64) Levels {
	return Levels{total: total, reserved: reserved}
}

// Total unidades físicas totales.
func (l Levels) Total() int64 { return l.total }

// Reserved unidades retenidas por pedidos en curso.
func (l Levels) Reserved() int64 { return l.reserved }

// Available unidades elegibles para nuevas reservas (total - reservado).
func (l Levels) Available() int64 { return l.total - l.reserved }

// Add entrada de mercancía: total += quantity.
func (l Levels) Add(quantity int64) (Levels, error) {
	if quantity <= 0 {
		return l, domain.ErrInvalidQuantity
	}
	l.total += quantity
	return l, nil
}

// Adjust ajuste manual con delta con signo y motivo obligatorio.
// El resultado debe dejar total >= 0 y total >= reservado.
func (l Levels) Adjust(delta int64, reason string) (Levels, error) {
	if delta == 0 {
		return l, domain.ErrInvalidQuantity
	}
	if strings.TrimSpace(reason) == "" {
		return l, domain.ErrMissingReason
	}
	newTotal := l.total + delta
	if newTotal < 0 {
		return l, domain.ErrNegativeStock
	}
	if newTotal < l.reserved {
		return l, domain.ErrBelowReserved
	}
	l.total = newTotal
	return l, nil
}

// Reserve retiene unidades disponibles para un pedido: reservado += quantity.
func (l Levels) Reserve(quantity int64) (Levels, error) {
	if quantity <= 0 {
		return l, domain.ErrInvalidQuantity
	}
	if l.Available() < quantity {
		return l, domain.ErrInsufficientStock
	}
	l.reserved += quantity
	return l, nil
}

// Release devuelve unidades reservadas al disponible: reservado -= quantity.
func (l Levels) Release(quantity int64) (Levels, error) {
	if quantity <= 0 {
		return l, domain.ErrInvalidQuantity
	}
	if l.reserved < quantity {
		return l, domain.ErrOverRelease
	}
	l.reserved -= quantity
	return l, nil
}

// Deduct convierte una reserva en salida definitiva: total y reservado -= quantity.
func (l Levels) Deduct(quantity int64) (Levels, error) {
	if quantity <= 0 {
		return l, domain.ErrInvalidQuantity
	}
	if l.reserved < quantity {
		return l, domain.ErrOverDeduct
	}
	l.total -= quantity
	l.reserved -= quantity
	return l, nil
}

// MarkDamaged da de baja unidades dañadas/vencidas del disponible; el stock
// reservado no puede darse de baja (pertenece a pedidos en curso).
func (l Levels) MarkDamaged(quantity int64, reason string) (Levels, error) {
	if quantity <= 0 {
		return l, domain.ErrInvalidQuantity
	}
	if strings.TrimSpace(reason) == "" {
		return l, domain.ErrMissingReason
	}
	if l.Available() < quantity {
		return l, domain.ErrInsufficientAvailable
	}
	l.total -= quantity
	return l, nil
}
