package domain

import "errors"

// Errores de dominio (sin dependencias externas). Se comparan con errors.Is;
// los casos de uso pueden envolverlos con fmt.Errorf("%w: ...") para añadir contexto
// (producto, cantidad disponible, estado actual) sin romper la clasificación.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrOrderNotFound      = errors.New("pedido no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Errores del motor de inventario. Cada operación valida sus precondiciones
	// antes de escribir; si falla, no se persiste nada.
	ErrInvalidQuantity       = errors.New("cantidad inválida")
	ErrMissingReason         = errors.New("se requiere un motivo")
	ErrNegativeStock         = errors.New("el ajuste dejaría el stock total en negativo")
	ErrBelowReserved         = errors.New("el ajuste dejaría el stock total por debajo del reservado")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrOverRelease           = errors.New("liberación mayor que el stock reservado")
	ErrOverDeduct            = errors.New("descuento mayor que el stock reservado")
	ErrInsufficientAvailable = errors.New("stock disponible insuficiente")

	// Errores del ciclo de vida de pedidos.
	ErrIllegalTransition = errors.New("transición de estado no permitida")
	ErrSignatureMismatch = errors.New("firma de pago inválida")
)
