package entity

import "time"

// StockActionType tipo de mutación de stock. Conjunto cerrado: cualquier otro
// valor es rechazado por Valid() antes de tocar la base de datos.
type StockActionType string

const (
	StockActionAdd     StockActionType = "ADD"     // entrada de mercancía
	StockActionAdjust  StockActionType = "ADJUST"  // ajuste manual con motivo (delta con signo)
	StockActionReserve StockActionType = "RESERVE" // retención por pedido en curso
	StockActionRelease StockActionType = "RELEASE" // liberación de una reserva (cancelación)
	StockActionDeduct  StockActionType = "DEDUCT"  // descuento definitivo al confirmar pago
	StockActionDamaged StockActionType = "DAMAGED" // baja por daño/vencimiento (requiere motivo)
)

// Valid indica si el tipo de acción pertenece al conjunto cerrado.
func (a StockActionType) Valid() bool {
	switch a {
	case StockActionAdd, StockActionAdjust, StockActionReserve,
		StockActionRelease, StockActionDeduct, StockActionDamaged:
		return true
	}
	return false
}

// StockLedgerEntry registro inmutable de auditoría de una mutación de stock.
// Se crea en la misma transacción que la actualización del producto y nunca
// se actualiza ni se borra (colección append-only).
//
// Convención de signo en Quantity: ADD/RESERVE/RELEASE/DEDUCT guardan la
// magnitud positiva aplicada; ADJUST guarda el delta con signo; DAMAGED guarda
// la magnitud en negativo (stock que sale del total).
type StockLedgerEntry struct {
	ID           string
	ProductID    string
	Action       StockActionType
	Quantity     int64
	PrevTotal    int64
	PrevReserved int64
	NewTotal     int64
	NewReserved  int64
	PerformedBy  string // actor responsable
	OrderID      string // referencia al pedido, vacío en operaciones administrativas
	Reason       string // obligatorio en ADJUST y DAMAGED
	Notes        string
	CreatedAt    time.Time
}
