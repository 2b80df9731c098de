package repository

import (
	"time"

	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
)

// LedgerFilter filtros para listar el libro de auditoría de stock.
// Todos los campos son opcionales; cero valor = sin filtro.
type LedgerFilter struct {
	ProductID   string
	OrderID     string
	Action      entity.StockActionType
	PerformedBy string
	From        *time.Time
	To          *time.Time
}

// StockLedgerRepository puerto del libro de auditoría (append-only: solo
// Create y lecturas; las entradas nunca se actualizan ni se borran).
type StockLedgerRepository interface {
	Create(entry *entity.StockLedgerEntry) error
	List(filter LedgerFilter, limit, offset int) ([]*entity.StockLedgerEntry, int64, error)
}
