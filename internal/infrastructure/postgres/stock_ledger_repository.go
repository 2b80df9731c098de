package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/repository"
)

var _ repository.StockLedgerRepository = (*StockLedgerRepo)(nil)

// StockLedgerRepo implementación del libro de auditoría sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only: no hay UPDATE ni DELETE.
type StockLedgerRepo struct {
	q Querier
}

// NewStockLedgerRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewStockLedgerRepository(q Querier) *StockLedgerRepo {
	return &StockLedgerRepo{q: q}
}

// Create persiste una entrada del libro.
func (r *StockLedgerRepo) Create(e *entity.StockLedgerEntry) error {
	query := `
		INSERT INTO stock_ledger (id, product_id, action_type, quantity,
			previous_stock_total, previous_stock_reserved, new_stock_total, new_stock_reserved,
			performed_by, order_id, reason, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	orderID := (*string)(nil)
	if e.OrderID != "" {
		orderID = &e.OrderID
	}
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.ProductID, string(e.Action), e.Quantity,
		e.PrevTotal, e.PrevReserved, e.NewTotal, e.NewReserved,
		e.PerformedBy, orderID, e.Reason, e.Notes, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

// List lista entradas del libro según filtros opcionales, más recientes
// primero, junto con el total de filas que cumplen el filtro.
func (r *StockLedgerRepo) List(f repository.LedgerFilter, limit, offset int) ([]*entity.StockLedgerEntry, int64, error) {
	where := ""
	args := []any{}
	pos := 1
	and := func(cond string, val any) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, pos)
		args = append(args, val)
		pos++
	}
	if f.ProductID != "" {
		and("product_id = $%d", f.ProductID)
	}
	if f.OrderID != "" {
		and("order_id = $%d", f.OrderID)
	}
	if f.Action != "" {
		and("action_type = $%d", string(f.Action))
	}
	if f.PerformedBy != "" {
		and("performed_by = $%d", f.PerformedBy)
	}
	if f.From != nil {
		and("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		and("created_at <= $%d", *f.To)
	}

	var total int64
	if err := r.q.QueryRow(context.Background(), "SELECT COUNT(*) FROM stock_ledger"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ledger entries: %w", err)
	}

	query := `
		SELECT id, product_id, action_type, quantity,
			previous_stock_total, previous_stock_reserved, new_stock_total, new_stock_reserved,
			performed_by, order_id, reason, notes, created_at
		FROM stock_ledger` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLedgerEntry
	for rows.Next() {
		var e entity.StockLedgerEntry
		var action string
		var orderID *string
		if err := rows.Scan(&e.ID, &e.ProductID, &action, &e.Quantity,
			&e.PrevTotal, &e.PrevReserved, &e.NewTotal, &e.NewReserved,
			&e.PerformedBy, &orderID, &e.Reason, &e.Notes, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.Action = entity.StockActionType(action)
		if orderID != nil {
			e.OrderID = *orderID
		}
		list = append(list, &e)
	}
	return list, total, rows.Err()
}
