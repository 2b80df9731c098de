package order

import (
	"context"
	"fmt"

	"github.com/jhoicas/AgroPedidos-api/internal/application/dto"
	"github.com/jhoicas/AgroPedidos-api/internal/domain"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/repository"
)

// QueryUseCase lecturas del pedido para la API.
type QueryUseCase struct {
	orderRepo repository.OrderRepository
}

// NewQueryUseCase construye el caso de uso de consulta de pedidos.
func NewQueryUseCase(orderRepo repository.OrderRepository) *QueryUseCase {
	return &QueryUseCase{orderRepo: orderRepo}
}

// Get devuelve un pedido. Un retailer solo puede ver sus propios pedidos;
// staff y admin ven cualquiera.
func (uc *QueryUseCase) Get(ctx context.Context, orderID, requesterID, requesterRole string) (*entity.Order, error) {
	o, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	if requesterRole == entity.RoleRetailer && o.UserID != requesterID {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

// ListByUser pedidos del comprador autenticado, más recientes primero.
func (uc *QueryUseCase) ListByUser(ctx context.Context, userID string, page dto.PageRequest) ([]*entity.Order, error) {
	page.DefaultPage()
	return uc.orderRepo.ListByUser(userID, page.Limit, page.Offset())
}

// List pedidos de toda la plataforma, opcionalmente filtrados por estado.
func (uc *QueryUseCase) List(ctx context.Context, status string, page dto.PageRequest) ([]*entity.Order, error) {
	if status != "" {
		switch status {
		case entity.OrderStatusPendingPayment, entity.OrderStatusPaid, entity.OrderStatusAccepted,
			entity.OrderStatusInTransit, entity.OrderStatusDelivered, entity.OrderStatusCancelled:
		default:
			return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, status)
		}
	}
	page.DefaultPage()
	return uc.orderRepo.List(status, page.Limit, page.Offset())
}
