package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/AgroPedidos-api/internal/application/dto"
	"github.com/jhoicas/AgroPedidos-api/internal/application/inventory"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/repository"
)

// InventoryHandler operaciones administrativas de stock y consultas del libro.
type InventoryHandler struct {
	stock *inventory.StockUseCase
	query *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockUseCase, query *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{stock: stock, query: query}
}

// AddStock godoc
// @Summary      Entrada de mercancía (ADD)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "product_id, quantity > 0, notes opcional"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/add [post]
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.stock.AddStock(c.Context(), in.ProductID, in.Quantity, GetUserID(c), in.Notes)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movementResponse(res))
}

// AdjustStock godoc
// @Summary      Ajuste manual de stock (ADJUST, delta con signo, motivo obligatorio)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "product_id, quantity (delta != 0), reason obligatorio"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.stock.AdjustStock(c.Context(), in.ProductID, in.Quantity, GetUserID(c), in.Reason)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movementResponse(res))
}

// MarkDamaged godoc
// @Summary      Baja por daño o vencimiento (DAMAGED, motivo obligatorio)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "product_id, quantity > 0, reason obligatorio"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/damaged [post]
func (h *InventoryHandler) MarkDamaged(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.stock.MarkDamaged(c.Context(), in.ProductID, in.Quantity, GetUserID(c), in.Reason)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movementResponse(res))
}

// GetLogs godoc
// @Summary      Libro de auditoría de stock (filtros opcionales)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Filtrar por producto (UUID)"
// @Param        order_id      query  string  false  "Filtrar por pedido (UUID)"
// @Param        action        query  string  false  "ADD, ADJUST, RESERVE, RELEASE, DEDUCT, DAMAGED"
// @Param        performed_by  query  string  false  "Filtrar por actor (UUID)"
// @Param        from          query  string  false  "Desde (RFC3339)"
// @Param        to            query  string  false  "Hasta (RFC3339)"
// @Param        page          query  int     false  "Página (desde 1)"
// @Param        limit         query  int     false  "Tamaño de página (max 100)"
// @Success      200  {object}  dto.LedgerPageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/logs [get]
func (h *InventoryHandler) GetLogs(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	filter := repository.LedgerFilter{
		ProductID:   c.Query("product_id"),
		OrderID:     c.Query("order_id"),
		Action:      entity.StockActionType(c.Query("action")),
		PerformedBy: c.Query("performed_by"),
	}
	if filter.Action != "" && !filter.Action.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "action desconocida"})
	}
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		filter.From = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		filter.To = &t
	}
	logs, err := h.query.GetLogs(c.Context(), filter, page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(logs)
}

// GetStats godoc
// @Summary      Dashboard de inventario: agregados de stock y actividad reciente
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryStatsResponse
// @Router       /api/inventory/stats [get]
func (h *InventoryHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.query.GetStats(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(stats)
}

// ListLowStock godoc
// @Summary      Productos con disponible en o bajo su umbral de alerta
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página (desde 1)"
// @Param        limit  query  int  false  "Tamaño de página (max 100)"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	products, err := h.query.ListLowStock(c.Context(), page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toProductResponses(products))
}

// ListOutOfStock godoc
// @Summary      Productos sin stock disponible
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página (desde 1)"
// @Param        limit  query  int  false  "Tamaño de página (max 100)"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/inventory/out-of-stock [get]
func (h *InventoryHandler) ListOutOfStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	products, err := h.query.ListOutOfStock(c.Context(), page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toProductResponses(products))
}

func movementResponse(res *inventory.MovementResult) dto.MovementResponse {
	return dto.MovementResponse{
		Product: dto.ToProductResponse(res.Product),
		Entry:   dto.ToLedgerEntryResponse(res.Entry),
	}
}

func toProductResponses(products []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ToProductResponse(p))
	}
	return out
}
