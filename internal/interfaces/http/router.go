package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/AgroPedidos-api/internal/application/auth"
	"github.com/jhoicas/AgroPedidos-api/internal/application/inventory"
	"github.com/jhoicas/AgroPedidos-api/internal/application/order"
	"github.com/jhoicas/AgroPedidos-api/internal/application/usecase"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
	"github.com/jhoicas/AgroPedidos-api/internal/infrastructure/payment"
	"github.com/jhoicas/AgroPedidos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	StockUC     *inventory.StockUseCase
	InvQueryUC  *inventory.QueryUseCase
	CreateOrder *order.CreateOrderUseCase
	Lifecycle   *order.LifecycleUseCase
	OrderQuery  *order.QueryUseCase
	InvoicePDF  InvoicePDF
	Gateway     *payment.Gateway
	Logger      *logger.Logger
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Webhooks del gateway (público; autenticado por firma HMAC del cuerpo)
	webhookHandler := NewWebhookHandler(deps.Gateway, deps.Lifecycle, deps.Logger)
	api.Post("/webhooks/payment", webhookHandler.HandlePayment)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	staffOnly := RequireRole(entity.RoleAdmin, entity.RoleStaff)

	// Products: lectura para todos los autenticados, escritura solo staff
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", staffOnly, productHandler.Create)
	products.Put("/:id", staffOnly, productHandler.Update)

	// Inventory: todas las operaciones son de staff
	invGroup := protected.Group("/inventory", staffOnly)
	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.InvQueryUC)
	invGroup.Post("/add", inventoryHandler.AddStock)
	invGroup.Post("/adjust", inventoryHandler.AdjustStock)
	invGroup.Post("/damaged", inventoryHandler.MarkDamaged)
	invGroup.Get("/logs", inventoryHandler.GetLogs)
	invGroup.Get("/stats", inventoryHandler.GetStats)
	invGroup.Get("/low-stock", inventoryHandler.ListLowStock)
	invGroup.Get("/out-of-stock", inventoryHandler.ListOutOfStock)

	// Orders
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.Lifecycle, deps.OrderQuery, deps.InvoicePDF)
	orders.Post("/", orderHandler.Create)
	orders.Get("/mine", orderHandler.ListMine)
	orders.Get("/", staffOnly, orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/invoice.pdf", orderHandler.InvoicePDF)
	orders.Post("/:id/payment", orderHandler.SubmitPayment)
	orders.Post("/:id/cancel", orderHandler.Cancel)
	orders.Post("/:id/confirm-payment", staffOnly, orderHandler.ConfirmPayment)
	orders.Patch("/:id/status", staffOnly, orderHandler.UpdateStatus)
}
