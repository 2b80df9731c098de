package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/AgroPedidos-api/internal/application/auth"
	"github.com/jhoicas/AgroPedidos-api/internal/application/inventory"
	"github.com/jhoicas/AgroPedidos-api/internal/application/notification"
	"github.com/jhoicas/AgroPedidos-api/internal/application/order"
	"github.com/jhoicas/AgroPedidos-api/internal/application/usecase"
	infrapayment "github.com/jhoicas/AgroPedidos-api/internal/infrastructure/payment"
	infrapdf "github.com/jhoicas/AgroPedidos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/AgroPedidos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/AgroPedidos-api/internal/interfaces/http"
	"github.com/jhoicas/AgroPedidos-api/pkg/config"
	"github.com/jhoicas/AgroPedidos-api/pkg/logger"

	_ "github.com/jhoicas/AgroPedidos-api/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	ledgerRepo := postgres.NewStockLedgerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Despachador de notificaciones: las operaciones encolan y siguen; el envío
	// de correos nunca bloquea ni revierte una transacción de negocio.
	dispatcher := notification.NewDispatcher(cfg.SMTP, log)
	dispatcher.Start()
	defer dispatcher.Stop()

	gateway := infrapayment.NewGateway(cfg.Payment)

	stockUC := inventory.NewStockUseCase(txRunner, dispatcher)
	invQueryUC := inventory.NewQueryUseCase(ledgerRepo, productRepo, statsRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	createOrderUC := order.NewCreateOrderUseCase(txRunner, userRepo, stockUC, dispatcher)
	lifecycleUC := order.NewLifecycleUseCase(txRunner, orderRepo, stockUC, gateway, dispatcher)
	orderQueryUC := order.NewQueryUseCase(orderRepo)
	invoicePDF := infrapdf.NewInvoiceGenerator("AgroPedidos")
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AgroPedidos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		StockUC:     stockUC,
		InvQueryUC:  invQueryUC,
		CreateOrder: createOrderUC,
		Lifecycle:   lifecycleUC,
		OrderQuery:  orderQueryUC,
		InvoicePDF:  invoicePDF,
		Gateway:     gateway,
		Logger:      log,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
