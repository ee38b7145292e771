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

	_ "github.com/kitakita/inventory-api/docs"
	appanalytics "github.com/kitakita/inventory-api/internal/application/analytics"
	"github.com/kitakita/inventory-api/internal/application/auth"
	"github.com/kitakita/inventory-api/internal/application/ledger"
	"github.com/kitakita/inventory-api/internal/application/usecase"
	infrapdf "github.com/kitakita/inventory-api/internal/infrastructure/pdf"
	"github.com/kitakita/inventory-api/internal/infrastructure/postgres"
	httpRouter "github.com/kitakita/inventory-api/internal/interfaces/http"
	"github.com/kitakita/inventory-api/pkg/config"
	"github.com/kitakita/inventory-api/pkg/logger"
)

// @title        Inventory API
// @version      1.0
// @description  API de inventario y ventas multiusuario.
// @securityDefinitions.apikey  Bearer
// @in    header
// @name  Authorization
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
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, supplierRepo, userRepo, pdfGenerator)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)

	// Motor transaccional: ventas, compras y ajustes comparten el mismo
	// runner para que todo movimiento de stock quede bajo FOR UPDATE.
	ledgerUC := ledger.NewLedgerUseCase(txRunner, productRepo, saleRepo, purchaseRepo, adjustmentRepo)

	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)
	reportsUC := appanalytics.NewReportsUseCase(analyticsRepo)

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
		Title:    "Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		SupplierUC:  supplierUC,
		LedgerUC:    ledgerUC,
		DashboardUC: dashboardUC,
		ReportsUC:   reportsUC,
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
