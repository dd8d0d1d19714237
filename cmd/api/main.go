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
	appaccess "github.com/jhoicas/Almacen-api/internal/application/access"
	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/reports"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/access"
	infrapdf "github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
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
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	costCenterRepo := postgres.NewCostCenterRepository(pool)
	operationRepo := postgres.NewStockOperationRepository(pool)
	accessRepo := postgres.NewWarehouseAccessRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Filtro de acceso: decide qué bodegas ve y edita cada actor
	accessFilter := access.NewFilter(accessRepo)
	recorder := audit.NewRecorder(auditRepo, log)
	auditQueries := audit.NewQueries(auditRepo)

	ledgerUC := ledger.NewUseCase(
		txRunner, accessFilter,
		productRepo, warehouseRepo, brandRepo, costCenterRepo, operationRepo,
		recorder, log,
	)
	ledgerQueries := ledger.NewQueries(accessFilter, postgres.NewInventoryRepository(pool), operationRepo, productRepo, warehouseRepo)
	accessUC := appaccess.NewUseCase(accessRepo, userRepo, warehouseRepo, recorder, log)
	authUC := auth.NewUseCase(userRepo, cfg.JWT, recorder, log)
	productUC := usecase.NewProductUseCase(productRepo, brandRepo, recorder, log)
	userUC := usecase.NewUserUseCase(userRepo, recorder, log)

	// PDF: resumen gerencial de inventario
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportUC := reports.NewUseCase(reportRepo, productRepo, pdfGenerator, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestIDMiddleware(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacen API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		LedgerUC:  ledgerUC,
		LedgerQ:   ledgerQueries,
		AccessUC:  accessUC,
		ProductUC: productUC,
		UserUC:    userUC,
		AuditQ:    auditQueries,
		ReportUC:  reportUC,
		JWTSecret: cfg.JWT.Secret,
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
