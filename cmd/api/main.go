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
	appanalytics "github.com/tu-usuario/libreria-stock/internal/application/analytics"
	"github.com/tu-usuario/libreria-stock/internal/application/dto"
	"github.com/tu-usuario/libreria-stock/internal/application/ledger"
	"github.com/tu-usuario/libreria-stock/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/libreria-stock/internal/interfaces/http"
	"github.com/tu-usuario/libreria-stock/pkg/config"
	"github.com/tu-usuario/libreria-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
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

	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	bookRepo := postgres.NewBookRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := ledger.NewUseCase(txRunner, stockRepo, movementRepo, bookRepo, log)
	classificationUC := appanalytics.NewClassificationUseCase(stockRepo, bookRepo, analyticsRepo, cfg.Analytics, log)
	replenishmentUC := appanalytics.NewReplenishmentUseCase(stockRepo, bookRepo, analyticsRepo, cfg.Replenishment, cfg.Analytics, log)
	obsolescenceUC := appanalytics.NewObsolescenceUseCase(stockRepo, bookRepo, analyticsRepo, cfg.Analytics, log)
	reportUC := appanalytics.NewReportUseCase(classificationUC, replenishmentUC, obsolescenceUC, stockRepo, bookRepo, cfg.Analytics, log)

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
		Title:    "Librería Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:         ledgerUC,
		ReportUC:         reportUC,
		ReplenishmentUC:  replenishmentUC,
		StockRepo:        stockRepo,
		BookRepo:         bookRepo,
		OverstockCeiling: cfg.Analytics.OverstockCeiling,
		JWTSecret:        cfg.JWT.Secret,
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
