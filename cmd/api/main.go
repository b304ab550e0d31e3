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

	appperf "github.com/shieldlab/ops-api/internal/application/performance"
	"github.com/shieldlab/ops-api/internal/application/settings"
	domperf "github.com/shieldlab/ops-api/internal/domain/performance"
	"github.com/shieldlab/ops-api/internal/infrastructure/configstore"
	"github.com/shieldlab/ops-api/internal/infrastructure/postgres"
	httpRouter "github.com/shieldlab/ops-api/internal/interfaces/http"
	"github.com/shieldlab/ops-api/pkg/config"
	"github.com/shieldlab/ops-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Report.Timezone).Msg("zona horaria inválida")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	orderRepo := postgres.NewOrderRepository(pool)
	kpiRepo := postgres.NewProductKPIRepository(pool)
	formulaStore := configstore.NewMarginFormulaStore(cfg.Report.FormulaPath)

	reportUC := appperf.NewReportUseCase(orderRepo, kpiRepo, formulaStore,
		domperf.DefaultRoster(), loc, log)
	marginFormulaUC := settings.NewMarginFormulaUseCase(formulaStore, nil, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Shieldlab Ops API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReportUC:        reportUC,
		MarginFormulaUC: marginFormulaUC,
		Location:        loc,
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
