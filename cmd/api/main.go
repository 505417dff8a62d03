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

	"github.com/kaimfung/InventoryDashboard/internal/application/report"
	"github.com/kaimfung/InventoryDashboard/internal/domain/repository"
	infrapdf "github.com/kaimfung/InventoryDashboard/internal/infrastructure/pdf"
	"github.com/kaimfung/InventoryDashboard/internal/infrastructure/postgres"
	"github.com/kaimfung/InventoryDashboard/internal/infrastructure/sheets"
	httpRouter "github.com/kaimfung/InventoryDashboard/internal/interfaces/http"
	"github.com/kaimfung/InventoryDashboard/pkg/config"
	"github.com/kaimfung/InventoryDashboard/pkg/logger"
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

	// Origen de snapshots: Google Sheets detrás de un caché con TTL.
	client := sheets.NewClient(cfg.Sheets.BaseURL, cfg.Sheets.SpreadsheetID, cfg.Sheets.APIKey)
	source := sheets.NewCachedSource(client, time.Duration(cfg.Sheets.CacheTTLSecs)*time.Second)

	// Histórico de faltantes en PostgreSQL (opcional, ARCHIVE_ENABLED).
	var archive repository.ReportArchiveRepository
	if cfg.DB.Archive {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		archive = postgres.NewReportArchiveRepository(pool)
		log.Info().Msg("archivo de corridas habilitado")
	}

	pdfGenerator := infrapdf.NewMarotoReportGenerator()

	reportUC := report.NewReportUseCase(source)
	lowStockUC := report.NewLowStockUseCase(source, archive, pdfGenerator, log)

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
		Title:    "Inventory Dashboard API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReportUC:   reportUC,
		LowStockUC: lowStockUC,
		JWTSecret:  cfg.JWT.Secret,
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
