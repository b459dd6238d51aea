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

	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/insights"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/usecase"
	infraai "github.com/Prathamesh0412/Sentinel-Ops/internal/infrastructure/ai"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/infrastructure/demo"
	infrapdf "github.com/Prathamesh0412/Sentinel-Ops/internal/infrastructure/pdf"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/infrastructure/postgres"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/infrastructure/xlsx"
	httpRouter "github.com/Prathamesh0412/Sentinel-Ops/internal/interfaces/http"
	"github.com/Prathamesh0412/Sentinel-Ops/pkg/config"
	"github.com/Prathamesh0412/Sentinel-Ops/pkg/logger"
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
		Str("chart_backend", cfg.Insights.ChartBackend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// PostgreSQL es opcional: sin DATABASE_URL ni DB_HOST solo se sirven payloads y demo.
	var companies insights.CompanyDatasetLoader
	if cfg.DB.Configured() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		companies = postgres.NewDatasetRepository(pool)
	} else {
		log.Warn().Msg("sin base de datos configurada: /api/inventory-insights/company deshabilitado")
	}

	insightsUC := insights.NewUseCase(log.Zerolog(),
		insights.WithClusterSeed(cfg.Insights.ClusterSeed))

	if cfg.AI.AnthropicAPIKey == "" {
		log.Warn().Msg("ANTHROPIC_API_KEY vacío: la narrativa IA responderá 503")
	}
	narrativeUC := usecase.NewNarrativeUseCase(
		infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel))

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: las rutas protegidas rechazarán todo token")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventory Insights API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "database": companies != nil})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Insights:         insightsUC,
		Demo:             demo.NewSource(time.Now),
		PDF:              infrapdf.NewMarotoReportGenerator(),
		Chart:            xlsx.NewSalesChartRenderer(cfg.Insights.ChartBackend),
		Narrative:        narrativeUC,
		NarrativeLimiter: httpRouter.NewRateLimiter(cfg.Insights.NarrativeRPS, cfg.Insights.NarrativeBurst),
		Companies:        companies,
		JWTSecret:        cfg.JWT.Secret,
		Log:              log.Zerolog(),
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
