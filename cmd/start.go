package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-sync/core/config"
	"catalog-sync/core/loader"
	"catalog-sync/core/logger"
	"catalog-sync/core/middleware/auth"
	"catalog-sync/core/middleware/rayid"
	"catalog-sync/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "catalog-sync/docs/swagger"
)

// @title Catalog Sync API
// @version 1.0
// @description API for synchronizing and querying the WooCommerce product mirror.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// shutdownTimeout bounds how long shutdown waits for a running sync.
const shutdownTimeout = 30 * time.Second

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog sync server",
	Long:  `Starts the HTTP server, the sync scheduler and all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Build the catalog service (database, remote client, lease, archive, metrics)
		svc, err := buildService(cmd.Context(), cfg, logg, prometheus.DefaultRegisterer)
		if err != nil {
			logg.Fatal("Failed to initialize catalog service", zap.Error(err))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 5. Middleware Registration
		// RayID first so every log line can be traced
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Debug("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Public: cfg.Server.PublicPrefixes()}))

		// 6. Operational endpoints (public by default)
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 7. Load Features
		mgr := loader.NewManager()
		mgr.Register(catalog.NewFeature(svc))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 8. Start Scheduler
		var scheduler *catalog.Scheduler
		if cfg.Sync.ScheduleEnabled() {
			scheduler, err = catalog.NewScheduler(svc, cfg.Sync.Schedule, logg)
			if err != nil {
				logg.Fatal("Failed to create scheduler", zap.Error(err))
			}
			scheduler.Start()
		} else {
			logg.Info("Sync scheduler disabled")
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("addr", cfg.Server.Addr()))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")

		if scheduler != nil {
			select {
			case <-scheduler.Stop().Done():
			case <-time.After(shutdownTimeout):
				logg.Warn("Scheduled synchronization still running at shutdown")
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = app.ShutdownWithContext(ctx)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
