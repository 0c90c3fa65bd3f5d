package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scene-toolkit/core/config"
	"scene-toolkit/core/loader"
	"scene-toolkit/core/logger"
	"scene-toolkit/core/middleware/auth"
	"scene-toolkit/core/middleware/ratelimit"
	"scene-toolkit/core/middleware/rayid"
	"scene-toolkit/feature/assets"
	"scene-toolkit/feature/audio"
	"scene-toolkit/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "scene-toolkit/docs/swagger"
)

// @title Scene Toolkit API
// @version 1.0
// @description API for loading scene assets and mixing audio.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"start"},
	Short:   "Start the scene toolkit server",
	Long:    `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Configuration, logger and shared clients
		e, err := setup(false)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer e.close()
		logg := e.logger
		zap.ReplaceGlobals(logg)

		// 2. Services
		assetSvc, err := e.assetService()
		if err != nil {
			logg.Fatal("Failed to create asset service", zap.Error(err))
		}

		device, err := e.audioDevice()
		if err != nil {
			logg.Fatal("Failed to open audio device", zap.Error(err))
		}
		if closer, ok := device.(interface{ Close() }); ok {
			defer closer.Close()
		}
		mixer := audio.NewMixer(device, assetSvc.Registries(), logg)
		mixer.SetVolumes(e.cfg.Audio.Volumes())

		// Volumes follow config.yaml without a restart
		if _, err := config.Watch(configPath, func(next *config.Config, err error) {
			if err != nil {
				logg.Warn("Failed to reload configuration", zap.Error(err))
				return
			}
			mixer.SetVolumes(next.Audio.Volumes())
			logg.Info("Audio volumes reloaded")
		}); err != nil && !errors.Is(err, config.ErrNoConfigFile) {
			logg.Warn("Configuration watch disabled", zap.Error(err))
		}

		integritySvc := newIntegrityService(e)

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 4. Initialize Feature Loader
		mgr := loader.NewManager(logg)
		mgr.Register(
			assets.NewFeature(assetSvc),
			audio.NewFeature(mixer, logg),
			integrity.NewFeature(integritySvc),
		)

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(logger.Requests(logg))

		// 3. Rate limit per client IP
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if e.cfg.Server.RateLimited() {
			limiter, store := ratelimit.NewFromConfig(ratelimit.Config{
				RequestsPerSecond: e.cfg.Server.RateLimit,
				Burst:             e.cfg.Server.RateBurst,
			})
			store.StartJanitor(ctx, time.Minute)
			app.Use(limiter)
		}

		// 4. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 5. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: e.cfg.Server.ApiKey}))

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", e.cfg.Server.Port), zap.Strings("features", mgr.Names()))
			if err := app.Listen(e.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
		mixer.Clear()
		assetSvc.DisposeAll()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
