package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smartchef/internal/api"
	"smartchef/internal/config"
	"smartchef/internal/database"
	"smartchef/internal/generator"
	"smartchef/internal/logging"
	"smartchef/internal/monitoring"
	"smartchef/internal/store"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize LLM provider
	provider, err := generator.NewProvider(cfg.LLM.Provider, cfg.LLM.Model)
	if err != nil {
		logger.Fatal("failed to initialize LLM provider", zap.Error(err))
	}
	provider.SetTemperature(cfg.LLM.Temperature)
	provider.SetMaxTokens(cfg.LLM.MaxTokens)

	gen := generator.New(provider, time.Duration(cfg.LLM.TimeoutSeconds)*time.Second, logger)

	// Document stores
	prefs := store.NewPreferenceStore(cfg.PreferencesPath(), logger)
	pantry := store.NewExpirationStore(cfg.ExpirationPath(), logger)

	// Recipe archive
	db, err := database.Open(cfg.ArchivePath())
	if err != nil {
		logger.Fatal("failed to open recipe archive", zap.Error(err))
	}
	defer db.Close()
	archive := database.NewRecipeArchive(db)

	monitor := monitoring.NewMonitor()
	metrics := monitoring.NewMetricsCollector()

	// Expiry alert hub
	var hub *api.AlertHub
	if cfg.Alerts.Enabled {
		hub = api.NewAlertHub(pantry,
			time.Duration(cfg.Alerts.IntervalSeconds)*time.Second,
			cfg.Alerts.ExpiringDays,
			logger)
		go hub.Run(ctx)
	}

	srv := api.NewServer(prefs, pantry, gen, archive, monitor, metrics, hub, logger)

	// Start metrics server
	go startMetricsServer(cfg.Server.MetricsPort, metrics, logger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down servers")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("API server shutdown error", zap.Error(err))
		}

		cancel()
	}()

	logger.Info("starting API server", zap.Int("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal("API server error", zap.Error(err))
	}
}

func startMetricsServer(port int, metrics *monitoring.MetricsCollector, logger *zap.Logger) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(metrics.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	logger.Info("starting metrics server", zap.Int("port", port))
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		logger.Error("metrics server error", zap.Error(err))
	}
}
