package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/glowdesk/salonpos-api/internal/application/service"
	"github.com/glowdesk/salonpos-api/internal/config"
	"github.com/glowdesk/salonpos-api/internal/domain/repository"
	"github.com/glowdesk/salonpos-api/internal/infrastructure/export"
	"github.com/glowdesk/salonpos-api/internal/infrastructure/localstore"
	"github.com/glowdesk/salonpos-api/internal/infrastructure/remote"
	"github.com/glowdesk/salonpos-api/internal/presentation/http/handler"
	"github.com/glowdesk/salonpos-api/internal/presentation/http/routes"
	"github.com/glowdesk/salonpos-api/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Open the local store; it is the source of truth for all state
	store, err := localstore.New(cfg.Store.Dir)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	defer store.Close()

	// Archive sink for day-rollover and manual exports
	sink, err := export.NewExcelSink(cfg.Export.Dir)
	if err != nil {
		log.Fatalf("Failed to prepare export directory: %v", err)
	}

	// Optional remote replica for cross-device sync
	var remoteStore *remote.Store
	var remoteBills repository.RemoteBills
	if cfg.Remote.Enabled {
		remoteStore, err = remote.Open(remote.Config{
			Driver:       cfg.Remote.Driver,
			DSN:          cfg.Remote.DSN,
			PollInterval: cfg.Remote.PollInterval,
		})
		if err != nil {
			log.Printf("Warning: remote sync disabled, replica unreachable: %v", err)
		} else {
			remoteBills = remoteStore
			defer remoteStore.Close()
		}
	}

	// Initialize services
	gateService := service.NewGateService(store)
	billingService := service.NewBillingService(store, remoteBills, sink)
	var syncService *service.SyncService
	if remoteStore != nil {
		syncService = service.NewSyncService(store, remoteStore)
	}
	settingsService := service.NewSettingsService(store, gateService, syncService)
	dashboardService := service.NewDashboardService(store)
	rolloverService := service.NewRolloverService(store, sink, cfg.Rollover.CheckInterval)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, billingService, settingsService, cfg.Printer.Type)

	// Start background work: rollover timer and remote subscriptions
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rolloverService.Start(ctx)
	if syncService != nil {
		syncService.Start()
		defer syncService.Stop()
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Bill:      handler.NewBillHandler(billingService),
		Settings:  handler.NewSettingsHandler(settingsService, gateService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, cfg)

	port := cfg.App.Port
	if port == "" {
		port = "8090"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
