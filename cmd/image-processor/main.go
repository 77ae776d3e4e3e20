package main

import (
	"log"

	"image-processor/internal/app"
	"image-processor/internal/config"
	"image-processor/internal/logger"
	"image-processor/internal/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration invalid: %v", err)
	}

	appLogger, closeLog, err := logger.NewFromOptions(logger.Options{
		Level: cfg.LogLevel,
		JSON:  cfg.JSONLogs,
		File:  cfg.LogFile,
	})
	if err != nil {
		log.Fatalf("Logger initialization failed: %v", err)
	}
	defer closeLog()

	shutdownManager := shutdown.NewManager(appLogger)
	shutdownManager.SetComponentTimeout(app.ShutdownTimeout)

	application, err := app.NewApplication(shutdownManager.Context(), cfg, appLogger)
	if err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}

	shutdownManager.Register(application)
	shutdownManager.Listen()

	if err := application.Run(); err != nil {
		log.Fatalf("Application execution failed: %v", err)
	}

	shutdownManager.Shutdown()
}
