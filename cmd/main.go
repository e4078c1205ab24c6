package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"minerops/pkg/logger"
)

func main() {
	// Create application instance
	app := NewApplication()

	// Initialize all components
	if err := app.Initialize(); err != nil {
		logger.Fatalf("Application initialization failed: %v", err)
	}

	// Start all components
	if err := app.Start(); err != nil {
		logger.Fatalf("Application startup failed: %v", err)
	}

	// Wait for exit signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Infof("Received exit signal: %v", sig)

	// Graceful shutdown (30 seconds timeout)
	if err := app.Shutdown(30 * time.Second); err != nil {
		logger.Errorf("Application shutdown failed: %v", err)
		os.Exit(1)
	}

	logger.Infof("Application safely exited")
}
