package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"minerops/app/handler"
	"minerops/internal/jobs"
	"minerops/internal/service"
	"minerops/pkg/assistant"
	"minerops/pkg/config"
	energyconn "minerops/pkg/connector/energy"
	miningconn "minerops/pkg/connector/mining"
	rentalconn "minerops/pkg/connector/rental"
	"minerops/pkg/logger"
	queue "minerops/pkg/queue/asynq"
	mysqlstore "minerops/pkg/store/mysql"
	redisstore "minerops/pkg/store/redis"

	"github.com/gin-gonic/gin"
)

// Application manages the lifecycle of the entire application
type Application struct {
	// Infrastructure components
	config      *config.Config
	mysqlRepo   *mysqlstore.Repository
	redisClient *redisstore.RedisClient
	snapshots   *redisstore.SnapshotRepository

	// Source connectors
	miningConnector *miningconn.Connector
	energyConnector *energyconn.Connector
	rentalConnector *rentalconn.Connector

	// Assistant
	engine *assistant.Engine

	// Service layer
	miningService        *service.MiningService
	energyService        *service.EnergyService
	rentalService        *service.RentalService
	profitabilityService *service.ProfitabilityService
	collectorService     *service.CollectorService
	userService          *service.UserService
	configService        *service.ConfigService

	// Handler layer
	miningHandler        *handler.MiningHandler
	energyHandler        *handler.EnergyHandler
	rentalHandler        *handler.RentalHandler
	profitabilityHandler *handler.ProfitabilityHandler
	assistantHandler     *handler.AssistantHandler
	userHandler          *handler.UserHandler
	configHandler        *handler.ConfigHandler
	streamHandler        *handler.StreamHandler

	// Background task queue
	queueManager *queue.Manager

	// HTTP server
	httpServer *http.Server
	ginEngine  *gin.Engine

	// Background tasks
	jobsManager *jobs.Manager

	// Context management
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Background task cleanup functions
	cleanupFuncs []func()
}

// NewApplication creates a new Application instance
func NewApplication() *Application {
	ctx, cancel := context.WithCancel(context.Background())
	return &Application{
		ctx:          ctx,
		cancel:       cancel,
		cleanupFuncs: make([]func(), 0),
	}
}

// Initialize initializes all application components
func (app *Application) Initialize() error {
	var err error

	// Initialize components in order
	steps := []struct {
		name string
		fn   func() error
	}{
		{"Configuration", app.initConfig},
		{"Logging", app.initLogger},
		{"MySQL", app.initMySQL},
		{"Redis", app.initRedis},
		{"Source Connectors", app.initConnectors},
		{"Assistant", app.initAssistant},
		{"Service Layer", app.initServices},
		{"Task Queue", app.initQueue},
		{"Background Tasks", app.initJobs},
		{"Handler Layer", app.initHandlers},
		{"HTTP Server", app.initHTTPServer},
	}

	for _, step := range steps {
		logger.Infof("Initializing %s...", step.name)
		if err = step.fn(); err != nil {
			return fmt.Errorf("failed to initialize %s: %w", step.name, err)
		}
		logger.Infof("%s initialized successfully", step.name)
	}

	logger.Infof("Application initialization completed")
	return nil
}

// Start starts all application components
func (app *Application) Start() error {
	logger.Infof("Starting application components...")

	// 1. Start task queue worker
	if app.queueManager != nil {
		if err := app.queueManager.Start(); err != nil {
			return fmt.Errorf("failed to start task queue: %w", err)
		}
	}

	// 2. Start background tasks
	if app.jobsManager != nil {
		logger.Infof("Starting background task manager")
		app.jobsManager.Start()
		app.wg.Add(1)
		go func() {
			defer app.wg.Done()
			app.jobsManager.Wait()
		}()
	}

	// 3. Start HTTP server
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		addr := fmt.Sprintf(":%d", app.config.Server.Port)
		logger.Infof("HTTP server listening on: %s", addr)
		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("HTTP server error: %v", err)
		}
	}()

	logger.Infof("All components started successfully")
	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown(timeout time.Duration) error {
	logger.Infof("Starting graceful shutdown (timeout: %v)...", timeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// 1. Cancel all background tasks
	logger.Infof("Canceling background tasks...")
	app.cancel()
	if app.jobsManager != nil {
		app.jobsManager.Stop()
	}
	if app.queueManager != nil {
		app.queueManager.Stop()
	}

	// 2. Stop HTTP server (stop accepting new requests)
	logger.Infof("Shutting down HTTP server...")
	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	}

	// 3. Wait for all background tasks to complete
	logger.Infof("Waiting for background tasks to complete...")
	done := make(chan struct{})
	go func() {
		app.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Infof("All background tasks completed")
	case <-shutdownCtx.Done():
		logger.Warnf("Shutdown timeout, some tasks may not have completed")
	}

	// 4. Execute all cleanup functions (in reverse registration order)
	logger.Infof("Executing cleanup functions...")
	for i := len(app.cleanupFuncs) - 1; i >= 0; i-- {
		app.cleanupFuncs[i]()
	}

	// 5. Sync logs
	logger.Sync()

	logger.Infof("Graceful shutdown completed")
	return nil
}

// registerCleanup registers cleanup function
func (app *Application) registerCleanup(cleanup func()) {
	app.cleanupFuncs = append(app.cleanupFuncs, cleanup)
}
