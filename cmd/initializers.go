package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"minerops/app/handler"
	"minerops/app/router"
	"minerops/internal/service"
	"minerops/pkg/assistant"
	"minerops/pkg/config"
	energyconn "minerops/pkg/connector/energy"
	miningconn "minerops/pkg/connector/mining"
	rentalconn "minerops/pkg/connector/rental"
	"minerops/pkg/llm"
	"minerops/pkg/logger"
	queue "minerops/pkg/queue/asynq"
	mysqlstore "minerops/pkg/store/mysql"
	redisstore "minerops/pkg/store/redis"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

// connectorInitTimeout bounds the initial probe of each source backend.
const connectorInitTimeout = 15 * time.Second

// initConfig initializes configuration
func (app *Application) initConfig() error {
	if err := config.Init(); err != nil {
		return err
	}
	app.config = config.GlobalConfig
	return nil
}

// initLogger initializes logging
func (app *Application) initLogger() error {
	if err := logger.Init(); err != nil {
		return err
	}
	app.registerCleanup(func() {
		logger.Sync()
	})
	return nil
}

// initMySQL initializes MySQL and migrates the schema
func (app *Application) initMySQL() error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		app.config.MySQL.User,
		app.config.MySQL.Password,
		app.config.MySQL.Host,
		app.config.MySQL.Port,
		app.config.MySQL.Database,
	)

	repo, err := mysqlstore.NewRepository(dsn)
	if err != nil {
		return err
	}
	if err := repo.Migrate(); err != nil {
		repo.Close()
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	app.mysqlRepo = repo
	app.registerCleanup(func() {
		repo.Close()
		logger.Infof("MySQL connection has been closed")
	})

	return nil
}

// initRedis initializes Redis and the snapshot repository
func (app *Application) initRedis() error {
	client, err := redisstore.NewRedisClient(app.config)
	if err != nil {
		return err
	}

	app.redisClient = client
	app.snapshots = redisstore.NewSnapshotRepository(client)
	app.registerCleanup(func() {
		client.Close()
		logger.Infof("Redis connection has been closed")
	})

	return nil
}

// initConnectors initializes the three source connectors. An init
// failure is informational: the connector has already degraded to mock
// data and the application keeps serving.
func (app *Application) initConnectors() error {
	app.miningConnector = miningconn.New(app.config.Mining)
	app.energyConnector = energyconn.New(app.config.Energy)
	app.rentalConnector = rentalconn.New(app.config.Rental)

	ctx, cancel := context.WithTimeout(app.ctx, connectorInitTimeout)
	defer cancel()

	if err := app.miningConnector.Initialize(ctx); err != nil {
		logger.Warnf("mining connector degraded: %v", err)
	}
	if err := app.energyConnector.Initialize(ctx); err != nil {
		logger.Warnf("energy connector degraded: %v", err)
	}
	if err := app.rentalConnector.Initialize(ctx); err != nil {
		logger.Warnf("rental connector degraded: %v", err)
	}

	logger.Infof("source connectors ready, mining: %s, energy: %s, rental: %s",
		app.miningConnector.Mode(), app.energyConnector.Mode(), app.rentalConnector.Mode())

	app.registerCleanup(func() {
		app.miningConnector.Close()
		app.energyConnector.Close()
		app.rentalConnector.Close()
		logger.Infof("source connectors have been closed")
	})

	return nil
}

// initAssistant initializes the strategy assistant. Without a
// configured backend the assistant runs on the offline generator.
func (app *Application) initAssistant() error {
	app.engine = assistant.New(llm.NewGenerator(app.config.LLM))
	return nil
}

// initServices initializes service layer
func (app *Application) initServices() error {
	app.miningService = service.NewMiningService(app.miningConnector, app.mysqlRepo.MiningConfig)
	app.energyService = service.NewEnergyService(app.energyConnector)
	app.rentalService = service.NewRentalService(app.rentalConnector, app.mysqlRepo.RentalRecord)
	app.profitabilityService = service.NewProfitabilityService(
		app.miningConnector, app.energyConnector, app.rentalConnector,
		app.engine, app.config.Energy.CostPerKWh,
	)
	app.collectorService = service.NewCollectorService(
		app.miningConnector, app.energyConnector, app.rentalConnector,
		app.mysqlRepo.MiningStat, app.mysqlRepo.EnergySample, app.mysqlRepo.CryptoPrice,
		app.snapshots,
	)
	app.userService = service.NewUserService(app.mysqlRepo.User)
	app.configService = service.NewConfigService(app.mysqlRepo.MiningConfig)
	return nil
}

// initQueue initializes the task queue and registers the refresh handler
func (app *Application) initQueue() error {
	manager, err := queue.NewManager(app.config)
	if err != nil {
		return err
	}

	manager.RegisterHandler(queue.TypeRefresh, asynq.HandlerFunc(func(ctx context.Context, task *asynq.Task) error {
		var payload queue.RefreshPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid refresh payload: %w", err)
		}
		return app.collectorService.Refresh(ctx, payload.Scope)
	}))

	app.queueManager = manager
	app.registerCleanup(func() {
		manager.Close()
		logger.Infof("Task queue has been closed")
	})

	return nil
}

// initHandlers initializes handler layer
func (app *Application) initHandlers() error {
	app.miningHandler = handler.NewMiningHandler(app.miningService)
	app.energyHandler = handler.NewEnergyHandler(app.energyService)
	app.rentalHandler = handler.NewRentalHandler(app.rentalService)
	app.profitabilityHandler = handler.NewProfitabilityHandler(app.profitabilityService, app.queueManager)
	app.assistantHandler = handler.NewAssistantHandler(app.profitabilityService)
	app.userHandler = handler.NewUserHandler(app.userService)
	app.configHandler = handler.NewConfigHandler(app.configService)
	app.streamHandler = handler.NewStreamHandler(app.snapshots)
	return nil
}

// initHTTPServer initializes HTTP server
func (app *Application) initHTTPServer() error {
	if app.config.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	app.ginEngine = gin.New()

	r := router.NewRouter(
		app.miningHandler,
		app.energyHandler,
		app.rentalHandler,
		app.profitabilityHandler,
		app.assistantHandler,
		app.userHandler,
		app.configHandler,
		app.streamHandler,
	)
	r.Setup(app.ginEngine)

	app.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: app.ginEngine,
	}

	return nil
}
