package router

import (
	"minerops/app/handler"
	"minerops/app/middleware"

	"github.com/gin-gonic/gin"
)

// Router Router
type Router struct {
	miningHandler        *handler.MiningHandler
	energyHandler        *handler.EnergyHandler
	rentalHandler        *handler.RentalHandler
	profitabilityHandler *handler.ProfitabilityHandler
	assistantHandler     *handler.AssistantHandler
	userHandler          *handler.UserHandler
	configHandler        *handler.ConfigHandler
	streamHandler        *handler.StreamHandler
}

// NewRouter creates a new Router
func NewRouter(miningHandler *handler.MiningHandler, energyHandler *handler.EnergyHandler, rentalHandler *handler.RentalHandler, profitabilityHandler *handler.ProfitabilityHandler, assistantHandler *handler.AssistantHandler, userHandler *handler.UserHandler, configHandler *handler.ConfigHandler, streamHandler *handler.StreamHandler) *Router {
	return &Router{
		miningHandler:        miningHandler,
		energyHandler:        energyHandler,
		rentalHandler:        rentalHandler,
		profitabilityHandler: profitabilityHandler,
		assistantHandler:     assistantHandler,
		userHandler:          userHandler,
		configHandler:        configHandler,
		streamHandler:        streamHandler,
	}
}

// Setup sets up routes
func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger())

	api := engine.Group("/api/v1")
	api.Use(middleware.AuthMiddleware())
	{
		// Mining telemetry and rig control
		mining := api.Group("/mining")
		{
			mining.GET("/stats", r.miningHandler.Stats)
			mining.GET("/gpus", r.miningHandler.GPUs)
			mining.GET("/coins", r.miningHandler.Coins)
			mining.POST("/start/:config_id", r.miningHandler.Start)
			mining.POST("/stop/:config_id", r.miningHandler.Stop)
		}

		// Energy consumption and solar
		energy := api.Group("/energy")
		{
			energy.GET("", r.energyHandler.Data)
			energy.GET("/data", r.energyHandler.Data)
			energy.GET("/solar", r.energyHandler.Solar)
			energy.GET("/forecast", r.energyHandler.Forecast)
		}

		// GPU rental marketplace
		rental := api.Group("/rental")
		{
			rental.GET("/availability", r.rentalHandler.Availability)
			rental.GET("/pricing", r.rentalHandler.Pricing)
			rental.POST("/profitability", r.rentalHandler.Profitability)
			rental.POST("/rent", r.rentalHandler.Rent)
			rental.GET("/rentals", r.rentalHandler.ActiveRentals)
			rental.DELETE("/rentals/:rental_id", r.rentalHandler.Cancel)
		}

		// Profitability projections and snapshot refresh
		profitability := api.Group("/profitability")
		{
			profitability.GET("/calculate", r.profitabilityHandler.Calculate)
			profitability.GET("/snapshot", r.profitabilityHandler.Snapshot)
			profitability.POST("/refresh", r.profitabilityHandler.Refresh)
		}

		// LLM-backed assistant
		assistant := api.Group("/assistant")
		{
			assistant.POST("/chat", r.assistantHandler.Chat)
			assistant.POST("/optimize", r.assistantHandler.Optimize)
			assistant.GET("/analyze", r.assistantHandler.Analyze)
		}

		// Accounts
		users := api.Group("/users")
		{
			users.POST("", r.userHandler.Register)
			users.POST("/login", r.userHandler.Login)
			users.GET("", r.userHandler.List)
			users.GET("/:id", r.userHandler.Get)
			users.POST("/:id/deactivate", r.userHandler.Deactivate)
			users.DELETE("/:id", r.userHandler.Delete)
		}

		// Mining configs
		configs := api.Group("/configs")
		{
			configs.POST("", r.configHandler.Create)
			configs.GET("", r.configHandler.List)
			configs.GET("/:id", r.configHandler.Get)
			configs.PUT("/:id", r.configHandler.Update)
			configs.DELETE("/:id", r.configHandler.Delete)
		}
	}

	// Live stats stream
	if r.streamHandler != nil {
		engine.GET("/ws/stats", r.streamHandler.Stats)
	}

	// Health check
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
