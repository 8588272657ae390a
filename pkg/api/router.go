package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/mzafar/homehub/pkg/api/handlers"
	"github.com/mzafar/homehub/pkg/db"
)

// Router holds the Gin engine and dependencies
type Router struct {
	engine   *gin.Engine
	database *db.DB
}

// NewRouter creates a new API router
func NewRouter(database *db.DB) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine:   engine,
		database: database,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/swagger/index.html")
	})

	// Health check at root
	healthHandler := handlers.NewHealthHandler(r.database)
	r.engine.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.engine.Group("/api/v1")
	{
		// Health
		v1.GET("/health", healthHandler.Health)

		// Resources
		boardsHandler := handlers.NewBoardsHandler(r.database)
		v1.GET("/boards", boardsHandler.List)
		v1.POST("/boards", boardsHandler.Create)

		devicesHandler := handlers.NewDevicesHandler(r.database)
		v1.GET("/devices", devicesHandler.List)
		v1.POST("/devices", devicesHandler.Create)

		roomsHandler := handlers.NewRoomsHandler(r.database)
		v1.GET("/rooms", roomsHandler.List)
		v1.POST("/rooms", roomsHandler.Create)

		systemsHandler := handlers.NewSystemsHandler(r.database)
		v1.GET("/systems", systemsHandler.List)
		v1.POST("/systems", systemsHandler.Create)

		// Sensor readings
		sensorsHandler := handlers.NewSensorsHandler(r.database)
		sensors := v1.Group("/sensors")
		{
			sensors.GET("/latest", sensorsHandler.Latest)
			sensors.POST("/latest", sensorsHandler.Record)
			sensors.POST("/batch", sensorsHandler.Batch)
		}

		// Command queue
		commandsHandler := handlers.NewCommandsHandler(r.database)
		v1.GET("/commands", commandsHandler.List)
		v1.POST("/commands", commandsHandler.Create)
		v1.PATCH("/commands", commandsHandler.Advance)

		// Domain actuator endpoints
		domains := map[string]*handlers.ActuatorHandler{
			"/door-access":    handlers.NewDoorAccessHandler(r.database),
			"/garage-control": handlers.NewGarageControlHandler(r.database),
			"/fan-control":    handlers.NewFanControlHandler(r.database),
			"/gas-alarm":      handlers.NewGasAlarmHandler(r.database),
			"/rain-control":   handlers.NewRainControlHandler(r.database),
		}
		for path, handler := range domains {
			v1.GET(path, handler.Status)
			v1.POST(path, handler.Act)
			v1.PATCH(path, handler.Report)
		}
	}
}

// Handler returns the router as an http.Handler, for tests and embedding.
func (r *Router) Handler() http.Handler {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
