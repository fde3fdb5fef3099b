package routes

import (
	"time"

	"marketplace/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterExecutorRoutes registers executor profile, working hours and calendar endpoints.
func RegisterExecutorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/executors")
	{
		api.POST("", hb.Executor.RegisterExecutorHandler)
		api.GET("", hb.Executor.ListExecutorsHandler)
		api.GET("/:id", hb.Executor.GetExecutorHandler)

		api.GET("/:id/working-hours", hb.Schedule.GetWorkingHoursHandler)
		api.PUT("/:id/working-hours", hb.Schedule.SetWorkingHoursHandler)

		api.POST("/:id/events", hb.Calendar.CreateEventHandler)
		api.GET("/:id/events", hb.Calendar.ListEventsHandler)
		api.DELETE("/:id/events/:eventId", hb.Calendar.DeleteEventHandler)
	}
}

// RegisterScheduleRoutes registers the availability endpoint.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/executor/schedule", hb.Availability.GetScheduleHandler)
}

// RegisterOrderRoutes registers order endpoints.
func RegisterOrderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/orders")
	{
		api.POST("", hb.Order.CreateOrderHandler)
		api.GET("", hb.Order.ListOrdersHandler)
		api.GET("/:id", hb.Order.GetOrderHandler)
		api.PATCH("/:id/status", hb.Order.UpdateOrderStatusHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", handlers.HealthHandler(hb.Health))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, origins []string) {
	wildcard := len(origins) == 1 && origins[0] == "*"
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !wildcard,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterExecutorRoutes(r, hb)
	RegisterOrderRoutes(r, hb)
}
