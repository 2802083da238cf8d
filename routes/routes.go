package routes

import (
	"net/http"
	"time"

	"autoshop/handlers"
	"autoshop/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all scheduling endpoints onto the router.
func RegisterRoutes(r *gin.Engine, h *handlers.ScheduleHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/schedule")
	{
		api.GET("/slots", h.GetAvailableSlots)

		api.POST("/appointments", h.CreateAppointment)
		api.PUT("/appointments/:id", h.RescheduleAppointment)
		api.POST("/appointments/:id/cancel", h.CancelAppointment)

		api.POST("/timelogs", h.CreateTimeLogEntry)
		api.POST("/timelogs/start", h.StartTimer)
		api.POST("/timelogs/stop", h.StopTimer)
		api.DELETE("/timelogs/:id", h.DeleteTimeLogEntry)
	}
}
