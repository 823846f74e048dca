package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"exercise-tracker/internal/handler"
	"exercise-tracker/internal/hub"
	"exercise-tracker/internal/middleware"
)

func New(
	exerciseHandler *handler.ExerciseHandler,
	notificationHandler *handler.NotificationHandler,
	wsHub *hub.Hub,
	corsOrigins []string,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins), middleware.Session())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.GET("/exercises", exerciseHandler.List)
	api.POST("/exercises", exerciseHandler.Create)
	api.PUT("/exercises/:id", exerciseHandler.Update)
	api.DELETE("/exercises/:id", exerciseHandler.Delete)

	api.GET("/notifications", notificationHandler.ListUnread)
	api.GET("/notifications/read", notificationHandler.ListRead)
	api.POST("/notifications/mark-read", notificationHandler.MarkRead)
	api.POST("/notifications/clear", notificationHandler.Clear)

	engine.GET("/ws", func(c *gin.Context) {
		wsHub.HandleWebSocket(c.Writer, c.Request)
	})

	return engine
}
