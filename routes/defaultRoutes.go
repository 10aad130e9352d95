package routes

import (
	"net/http"

	"github.com/Kariqs/prostore-api/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
	server.GET("/healthz", func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})
}
