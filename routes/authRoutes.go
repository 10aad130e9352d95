package routes

import (
	"github.com/Kariqs/prostore-api/controllers"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine, c *controllers.AuthController) {
	auth := server.Group("/auth")
	{
		auth.POST("/sign-up", c.SignUp)
		auth.POST("/sign-in", c.SignIn)
		auth.POST("/sign-out", c.SignOut)
	}
}
