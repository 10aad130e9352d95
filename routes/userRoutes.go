package routes

import (
	"github.com/Kariqs/prostore-api/controllers"
	"github.com/Kariqs/prostore-api/middlewares"
	"github.com/gin-gonic/gin"
)

func UserRoutes(server *gin.Engine, c *controllers.UserController) {
	user := server.Group("/user", middlewares.RequireAuth())
	{
		user.GET("/profile", c.GetProfile)
		user.PUT("/profile", c.UpdateProfile)
		user.PUT("/address", c.UpdateAddress)
		user.PUT("/payment-method", c.UpdatePaymentMethod)
	}
}
