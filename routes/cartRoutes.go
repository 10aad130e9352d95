package routes

import (
	"github.com/Kariqs/prostore-api/controllers"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine, c *controllers.CartController) {
	cart := server.Group("/cart")
	{
		cart.GET("", c.GetCart)
		cart.POST("/items", c.AddItem)
		cart.DELETE("/items/:productId", c.RemoveItem)
	}
}
