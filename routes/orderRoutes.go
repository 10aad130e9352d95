package routes

import (
	"github.com/Kariqs/prostore-api/controllers"
	"github.com/Kariqs/prostore-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine, c *controllers.OrderController) {
	orders := server.Group("/orders", middlewares.RequireAuth())
	{
		orders.POST("", c.PlaceOrder)
		orders.GET("", c.GetMyOrders)
		orders.GET("/:id", c.GetOrder)
		orders.POST("/:id/paypal", c.CreatePayPalOrder)
		orders.POST("/:id/paypal/approve", c.ApprovePayPalOrder)
	}

	admin := server.Group("/admin/orders", middlewares.RequireAdmin())
	{
		admin.GET("", c.GetAllOrders)
		admin.PUT("/:id/deliver", c.MarkDelivered)
	}
}
