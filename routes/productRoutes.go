package routes

import (
	"github.com/Kariqs/prostore-api/controllers"
	"github.com/Kariqs/prostore-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine, c *controllers.ProductController) {
	server.GET("/products", c.GetProducts)
	server.GET("/products/featured", c.GetFeatured)
	server.GET("/products/:slug", c.GetProduct)

	admin := server.Group("/admin/products", middlewares.RequireAdmin())
	{
		admin.POST("", c.CreateProduct)
		admin.POST("/:id/images", c.UploadProductImages)
	}
}
