package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Prostore API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/sign-up" - Create user account
- POST "/auth/sign-in" - Access user account
- POST "/auth/sign-out" - Leave user account

PRODUCT
- GET "/products" - Get products (page, limit, search, category)
- GET "/products/featured" - Get featured products
- GET "/products/:slug" - Get product by slug
- POST "/admin/products" - Create new product
- POST "/admin/products/:id/images" - Add product images

CART
- GET "/cart" - Get the current cart
- POST "/cart/items" - Add an item to the cart
- DELETE "/cart/items/:productId" - Remove one unit from the cart

USER
- GET "/user/profile" - Get the signed in user
- PUT "/user/profile" - Update name
- PUT "/user/address" - Update shipping address
- PUT "/user/payment-method" - Update payment method

ORDER
- POST "/orders" - Place an order from the cart
- GET "/orders" - Get my orders
- GET "/orders/:id" - Get order by ID
- POST "/orders/:id/paypal" - Create a PayPal payment
- POST "/orders/:id/paypal/approve" - Capture a PayPal payment
- GET "/admin/orders" - Get all orders
- PUT "/admin/orders/:id/deliver" - Mark order delivered`

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}
