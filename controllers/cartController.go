package controllers

import (
	"fmt"
	"net/http"

	"github.com/Kariqs/prostore-api/middlewares"
	"github.com/Kariqs/prostore-api/models"
	"github.com/Kariqs/prostore-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartController struct {
	carts *services.CartService
	log   *zap.Logger
}

func NewCartController(carts *services.CartService, log *zap.Logger) *CartController {
	return &CartController{carts: carts, log: log}
}

func (c *CartController) GetCart(ctx *gin.Context) {
	cart, err := c.carts.GetMyCart(ctx.Request.Context(), middlewares.SessionCartID(ctx), middlewares.CurrentUserID(ctx))
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "cart": cart})
}

func (c *CartController) AddItem(ctx *gin.Context) {
	var item models.CartItem
	if err := ctx.ShouldBindJSON(&item); err != nil {
		sendBindError(ctx, err)
		return
	}

	update, err := c.carts.AddItemToCart(ctx.Request.Context(), middlewares.SessionCartID(ctx), middlewares.CurrentUserID(ctx), item)
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	message := fmt.Sprintf("%s added to cart", update.Product.Name)
	if update.Existing {
		message = fmt.Sprintf("%s updated in cart", update.Product.Name)
	}
	sendSuccess(ctx, http.StatusOK, message, gin.H{"cart": update.Cart})
}

func (c *CartController) RemoveItem(ctx *gin.Context) {
	productID, ok := paramID(ctx, "productId")
	if !ok {
		return
	}

	update, err := c.carts.RemoveItemFromCart(ctx.Request.Context(), middlewares.SessionCartID(ctx), middlewares.CurrentUserID(ctx), productID)
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}
	sendSuccess(ctx, http.StatusOK, fmt.Sprintf("%s was removed from cart", update.Product.Name), gin.H{"cart": update.Cart})
}
