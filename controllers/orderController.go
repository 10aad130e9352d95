package controllers

import (
	"fmt"
	"net/http"

	"github.com/Kariqs/prostore-api/middlewares"
	"github.com/Kariqs/prostore-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultOrdersPageSize = 15

type OrderController struct {
	orders *services.OrderService
	log    *zap.Logger
}

func NewOrderController(orders *services.OrderService, log *zap.Logger) *OrderController {
	return &OrderController{orders: orders, log: log}
}

type approvePayPalRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

func (c *OrderController) PlaceOrder(ctx *gin.Context) {
	order, err := c.orders.PlaceOrder(ctx.Request.Context(), middlewares.SessionCartID(ctx), middlewares.CurrentUserID(ctx))
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}
	sendSuccess(ctx, http.StatusCreated, "Order created", gin.H{"order": order, "redirectTo": fmt.Sprintf("/order/%d", order.ID)})
}

func (c *OrderController) GetOrder(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	claims := middlewares.CurrentUser(ctx)
	order, err := c.orders.GetOrderByID(ctx.Request.Context(), id, claims.UserID(), claims.IsAdmin())
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "order": order})
}

func (c *OrderController) GetMyOrders(ctx *gin.Context) {
	c.listOrders(ctx, middlewares.CurrentUserID(ctx))
}

// GetAllOrders is the admin listing across every customer.
func (c *OrderController) GetAllOrders(ctx *gin.Context) {
	c.listOrders(ctx, 0)
}

func (c *OrderController) listOrders(ctx *gin.Context, userID uint) {
	page := queryInt(ctx, "page", 1)
	limit := queryInt(ctx, "limit", defaultOrdersPageSize)

	orders, total, err := c.orders.ListOrders(ctx.Request.Context(), userID, page, limit)
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
		"metadata": gin.H{
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

func (c *OrderController) CreatePayPalOrder(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	paypalOrderID, err := c.orders.CreatePayPalOrder(ctx.Request.Context(), id, middlewares.CurrentUserID(ctx))
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}
	sendSuccess(ctx, http.StatusOK, "Item order created successfully", gin.H{"data": paypalOrderID})
}

func (c *OrderController) ApprovePayPalOrder(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req approvePayPalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendBindError(ctx, err)
		return
	}

	order, err := c.orders.ApprovePayPalOrder(ctx.Request.Context(), id, middlewares.CurrentUserID(ctx), req.OrderID)
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}
	sendSuccess(ctx, http.StatusOK, "Your order has been paid", gin.H{"order": order})
}

func (c *OrderController) MarkDelivered(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	if err := c.orders.MarkDelivered(ctx.Request.Context(), id); err != nil {
		respondWithError(ctx, c.log, err)
		return
	}
	sendSuccess(ctx, http.StatusOK, "Order has been marked delivered", nil)
}
