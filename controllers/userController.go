package controllers

import (
	"net/http"

	"github.com/Kariqs/prostore-api/middlewares"
	"github.com/Kariqs/prostore-api/models"
	"github.com/Kariqs/prostore-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserController struct {
	users *services.UserService
	log   *zap.Logger
}

func NewUserController(users *services.UserService, log *zap.Logger) *UserController {
	return &UserController{users: users, log: log}
}

func (c *UserController) GetProfile(ctx *gin.Context) {
	user, err := c.users.GetUserByID(ctx.Request.Context(), middlewares.CurrentUserID(ctx))
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "user": user})
}

func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var form models.ProfileForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		sendBindError(ctx, err)
		return
	}
	if err := c.users.UpdateProfile(ctx.Request.Context(), middlewares.CurrentUserID(ctx), form); err != nil {
		respondWithError(ctx, c.log, err)
		return
	}
	sendSuccess(ctx, http.StatusOK, "Profile updated successfully", nil)
}

func (c *UserController) UpdateAddress(ctx *gin.Context) {
	var address models.ShippingAddress
	if err := ctx.ShouldBindJSON(&address); err != nil {
		sendBindError(ctx, err)
		return
	}
	if err := c.users.UpdateAddress(ctx.Request.Context(), middlewares.CurrentUserID(ctx), address); err != nil {
		respondWithError(ctx, c.log, err)
		return
	}
	sendSuccess(ctx, http.StatusOK, "Address updated successfully", nil)
}

func (c *UserController) UpdatePaymentMethod(ctx *gin.Context) {
	var form models.PaymentMethodForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		sendBindError(ctx, err)
		return
	}
	if err := c.users.UpdatePaymentMethod(ctx.Request.Context(), middlewares.CurrentUserID(ctx), form.Type); err != nil {
		respondWithError(ctx, c.log, err)
		return
	}
	sendSuccess(ctx, http.StatusOK, "Payment method updated", nil)
}
