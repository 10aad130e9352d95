package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"unicode"

	"github.com/Kariqs/prostore-api/pricing"
	"github.com/Kariqs/prostore-api/services"
	"github.com/Kariqs/prostore-api/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgFieldErrors         = "Please correct the field errors"
	msgInvalidInput        = "Invalid request body"
	msgInternalServerError = "Something went wrong, please try again"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendSuccess(ctx *gin.Context, status int, message string, data gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range data {
		body[k] = v
	}
	sendJSONResponse(ctx, status, body)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"success": false, "message": message})
}

// sendBindError answers a request whose body failed to bind. Validation
// failures list their messages per JSON field.
func sendBindError(ctx *gin.Context, err error) {
	fields := utils.FieldErrors(err)
	if fields == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	sendJSONResponse(ctx, http.StatusBadRequest, gin.H{
		"success": false,
		"message": msgFieldErrors,
		"errors":  fields,
	})
}

// respondWithError turns a service error into a {success, message} reply.
// Errors with no known meaning are logged and hidden from the client.
func respondWithError(ctx *gin.Context, log *zap.Logger, err error) {
	if _, ok := utils.DuplicateField(err); ok {
		sendErrorResponse(ctx, http.StatusConflict, utils.FormatError(err))
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("Request failed",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(err))
		sendErrorResponse(ctx, status, msgInternalServerError)
		return
	}
	sendErrorResponse(ctx, status, capitalize(err.Error()))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrCartSessionMissing),
		errors.Is(err, pricing.ErrInvalidValue),
		errors.Is(err, services.ErrCartEmpty),
		errors.Is(err, services.ErrAddressMissing),
		errors.Is(err, services.ErrPaymentMethodMissing),
		errors.Is(err, services.ErrItemNotInCart),
		errors.Is(err, services.ErrPaymentMismatch),
		errors.Is(err, services.ErrPaymentNotCompleted):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrCartNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrOutOfStock),
		errors.Is(err, services.ErrOrderAlreadyPaid):
		return http.StatusConflict
	case errors.Is(err, services.ErrUploadsDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

func paramID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryInt(ctx *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(ctx.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
