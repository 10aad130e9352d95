package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Kariqs/prostore-api/middlewares"
	"github.com/Kariqs/prostore-api/models"
	"github.com/Kariqs/prostore-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgSignedIn      = "Signed in successfully"
	msgSignedUp      = "Account creation successful"
	msgSignedOut     = "Signed out successfully"
	msgInvalidSignIn = "Invalid credentials"
)

type AuthController struct {
	auth          *services.AuthService
	secureCookies bool
	log           *zap.Logger
}

func NewAuthController(auth *services.AuthService, secureCookies bool, log *zap.Logger) *AuthController {
	return &AuthController{auth: auth, secureCookies: secureCookies, log: log}
}

func (c *AuthController) SignUp(ctx *gin.Context) {
	var form models.SignUpForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		sendBindError(ctx, err)
		return
	}

	session, err := c.auth.SignUp(ctx.Request.Context(), form, middlewares.SessionCartID(ctx))
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	c.setSessionCookie(ctx, session)
	sendSuccess(ctx, http.StatusCreated, msgSignedUp, gin.H{"user": session.User, "token": session.Token})
}

func (c *AuthController) SignIn(ctx *gin.Context) {
	var form models.SignInForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		sendBindError(ctx, err)
		return
	}

	session, err := c.auth.SignIn(ctx.Request.Context(), form, middlewares.SessionCartID(ctx))
	if errors.Is(err, services.ErrInvalidCredentials) {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidSignIn)
		return
	}
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	c.setSessionCookie(ctx, session)
	sendSuccess(ctx, http.StatusOK, msgSignedIn, gin.H{"user": session.User, "token": session.Token})
}

// SignOut drops the session token and the anonymous cart id. The visitor
// gets a fresh cart id on their next request.
func (c *AuthController) SignOut(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middlewares.SessionCartCookie, "", -1, "/", "", c.secureCookies, true)
	ctx.SetCookie(middlewares.SessionTokenCookie, "", -1, "/", "", c.secureCookies, true)
	sendSuccess(ctx, http.StatusOK, msgSignedOut, nil)
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, session *services.Session) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middlewares.SessionTokenCookie, session.Token, maxAge, "/", "", c.secureCookies, true)
}
