package middlewares

import (
	"net/http"
	"strings"

	"github.com/Kariqs/prostore-api/utils"
	"github.com/gin-gonic/gin"
)

const (
	SessionTokenCookie = "session_token"
	userKey            = "user"
)

type TokenParser interface {
	Parse(token string) (*utils.Claims, error)
}

// Authenticate attaches the caller's claims to the context when a valid
// session token is presented. Anonymous requests pass through untouched.
func Authenticate(tokens TokenParser) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx.GetHeader("Authorization"))
		if token == "" {
			token, _ = ctx.Cookie(SessionTokenCookie)
		}
		if token != "" {
			if claims, err := tokens.Parse(token); err == nil {
				ctx.Set(userKey, claims)
			}
		}
		ctx.Next()
	}
}

func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if CurrentUser(ctx) == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User is not authenticated"})
			return
		}
		ctx.Next()
	}
}

// CurrentUser returns the authenticated caller, or nil.
func CurrentUser(ctx *gin.Context) *utils.Claims {
	v, ok := ctx.Get(userKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.Claims)
	return claims
}

// CurrentUserID is zero for anonymous callers.
func CurrentUserID(ctx *gin.Context) uint {
	if claims := CurrentUser(ctx); claims != nil {
		return claims.UserID()
	}
	return 0
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
