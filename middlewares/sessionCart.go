package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCartCookie = "sessionCartId"
	sessionCartKey    = "sessionCartId"
)

// SessionCart makes sure every visitor carries a session cart id, issuing a
// fresh one on the first request or when the cookie is not a uuid.
func SessionCart(secure bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := ctx.Cookie(SessionCartCookie)
		if err != nil || !validSessionCartID(id) {
			id = uuid.NewString()
			ctx.SetSameSite(http.SameSiteLaxMode)
			ctx.SetCookie(SessionCartCookie, id, 0, "/", "", secure, true)
		}
		ctx.Set(sessionCartKey, id)
		ctx.Next()
	}
}

// SessionCartID returns the id set by SessionCart, or "" when the middleware
// did not run.
func SessionCartID(ctx *gin.Context) string {
	return ctx.GetString(sessionCartKey)
}

func validSessionCartID(id string) bool {
	parsed, err := uuid.Parse(id)
	return err == nil && parsed.String() == id
}
