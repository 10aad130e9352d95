package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Kariqs/prostore-api/models"
	"github.com/Kariqs/prostore-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSessionCartIssuesCookie(t *testing.T) {
	router := gin.New()
	router.Use(SessionCart(false))
	router.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, SessionCartID(ctx))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCartCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	_, err := uuid.Parse(cookies[0].Value)
	assert.NoError(t, err)
	assert.Equal(t, cookies[0].Value, w.Body.String())
}

func TestSessionCartKeepsExistingCookie(t *testing.T) {
	router := gin.New()
	router.Use(SessionCart(false))
	router.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, SessionCartID(ctx))
	})

	existing := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCartCookie, Value: existing})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, existing, w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionCartReplacesMalformedCookie(t *testing.T) {
	router := gin.New()
	router.Use(SessionCart(false))
	router.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, SessionCartID(ctx))
	})

	for _, bad := range []string{"existing", strings.Repeat("a", 64), "{" + uuid.NewString() + "}"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCartCookie, Value: bad})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1, bad)
		assert.NotEqual(t, bad, cookies[0].Value)
		assert.Len(t, cookies[0].Value, 36)
		assert.Equal(t, cookies[0].Value, w.Body.String())
	}
}

func newToken(t *testing.T, issuer *utils.TokenIssuer, role string) string {
	t.Helper()
	user := &models.User{Name: "Jane", Email: "jane@example.com", Role: role}
	user.ID = 7
	token, _, err := issuer.Issue(user)
	require.NoError(t, err)
	return token
}

func TestAuthenticate(t *testing.T) {
	issuer := utils.NewTokenIssuer("secret", time.Hour)
	token := newToken(t, issuer, models.RoleUser)

	router := gin.New()
	router.Use(Authenticate(issuer))
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"userId": CurrentUserID(ctx)})
	})

	tests := []struct {
		name    string
		prepare func(r *http.Request)
		want    string
	}{
		{"anonymous", func(*http.Request) {}, `{"userId":0}`},
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, `{"userId":7}`},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionTokenCookie, Value: token}) }, `{"userId":7}`},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, `{"userId":0}`},
		{"wrong scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic "+token) }, `{"userId":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestRequireAuthAndAdmin(t *testing.T) {
	issuer := utils.NewTokenIssuer("secret", time.Hour)
	userToken := newToken(t, issuer, models.RoleUser)
	adminToken := newToken(t, issuer, models.RoleAdmin)

	router := gin.New()
	router.Use(Authenticate(issuer))
	ok := func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) }
	router.GET("/me", RequireAuth(), ok)
	router.GET("/admin", RequireAdmin(), ok)

	tests := []struct {
		path  string
		token string
		want  int
	}{
		{"/me", "", http.StatusUnauthorized},
		{"/me", userToken, http.StatusNoContent},
		{"/admin", "", http.StatusUnauthorized},
		{"/admin", userToken, http.StatusForbidden},
		{"/admin", adminToken, http.StatusNoContent},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if tt.token != "" {
			req.Header.Set("Authorization", "Bearer "+tt.token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Code, "%s with token=%t", tt.path, tt.token != "")
	}
}
