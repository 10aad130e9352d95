package routes

import (
	"time"

	"github.com/Kariqs/prostore-api/cache"
	"github.com/Kariqs/prostore-api/controllers"
	"github.com/Kariqs/prostore-api/events"
	"github.com/Kariqs/prostore-api/middlewares"
	"github.com/Kariqs/prostore-api/repositories"
	"github.com/Kariqs/prostore-api/services"
	"github.com/Kariqs/prostore-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the infrastructure pieces the HTTP server is built from.
// Images may be nil when no bucket is configured.
type Dependencies struct {
	DB             *gorm.DB
	Log            *zap.Logger
	Tokens         *utils.TokenIssuer
	Cache          cache.Cache
	Events         events.Publisher
	Images         services.ImageUploader
	Payments       services.PaymentGateway
	Mailer         services.Mailer
	AllowedOrigins []string
	SecureCookies  bool
}

// NewRouter wires repositories, services and controllers into a gin engine.
func NewRouter(deps Dependencies) *gin.Engine {
	userRepo := repositories.NewUserRepository(deps.DB)
	productRepo := repositories.NewProductRepository(deps.DB)
	cartRepo := repositories.NewCartRepository(deps.DB)
	orderRepo := repositories.NewOrderRepository(deps.DB)

	cartService := services.NewCartService(cartRepo, productRepo, deps.Log)
	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userRepo, deps.Tokens, deps.Events, deps.Log)
	authService.OnSignIn(cartService.OnSignIn)
	productService := services.NewProductService(productRepo, deps.Cache, deps.Images, deps.Log)
	orderService := services.NewOrderService(orderRepo, cartService, userService, deps.Payments, deps.Events, deps.Mailer, deps.Log)
	orderService.OnPaid(productService.OnOrderPaid)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	server := gin.New()
	server.Use(gin.Recovery(), middlewares.RequestLogger(deps.Log))
	server.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	server.Use(middlewares.SessionCart(deps.SecureCookies), middlewares.Authenticate(deps.Tokens))

	DefaultRoutes(server)
	AuthRoutes(server, controllers.NewAuthController(authService, deps.SecureCookies, deps.Log))
	ProductRoutes(server, controllers.NewProductController(productService, deps.Log))
	CartRoutes(server, controllers.NewCartController(cartService, deps.Log))
	UserRoutes(server, controllers.NewUserController(userService, deps.Log))
	OrderRoutes(server, controllers.NewOrderController(orderService, deps.Log))
	return server
}
