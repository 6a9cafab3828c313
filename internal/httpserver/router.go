package httpserver

import (
	"log"

	"storefront/internal/auth"
	newsletterrepo "storefront/internal/repository/newsletter"
	adminsvc "storefront/internal/service/admin"
	cartsvc "storefront/internal/service/cart"
	productsvc "storefront/internal/service/product"
	usersvc "storefront/internal/service/user"
	"storefront/internal/stockstream"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps collects the services the router dispatches to.
type Deps struct {
	CartSvc    *cartsvc.Service
	ProductSvc *productsvc.Service
	UserSvc    *usersvc.Service
	AdminSvc   *adminsvc.Service
	Newsletter newsletterrepo.Repository
	Stream     *stockstream.Hub
	Tokens     *auth.JWTService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = allowedOrigins
	corsCfg.AllowCredentials = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowOrigins = nil
		corsCfg.AllowCredentials = false
	}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	a := &api{deps: deps, logger: logger}

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", a.register)
		authGroup.POST("/login", a.login)
		authGroup.POST("/verify-email", a.verifyEmail)
		authGroup.POST("/forgot-password", a.forgotPassword)
		authGroup.POST("/reset-password", a.resetPassword)
	}

	store := router.Group("/api", maintenanceGuard(deps.AdminSvc))
	{
		store.GET("/products", a.listProducts)
		store.GET("/products/stream", a.streamStockUpdates)
		store.GET("/products/:id", a.getProduct)
		store.POST("/newsletter/subscribe", a.subscribeNewsletter)
		store.POST("/coupons/validate", a.validateCoupon)

		user := store.Group("", authRequired(deps.Tokens))
		{
			user.GET("/profile", a.profile)
			user.GET("/cart", a.getCart)
			user.POST("/cart/items", a.addCartItem)
			user.PUT("/cart/items/:productId", a.updateCartItem)
			user.DELETE("/cart/items/:productId", a.removeCartItem)
			user.DELETE("/cart", a.clearCart)
			user.POST("/cart/checkout", a.checkout)
		}
	}

	admin := router.Group("/api/admin", authRequired(deps.Tokens), adminRequired())
	{
		admin.GET("/dashboard", a.dashboard)
		admin.GET("/users", a.listUsers)
		admin.DELETE("/users/:id", a.deleteUser)
		admin.POST("/products", a.createProduct)
		admin.PUT("/products/:id", a.updateProduct)
		admin.DELETE("/products/:id", a.deleteProduct)
		admin.PUT("/products/:id/stock", a.setProductStock)
		admin.GET("/settings", a.getSettings)
		admin.PUT("/settings", a.updateSettings)
	}

	return router
}

type api struct {
	deps   Deps
	logger *log.Logger
}
