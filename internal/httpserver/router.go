package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/commerce"
	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/session"
)

// commerceAPI is the slice of the commerce client the handlers consume.
type commerceAPI interface {
	Ping(ctx context.Context) error
	ListProducts(ctx context.Context, token, query string) ([]domain.Product, error)
	GetProduct(ctx context.Context, token, id string) (*domain.Product, error)
	ListOrders(ctx context.Context, token, customerID string) []domain.Order
	GetOrder(ctx context.Context, token, id string) (*domain.Order, error)
	RegisterCustomer(ctx context.Context, in commerce.RegisterInput) (*domain.Customer, error)
	Login(ctx context.Context, email, password string) (*commerce.LoginResult, error)
	GetCustomer(ctx context.Context, token string) (*domain.Customer, error)
}

// Deps carries the wired collaborators for the router.
type Deps struct {
	Sessions       *session.Manager
	Commerce       commerceAPI
	AllowedOrigins []string
}

// buildRouter wires routes for the storefront surface.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = deps.AllowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Commerce))

	router.POST("/sessions", issueSessionHandler(deps.Sessions))

	authed := router.Group("/", sessionMiddleware(deps.Sessions))
	{
		authed.GET("/store/products", listProductsHandler(deps.Commerce))
		authed.GET("/store/products/:id", getProductHandler(deps.Commerce))

		authed.GET("/cart", getCartHandler())
		authed.POST("/cart/items", addCartItemHandler(deps.Commerce))
		authed.PATCH("/cart/items/:lineItemID", updateCartItemHandler())
		authed.DELETE("/cart/items/:lineItemID", removeCartItemHandler())
		authed.DELETE("/cart", clearCartHandler())

		authed.GET("/checkout", checkoutViewHandler())
		authed.POST("/checkout/shipping", checkoutShippingHandler())
		authed.POST("/checkout/payment", checkoutPaymentHandler())
		authed.POST("/checkout/back", checkoutBackHandler())
		authed.POST("/checkout/submit", checkoutSubmitHandler())

		authed.GET("/orders", listOrdersHandler(deps.Commerce))
		authed.GET("/orders/:id", getOrderHandler(deps.Commerce))

		authed.POST("/auth/register", registerHandler(deps.Commerce))
		authed.POST("/auth/login", loginHandler(deps.Commerce))
		authed.POST("/auth/logout", logoutHandler())
		authed.GET("/auth/me", meHandler(deps.Commerce))
	}

	return router, nil
}
