package server

import (
	"net/http"

	"storefront/internal/handler"
	mw "storefront/internal/middleware"
	"storefront/internal/repository"

	"github.com/labstack/echo/v4"
)

// Handlers is everything mounted on the router.
type Handlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Product    *handler.ProductHandler
	Cart       *handler.CartHandler
	Checkout   *handler.CheckoutHandler
	Order      *handler.OrderHandler
	AdminOrder *handler.AdminOrderHandler
	AuditLog   *handler.AuditLogHandler
}

// NewGuards builds the caller and admin middleware chains.
func NewGuards(verifier mw.TokenVerifier, users repository.UserRepository) handler.Guards {
	caller := []echo.MiddlewareFunc{mw.AuthJWT(verifier), mw.ActiveUserGuard(users)}
	admin := append(append([]echo.MiddlewareFunc{}, caller...), mw.AdminRoleGuard())
	return handler.Guards{Caller: caller, Admin: admin}
}

func RegisterRoutes(e *echo.Echo, g handler.Guards, h Handlers, metrics http.Handler) {
	h.Health.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e, g)
	h.User.RegisterRoutes(e, g)
	h.Product.RegisterRoutes(e, g)
	h.Cart.RegisterRoutes(e, g)
	h.Checkout.RegisterRoutes(e, g)
	h.Order.RegisterRoutes(e, g)
	h.AdminOrder.RegisterRoutes(e, g)
	h.AuditLog.RegisterRoutes(e, g)

	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}
}
