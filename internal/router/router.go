package router // wires handlers and middleware onto the Echo instance

import (
	"github.com/labstack/echo/v4"

	"github.com/amirulz/cinema-live/internal/handler"
	"github.com/amirulz/cinema-live/internal/middleware"
	"github.com/amirulz/cinema-live/internal/model"
	"github.com/amirulz/cinema-live/internal/service"
)

// RegisterRoutes registers routes that require no authentication: the
// health probe and the static snack catalog the ordering form is built
// from.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/v1/menu", handler.Menu)
}

// RegisterAuth registers the session endpoints. Login optionally sits
// behind the Redis token bucket; refresh and logout only ever see opaque
// tokens so they stay unthrottled. /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, loginLimiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if loginLimiter != nil {
		g.POST("/login", a.Login, loginLimiter)
	} else {
		g.POST("/login", a.Login)
	}
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterCustomer registers the authenticated customer surface: placing
// and reading orders (plus the live stream), bookings, and the countdown
// derived from them. Any valid session may use these; staff members
// ordering their own snacks is fine.
func RegisterCustomer(e *echo.Echo, jwtSecret string, o *handler.OrderHandler, b *handler.BookingHandler, cd *handler.CountdownHandler) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))

	g.POST("/orders", o.Place)
	g.GET("/orders", o.List)
	g.GET("/orders/live", o.Live)

	g.POST("/bookings", b.Create)
	g.GET("/bookings", b.List)
	g.DELETE("/bookings/:id", b.Delete)

	g.GET("/countdown", cd.Get)
}

// RegisterStaff registers the dashboard surface under /v1/staff. Only
// staff and admin roles pass; a rejected request also emits the
// access-denied notification.
func RegisterStaff(e *echo.Echo, jwtSecret string, notifier service.Notifier, s *handler.StaffHandler) {
	g := e.Group("/v1/staff")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(notifier, model.StaffRole))

	g.GET("/orders", s.List)
	g.GET("/orders/counts", s.Counts)
	g.POST("/orders/:id/advance", s.Advance)
	g.GET("/orders/live", s.Live)
}
