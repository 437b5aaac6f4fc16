package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amirulz/cinema-live/internal/queue"
	"github.com/amirulz/cinema-live/internal/service"
)

// RequireRole enforces that the authenticated user's role satisfies the
// given predicate (e.g. model.StaffRole). A rejection answers 403 and
// emits an access_denied notification; redirecting the user somewhere
// friendlier is the client's job, this is only the decision point. It
// assumes JWTAuth already ran and stored the role in context.
func RequireRole(notifier service.Notifier, allowed func(role string) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allowed(Role(c)) {
				if notifier != nil {
					notifier.Notify(c.Request().Context(), queue.OrderEvent{
						Type:    queue.EventAccessDenied,
						UserID:  Email(c),
						Title:   "Access Denied",
						Message: "You don't have permission to view this page",
					})
				}
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
