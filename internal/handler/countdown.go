package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/amirulz/cinema-live/internal/countdown"
	"github.com/amirulz/cinema-live/internal/middleware"
	"github.com/amirulz/cinema-live/internal/repository"
)

// CountdownHandler derives "time until the feature starts" entries from
// the user's bookings.
type CountdownHandler struct {
	Bookings *repository.BookingRepo
}

func NewCountdownHandler(bookings *repository.BookingRepo) *CountdownHandler {
	return &CountdownHandler{Bookings: bookings}
}

// Get returns one countdown session per booking, evaluated at the server
// clock. Clients re-request every second to animate the timer.
func (h *CountdownHandler) Get(c echo.Context) error {
	tickets, err := h.Bookings.ListForUser(c.Request().Context(), middleware.Email(c))
	if err != nil {
		return writeRepoError(c, err)
	}
	now := time.Now().UTC()
	return c.JSON(http.StatusOK, echo.Map{
		"serverTime": now,
		"sessions":   countdown.FromTickets(tickets, now),
	})
}
