package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/amirulz/cinema-live/internal/middleware"
	"github.com/amirulz/cinema-live/internal/model"
	"github.com/amirulz/cinema-live/internal/repository"
)

// BookingHandler serves the authenticated user's movie bookings, the
// tickets the countdown view is derived from.
type BookingHandler struct {
	Bookings *repository.BookingRepo
}

func NewBookingHandler(bookings *repository.BookingRepo) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

type bookingRequest struct {
	MovieTitle      string    `json:"movieTitle" validate:"required"`
	HallNumber      string    `json:"hallNumber" validate:"required"`
	SeatNumber      string    `json:"seatNumber"`
	ScheduledTime   time.Time `json:"scheduledTime" validate:"required"`
	TicketPrice     float64   `json:"ticketPrice" validate:"gte=0"`
	AdBufferMinutes int       `json:"adBufferMinutes" validate:"gte=0"`
	CinemaName      string    `json:"cinemaName"`
}

// Create stores a booking for the authenticated user.
func (h *BookingHandler) Create(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie title, hall and scheduled time are required"})
	}

	ticket, err := h.Bookings.Create(c.Request().Context(), middleware.Email(c), model.Ticket{
		MovieTitle:      req.MovieTitle,
		HallNumber:      req.HallNumber,
		SeatNumber:      req.SeatNumber,
		ScheduledTime:   req.ScheduledTime,
		TicketPrice:     req.TicketPrice,
		AdBufferMinutes: req.AdBufferMinutes,
		CinemaName:      req.CinemaName,
	})
	if err != nil {
		return writeRepoError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"ticket": ticket})
}

// List returns the user's bookings, soonest showtime first.
func (h *BookingHandler) List(c echo.Context) error {
	tickets, err := h.Bookings.ListForUser(c.Request().Context(), middleware.Email(c))
	if err != nil {
		return writeRepoError(c, err)
	}
	if tickets == nil {
		tickets = []model.Ticket{}
	}
	return c.JSON(http.StatusOK, echo.Map{"tickets": tickets})
}

// Delete removes one of the user's bookings. Bookings belonging to other
// users look exactly like missing ones.
func (h *BookingHandler) Delete(c echo.Context) error {
	if err := h.Bookings.Delete(c.Request().Context(), middleware.Email(c), c.Param("id")); err != nil {
		return writeRepoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
