package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amirulz/cinema-live/internal/repository"
)

// writeRepoError maps the repository error taxonomy onto HTTP statuses:
// validation failures are the caller's fault (400), missing entities 404,
// and an unreachable store 503. Anything else is a plain 500.
func writeRepoError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrStorageUnavailable):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable, please retry"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
