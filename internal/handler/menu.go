package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amirulz/cinema-live/internal/model"
)

// Menu returns the static snack catalog plus the category and hall lists
// the ordering form is built from.
func Menu(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"categories": model.MenuCategories,
		"halls":      model.Halls,
		"items":      model.Menu,
	})
}
