package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/amirulz/cinema-live/internal/model"
	"github.com/amirulz/cinema-live/internal/poller"
	"github.com/amirulz/cinema-live/internal/repository"
	"github.com/amirulz/cinema-live/internal/service"
)

// StaffHandler serves the staff dashboard: the filtered order list with
// per-status counts, the advance action, and a live stream. List, Counts
// and Advance go through the shared dashboard poller started at boot;
// Live mounts a dedicated poller per connection so streams do not compete
// for one updates channel.
type StaffHandler struct {
	Dashboard *poller.StaffPoller
	Orders    *repository.OrderRepo
	Notifier  service.Notifier
	Log       *zap.Logger
	Poll      time.Duration
}

func NewStaffHandler(dashboard *poller.StaffPoller, orders *repository.OrderRepo, notifier service.Notifier, log *zap.Logger, poll time.Duration) *StaffHandler {
	return &StaffHandler{Dashboard: dashboard, Orders: orders, Notifier: notifier, Log: log, Poll: poll}
}

// List returns the orders visible under the requested status filter plus
// the per-status counts. The counts always cover the full set, not the
// filtered one, so the filter tabs can show their badges.
func (h *StaffHandler) List(c echo.Context) error {
	filter := c.QueryParam("status")
	if !validFilter(filter) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status filter"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"orders":   h.Dashboard.Filtered(filter),
		"counts":   h.Dashboard.Counts(),
		"filter":   normalizeFilter(filter),
		"statuses": model.AllStatuses(),
	})
}

// Counts returns the per-status tallies on their own.
func (h *StaffHandler) Counts(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"counts": h.Dashboard.Counts()})
}

// Advance moves an order one step along its lifecycle. A delivered order
// is left alone and reported with advanced=false; an unknown id is 404.
func (h *StaffHandler) Advance(c echo.Context) error {
	order, advanced, err := h.Dashboard.Advance(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeRepoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"order":    order,
		"advanced": advanced,
	})
}

// Live streams the full order list as server-sent events, one snapshot
// immediately and then one per poll tick.
func (h *StaffHandler) Live(c echo.Context) error {
	ctx := c.Request().Context()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	orders, err := h.Orders.ListAll(ctx)
	if err != nil {
		h.Log.Warn("staff live stream: initial read failed", zap.Error(err))
		orders = nil
	}
	if err := writeSSE(res, orders); err != nil {
		return nil
	}

	p := poller.NewStaffPoller(h.Orders, h.Poll, h.Notifier, h.Log)
	go p.Run(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case next := <-p.Updates():
			if err := writeSSE(res, next); err != nil {
				return nil
			}
		}
	}
}

func validFilter(filter string) bool {
	if filter == "" || filter == "all" {
		return true
	}
	return model.Status(filter).Valid()
}

func normalizeFilter(filter string) string {
	if filter == "" {
		return "all"
	}
	return filter
}
