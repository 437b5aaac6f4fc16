package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/amirulz/cinema-live/internal/middleware"
	"github.com/amirulz/cinema-live/internal/model"
	"github.com/amirulz/cinema-live/internal/poller"
	"github.com/amirulz/cinema-live/internal/queue"
	"github.com/amirulz/cinema-live/internal/repository"
	"github.com/amirulz/cinema-live/internal/service"
)

// OrderHandler serves the customer side of the order flow: placing an
// order, reading own orders, and the live stream backed by a per
// connection CustomerPoller.
type OrderHandler struct {
	Orders   *repository.OrderRepo
	Notifier service.Notifier
	Log      *zap.Logger
	Poll     time.Duration
}

func NewOrderHandler(orders *repository.OrderRepo, notifier service.Notifier, log *zap.Logger, poll time.Duration) *OrderHandler {
	return &OrderHandler{Orders: orders, Notifier: notifier, Log: log, Poll: poll}
}

type orderItemRequest struct {
	ItemID   string `json:"itemId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type placeOrderRequest struct {
	HallNumber string             `json:"hallNumber" validate:"required"`
	SeatNumber string             `json:"seatNumber" validate:"required"`
	Items      []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// Place creates an order for the authenticated customer. Clients submit
// catalog item ids and quantities only; names and unit prices are
// resolved server-side so a tampered cart cannot change what anything
// costs.
func (h *OrderHandler) Place(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hall, seat and at least one item are required"})
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		entry, ok := model.MenuItemByID(it.ItemID)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("unknown menu item %q", it.ItemID)})
		}
		items = append(items, model.OrderItem{
			ItemID:    entry.ID,
			Name:      entry.Name,
			UnitPrice: entry.Price,
			Quantity:  it.Quantity,
		})
	}

	email := middleware.Email(c)
	order, err := h.Orders.Create(c.Request().Context(), email, req.HallNumber, req.SeatNumber, items)
	if err != nil {
		return writeRepoError(c, err)
	}

	h.Notifier.Notify(c.Request().Context(), queue.OrderEvent{
		Type:    queue.EventOrderPlaced,
		UserID:  email,
		OrderID: order.ID,
		Status:  string(order.Status),
		Title:   "Order Placed",
		Message: fmt.Sprintf("Your snacks are on the way to %s, Seat %s!", order.HallNumber, order.SeatNumber),
	})
	return c.JSON(http.StatusCreated, echo.Map{"order": order})
}

// List returns the authenticated customer's orders, most recent first.
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.Orders.ListForUser(c.Request().Context(), middleware.Email(c))
	if err != nil {
		return writeRepoError(c, err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// Live streams the customer's order list as server-sent events: one
// snapshot immediately, then one event per detected change. The poller
// behind the stream stops when the client disconnects.
func (h *OrderHandler) Live(c echo.Context) error {
	email := middleware.Email(c)
	ctx := c.Request().Context()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	// First event comes straight from the store so the client never
	// waits a poll interval for its initial state.
	orders, err := h.Orders.ListForUser(ctx, email)
	if err != nil {
		h.Log.Warn("live stream: initial read failed", zap.String("user", email), zap.Error(err))
		orders = nil
	}
	if err := writeSSE(res, orders); err != nil {
		return nil
	}

	p := poller.NewCustomerPoller(h.Orders, email, h.Poll, h.Notifier, h.Log)
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

func writeSSE(res *echo.Response, orders []model.Order) error {
	if orders == nil {
		orders = []model.Order{}
	}
	data, err := json.Marshal(echo.Map{"orders": orders})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "data: %s\n\n", data); err != nil {
		return err
	}
	res.Flush()
	return nil
}
