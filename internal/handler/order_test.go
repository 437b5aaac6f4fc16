package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/amirulz/cinema-live/internal/middleware"
	"github.com/amirulz/cinema-live/internal/model"
	"github.com/amirulz/cinema-live/internal/repository"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}

// authedCtx builds a request context carrying an already-validated
// identity, the state JWTAuth leaves behind.
func authedCtx(e *echo.Echo, method, target, body, email, role string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxEmail, email)
	c.Set(middleware.CtxRole, role)
	c.Set(middleware.CtxName, "Test User")
	return c, rec
}

func newOrderHandler(t *testing.T) (*OrderHandler, *repository.OrderRepo) {
	t.Helper()
	repo := repository.NewOrderRepo(repository.NewMemoryDocStore())
	h := NewOrderHandler(repo, &noopNotifier{}, zap.NewNop(), 0)
	return h, repo
}

func TestPlaceOrderComputesTotalFromCatalog(t *testing.T) {
	e := newEcho()
	h, _ := newOrderHandler(t)

	// Client sends a tampered unitPrice; the server must ignore it.
	body := `{"hallNumber":"Hall 3","seatNumber":"F12","items":[{"itemId":"pop-m","quantity":2,"unitPrice":0.01}]}`
	c, rec := authedCtx(e, http.MethodPost, "/v1/orders", body, "customer@demo.com", model.RoleCustomer)
	if err := h.Place(c); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Order model.Order `json:"order"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Order.TotalAmount != 25.80 {
		t.Errorf("total = %.2f, want 25.80", resp.Order.TotalAmount)
	}
	if resp.Order.Status != model.StatusPending {
		t.Errorf("status = %q, want pending", resp.Order.Status)
	}
	if resp.Order.Items[0].UnitPrice != 12.90 {
		t.Errorf("unit price = %.2f, want catalog price 12.90", resp.Order.Items[0].UnitPrice)
	}
	if resp.Order.UserID != "customer@demo.com" {
		t.Errorf("userId = %q, want the authenticated email", resp.Order.UserID)
	}
}

func TestPlaceOrderRejectsBadRequests(t *testing.T) {
	e := newEcho()
	h, repo := newOrderHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"empty cart", `{"hallNumber":"Hall 1","seatNumber":"A1","items":[]}`},
		{"missing hall", `{"seatNumber":"A1","items":[{"itemId":"coke","quantity":1}]}`},
		{"zero quantity", `{"hallNumber":"Hall 1","seatNumber":"A1","items":[{"itemId":"coke","quantity":0}]}`},
		{"unknown item", `{"hallNumber":"Hall 1","seatNumber":"A1","items":[{"itemId":"sushi","quantity":1}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := authedCtx(e, http.MethodPost, "/v1/orders", tc.body, "customer@demo.com", model.RoleCustomer)
			if err := h.Place(c); err != nil {
				t.Fatalf("Place: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}

	orders, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("rejected requests wrote %d orders to the store", len(orders))
	}
}

func TestListReturnsOnlyOwnOrders(t *testing.T) {
	e := newEcho()
	h, repo := newOrderHandler(t)
	ctx := context.Background()

	items := []model.OrderItem{{ItemID: "coke", Name: "Coca-Cola", UnitPrice: 6.90, Quantity: 1}}
	if _, err := repo.Create(ctx, "customer@demo.com", "Hall 1", "A1", items); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, "other@demo.com", "Hall 2", "B2", items); err != nil {
		t.Fatalf("Create: %v", err)
	}

	c, rec := authedCtx(e, http.MethodGet, "/v1/orders", "", "customer@demo.com", model.RoleCustomer)
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	var resp struct {
		Orders []model.Order `json:"orders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Orders) != 1 || resp.Orders[0].UserID != "customer@demo.com" {
		t.Errorf("got %d orders, want exactly the caller's one", len(resp.Orders))
	}
}
