package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirulz/cinema-live/internal/model"
)

func popcornItems() []model.OrderItem {
	return []model.OrderItem{
		{ItemID: "pop-m", Name: "Medium Popcorn", UnitPrice: 12.90, Quantity: 2},
	}
}

func TestCreateComputesTotalAndDefaults(t *testing.T) {
	repo := NewOrderRepo(NewMemoryDocStore())
	ctx := context.Background()

	items := []model.OrderItem{
		{ItemID: "pop-m", Name: "Medium Popcorn", UnitPrice: 12.90, Quantity: 2},
		{ItemID: "coke", Name: "Coca-Cola", UnitPrice: 6.90, Quantity: 1},
	}
	o, err := repo.Create(ctx, "customer@demo.com", "Hall 1", "A12", items)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.ID == "" {
		t.Fatal("expected an id")
	}
	if got, want := o.TotalAmount, 12.90*2+6.90; got != want {
		t.Fatalf("total = %v, want %v", got, want)
	}
	if o.Status != model.StatusPending {
		t.Fatalf("status = %q, want pending", o.Status)
	}
	if o.DeliveryTime != nil {
		t.Fatal("deliveryTime must be absent at creation")
	}
	if o.OrderTime.IsZero() {
		t.Fatal("orderTime must be set")
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	repo := NewOrderRepo(NewMemoryDocStore())
	ctx := context.Background()

	cases := []struct {
		name  string
		user  string
		hall  string
		seat  string
		items []model.OrderItem
	}{
		{"empty items", "u@demo.com", "Hall 1", "A1", nil},
		{"missing hall", "u@demo.com", "", "A1", popcornItems()},
		{"missing seat", "u@demo.com", "Hall 1", "", popcornItems()},
		{"missing user", "", "Hall 1", "A1", popcornItems()},
		{"zero quantity", "u@demo.com", "Hall 1", "A1", []model.OrderItem{{ItemID: "coke", Name: "Coca-Cola", UnitPrice: 6.90, Quantity: 0}}},
	}
	for _, tt := range cases {
		if _, err := repo.Create(ctx, tt.user, tt.hall, tt.seat, tt.items); !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: err = %v, want ErrValidation", tt.name, err)
		}
	}

	// No partial order may have been recorded.
	orders, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("store should be unchanged, has %d orders", len(orders))
	}
}

func TestListOrderingAndIsolation(t *testing.T) {
	repo := NewOrderRepo(NewMemoryDocStore())
	ctx := context.Background()

	a, _ := repo.Create(ctx, "a@demo.com", "Hall 1", "A1", popcornItems())
	b, _ := repo.Create(ctx, "b@demo.com", "Hall 2", "B2", popcornItems())
	c, _ := repo.Create(ctx, "a@demo.com", "Hall 3", "C3", popcornItems())

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("listAll returned %d orders, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].OrderTime.After(all[i-1].OrderTime) {
			t.Fatal("listAll must be ordered most recent first")
		}
	}

	own, err := repo.ListForUser(ctx, "a@demo.com")
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("user a has %d orders, want 2", len(own))
	}
	for _, o := range own {
		if o.UserID != "a@demo.com" {
			t.Fatalf("foreign order %s leaked into user listing", o.ID)
		}
	}
	seen := map[string]bool{a.ID: false, b.ID: false, c.ID: false}
	for _, o := range all {
		if done, ok := seen[o.ID]; !ok || done {
			t.Fatalf("unexpected or duplicate order %s in listAll", o.ID)
		}
		seen[o.ID] = true
	}
}

func TestSetStatusNotFound(t *testing.T) {
	repo := NewOrderRepo(NewMemoryDocStore())
	_, err := repo.SetStatus(context.Background(), "nope", model.StatusPreparing)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeliveredStampsTimeOnce(t *testing.T) {
	repo := NewOrderRepo(NewMemoryDocStore())
	ctx := context.Background()

	o, _ := repo.Create(ctx, "u@demo.com", "Hall 1", "A1", popcornItems())

	mid, err := repo.SetStatus(ctx, o.ID, model.StatusOutForDelivery)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if mid.DeliveryTime != nil {
		t.Fatal("deliveryTime must stay absent before delivered")
	}

	first, err := repo.SetStatus(ctx, o.ID, model.StatusDelivered)
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if first.DeliveryTime == nil {
		t.Fatal("deliveryTime must be set on delivery")
	}

	time.Sleep(5 * time.Millisecond)
	second, err := repo.SetStatus(ctx, o.ID, model.StatusDelivered)
	if err != nil {
		t.Fatalf("second deliver: %v", err)
	}
	if !second.DeliveryTime.Equal(*first.DeliveryTime) {
		t.Fatal("repeated delivered write must keep the original delivery instant")
	}
}

func TestMalformedDocumentTreatedAsEmpty(t *testing.T) {
	docs := NewMemoryDocStore()
	ctx := context.Background()
	if err := docs.Save(ctx, OrdersKey, []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	repo := NewOrderRepo(docs)
	orders, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("corrupt document should read as empty, got %d orders", len(orders))
	}

	// And the store recovers on the next write.
	if _, err := repo.Create(ctx, "u@demo.com", "Hall 1", "A1", popcornItems()); err != nil {
		t.Fatalf("create after corruption: %v", err)
	}
	orders, _ = repo.ListAll(ctx)
	if len(orders) != 1 {
		t.Fatalf("expected 1 order after recovery, got %d", len(orders))
	}
}

func TestWatchSignalsOnWrite(t *testing.T) {
	docs := NewMemoryDocStore()
	repo := NewOrderRepo(docs)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := repo.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if _, err := repo.Create(ctx, "u@demo.com", "Hall 1", "A1", popcornItems()); err != nil {
		t.Fatalf("create: %v", err)
	}
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no change signal after write")
	}
}
