package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amirulz/cinema-live/internal/model"
)

// OrderRepo owns the shared order collection. All orders for all users
// live in one JSON array under the "orders" document; every mutation is a
// whole-document read-modify-write. The repo deliberately exposes only
// four operations so that callers cannot bypass the lifecycle: creation,
// the two reads, and SetStatus. SetStatus itself does not enforce the
// transition table; callers advance orders via model.Status.Next.
type OrderRepo struct {
	Docs DocStore
}

func NewOrderRepo(docs DocStore) *OrderRepo { return &OrderRepo{Docs: docs} }

// Create validates the request, appends the new order to the shared
// document and returns it. The total is computed here, once; the status
// starts at pending and deliveryTime is unset. On any validation failure
// the document is not written.
func (r *OrderRepo) Create(ctx context.Context, userID, hall, seat string, items []model.OrderItem) (model.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return model.Order{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if strings.TrimSpace(hall) == "" || strings.TrimSpace(seat) == "" {
		return model.Order{}, fmt.Errorf("%w: hall and seat are required", ErrValidation)
	}
	if len(items) == 0 {
		return model.Order{}, fmt.Errorf("%w: order has no items", ErrValidation)
	}
	var total float64
	for _, it := range items {
		if it.Quantity < 1 {
			return model.Order{}, fmt.Errorf("%w: item %q has quantity %d", ErrValidation, it.Name, it.Quantity)
		}
		total += it.UnitPrice * float64(it.Quantity)
	}

	orders, err := r.load(ctx)
	if err != nil {
		return model.Order{}, err
	}

	order := model.Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		HallNumber:  hall,
		SeatNumber:  seat,
		Items:       items,
		TotalAmount: total,
		Status:      model.StatusPending,
		OrderTime:   time.Now().UTC(),
	}
	orders = append(orders, order)
	if err := r.save(ctx, orders); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// ListAll returns every order, most recent first.
func (r *OrderRepo) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	sortByOrderTime(orders)
	return orders, nil
}

// ListForUser returns the given user's orders, most recent first. Orders
// belonging to other users are never included.
func (r *OrderRepo) ListForUser(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	own := orders[:0]
	for _, o := range orders {
		if o.UserID == userID {
			own = append(own, o)
		}
	}
	sortByOrderTime(own)
	return own, nil
}

// SetStatus overwrites the status of the order with the given id and
// returns the updated order. Moving to delivered stamps deliveryTime, but
// only the first time: a repeated delivered write keeps the original
// instant, so the terminal state is idempotent.
func (r *OrderRepo) SetStatus(ctx context.Context, id string, status model.Status) (model.Order, error) {
	if !status.Valid() {
		return model.Order{}, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	orders, err := r.load(ctx)
	if err != nil {
		return model.Order{}, err
	}
	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		orders[i].Status = status
		if status == model.StatusDelivered && orders[i].DeliveryTime == nil {
			now := time.Now().UTC()
			orders[i].DeliveryTime = &now
		}
		if err := r.save(ctx, orders); err != nil {
			return model.Order{}, err
		}
		return orders[i], nil
	}
	return model.Order{}, fmt.Errorf("%w: order %s", ErrNotFound, id)
}

// Watch signals whenever the orders document changes, from this process
// or any other writer sharing the store.
func (r *OrderRepo) Watch(ctx context.Context) (<-chan struct{}, error) {
	return r.Docs.Watch(ctx, OrdersKey)
}

func (r *OrderRepo) load(ctx context.Context) ([]model.Order, error) {
	doc, err := r.Docs.Load(ctx, OrdersKey)
	if err != nil {
		return nil, err
	}
	if len(doc) == 0 {
		return nil, nil
	}
	var orders []model.Order
	if err := json.Unmarshal(doc, &orders); err != nil {
		// Hand-edited or corrupt document: treat as empty rather than
		// crash. The true prior state is not recoverable anyway.
		return nil, nil
	}
	return orders, nil
}

func (r *OrderRepo) save(ctx context.Context, orders []model.Order) error {
	doc, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("%w: encode orders: %v", ErrStorageUnavailable, err)
	}
	return r.Docs.Save(ctx, OrdersKey, doc)
}

func sortByOrderTime(orders []model.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderTime.After(orders[j].OrderTime)
	})
}
