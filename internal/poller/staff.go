package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/amirulz/cinema-live/internal/model"
	"github.com/amirulz/cinema-live/internal/queue"
	"github.com/amirulz/cinema-live/internal/repository"
	"github.com/amirulz/cinema-live/internal/service"
)

const defaultStaffInterval = 3 * time.Second

// StaffPoller keeps the full order list fresh for the staff dashboard and
// is the only component that advances orders through their lifecycle. Its
// contract is simpler than the customer side: every tick replaces the
// whole snapshot, no change-diffing and no per-tick notification. Counts
// and status filtering are pure transforms over the latest read. Callers
// must have confirmed the staff/admin role before mounting one of these;
// the poller itself trusts the identity it was handed.
type StaffPoller struct {
	repo     *repository.OrderRepo
	interval time.Duration
	notifier service.Notifier
	log      *zap.Logger

	mu     sync.Mutex
	orders []model.Order

	updates chan []model.Order
}

func NewStaffPoller(repo *repository.OrderRepo, interval time.Duration, notifier service.Notifier, log *zap.Logger) *StaffPoller {
	if interval <= 0 {
		interval = defaultStaffInterval
	}
	return &StaffPoller{
		repo:     repo,
		interval: interval,
		notifier: notifier,
		log:      log,
		updates:  make(chan []model.Order, 1),
	}
}

// Run performs the immediate first read and then re-reads on every tick
// until ctx is cancelled, at which point the ticker is released.
func (p *StaffPoller) Run(ctx context.Context) {
	p.reload(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.reload(ctx)
		}
	}
}

// Snapshot returns the latest full order list, most recent first.
func (p *StaffPoller) Snapshot() []model.Order {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.Order, len(p.orders))
	copy(out, p.orders)
	return out
}

// Counts returns the per-status tally derived from the latest read.
func (p *StaffPoller) Counts() model.OrderCounts {
	return model.CountByStatus(p.Snapshot())
}

// Filtered returns the visible set for the selected filter tab: orders
// whose status equals filter, or everything for "all".
func (p *StaffPoller) Filtered(filter string) []model.Order {
	return model.FilterByStatus(p.Snapshot(), filter)
}

// Updates delivers the full order list after every reload, for live
// streaming consumers. Non-blocking, capacity one.
func (p *StaffPoller) Updates() <-chan []model.Order {
	return p.updates
}

// Advance moves the order with the given id to its next lifecycle state
// and immediately re-reads the store so the dashboard reflects the
// mutation without waiting for the next tick. When the order is already
// delivered there is no next state and Advance is a no-op: it returns the
// order unchanged with advanced=false. Unknown ids return ErrNotFound.
func (p *StaffPoller) Advance(ctx context.Context, id string) (order model.Order, advanced bool, err error) {
	// Authoritative read; the snapshot may be a tick stale.
	orders, err := p.repo.ListAll(ctx)
	if err != nil {
		return model.Order{}, false, err
	}
	var current *model.Order
	for i := range orders {
		if orders[i].ID == id {
			current = &orders[i]
			break
		}
	}
	if current == nil {
		return model.Order{}, false, fmt.Errorf("%w: order %s", repository.ErrNotFound, id)
	}

	next, ok := current.Status.Next()
	if !ok {
		return *current, false, nil
	}

	updated, err := p.repo.SetStatus(ctx, id, next)
	if err != nil {
		return model.Order{}, false, err
	}
	p.reload(ctx)

	p.notifier.Notify(ctx, queue.OrderEvent{
		Type:    queue.EventOrderStatusChanged,
		UserID:  updated.UserID,
		OrderID: updated.ID,
		Status:  string(updated.Status),
		Title:   "Order Updated",
		Message: fmt.Sprintf("Order #%s marked as %s", ShortID(updated.ID), updated.Status.Label()),
	})
	return updated, true, nil
}

func (p *StaffPoller) reload(ctx context.Context) {
	orders, err := p.repo.ListAll(ctx)
	if err != nil {
		p.log.Warn("staff poller: read failed", zap.Error(err))
		return
	}
	p.mu.Lock()
	p.orders = orders
	p.mu.Unlock()

	select {
	case p.updates <- orders:
	default:
	}
}

// ShortID returns the display form of an order id, its last six
// characters, the way order numbers are shown in notifications.
func ShortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}
