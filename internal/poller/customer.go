// Package poller implements the two timer-driven views over the shared
// order store. Neither view gets push updates from the store writer; each
// re-reads on its own interval and on external change signals, so a
// mutation from one side becomes visible to the other at the next tick.
// That eventual consistency is deliberate and mirrors the storage-event /
// polling model the views were designed around.
package poller

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/amirulz/cinema-live/internal/model"
	"github.com/amirulz/cinema-live/internal/queue"
	"github.com/amirulz/cinema-live/internal/repository"
	"github.com/amirulz/cinema-live/internal/service"
)

const defaultCustomerInterval = 2 * time.Second

// CustomerPoller keeps one customer's order list fresh. It re-reads the
// store every interval, compares the serialized result with the previous
// read, and only on a real change replaces its state, stamps the
// last-update time and emits an "orders updated" notification. The very
// first load never notifies. Besides the ticker it also re-reads on
// manual Refresh calls (the tab-refocus analog) and on store change
// signals (the cross-tab storage event analog).
type CustomerPoller struct {
	repo     *repository.OrderRepo
	userID   string
	interval time.Duration
	notifier service.Notifier
	log      *zap.Logger

	mu         sync.Mutex
	orders     []model.Order
	snapshot   []byte
	lastUpdate time.Time
	loaded     bool

	refresh chan struct{}
	updates chan []model.Order
}

func NewCustomerPoller(repo *repository.OrderRepo, userID string, interval time.Duration, notifier service.Notifier, log *zap.Logger) *CustomerPoller {
	if interval <= 0 {
		interval = defaultCustomerInterval
	}
	return &CustomerPoller{
		repo:     repo,
		userID:   userID,
		interval: interval,
		notifier: notifier,
		log:      log,
		refresh:  make(chan struct{}, 1),
		updates:  make(chan []model.Order, 1),
	}
}

// Run performs the immediate first read and then polls until ctx is
// cancelled. The ticker and the store subscription are both released on
// return; nothing keeps polling after the owning view is gone.
func (p *CustomerPoller) Run(ctx context.Context) {
	changes, err := p.repo.Watch(ctx)
	if err != nil {
		// The interval alone still gives near-real-time behavior.
		p.log.Warn("customer poller: store watch unavailable", zap.Error(err))
		changes = nil
	}

	p.reload(ctx, false)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.reload(ctx, true)
		case <-p.refresh:
			p.reload(ctx, true)
		case _, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			p.reload(ctx, true)
		}
	}
}

// Refresh asks for an immediate re-read on the next loop iteration. It
// never blocks; a refresh already queued is enough.
func (p *CustomerPoller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Snapshot returns the current order list and when it last changed.
func (p *CustomerPoller) Snapshot() ([]model.Order, time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.Order, len(p.orders))
	copy(out, p.orders)
	return out, p.lastUpdate
}

// Updates delivers the new order list after every detected change. The
// channel has capacity one and is written non-blockingly; a slow consumer
// sees the latest state on its next receive via Snapshot.
func (p *CustomerPoller) Updates() <-chan []model.Order {
	return p.updates
}

// reload re-reads the store and reconciles. Value equality is decided on
// the serialized form, not on object identity, so any changed field
// counts. Failed reads are logged and skipped; prior state stays intact
// and the next tick retries.
func (p *CustomerPoller) reload(ctx context.Context, announce bool) {
	orders, err := p.repo.ListForUser(ctx, p.userID)
	if err != nil {
		p.log.Warn("customer poller: read failed", zap.String("user", p.userID), zap.Error(err))
		return
	}
	snap, err := json.Marshal(orders)
	if err != nil {
		p.log.Warn("customer poller: encode failed", zap.Error(err))
		return
	}

	p.mu.Lock()
	first := !p.loaded
	changed := !bytes.Equal(snap, p.snapshot)
	if changed {
		p.orders = orders
		p.snapshot = snap
		p.lastUpdate = time.Now()
	}
	p.loaded = true
	p.mu.Unlock()

	if !changed || first || !announce {
		return
	}
	p.notifier.Notify(ctx, queue.OrderEvent{
		Type:    queue.EventOrderUpdated,
		UserID:  p.userID,
		Title:   "Orders Updated",
		Message: "Your order status has been updated!",
	})
	select {
	case p.updates <- orders:
	default:
	}
}
