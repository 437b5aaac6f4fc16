package repository

import "context"

// DocStore is the shared document store the order and booking
// repositories sit on. Each key holds one serialized JSON document and a
// write replaces the whole document; there is no row-level update and no
// concurrent-writer protection, so two simultaneous writers race and the
// last write wins. That weakness is accepted: the store mirrors a
// browser's localStorage, not a database.
//
// Watch delivers a signal after every successful Save of the key, the
// equivalent of a cross-tab storage event. Watchers are unregistered when
// their context is cancelled.
type DocStore interface {
	// Load returns the current document for key, or (nil, nil) when the
	// key has never been written.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the document stored under key.
	Save(ctx context.Context, key string, doc []byte) error
	// Watch returns a channel that receives a signal whenever the
	// document under key changes. The channel is closed once ctx is done.
	Watch(ctx context.Context, key string) (<-chan struct{}, error)
}

// Document keys. All orders for all users live under one key, and all
// dynamic bookings live under another, matching the persisted layout the
// rest of the system expects.
const (
	OrdersKey   = "orders"
	BookingsKey = "dynamicBookings"
)
