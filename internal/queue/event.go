// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderEventsQueue is the durable queue carrying every order notification.
const OrderEventsQueue = "orders.events"

// Event types. Each one corresponds to a toast shown somewhere in the UI:
// the customer's order confirmation, the customer's live "orders updated"
// banner, the staff-side status change confirmation, and the rejection
// shown when a non-staff user reaches for the dashboard.
const (
	EventOrderPlaced        = "order_placed"
	EventOrderUpdated       = "order_updated"
	EventOrderStatusChanged = "order_status_changed"
	EventAccessDenied       = "access_denied"
)

// OrderEvent is published for every user-visible notification. It carries
// enough information for downstream consumers to log or fan out without
// querying the order store.
type OrderEvent struct {
	Type    string `json:"type"`
	UserID  string `json:"user_id,omitempty"`
	OrderID string `json:"order_id,omitempty"`
	Status  string `json:"status,omitempty"`
	Title   string `json:"title"`
	Message string `json:"message"`
	At      string `json:"at"`
}
