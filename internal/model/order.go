package model

import "time"

// Status is the delivery state of a snack order. Orders only ever move
// forward through the fixed sequence pending -> preparing ->
// out_for_delivery -> delivered; delivered is terminal.
type Status string

const (
	StatusPending        Status = "pending"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
)

// statusOrder fixes the lifecycle. There is no cancelled or failed state;
// the only exit is delivery.
var statusOrder = []Status{
	StatusPending,
	StatusPreparing,
	StatusOutForDelivery,
	StatusDelivered,
}

// AllStatuses returns the lifecycle states in order. The slice is a copy,
// callers may reorder it freely.
func AllStatuses() []Status {
	out := make([]Status, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// Next returns the status immediately following s in the lifecycle. The
// second return value is false when s is terminal (delivered) or unknown.
func (s Status) Next() (Status, bool) {
	for i, st := range statusOrder {
		if st == s && i+1 < len(statusOrder) {
			return statusOrder[i+1], true
		}
	}
	return "", false
}

// Valid reports whether s is one of the four lifecycle states.
func (s Status) Valid() bool {
	for _, st := range statusOrder {
		if st == s {
			return true
		}
	}
	return false
}

// Label returns the human-readable form shown to customers, e.g.
// "Out for Delivery".
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusPreparing:
		return "Preparing"
	case StatusOutForDelivery:
		return "Out for Delivery"
	case StatusDelivered:
		return "Delivered"
	}
	return "Unknown"
}

// OrderItem is one line of an order: a menu item and how many of it.
// Quantity is at least 1. UnitPrice is the price per unit in RM at the
// time the order was placed; it is never recomputed from the catalog.
type OrderItem struct {
	ItemID    string  `json:"itemId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// Order is a snack order placed from a hall seat. Everything except
// Status and DeliveryTime is immutable after creation.
//
// Fields:
//  ID           – opaque unique identifier assigned at creation.
//  UserID       – email of the placing customer.
//  HallNumber   – free-form hall label, e.g. "Hall 1".
//  SeatNumber   – free-form seat label, e.g. "A12".
//  Items        – ordered item lines; never empty.
//  TotalAmount  – sum of unitPrice*quantity, fixed at creation.
//  Status       – lifecycle state, advances monotonically.
//  OrderTime    – creation timestamp (UTC).
//  DeliveryTime – set exactly once, when the order becomes delivered.
type Order struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	HallNumber   string      `json:"hallNumber"`
	SeatNumber   string      `json:"seatNumber"`
	Items        []OrderItem `json:"items"`
	TotalAmount  float64     `json:"totalAmount"`
	Status       Status      `json:"status"`
	OrderTime    time.Time   `json:"orderTime"`
	DeliveryTime *time.Time  `json:"deliveryTime,omitempty"`
}

// OrderCounts is the per-status tally shown on the staff dashboard filter
// tabs. All is the size of the whole set.
type OrderCounts struct {
	All            int `json:"all"`
	Pending        int `json:"pending"`
	Preparing      int `json:"preparing"`
	OutForDelivery int `json:"out_for_delivery"`
	Delivered      int `json:"delivered"`
}

// CountByStatus tallies orders per lifecycle state.
func CountByStatus(orders []Order) OrderCounts {
	c := OrderCounts{All: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case StatusPending:
			c.Pending++
		case StatusPreparing:
			c.Preparing++
		case StatusOutForDelivery:
			c.OutForDelivery++
		case StatusDelivered:
			c.Delivered++
		}
	}
	return c
}

// FilterByStatus returns the orders whose status equals filter, or all
// orders when filter is "all". It is a pure view transform over an
// already-loaded list, not a store query.
func FilterByStatus(orders []Order, filter string) []Order {
	if filter == "" || filter == "all" {
		return orders
	}
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if string(o.Status) == filter {
			out = append(out, o)
		}
	}
	return out
}
