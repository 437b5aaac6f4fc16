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

// BookingRepo stores movie bookings under the "dynamicBookings" document:
// a JSON object mapping user email to that user's ticket array. Like the
// order store it is whole-document, last-write-wins. Bookings never
// transition; they are created once and may be deleted by their owner.
type BookingRepo struct {
	Docs DocStore
}

func NewBookingRepo(docs DocStore) *BookingRepo { return &BookingRepo{Docs: docs} }

// Create validates and saves a booking for the user, assigning an id and
// booking date when absent, and returns the stored ticket.
func (r *BookingRepo) Create(ctx context.Context, userID string, t model.Ticket) (model.Ticket, error) {
	if strings.TrimSpace(userID) == "" {
		return model.Ticket{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if strings.TrimSpace(t.MovieTitle) == "" || strings.TrimSpace(t.HallNumber) == "" {
		return model.Ticket{}, fmt.Errorf("%w: movie title and hall are required", ErrValidation)
	}
	if t.ScheduledTime.IsZero() {
		return model.Ticket{}, fmt.Errorf("%w: scheduled time is required", ErrValidation)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.BookingDate.IsZero() {
		t.BookingDate = time.Now().UTC()
	}

	all, err := r.load(ctx)
	if err != nil {
		return model.Ticket{}, err
	}
	all[userID] = append(all[userID], t)
	if err := r.save(ctx, all); err != nil {
		return model.Ticket{}, err
	}
	return t, nil
}

// ListForUser returns the user's bookings ordered by scheduled time,
// soonest first.
func (r *BookingRepo) ListForUser(ctx context.Context, userID string) ([]model.Ticket, error) {
	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	tickets := all[userID]
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].ScheduledTime.Before(tickets[j].ScheduledTime)
	})
	return tickets, nil
}

// Delete removes the user's booking with the given id. Deleting a
// booking that does not exist (or belongs to someone else) returns
// ErrNotFound.
func (r *BookingRepo) Delete(ctx context.Context, userID, id string) error {
	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	tickets := all[userID]
	for i, t := range tickets {
		if t.ID == id {
			all[userID] = append(tickets[:i], tickets[i+1:]...)
			return r.save(ctx, all)
		}
	}
	return fmt.Errorf("%w: booking %s", ErrNotFound, id)
}

func (r *BookingRepo) load(ctx context.Context) (map[string][]model.Ticket, error) {
	doc, err := r.Docs.Load(ctx, BookingsKey)
	if err != nil {
		return nil, err
	}
	all := make(map[string][]model.Ticket)
	if len(doc) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(doc, &all); err != nil {
		// Corrupt document: start over empty, same policy as orders.
		return make(map[string][]model.Ticket), nil
	}
	return all, nil
}

func (r *BookingRepo) save(ctx context.Context, all map[string][]model.Ticket) error {
	doc, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("%w: encode bookings: %v", ErrStorageUnavailable, err)
	}
	return r.Docs.Save(ctx, BookingsKey, doc)
}
