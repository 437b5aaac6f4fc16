package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/amirulz/cinema-live/internal/countdown"
	"github.com/amirulz/cinema-live/internal/model"
	"github.com/amirulz/cinema-live/internal/repository"
)

func newBookingHandlers(t *testing.T) (*BookingHandler, *CountdownHandler, *repository.BookingRepo) {
	t.Helper()
	repo := repository.NewBookingRepo(repository.NewMemoryDocStore())
	return NewBookingHandler(repo), NewCountdownHandler(repo), repo
}

func TestBookingLifecycle(t *testing.T) {
	e := newEcho()
	h, _, repo := newBookingHandlers(t)

	showtime := time.Now().UTC().Add(2 * time.Hour).Truncate(time.Second)
	body := fmt.Sprintf(`{"movieTitle":"Dune","hallNumber":"Hall 2","seatNumber":"C7","scheduledTime":%q,"ticketPrice":18.50,"adBufferMinutes":20}`,
		showtime.Format(time.RFC3339))

	c, rec := authedCtx(e, http.MethodPost, "/v1/bookings", body, "customer@demo.com", model.RoleCustomer)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var created struct {
		Ticket model.Ticket `json:"ticket"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Ticket.ID == "" || created.Ticket.BookingDate.IsZero() {
		t.Errorf("ticket id/bookingDate not assigned: %+v", created.Ticket)
	}

	c, rec = authedCtx(e, http.MethodGet, "/v1/bookings", "", "customer@demo.com", model.RoleCustomer)
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	var listed struct {
		Tickets []model.Ticket `json:"tickets"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed.Tickets) != 1 {
		t.Fatalf("tickets = %d, want 1", len(listed.Tickets))
	}

	// Another user cannot delete it.
	c, rec = authedCtx(e, http.MethodDelete, "/v1/bookings/"+created.Ticket.ID, "", "other@demo.com", model.RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues(created.Ticket.ID)
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign delete -> %d, want 404", rec.Code)
	}

	c, rec = authedCtx(e, http.MethodDelete, "/v1/bookings/"+created.Ticket.ID, "", "customer@demo.com", model.RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues(created.Ticket.ID)
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("owner delete -> %d, want 204", rec.Code)
	}

	left, err := repo.ListForUser(context.Background(), "customer@demo.com")
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("tickets left after delete = %d, want 0", len(left))
	}
}

func TestBookingValidation(t *testing.T) {
	e := newEcho()
	h, _, _ := newBookingHandlers(t)

	c, rec := authedCtx(e, http.MethodPost, "/v1/bookings", `{"hallNumber":"Hall 1"}`, "customer@demo.com", model.RoleCustomer)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCountdownFromBookings(t *testing.T) {
	e := newEcho()
	_, h, repo := newBookingHandlers(t)

	// Scheduled ten minutes ago with a twenty minute ad block: the
	// feature starts in about ten minutes, so ads are playing.
	if _, err := repo.Create(context.Background(), "customer@demo.com", model.Ticket{
		MovieTitle:      "Dune",
		HallNumber:      "Hall 2",
		ScheduledTime:   time.Now().UTC().Add(-10 * time.Minute),
		AdBufferMinutes: 20,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	c, rec := authedCtx(e, http.MethodGet, "/v1/countdown", "", "customer@demo.com", model.RoleCustomer)
	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	var resp struct {
		Sessions []countdown.Session `json:"sessions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(resp.Sessions))
	}
	s := resp.Sessions[0]
	if s.Remaining.Started {
		t.Errorf("session reported started %d minutes before the actual start", s.Remaining.Minutes)
	}
	if s.Phase != countdown.PhaseStartingSoon && s.Phase != countdown.PhaseAdsPlaying {
		t.Errorf("phase = %q, want a pre-start phase", s.Phase)
	}
}
