package countdown

import (
	"testing"
	"time"

	"github.com/amirulz/cinema-live/internal/model"
)

func TestActualStart(t *testing.T) {
	scheduled := time.Date(2026, 8, 31, 20, 0, 0, 0, time.UTC)
	got := ActualStart(scheduled, 12)
	want := time.Date(2026, 8, 31, 20, 12, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("actual start = %v, want %v", got, want)
	}
}

func TestUntil(t *testing.T) {
	now := time.Date(2026, 8, 31, 20, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		start time.Time
		want  Remaining
	}{
		{"ninety minutes out", now.Add(90 * time.Minute), Remaining{Hours: 1, Minutes: 30}},
		{"mixed", now.Add(2*time.Hour + 5*time.Minute + 30*time.Second), Remaining{Hours: 2, Minutes: 5, Seconds: 30}},
		{"exactly now", now, Remaining{Started: true}},
		{"already started", now.Add(-time.Minute), Remaining{Started: true}},
	}
	for _, tt := range cases {
		if got := Until(tt.start, now); got != tt.want {
			t.Fatalf("%s: Until = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestPhaseOf(t *testing.T) {
	cases := []struct {
		rem  Remaining
		want Phase
	}{
		{Remaining{Started: true}, PhaseStarted},
		{Remaining{Minutes: 3, Seconds: 59}, PhaseStartingSoon},
		{Remaining{Minutes: 4}, PhaseStartingSoon},
		{Remaining{Minutes: 5}, PhaseAdsPlaying},
		{Remaining{Minutes: 14}, PhaseAdsPlaying},
		{Remaining{Minutes: 15}, PhaseScheduled},
		{Remaining{Hours: 1}, PhaseScheduled},
		{Remaining{Hours: 1, Minutes: 2}, PhaseScheduled},
	}
	for _, tt := range cases {
		if got := PhaseOf(tt.rem); got != tt.want {
			t.Fatalf("PhaseOf(%+v) = %q, want %q", tt.rem, got, tt.want)
		}
	}
}

func TestFromTicket(t *testing.T) {
	now := time.Date(2026, 8, 31, 19, 50, 0, 0, time.UTC)
	tk := model.Ticket{
		ID:              "T001",
		MovieTitle:      "Spider-Man: No Way Home",
		HallNumber:      "Hall 1",
		SeatNumber:      "A12",
		ScheduledTime:   time.Date(2026, 8, 31, 20, 0, 0, 0, time.UTC),
		AdBufferMinutes: 12,
	}
	s := FromTicket(tk, now)
	if !s.ActualStart.Equal(time.Date(2026, 8, 31, 20, 12, 0, 0, time.UTC)) {
		t.Fatalf("actual start = %v", s.ActualStart)
	}
	if s.Remaining != (Remaining{Minutes: 22}) {
		t.Fatalf("remaining = %+v", s.Remaining)
	}
	if s.Phase != PhaseScheduled {
		t.Fatalf("phase = %q, want scheduled", s.Phase)
	}
}
