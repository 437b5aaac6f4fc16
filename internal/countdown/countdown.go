// Package countdown derives "time until the feature actually starts"
// from a booking. The advertised showtime is not the real start: every
// hall runs a block of ads and trailers first, so the countdown targets
// scheduled time plus the ad buffer.
package countdown

import (
	"time"

	"github.com/amirulz/cinema-live/internal/model"
)

// Phase describes how close a session is to starting.
type Phase string

const (
	PhaseScheduled    Phase = "scheduled"
	PhaseAdsPlaying   Phase = "ads_playing"   // under 15 minutes out
	PhaseStartingSoon Phase = "starting_soon" // under 5 minutes out
	PhaseStarted      Phase = "started"
)

// Remaining is a broken-down countdown to the actual start.
type Remaining struct {
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Started bool `json:"started"`
}

// Session is one countdown entry derived from a booking.
type Session struct {
	TicketID        string    `json:"ticketId"`
	MovieTitle      string    `json:"movieTitle"`
	HallNumber      string    `json:"hallNumber"`
	SeatNumber      string    `json:"seatNumber"`
	ScheduledTime   time.Time `json:"scheduledTime"`
	AdBufferMinutes int       `json:"adBufferMinutes"`
	ActualStart     time.Time `json:"actualStart"`
	Remaining       Remaining `json:"remaining"`
	Phase           Phase     `json:"phase"`
}

// ActualStart is the advertised showtime pushed back by the ad buffer.
func ActualStart(scheduled time.Time, adBufferMinutes int) time.Time {
	return scheduled.Add(time.Duration(adBufferMinutes) * time.Minute)
}

// Until breaks the interval from now to actualStart into h/m/s. Once the
// start has passed it reports zeros with Started set.
func Until(actualStart, now time.Time) Remaining {
	diff := actualStart.Sub(now)
	if diff <= 0 {
		return Remaining{Started: true}
	}
	return Remaining{
		Hours:   int(diff / time.Hour),
		Minutes: int(diff % time.Hour / time.Minute),
		Seconds: int(diff % time.Minute / time.Second),
	}
}

// PhaseOf classifies the countdown: started once the actual start is
// reached, starting_soon inside five minutes, ads_playing inside fifteen,
// scheduled otherwise.
func PhaseOf(rem Remaining) Phase {
	switch {
	case rem.Started:
		return PhaseStarted
	case rem.Hours == 0 && rem.Minutes < 5:
		return PhaseStartingSoon
	case rem.Hours == 0 && rem.Minutes < 15:
		return PhaseAdsPlaying
	default:
		return PhaseScheduled
	}
}

// FromTicket builds the countdown entry for one booking at the given
// instant.
func FromTicket(t model.Ticket, now time.Time) Session {
	actual := ActualStart(t.ScheduledTime, t.AdBufferMinutes)
	rem := Until(actual, now)
	return Session{
		TicketID:        t.ID,
		MovieTitle:      t.MovieTitle,
		HallNumber:      t.HallNumber,
		SeatNumber:      t.SeatNumber,
		ScheduledTime:   t.ScheduledTime,
		AdBufferMinutes: t.AdBufferMinutes,
		ActualStart:     actual,
		Remaining:       rem,
		Phase:           PhaseOf(rem),
	}
}

// FromTickets maps a user's bookings to countdown entries.
func FromTickets(tickets []model.Ticket, now time.Time) []Session {
	out := make([]Session, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, FromTicket(t, now))
	}
	return out
}
