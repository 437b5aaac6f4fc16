package model

import "time"

// Ticket is a movie booking made by a customer. Bookings are not part of
// the order lifecycle; they feed the countdown feature, which derives the
// real feature start from ScheduledTime plus the ad buffer. A ticket is
// created once and optionally deleted by its owner; it never transitions.
//
// Fields:
//  ID              – opaque unique identifier.
//  MovieTitle      – title of the booked movie.
//  HallNumber      – hall label, e.g. "Hall 2".
//  SeatNumber      – seat label, e.g. "B8".
//  ScheduledTime   – advertised showtime.
//  TicketPrice     – price paid in RM.
//  BookingDate     – when the booking was made.
//  AdBufferMinutes – minutes of trailers/ads before the feature starts.
//  CinemaName      – optional cinema display name.
type Ticket struct {
	ID              string    `json:"id"`
	MovieTitle      string    `json:"movieTitle"`
	HallNumber      string    `json:"hallNumber"`
	SeatNumber      string    `json:"seatNumber"`
	ScheduledTime   time.Time `json:"scheduledTime"`
	TicketPrice     float64   `json:"ticketPrice"`
	BookingDate     time.Time `json:"bookingDate"`
	AdBufferMinutes int       `json:"adBufferMinutes"`
	CinemaName      string    `json:"cinemaName,omitempty"`
}
