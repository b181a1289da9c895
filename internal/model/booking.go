package model

import "time"

// Booking records a stay reserved against a listing.  Price is a snapshot
// copied at booking time and is not recomputed when the listing changes.
//
// Fields:
//
//	ID           – primary key identifier.
//	PlaceID      – listing being booked.
//	UserID       – account that made the booking; bookings are only ever
//	               returned to this account.
//	CheckIn      – first night of the stay.
//	CheckOut     – departure date.
//	Guests       – number of guests.
//	ContactName  – name for the reservation.
//	ContactPhone – phone number for the reservation.
//	Price        – total price snapshot at booking time.
type Booking struct {
	ID           uint64    `json:"id"`
	PlaceID      uint64    `json:"place"`
	UserID       uint64    `json:"user"`
	CheckIn      time.Time `json:"checkIn"`
	CheckOut     time.Time `json:"checkOut"`
	Guests       int       `json:"numberOfGuests"`
	ContactName  string    `json:"name"`
	ContactPhone string    `json:"phone"`
	Price        int64     `json:"price"`
	CreatedAt    time.Time `json:"-"`
}

// BookingWithPlace is a booking with its referenced listing expanded
// inline, as returned by the bookings list endpoint.
type BookingWithPlace struct {
	Booking
	Place Place `json:"place"`
}
