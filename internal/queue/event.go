// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published after a booking row is inserted.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type BookingCreatedEvent struct {
	BookingID  uint64 `json:"booking_id"`
	UserID     uint64 `json:"user_id"`
	PlaceID    uint64 `json:"place_id"`
	PlaceTitle string `json:"place_title"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Guests     int    `json:"guests"`
	Price      int64  `json:"price"`
	CreatedAt  string `json:"created_at"`
}
