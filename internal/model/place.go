package model

import "time"

// Place is a rentable property listing owned by exactly one account.
// Photos holds an ordered sequence of photo references; each entry is
// either a bare filename produced by the media ingest or a full URL.
// Photos and Perks persist as JSON-encoded text columns.
//
// Fields:
//
//	ID          – primary key identifier.
//	OwnerID     – account that created the listing; only the owner may update it.
//	Title       – short listing headline.
//	Address     – street address shown to guests.
//	Photos      – ordered photo references (filenames or URLs).
//	Description – free-text description.
//	Perks       – amenity tags (wifi, parking, ...).
//	ExtraInfo   – house rules and other extra text.
//	CheckIn     – check-in time as entered by the owner (e.g. "14:00").
//	CheckOut    – check-out time string.
//	MaxGuests   – maximum guest count.
//	Price       – nightly price snapshot unit used by bookings.
type Place struct {
	ID          uint64    `json:"id"`
	OwnerID     uint64    `json:"owner"`
	Title       string    `json:"title"`
	Address     string    `json:"address"`
	Photos      []string  `json:"photos"`
	Description string    `json:"description"`
	Perks       []string  `json:"perks"`
	ExtraInfo   string    `json:"extraInfo"`
	CheckIn     string    `json:"checkIn"`
	CheckOut    string    `json:"checkOut"`
	MaxGuests   int       `json:"maxGuests"`
	Price       int64     `json:"price"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
