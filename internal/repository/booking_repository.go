package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/dumichanda/booking-api/internal/model"
)

type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// Create inserts the booking and fills in its generated ID.  The price on
// the booking is the snapshot the client confirmed; it is stored as-is and
// never recomputed from the listing.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO bookings (place_id,user_id,check_in,check_out,guests,contact_name,contact_phone,price) VALUES (?,?,?,?,?,?,?,?)",
		b.PlaceID, b.UserID, b.CheckIn, b.CheckOut, b.Guests, b.ContactName, b.ContactPhone, b.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// ListByUser returns the bookings made by the given account, each with its
// referenced listing expanded inline via a JOIN on places.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.BookingWithPlace, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT b.id,b.place_id,b.user_id,b.check_in,b.check_out,b.guests,b.contact_name,b.contact_phone,b.price,"+
			"p.id,p.owner_id,p.title,p.address,p.photos,p.description,p.perks,p.extra_info,p.check_in,p.check_out,p.max_guests,p.price "+
			"FROM bookings b JOIN places p ON p.id=b.place_id WHERE b.user_id=? ORDER BY b.id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BookingWithPlace{}
	for rows.Next() {
		var bw model.BookingWithPlace
		var photos, perks string
		err := rows.Scan(
			&bw.ID, &bw.PlaceID, &bw.UserID, &bw.CheckIn, &bw.CheckOut,
			&bw.Guests, &bw.ContactName, &bw.ContactPhone, &bw.Booking.Price,
			&bw.Place.ID, &bw.Place.OwnerID, &bw.Place.Title, &bw.Place.Address, &photos,
			&bw.Place.Description, &perks, &bw.Place.ExtraInfo, &bw.Place.CheckIn,
			&bw.Place.CheckOut, &bw.Place.MaxGuests, &bw.Place.Price)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(photos), &bw.Place.Photos); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(perks), &bw.Place.Perks); err != nil {
			return nil, err
		}
		out = append(out, bw)
	}
	return out, rows.Err()
}
