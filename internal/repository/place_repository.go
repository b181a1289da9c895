package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/dumichanda/booking-api/internal/model"
)

const placeColumns = "id,owner_id,title,address,photos,description,perks,extra_info,check_in,check_out,max_guests,price"

type PlaceRepo struct{ DB *sql.DB }

func NewPlaceRepo(db *sql.DB) *PlaceRepo { return &PlaceRepo{DB: db} }

// Create inserts the listing and fills in its generated ID.
func (r *PlaceRepo) Create(ctx context.Context, p *model.Place) error {
	photos, perks, err := encodeLists(p)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO places (owner_id,title,address,photos,description,perks,extra_info,check_in,check_out,max_guests,price) VALUES (?,?,?,?,?,?,?,?,?,?,?)",
		p.OwnerID, p.Title, p.Address, photos, p.Description, perks, p.ExtraInfo, p.CheckIn, p.CheckOut, p.MaxGuests, p.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID fetches a listing by id.
func (r *PlaceRepo) GetByID(ctx context.Context, id uint64) (model.Place, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+placeColumns+" FROM places WHERE id=? LIMIT 1", id)
	p, err := scanPlace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Place{}, ErrPlaceNotFound
	}
	return p, err
}

// ListByOwner returns every listing owned by the given account.
func (r *PlaceRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Place, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+placeColumns+" FROM places WHERE owner_id=? ORDER BY id", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPlaces(rows)
}

// ListAll returns every listing with no pagination or filtering.
func (r *PlaceRepo) ListAll(ctx context.Context) ([]model.Place, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+placeColumns+" FROM places ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPlaces(rows)
}

// Update overwrites the mutable fields of the listing.  Ownership must be
// checked by the caller before this runs; the write itself is a plain
// last-write-wins overwrite with no optimistic-concurrency check.
func (r *PlaceRepo) Update(ctx context.Context, p *model.Place) error {
	photos, perks, err := encodeLists(p)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE places SET title=?,address=?,photos=?,description=?,perks=?,extra_info=?,check_in=?,check_out=?,max_guests=?,price=? WHERE id=?",
		p.Title, p.Address, photos, p.Description, perks, p.ExtraInfo, p.CheckIn, p.CheckOut, p.MaxGuests, p.Price, p.ID)
	return err
}

// encodeLists serializes the photo and perk slices for their JSON text
// columns.  Nil slices encode as empty arrays so reads never yield null.
func encodeLists(p *model.Place) (string, string, error) {
	photos := p.Photos
	if photos == nil {
		photos = []string{}
	}
	perks := p.Perks
	if perks == nil {
		perks = []string{}
	}
	pb, err := json.Marshal(photos)
	if err != nil {
		return "", "", err
	}
	kb, err := json.Marshal(perks)
	if err != nil {
		return "", "", err
	}
	return string(pb), string(kb), nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanPlace(row rowScanner) (model.Place, error) {
	var p model.Place
	var photos, perks string
	err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Address, &photos, &p.Description,
		&perks, &p.ExtraInfo, &p.CheckIn, &p.CheckOut, &p.MaxGuests, &p.Price)
	if err != nil {
		return model.Place{}, err
	}
	if err := json.Unmarshal([]byte(photos), &p.Photos); err != nil {
		return model.Place{}, err
	}
	if err := json.Unmarshal([]byte(perks), &p.Perks); err != nil {
		return model.Place{}, err
	}
	return p, nil
}

func collectPlaces(rows *sql.Rows) ([]model.Place, error) {
	out := []model.Place{}
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
