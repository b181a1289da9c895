package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dumichanda/booking-api/internal/config"
	"github.com/dumichanda/booking-api/internal/model"
	"github.com/dumichanda/booking-api/internal/repository"
)

// PlaceHandler bundles dependencies for the listing endpoints.  Photo
// references are resolved against the public uploads base on every
// response, so bare ingest filenames and full URLs render the same way.
type PlaceHandler struct {
	Cfg    config.Config
	Places *repository.PlaceRepo
	// Evict drops cached listing reads after a successful write.  Nil when
	// the response cache is not wired.
	Evict func(ctx context.Context, paths ...string)
}

func NewPlaceHandler(cfg config.Config, places *repository.PlaceRepo) *PlaceHandler {
	if places == nil {
		panic("nil repository passed to NewPlaceHandler")
	}
	return &PlaceHandler{Cfg: cfg, Places: places}
}

// placeReq is the body for create and update.  The photo list arrives under
// "addedPhotos", the field name the client has always used.
type placeReq struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Photos      []string `json:"addedPhotos"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extraInfo"`
	CheckIn     string   `json:"checkIn"`
	CheckOut    string   `json:"checkOut"`
	MaxGuests   int      `json:"maxGuests"`
	Price       int64    `json:"price"`
}

func (h *PlaceHandler) resolved(p model.Place) model.Place {
	p.Photos = resolvePhotoURLs(h.Cfg.PublicBaseURL, p.Photos)
	return p
}

func (h *PlaceHandler) resolvedAll(ps []model.Place) []model.Place {
	out := make([]model.Place, len(ps))
	for i, p := range ps {
		out[i] = h.resolved(p)
	}
	return out
}

// Create handles POST /places.  The owner is stamped from the verified
// claim, never taken from the body.
func (h *PlaceHandler) Create(c echo.Context) error {
	claim, err := claimFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req placeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	p := model.Place{
		OwnerID:     claim.AccountID,
		Title:       req.Title,
		Address:     req.Address,
		Photos:      req.Photos,
		Description: req.Description,
		Perks:       req.Perks,
		ExtraInfo:   req.ExtraInfo,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		MaxGuests:   req.MaxGuests,
		Price:       req.Price,
	}
	if err := h.Places.Create(c.Request().Context(), &p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not create place"})
	}
	h.evictListings(c.Request().Context(), p.ID)
	return c.JSON(http.StatusCreated, h.resolved(p))
}

// ListMine handles GET /user-places: every listing owned by the caller.
func (h *PlaceHandler) ListMine(c echo.Context) error {
	claim, err := claimFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	places, err := h.Places.ListByOwner(c.Request().Context(), claim.AccountID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not fetch places"})
	}
	return c.JSON(http.StatusOK, h.resolvedAll(places))
}

// GetByID handles GET /places/:id.  A missing listing answers 400 with
// "place not found", the status the public contract prescribes.
func (h *PlaceHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, err := h.Places.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "place not found"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not fetch place"})
	}
	return c.JSON(http.StatusOK, h.resolved(p))
}

// Update handles PUT /places.  The listing is loaded first and the write
// only happens when the claim owns it; a non-owner attempt leaves the row
// untouched and answers 403.  Read and write are not transactional, so
// concurrent updates race and the last write wins.
func (h *PlaceHandler) Update(c echo.Context) error {
	claim, err := claimFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req placeReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	p, err := h.Places.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "place not found"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not fetch place"})
	}
	if !claim.Owns(p.OwnerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not the owner of this place"})
	}

	p.Title = req.Title
	p.Address = req.Address
	p.Photos = req.Photos
	p.Description = req.Description
	p.Perks = req.Perks
	p.ExtraInfo = req.ExtraInfo
	p.CheckIn = req.CheckIn
	p.CheckOut = req.CheckOut
	p.MaxGuests = req.MaxGuests
	p.Price = req.Price

	if err := h.Places.Update(ctx, &p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not update place"})
	}
	h.evictListings(ctx, p.ID)
	return c.JSON(http.StatusOK, "place updated")
}

// evictListings drops the cached reads a write invalidates: the full listing
// collection and the single resource.
func (h *PlaceHandler) evictListings(ctx context.Context, id uint64) {
	if h.Evict == nil {
		return
	}
	h.Evict(ctx, "/places", "/places/"+strconv.FormatUint(id, 10))
}

// ListAll handles GET /places: every listing, no pagination or filtering.
func (h *PlaceHandler) ListAll(c echo.Context) error {
	places, err := h.Places.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not fetch places"})
	}
	return c.JSON(http.StatusOK, h.resolvedAll(places))
}
