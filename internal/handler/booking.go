package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dumichanda/booking-api/internal/config"
	"github.com/dumichanda/booking-api/internal/model"
	"github.com/dumichanda/booking-api/internal/queue"
	"github.com/dumichanda/booking-api/internal/repository"
	queue_publisher "github.com/dumichanda/booking-api/internal/service"
)

// BookingHandler bundles dependencies for the booking endpoints.
type BookingHandler struct {
	Cfg      config.Config
	Bookings *repository.BookingRepo
	Places   *repository.PlaceRepo
	// Publish emits the booking.created event; swapped out in tests.
	Publish func(ctx context.Context, ev queue.BookingCreatedEvent) error
}

func NewBookingHandler(cfg config.Config, bookings *repository.BookingRepo, places *repository.PlaceRepo) *BookingHandler {
	if bookings == nil || places == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{
		Cfg:      cfg,
		Bookings: bookings,
		Places:   places,
		Publish:  queue_publisher.PublishBookingCreated,
	}
}

type bookingReq struct {
	Place    uint64 `json:"place"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Guests   int    `json:"numberOfGuests"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Price    int64  `json:"price"`
}

// Create handles POST /bookings.  The booking user is stamped from the
// verified claim and the price is stored as the snapshot the client
// confirmed.  Dates are not cross-checked against other bookings; the
// contract has no availability guarantee.
func (h *BookingHandler) Create(c echo.Context) error {
	claim, err := claimFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil || req.Place == 0 {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}

	b := model.Booking{
		PlaceID:      req.Place,
		UserID:       claim.AccountID,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		Guests:       req.Guests,
		ContactName:  req.Name,
		ContactPhone: req.Phone,
		Price:        req.Price,
	}
	ctx := c.Request().Context()
	if err := h.Bookings.Create(ctx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}

	// Best effort: a dead broker never fails the booking.
	go h.publishCreated(b)

	return c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) publishCreated(b model.Booking) {
	if h.Publish == nil {
		return
	}
	title := ""
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if p, err := h.Places.GetByID(ctx, b.PlaceID); err == nil {
		title = p.Title
	}
	_ = h.Publish(ctx, queue.BookingCreatedEvent{
		BookingID:  b.ID,
		UserID:     b.UserID,
		PlaceID:    b.PlaceID,
		PlaceTitle: title,
		CheckIn:    b.CheckIn.Format("2006-01-02"),
		CheckOut:   b.CheckOut.Format("2006-01-02"),
		Guests:     b.Guests,
		Price:      b.Price,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	})
}

// ListMine handles GET /bookings: the caller's bookings, each with its
// listing expanded inline.  Photo references on the expanded place resolve
// against the public uploads base exactly like the places endpoints, so the
// bookings page renders the same URLs.
func (h *BookingHandler) ListMine(c echo.Context) error {
	claim, err := claimFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookings, err := h.Bookings.ListByUser(c.Request().Context(), claim.AccountID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch bookings"})
	}
	for i := range bookings {
		bookings[i].Place.Photos = resolvePhotoURLs(h.Cfg.PublicBaseURL, bookings[i].Place.Photos)
	}
	return c.JSON(http.StatusOK, bookings)
}
