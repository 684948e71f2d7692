package handlers

import (
	"context"
	"time"

	"github.com/gdg-garage/trip-booking-api/internal/booking"
	"github.com/gdg-garage/trip-booking-api/internal/capacity"
	"github.com/gdg-garage/trip-booking-api/internal/models"
	"github.com/gdg-garage/trip-booking-api/internal/store"
)

type TripHandler struct {
	store    *store.Store
	bookings *booking.Service
}

func NewTripHandler(s *store.Store, bookings *booking.Service) *TripHandler {
	return &TripHandler{store: s, bookings: bookings}
}

type TripFields struct {
	Product   uint   `json:"product" doc:"Product ID" required:"true"`
	StartDate string `json:"start_date" format:"date" doc:"First day of the trip" required:"true"`
	EndDate   string `json:"end_date" format:"date" doc:"Last day of the trip" required:"true"`
	MaxPax    int    `json:"max_pax" doc:"Seat capacity" required:"true"`
}

func (f TripFields) apply(t *models.Trip) error {
	start, err := parseDate("start_date", f.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate("end_date", f.EndDate)
	if err != nil {
		return err
	}
	t.ProductID = f.Product
	t.StartDate = start
	t.EndDate = end
	t.MaxPax = f.MaxPax
	return nil
}

type TripBody struct {
	ID           uint      `json:"id"`
	Product      uint      `json:"product"`
	StartDate    string    `json:"start_date" format:"date"`
	EndDate      string    `json:"end_date" format:"date"`
	MaxPax       int       `json:"max_pax"`
	BookedPax    int       `json:"booked_pax" readOnly:"true"`
	AvailablePax int       `json:"available_pax" readOnly:"true"`
	HasSpace     bool      `json:"has_space" readOnly:"true"`
	IsFull       bool      `json:"is_full" readOnly:"true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// tripBody needs t.Bookings loaded; the capacity fields are derived from them.
func tripBody(t *models.Trip) TripBody {
	l := capacity.ForTrip(t)
	return TripBody{
		ID:           t.ID,
		Product:      t.ProductID,
		StartDate:    t.StartDate.Format(dateLayout),
		EndDate:      t.EndDate.Format(dateLayout),
		MaxPax:       t.MaxPax,
		BookedPax:    l.BookedPax,
		AvailablePax: l.AvailablePax,
		HasSpace:     l.HasSpace,
		IsFull:       l.IsFull,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

type CreateTripRequest struct {
	Body TripFields
}

type TripResponse struct {
	Body TripBody
}

func (h *TripHandler) respond(ctx context.Context, id uint) (*TripResponse, error) {
	t, err := h.store.TripWithBookings(ctx, id)
	if err != nil {
		return nil, apiError(err)
	}
	return &TripResponse{Body: tripBody(t)}, nil
}

func (h *TripHandler) HandleCreate(ctx context.Context, input *CreateTripRequest) (*TripResponse, error) {
	var t models.Trip
	if err := input.Body.apply(&t); err != nil {
		return nil, err
	}
	if err := h.bookings.CreateTrip(ctx, &t); err != nil {
		return nil, apiError(err)
	}
	return h.respond(ctx, t.ID)
}

type ListTripsRequest struct {
	Product uint `query:"product" doc:"Only trips of this product"`
}

type ListTripsResponse struct {
	Body []TripBody
}

func (h *TripHandler) HandleList(ctx context.Context, input *ListTripsRequest) (*ListTripsResponse, error) {
	var product *uint
	if input.Product != 0 {
		product = &input.Product
	}
	trips, err := h.store.Trips(ctx, product)
	if err != nil {
		return nil, apiError(err)
	}
	res := &ListTripsResponse{Body: make([]TripBody, 0, len(trips))}
	for i := range trips {
		res.Body = append(res.Body, tripBody(&trips[i]))
	}
	return res, nil
}

type TripIDInput struct {
	ID uint `path:"id"`
}

func (h *TripHandler) HandleGet(ctx context.Context, input *TripIDInput) (*TripResponse, error) {
	return h.respond(ctx, input.ID)
}

type UpdateTripRequest struct {
	ID   uint `path:"id"`
	Body TripFields
}

func (h *TripHandler) HandleUpdate(ctx context.Context, input *UpdateTripRequest) (*TripResponse, error) {
	t, err := h.store.TripWithBookings(ctx, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	if err := input.Body.apply(t); err != nil {
		return nil, err
	}
	if err := h.bookings.UpdateTrip(ctx, t); err != nil {
		return nil, apiError(err)
	}
	return h.respond(ctx, t.ID)
}

func (h *TripHandler) HandleDelete(ctx context.Context, input *TripIDInput) (*struct{}, error) {
	if err := h.store.DeleteTrip(ctx, input.ID); err != nil {
		return nil, apiError(err)
	}
	return nil, nil
}
