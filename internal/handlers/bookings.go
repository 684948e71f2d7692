package handlers

import (
	"context"
	"time"

	"github.com/gdg-garage/trip-booking-api/internal/booking"
	"github.com/gdg-garage/trip-booking-api/internal/models"
	"github.com/gdg-garage/trip-booking-api/internal/store"
	"github.com/gdg-garage/trip-booking-api/internal/thread"
)

type BookingHandler struct {
	store        *store.Store
	bookings     *booking.Service
	materializer *thread.Materializer
}

func NewBookingHandler(s *store.Store, bookings *booking.Service, materializer *thread.Materializer) *BookingHandler {
	return &BookingHandler{store: s, bookings: bookings, materializer: materializer}
}

type BookingBody struct {
	ID        uint                 `json:"id"`
	Trip      uint                 `json:"trip"`
	Pax       int                  `json:"pax"`
	Status    models.BookingStatus `json:"status" enum:"PENDING,APPROVED,REJECTED"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	Messages  []*thread.Node       `json:"messages,omitempty" doc:"Nested conversation, only on single-booking reads"`
}

func bookingBody(b *models.Booking) BookingBody {
	return BookingBody{
		ID:        b.ID,
		Trip:      b.TripID,
		Pax:       b.Pax,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

type BookingResponse struct {
	Body BookingBody
}

type CreateBookingRequest struct {
	Body struct {
		Trip   uint                 `json:"trip" doc:"Trip ID" required:"true"`
		Pax    int                  `json:"pax" doc:"Seats requested" required:"true"`
		Status models.BookingStatus `json:"status,omitempty" doc:"PENDING (default) or REJECTED"`
	}
}

func (h *BookingHandler) HandleCreate(ctx context.Context, input *CreateBookingRequest) (*BookingResponse, error) {
	b, err := h.bookings.CreateBooking(ctx, input.Body.Trip, input.Body.Pax, input.Body.Status)
	if err != nil {
		return nil, apiError(err)
	}
	return &BookingResponse{Body: bookingBody(b)}, nil
}

type ListBookingsRequest struct {
	Trip uint `query:"trip" doc:"Only bookings of this trip"`
}

type ListBookingsResponse struct {
	Body []BookingBody
}

func (h *BookingHandler) HandleList(ctx context.Context, input *ListBookingsRequest) (*ListBookingsResponse, error) {
	var trip *uint
	if input.Trip != 0 {
		trip = &input.Trip
	}
	bookings, err := h.store.Bookings(ctx, trip)
	if err != nil {
		return nil, apiError(err)
	}
	res := &ListBookingsResponse{Body: make([]BookingBody, 0, len(bookings))}
	for i := range bookings {
		res.Body = append(res.Body, bookingBody(&bookings[i]))
	}
	return res, nil
}

type BookingIDInput struct {
	ID uint `path:"id"`
}

func (h *BookingHandler) HandleGet(ctx context.Context, input *BookingIDInput) (*BookingResponse, error) {
	b, t, err := h.materializer.Materialize(ctx, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	body := bookingBody(b)
	body.Messages = t.Roots
	return &BookingResponse{Body: body}, nil
}

type UpdateBookingRequest struct {
	ID   uint `path:"id"`
	Body struct {
		Pax    *int                  `json:"pax,omitempty" doc:"Seats requested"`
		Status *models.BookingStatus `json:"status,omitempty" doc:"PENDING or REJECTED; approval has its own endpoint"`
	}
}

func (h *BookingHandler) HandleUpdate(ctx context.Context, input *UpdateBookingRequest) (*BookingResponse, error) {
	b, err := h.bookings.UpdateBooking(ctx, input.ID, booking.BookingUpdate{
		Pax:    input.Body.Pax,
		Status: input.Body.Status,
	})
	if err != nil {
		return nil, apiError(err)
	}
	return &BookingResponse{Body: bookingBody(b)}, nil
}

func (h *BookingHandler) HandleApprove(ctx context.Context, input *BookingIDInput) (*BookingResponse, error) {
	b, err := h.bookings.Approve(ctx, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	return &BookingResponse{Body: bookingBody(b)}, nil
}

func (h *BookingHandler) HandleDelete(ctx context.Context, input *BookingIDInput) (*struct{}, error) {
	if err := h.store.DeleteBooking(ctx, input.ID); err != nil {
		return nil, apiError(err)
	}
	return nil, nil
}
