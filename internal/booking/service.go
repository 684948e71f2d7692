package booking

import (
	"context"
	"log"

	"github.com/gdg-garage/trip-booking-api/internal/lockmap"
	"github.com/gdg-garage/trip-booking-api/internal/models"
	"github.com/gdg-garage/trip-booking-api/internal/store"
	"github.com/gdg-garage/trip-booking-api/internal/validation"
)

// Service applies the Validator rules against the store. Everything that
// reads capacity and then writes runs under the trip's lock and inside one
// transaction that re-reads the trip with FOR UPDATE, so approvals on one
// trip are linearized while other trips proceed independently.
type Service struct {
	store     *store.Store
	validator *Validator
	trips     *lockmap.Map[uint]
}

func NewService(s *store.Store, v *Validator) *Service {
	return &Service{store: s, validator: v, trips: lockmap.New[uint]()}
}

func normalizeDates(t *models.Trip) {
	t.StartDate = Date(t.StartDate)
	t.EndDate = Date(t.EndDate)
}

func (s *Service) CreateTrip(ctx context.Context, t *models.Trip) error {
	normalizeDates(t)
	if err := s.validator.ValidateTrip(t); err != nil {
		return err
	}
	return s.store.CreateTrip(ctx, t)
}

// UpdateTrip revalidates and saves t, which must carry its ID.
func (s *Service) UpdateTrip(ctx context.Context, t *models.Trip) error {
	normalizeDates(t)
	if err := s.validator.ValidateTrip(t); err != nil {
		return err
	}

	unlock := s.trips.Lock(t.ID)
	defer unlock()

	return s.store.Transaction(ctx, func(tx *store.Store) error {
		current, err := tx.LockTrip(ctx, t.ID)
		if err != nil {
			return err
		}
		if err := s.validator.ValidateCapacityChange(current, t.MaxPax); err != nil {
			return err
		}
		return tx.SaveTrip(ctx, t)
	})
}

// CreateBooking inserts a booking for tripID. An empty status means PENDING.
func (s *Service) CreateBooking(ctx context.Context, tripID uint, pax int, status models.BookingStatus) (*models.Booking, error) {
	if status == "" {
		status = models.BookingStatusPending
	}
	b := &models.Booking{TripID: tripID, Pax: pax, Status: status}
	if err := s.validator.ValidateNew(b); err != nil {
		return nil, err
	}
	if err := s.store.CreateBooking(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Approve moves a booking to APPROVED. Approving an approved booking returns
// it unchanged. Only the status column is written.
func (s *Service) Approve(ctx context.Context, id uint) (*models.Booking, error) {
	b, err := s.store.Booking(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == models.BookingStatusApproved {
		return b, nil
	}

	unlock := s.trips.Lock(b.TripID)
	defer unlock()

	err = s.store.Transaction(ctx, func(tx *store.Store) error {
		current, err := tx.Booking(ctx, id)
		if err != nil {
			return err
		}
		if current.Status == models.BookingStatusApproved {
			return nil
		}

		trip, err := tx.LockTrip(ctx, current.TripID)
		if err != nil {
			return err
		}
		if err := s.validator.CheckApproval(trip, current); err != nil {
			return err
		}

		_, err = tx.SetBookingStatus(ctx, current.ID, models.BookingStatusApproved)
		return err
	})
	if err != nil {
		if verr, ok := validation.As(err); ok {
			log.Printf("Approval of booking %d on trip %d rejected: %v", id, b.TripID, verr)
		}
		return nil, err
	}

	return s.store.Booking(ctx, id)
}

func errApproveByUpdate() error {
	return validation.Field(validation.ErrInvalidState, "status", "Bookings are approved through the approve operation.")
}

// BookingUpdate carries the optional fields of a booking edit.
type BookingUpdate struct {
	Pax    *int
	Status *models.BookingStatus
}

// UpdateBooking edits pax and/or status. Status may move between PENDING and
// REJECTED, or away from APPROVED, but never to APPROVED; that is Approve's
// job. Growing the pax of an approved booking re-runs the start and seat
// checks.
func (s *Service) UpdateBooking(ctx context.Context, id uint, upd BookingUpdate) (*models.Booking, error) {
	b, err := s.store.Booking(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Pax != nil {
		if err := validatePax(*upd.Pax); err != nil {
			return nil, err
		}
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return nil, validation.Field(validation.ErrInvalidState, "status", "Booking status should be 'PENDING', 'APPROVED' or 'REJECTED'.")
		}
		if *upd.Status == models.BookingStatusApproved && b.Status != models.BookingStatusApproved {
			return nil, errApproveByUpdate()
		}
	}

	unlock := s.trips.Lock(b.TripID)
	defer unlock()

	err = s.store.Transaction(ctx, func(tx *store.Store) error {
		current, err := tx.Booking(ctx, id)
		if err != nil {
			return err
		}

		status := current.Status
		if upd.Status != nil {
			status = *upd.Status
		}
		// current may have left APPROVED while waiting for the lock.
		if status == models.BookingStatusApproved && current.Status != models.BookingStatusApproved {
			return errApproveByUpdate()
		}

		if upd.Pax != nil && *upd.Pax != current.Pax {
			if status == models.BookingStatusApproved && *upd.Pax > current.Pax {
				trip, err := tx.LockTrip(ctx, current.TripID)
				if err != nil {
					return err
				}
				if err := s.validator.CheckPaxIncrease(trip, current, *upd.Pax); err != nil {
					return err
				}
			}
			if err := tx.SetBookingPax(ctx, current.ID, *upd.Pax); err != nil {
				return err
			}
		}

		if status != current.Status {
			if _, err := tx.SetBookingStatus(ctx, current.ID, status); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.store.Booking(ctx, id)
}
