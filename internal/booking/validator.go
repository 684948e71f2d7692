// Package booking enforces the trip and booking rules: trip dates and
// capacity, creation-time booking state, and seat-bounded approval.
package booking

import (
	"time"

	"github.com/gdg-garage/trip-booking-api/internal/capacity"
	"github.com/gdg-garage/trip-booking-api/internal/models"
	"github.com/gdg-garage/trip-booking-api/internal/validation"
)

const MinimumMaxPax = 1

// Validator holds the pure rules. "Today" is read from now on every call,
// so a trip valid at creation can fail revalidation once it has started.
type Validator struct {
	now func() time.Time
	loc *time.Location
}

func NewValidator(now func() time.Time, loc *time.Location) *Validator {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Validator{now: now, loc: loc}
}

// Date strips the time of day, keeping the calendar date of t in its own
// location, as midnight UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (v *Validator) Today() time.Time {
	return Date(v.now().In(v.loc))
}

func (v *Validator) ValidateTrip(t *models.Trip) error {
	start, end := Date(t.StartDate), Date(t.EndDate)
	if start.Before(v.Today()) {
		return validation.Field(validation.ErrPastStart, "start_date", "The start date cannot be in the past.")
	}
	if start.After(end) {
		return validation.New(validation.ErrDateOrder, map[string]string{
			"start_date": "The start date cannot be later than the end date.",
			"end_date":   "The end date cannot be earlier than the start date.",
		})
	}
	if t.MaxPax < MinimumMaxPax {
		return validation.Field(validation.ErrInvalidCapacity, "max_pax", "max_pax should have a value of at least 1.")
	}
	return nil
}

// ValidateCapacityChange rejects a max_pax below the seats already approved.
func (v *Validator) ValidateCapacityChange(t *models.Trip, maxPax int) error {
	if booked := capacity.BookedPax(t.Bookings); maxPax < booked {
		return validation.Field(validation.ErrInvalidCapacity, "max_pax", "max_pax cannot be lower than the seats already booked.")
	}
	return nil
}

func validatePax(pax int) error {
	if pax < 1 {
		return validation.Field(validation.ErrInvalidPax, "pax", "pax should have a value of at least 1.")
	}
	return nil
}

// ValidateNew checks a booking about to be inserted. Approval is never a
// creation-time state.
func (v *Validator) ValidateNew(b *models.Booking) error {
	if err := validatePax(b.Pax); err != nil {
		return err
	}
	if b.Status != models.BookingStatusPending && b.Status != models.BookingStatusRejected {
		return validation.Field(validation.ErrInvalidState, "status", "Booking status should be 'PENDING' or 'REJECTED' upon creation.")
	}
	return nil
}

// CheckApproval decides whether b can move to APPROVED on trip. trip.Bookings
// must be the committed bookings of the trip; b itself is never counted.
func (v *Validator) CheckApproval(trip *models.Trip, b *models.Booking) error {
	if err := v.checkStarted(trip); err != nil {
		return err
	}
	return v.checkSeats(trip, b.ID, b.Pax)
}

// CheckPaxIncrease decides whether the approved booking b can grow to pax
// seats on trip.
func (v *Validator) CheckPaxIncrease(trip *models.Trip, b *models.Booking, pax int) error {
	if err := v.checkStarted(trip); err != nil {
		return err
	}
	return v.checkSeats(trip, b.ID, pax)
}

func (v *Validator) checkStarted(trip *models.Trip) error {
	if !Date(trip.StartDate).After(v.Today()) {
		return validation.Field(validation.ErrTripStarted, "trip", "This trip has already started.")
	}
	return nil
}

func (v *Validator) checkSeats(trip *models.Trip, id uint, pax int) error {
	if !capacity.Excluding(trip, id).Fits(pax) {
		return validation.Field(validation.ErrCapacityExceeded, "pax", "Not enough space remaining for this trip.")
	}
	return nil
}
