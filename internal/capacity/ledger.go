// Package capacity derives seat accounting for a trip from its bookings.
// Nothing here is stored; callers recompute on every read.
package capacity

import (
	"github.com/gdg-garage/trip-booking-api/internal/models"
)

// Ledger is the derived seat state of one trip.
type Ledger struct {
	MaxPax       int  `json:"max_pax"`
	BookedPax    int  `json:"booked_pax"`
	AvailablePax int  `json:"available_pax"`
	HasSpace     bool `json:"has_space"`
	IsFull       bool `json:"is_full"`
}

// BookedPax sums pax over APPROVED bookings only.
func BookedPax(bookings []models.Booking) int {
	total := 0
	for _, b := range bookings {
		if b.Status == models.BookingStatusApproved {
			total += b.Pax
		}
	}
	return total
}

// Compute builds the ledger for a trip with the given max_pax. AvailablePax
// is the raw difference and is never floored.
func Compute(maxPax int, bookings []models.Booking) Ledger {
	booked := BookedPax(bookings)
	available := maxPax - booked
	return Ledger{
		MaxPax:       maxPax,
		BookedPax:    booked,
		AvailablePax: available,
		HasSpace:     available > 0,
		IsFull:       booked >= maxPax,
	}
}

// ForTrip computes the ledger over trip.Bookings, which must be loaded.
func ForTrip(trip *models.Trip) Ledger {
	return Compute(trip.MaxPax, trip.Bookings)
}

// Excluding computes the ledger as if the booking with id were absent.
// The approval check uses it so the booking under review is never counted.
func Excluding(trip *models.Trip, id uint) Ledger {
	others := make([]models.Booking, 0, len(trip.Bookings))
	for _, b := range trip.Bookings {
		if b.ID != id {
			others = append(others, b)
		}
	}
	return Compute(trip.MaxPax, others)
}

// Fits reports whether pax more seats can be approved without exceeding
// max_pax. A booking that exactly fills the trip fits.
func (l Ledger) Fits(pax int) bool {
	return l.BookedPax+pax <= l.MaxPax
}
