package models

import (
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "PENDING"
	BookingStatusApproved BookingStatus = "APPROVED"
	BookingStatusRejected BookingStatus = "REJECTED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusRejected:
		return true
	}
	return false
}

type Booking struct {
	gorm.Model
	TripID   uint          `json:"trip_id" gorm:"index;not null"`
	Trip     Trip          `json:"-"`
	Pax      int           `json:"pax"`
	Status   BookingStatus `json:"status" gorm:"not null;default:'PENDING'"`
	Messages []Message     `json:"-"`
}
