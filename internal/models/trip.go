package models

import (
	"time"

	"gorm.io/gorm"
)

// Trip is one scheduled departure of a Product. StartDate and EndDate carry
// a calendar date only; the time of day is always midnight UTC.
type Trip struct {
	gorm.Model
	ProductID uint      `json:"product_id" gorm:"index;not null"`
	Product   Product   `json:"-"`
	StartDate time.Time `json:"start_date" gorm:"index"`
	EndDate   time.Time `json:"end_date"`
	MaxPax    int       `json:"max_pax"`
	Bookings  []Booking `json:"-"`
}
