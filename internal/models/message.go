package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is one entry of a booking conversation. Root messages have a nil
// ParentMessageID; replies point at a message of the same booking.
type Message struct {
	gorm.Model
	BookingID       uint      `json:"booking_id" gorm:"index;not null"`
	ParentMessageID *uint     `json:"parent_message_id" gorm:"index"`
	Replies         []Message `json:"-" gorm:"foreignKey:ParentMessageID"`
	Content         string    `json:"content"`
	Sender          string    `json:"sender" gorm:"size:100"`
	Timestamp       time.Time `json:"timestamp" gorm:"index"`
}
