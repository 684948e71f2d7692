package store

import (
	"context"
	"fmt"
	"time"

	"github.com/gdg-garage/trip-booking-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Link is the parent edge of one message, as stored.
type Link struct {
	ID              uint
	ParentMessageID *uint
}

func byTimestamp(db *gorm.DB) *gorm.DB {
	return db.Order("timestamp, id")
}

func (s *Store) CreateMessage(ctx context.Context, m *models.Message) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (s *Store) Message(ctx context.Context, id uint) (*models.Message, error) {
	var m models.Message
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, "message", id)
	}
	return &m, nil
}

// MessageLinks returns the parent edge of every message of a booking.
func (s *Store) MessageLinks(ctx context.Context, bookingID uint) ([]Link, error) {
	var links []Link
	err := s.db.WithContext(ctx).Model(&models.Message{}).
		Select("id, parent_message_id").
		Where("booking_id = ?", bookingID).
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("list message links of booking %d: %w", bookingID, err)
	}
	return links, nil
}

// LastMessageTimestamp returns the newest timestamp in a booking's thread,
// or the zero time when it has no messages.
func (s *Store) LastMessageTimestamp(ctx context.Context, bookingID uint) (time.Time, error) {
	var last models.Message
	err := s.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("timestamp DESC, id DESC").
		Limit(1).
		Find(&last).Error
	if err != nil {
		return time.Time{}, fmt.Errorf("last message of booking %d: %w", bookingID, err)
	}
	return last.Timestamp, nil
}

// SetMessageParent writes only the parent_message_id column.
func (s *Store) SetMessageParent(ctx context.Context, id uint, parentID *uint) error {
	err := s.db.WithContext(ctx).Model(&models.Message{}).
		Where("id = ?", id).
		Update("parent_message_id", parentID).Error
	if err != nil {
		return fmt.Errorf("update parent of message %d: %w", id, err)
	}
	return nil
}

func (s *Store) DeleteMessages(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Delete(&models.Message{}, ids).Error; err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	return nil
}

// ReplyLevel returns the ids of a booking's messages that reply directly to
// one of parents, or the booking's root messages when parents is empty. Each
// call touches a single level, so walking down a thread costs one query per
// level whatever its depth.
func (s *Store) ReplyLevel(ctx context.Context, bookingID uint, parents []uint) ([]uint, error) {
	q := s.db.WithContext(ctx).Model(&models.Message{}).Where("booking_id = ?", bookingID)
	if len(parents) == 0 {
		q = q.Where("parent_message_id IS NULL")
	} else {
		q = q.Where("parent_message_id IN ?", parents)
	}

	var ids []uint
	if err := q.Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("reply level of booking %d: %w", bookingID, err)
	}
	return ids, nil
}

// BookingWithMessages fetches a booking with its root messages and depth-1
// levels of replies below them, each level ordered by timestamp. Depth 0
// loads no messages.
func (s *Store) BookingWithMessages(ctx context.Context, bookingID uint, depth int) (*models.Booking, error) {
	q := s.db.WithContext(ctx)
	if depth > 0 {
		q = q.Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return byTimestamp(db.Where("parent_message_id IS NULL"))
		})
		path := "Messages"
		for i := 1; i < depth; i++ {
			path += ".Replies"
			q = q.Preload(path, byTimestamp)
		}
	}

	var b models.Booking
	if err := q.First(&b, bookingID).Error; err != nil {
		return nil, notFound(err, "booking", bookingID)
	}
	return &b, nil
}
