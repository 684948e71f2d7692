package thread

import (
	"context"
	"time"

	"github.com/gdg-garage/trip-booking-api/internal/lockmap"
	"github.com/gdg-garage/trip-booking-api/internal/models"
	"github.com/gdg-garage/trip-booking-api/internal/store"
	"github.com/gdg-garage/trip-booking-api/internal/validation"
)

// Store links, posts and deletes messages. Writes within one booking are
// serialized so the ancestor walk always sees what is committed; different
// bookings never contend.
type Store struct {
	store    *store.Store
	bookings *lockmap.Map[uint]
	now      func() time.Time
}

func NewStore(s *store.Store, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{store: s, bookings: lockmap.New[uint](), now: now}
}

func errForeignParent() error {
	return validation.Field(validation.ErrParentBooking, "parent_message", "The parent message must belong to the same booking.")
}

func errCycle() error {
	return validation.Field(validation.ErrCycle, "parent_message", "A message cannot be a reply to itself or to one of its replies.")
}

// Post appends a message to a booking's thread, as a root when parentID is
// nil. Timestamps strictly increase within a booking.
func (s *Store) Post(ctx context.Context, bookingID uint, sender, content string, parentID *uint) (*models.Message, error) {
	unlock := s.bookings.Lock(bookingID)
	defer unlock()

	var msg *models.Message
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if _, err := tx.Booking(ctx, bookingID); err != nil {
			return err
		}
		if parentID != nil {
			parent, err := tx.Message(ctx, *parentID)
			if err != nil {
				return err
			}
			if parent.BookingID != bookingID {
				return errForeignParent()
			}
		}

		last, err := tx.LastMessageTimestamp(ctx, bookingID)
		if err != nil {
			return err
		}
		ts := s.now().UTC().Truncate(time.Microsecond)
		if !ts.After(last) {
			ts = last.UTC().Add(time.Microsecond)
		}

		msg = &models.Message{
			BookingID:       bookingID,
			ParentMessageID: parentID,
			Sender:          sender,
			Content:         content,
			Timestamp:       ts,
		}
		return tx.CreateMessage(ctx, msg)
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// Attach makes parentID the parent of messageID, or detaches it to a root
// when parentID is nil. The cycle check runs before the edge is written.
func (s *Store) Attach(ctx context.Context, messageID uint, parentID *uint) (*models.Message, error) {
	msg, err := s.store.Message(ctx, messageID)
	if err != nil {
		return nil, err
	}

	unlock := s.bookings.Lock(msg.BookingID)
	defer unlock()

	err = s.store.Transaction(ctx, func(tx *store.Store) error {
		if parentID != nil {
			if *parentID == messageID {
				return errCycle()
			}
			parent, err := tx.Message(ctx, *parentID)
			if err != nil {
				return err
			}
			if parent.BookingID != msg.BookingID {
				return errForeignParent()
			}

			links, err := tx.MessageLinks(ctx, msg.BookingID)
			if err != nil {
				return err
			}
			if NewArena(links).WouldCycle(messageID, parent.ID) {
				return errCycle()
			}
		}
		return tx.SetMessageParent(ctx, messageID, parentID)
	})
	if err != nil {
		return nil, err
	}

	msg.ParentMessageID = parentID
	return msg, nil
}

// Delete removes a message and every reply below it, returning how many
// messages were removed.
func (s *Store) Delete(ctx context.Context, messageID uint) (int, error) {
	msg, err := s.store.Message(ctx, messageID)
	if err != nil {
		return 0, err
	}

	unlock := s.bookings.Lock(msg.BookingID)
	defer unlock()

	var removed int
	err = s.store.Transaction(ctx, func(tx *store.Store) error {
		links, err := tx.MessageLinks(ctx, msg.BookingID)
		if err != nil {
			return err
		}
		arena := NewArena(links)
		if !arena.Contains(messageID) {
			return nil
		}
		ids := arena.Subtree(messageID)
		removed = len(ids)
		return tx.DeleteMessages(ctx, ids)
	})
	return removed, err
}
