package thread

import (
	"context"
	"iter"
	"slices"
	"time"

	"github.com/gdg-garage/trip-booking-api/internal/models"
)

// Fetcher is the bounded-depth storage the Materializer walks and reads.
// ReplyLevel returns the roots for empty parents, otherwise the direct
// replies to parents.
type Fetcher interface {
	ReplyLevel(ctx context.Context, bookingID uint, parents []uint) ([]uint, error)
	BookingWithMessages(ctx context.Context, bookingID uint, depth int) (*models.Booking, error)
}

type Node struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
	Children  []*Node   `json:"replies"`
}

// Replies yields the direct replies in timestamp order. The returned
// sequence runs once; ranging over it again yields nothing. Call Replies
// again for a fresh one.
func (n *Node) Replies() iter.Seq[*Node] {
	done := false
	return func(yield func(*Node) bool) {
		if done {
			return
		}
		done = true
		for _, c := range n.Children {
			if !yield(c) {
				return
			}
		}
	}
}

type Thread struct {
	BookingID uint
	Depth     int
	Roots     []*Node
}

// All yields the root messages in timestamp order.
func (t *Thread) All() iter.Seq[*Node] {
	return slices.Values(t.Roots)
}

// Walk yields every node depth first with its level, roots being level 1.
func (t *Thread) Walk() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		var visit func(level int, nodes []*Node) bool
		visit = func(level int, nodes []*Node) bool {
			for _, n := range nodes {
				if !yield(level, n) || !visit(level+1, n.Children) {
					return false
				}
			}
			return true
		}
		visit(1, t.Roots)
	}
}

type Materializer struct {
	fetch Fetcher
}

func NewMaterializer(f Fetcher) *Materializer {
	return &Materializer{fetch: f}
}

// Depth discovers the deepest populated level of a booking's thread by
// looking one level further until a level comes back empty. Each lookup only
// reads below the level found before it. Zero means the booking has no
// messages.
func (m *Materializer) Depth(ctx context.Context, bookingID uint) (int, error) {
	level, err := m.fetch.ReplyLevel(ctx, bookingID, nil)
	if err != nil {
		return 0, err
	}
	depth := 0
	for len(level) > 0 {
		depth++
		if level, err = m.fetch.ReplyLevel(ctx, bookingID, level); err != nil {
			return 0, err
		}
	}
	return depth, nil
}

// Materialize returns the booking with its full reply tree, fetched once at
// the discovered depth.
func (m *Materializer) Materialize(ctx context.Context, bookingID uint) (*models.Booking, *Thread, error) {
	depth, err := m.Depth(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	b, err := m.fetch.BookingWithMessages(ctx, bookingID, depth)
	if err != nil {
		return nil, nil, err
	}
	return b, &Thread{BookingID: b.ID, Depth: depth, Roots: nodes(b.Messages)}, nil
}

func nodes(msgs []models.Message) []*Node {
	out := make([]*Node, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, &Node{
			ID:        msg.ID,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
			Sender:    msg.Sender,
			Children:  nodes(msg.Replies),
		})
	}
	return out
}
