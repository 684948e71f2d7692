package thread

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gdg-garage/trip-booking-api/internal/models"
	"github.com/gdg-garage/trip-booking-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFetcher records the width of each level lookup and the depth of
// the final fetch.
type countingFetcher struct {
	Fetcher
	widths     []int
	fetchDepth int
}

func (c *countingFetcher) ReplyLevel(ctx context.Context, bookingID uint, parents []uint) ([]uint, error) {
	ids, err := c.Fetcher.ReplyLevel(ctx, bookingID, parents)
	c.widths = append(c.widths, len(ids))
	return ids, err
}

func (c *countingFetcher) BookingWithMessages(ctx context.Context, bookingID uint, depth int) (*models.Booking, error) {
	c.fetchDepth = depth
	return c.Fetcher.BookingWithMessages(ctx, bookingID, depth)
}

func TestMaterializeFourLevels(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	m1 := f.post(t, "Parent message 1", nil)
	r1 := f.post(t, "Reply to message 1", m1)
	r2 := f.post(t, "Reply to reply 1", r1)
	f.post(t, "Reply to reply 2", r2)
	f.post(t, "Parent message 2", nil)

	fetcher := &countingFetcher{Fetcher: f.store}
	b, thread, err := NewMaterializer(fetcher).Materialize(ctx, f.booking.ID)
	require.NoError(t, err)

	assert.Equal(t, f.booking.ID, b.ID)
	assert.Equal(t, 4, thread.Depth)
	assert.Equal(t, []int{2, 1, 1, 1, 0}, fetcher.widths)
	assert.Equal(t, 4, fetcher.fetchDepth)

	require.Len(t, thread.Roots, 2)
	assert.Equal(t, "Parent message 1", thread.Roots[0].Content)
	assert.Equal(t, "Parent message 2", thread.Roots[1].Content)
	assert.Empty(t, thread.Roots[1].Children)

	perLevel := map[int][]int{}
	for level, n := range thread.Walk() {
		perLevel[level] = append(perLevel[level], len(n.Children))
	}
	assert.Equal(t, map[int][]int{
		1: {1, 0},
		2: {1},
		3: {1},
		4: {0},
	}, perLevel)

	var contents []string
	for n := range thread.Roots[0].Replies() {
		contents = append(contents, n.Content)
	}
	assert.Equal(t, []string{"Reply to message 1"}, contents)
}

func TestMaterializeEmptyThread(t *testing.T) {
	f := setup(t)

	_, thread, err := NewMaterializer(f.store).Materialize(context.Background(), f.booking.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, thread.Depth)

	count := 0
	for range thread.All() {
		count++
	}
	assert.Zero(t, count)
	assert.NotNil(t, thread.Roots)
}

func TestMaterializeUnknownBooking(t *testing.T) {
	f := setup(t)

	_, _, err := NewMaterializer(f.store).Materialize(context.Background(), 999)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestMaterializeRepliesOrderedByTimestamp(t *testing.T) {
	f := setup(t)

	root := f.post(t, "root", nil)
	f.post(t, "first", root)
	f.post(t, "second", root)
	f.post(t, "third", root)

	_, thread, err := NewMaterializer(f.store).Materialize(context.Background(), f.booking.ID)
	require.NoError(t, err)

	var got []string
	for n := range thread.Roots[0].Replies() {
		got = append(got, n.Content)
	}
	assert.Equal(t, []string{"first", "second", "third"}, got)
}

func TestMaterializeDeepChain(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	const levels = 80
	var parent *models.Message
	for i := 0; i < levels; i++ {
		parent = f.post(t, fmt.Sprintf("level %d", i+1), parent)
	}

	fetcher := &countingFetcher{Fetcher: f.store}
	_, thread, err := NewMaterializer(fetcher).Materialize(ctx, f.booking.ID)
	require.NoError(t, err)
	assert.Equal(t, levels, thread.Depth)
	assert.Len(t, fetcher.widths, levels+1)
	assert.Equal(t, levels, fetcher.fetchDepth)

	deepest := 0
	var last *Node
	for level, n := range thread.Walk() {
		deepest = max(deepest, level)
		last = n
	}
	assert.Equal(t, levels, deepest)
	require.NotNil(t, last)
	assert.Equal(t, parent.ID, last.ID)
	assert.Empty(t, last.Children)
}

func TestRepliesRunOnce(t *testing.T) {
	f := setup(t)

	root := f.post(t, "root", nil)
	f.post(t, "first", root)
	f.post(t, "second", root)

	_, thread, err := NewMaterializer(f.store).Materialize(context.Background(), f.booking.ID)
	require.NoError(t, err)

	replies := thread.Roots[0].Replies()
	count := 0
	for range replies {
		count++
	}
	assert.Equal(t, 2, count)

	for range replies {
		t.Fatal("exhausted sequence yielded again")
	}

	fresh := 0
	for range thread.Roots[0].Replies() {
		fresh++
	}
	assert.Equal(t, 2, fresh)
}
