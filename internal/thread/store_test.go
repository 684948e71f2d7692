package thread

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdg-garage/trip-booking-api/internal/database"
	"github.com/gdg-garage/trip-booking-api/internal/models"
	"github.com/gdg-garage/trip-booking-api/internal/store"
	"github.com/gdg-garage/trip-booking-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	store   *store.Store
	threads *Store
	booking models.Booking
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	company := models.Company{Name: "Test Company"}
	require.NoError(t, db.Create(&company).Error)
	product := models.Product{Name: "Test Product", Price: 100, CompanyID: company.ID}
	require.NoError(t, db.Create(&product).Error)
	trip := models.Trip{
		ProductID: product.ID,
		StartDate: time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(3000, 1, 20, 0, 0, 0, 0, time.UTC),
		MaxPax:    10,
	}
	require.NoError(t, db.Create(&trip).Error)
	b := models.Booking{TripID: trip.ID, Pax: 2, Status: models.BookingStatusPending}
	require.NoError(t, db.Create(&b).Error)

	s := store.New(db)
	frozen := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	return &fixture{
		db:      db,
		store:   s,
		threads: NewStore(s, func() time.Time { return frozen }),
		booking: b,
	}
}

func (f *fixture) newBooking(t *testing.T) models.Booking {
	t.Helper()
	b := models.Booking{TripID: f.booking.TripID, Pax: 1, Status: models.BookingStatusPending}
	require.NoError(t, f.db.Create(&b).Error)
	return b
}

func (f *fixture) post(t *testing.T, content string, parent *models.Message) *models.Message {
	t.Helper()
	var parentID *uint
	if parent != nil {
		parentID = &parent.ID
	}
	m, err := f.threads.Post(context.Background(), f.booking.ID, "User1", content, parentID)
	require.NoError(t, err)
	return m
}

func TestPostTimestampsIncrease(t *testing.T) {
	f := setup(t)

	first := f.post(t, "Parent message 1", nil)
	second := f.post(t, "Reply to message 1", first)
	third := f.post(t, "Parent message 2", nil)

	assert.True(t, second.Timestamp.After(first.Timestamp))
	assert.True(t, third.Timestamp.After(second.Timestamp))
	assert.Equal(t, first.ID, *second.ParentMessageID)
}

func TestPostRejectsForeignParent(t *testing.T) {
	f := setup(t)
	other := f.newBooking(t)

	foreign, err := f.threads.Post(context.Background(), other.ID, "User2", "elsewhere", nil)
	require.NoError(t, err)

	_, err = f.threads.Post(context.Background(), f.booking.ID, "User1", "reply", &foreign.ID)
	assert.True(t, errors.Is(err, validation.ErrParentBooking))

	_, err = f.threads.Post(context.Background(), 999, "User1", "nowhere", nil)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestAttachRejectsCycles(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	m1 := f.post(t, "m1", nil)
	m2 := f.post(t, "m2", m1)
	m3 := f.post(t, "m3", m2)
	m4 := f.post(t, "m4", m3)

	_, err := f.threads.Attach(ctx, m1.ID, &m4.ID)
	require.True(t, errors.Is(err, validation.ErrCycle))
	verr, _ := validation.As(err)
	assert.Contains(t, verr.Fields, "parent_message")

	_, err = f.threads.Attach(ctx, m2.ID, &m2.ID)
	assert.True(t, errors.Is(err, validation.ErrCycle))

	got, err := f.store.Message(ctx, m1.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentMessageID, "rejected attach must not write")
}

func TestAttachNonAncestor(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	m1 := f.post(t, "m1", nil)
	m2 := f.post(t, "m2", m1)
	other := f.post(t, "other root", nil)

	moved, err := f.threads.Attach(ctx, other.ID, &m2.ID)
	require.NoError(t, err)
	assert.Equal(t, m2.ID, *moved.ParentMessageID)

	detached, err := f.threads.Attach(ctx, m2.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, detached.ParentMessageID)

	got, err := f.store.Message(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, m2.ID, *got.ParentMessageID)
}

func TestAttachRejectsForeignParent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	other := f.newBooking(t)

	m := f.post(t, "mine", nil)
	foreign, err := f.threads.Post(ctx, other.ID, "User2", "theirs", nil)
	require.NoError(t, err)

	_, err = f.threads.Attach(ctx, m.ID, &foreign.ID)
	assert.True(t, errors.Is(err, validation.ErrParentBooking))
}

func TestDeleteRemovesSubtree(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	root := f.post(t, "root", nil)
	reply := f.post(t, "reply", root)
	f.post(t, "reply to reply", reply)
	f.post(t, "second reply", root)
	keep := f.post(t, "other root", nil)

	removed, err := f.threads.Delete(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, removed)

	links, err := f.store.MessageLinks(ctx, f.booking.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, keep.ID, links[0].ID)

	_, err = f.threads.Delete(ctx, root.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}
