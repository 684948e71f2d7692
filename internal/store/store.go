// Package store is the gorm persistence layer behind the booking and thread
// engines. It translates gorm.ErrRecordNotFound to ErrNotFound and owns the
// cascade-delete rules between companies, products, trips, bookings and
// messages.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdg-garage/trip-booking-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn against a Store bound to a single database transaction.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("get %s %d: %w", what, id, err)
}

func (s *Store) exists(ctx context.Context, model any, what string, id uint) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("check %s %d: %w", what, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return nil
}

// Companies

func (s *Store) CreateCompany(ctx context.Context, c *models.Company) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func (s *Store) Companies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := s.db.WithContext(ctx).Order("name").Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

func (s *Store) Company(ctx context.Context, id uint) (*models.Company, error) {
	var c models.Company
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err, "company", id)
	}
	return &c, nil
}

// CompanyTotalBookings counts bookings of any status across all trips of all
// products owned by the company.
func (s *Store) CompanyTotalBookings(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Booking{}).
		Joins("JOIN trips ON trips.id = bookings.trip_id AND trips.deleted_at IS NULL").
		Joins("JOIN products ON products.id = trips.product_id AND products.deleted_at IS NULL").
		Where("products.company_id = ?", id).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count bookings of company %d: %w", id, err)
	}
	return n, nil
}

func (s *Store) DeleteCompany(ctx context.Context, id uint) error {
	if err := s.exists(ctx, &models.Company{}, "company", id); err != nil {
		return err
	}
	return s.Transaction(ctx, func(tx *Store) error {
		products := tx.db.Model(&models.Product{}).Select("id").Where("company_id = ?", id)
		trips := tx.db.Model(&models.Trip{}).Select("id").Where("product_id IN (?)", products)
		if err := tx.deleteTrips(trips); err != nil {
			return err
		}
		if err := tx.db.Where("company_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return fmt.Errorf("delete products of company %d: %w", id, err)
		}
		if err := tx.db.Delete(&models.Company{}, id).Error; err != nil {
			return fmt.Errorf("delete company %d: %w", id, err)
		}
		return nil
	})
}

// Products

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := s.exists(ctx, &models.Company{}, "company", p.CompanyID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *Store) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Preload("Company").Order("name").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *Store) Product(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).Preload("Company").First(&p, id).Error; err != nil {
		return nil, notFound(err, "product", id)
	}
	return &p, nil
}

func (s *Store) SaveProduct(ctx context.Context, p *models.Product) error {
	if err := s.exists(ctx, &models.Company{}, "company", p.CompanyID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error; err != nil {
		return fmt.Errorf("save product %d: %w", p.ID, err)
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.exists(ctx, &models.Product{}, "product", id); err != nil {
		return err
	}
	return s.Transaction(ctx, func(tx *Store) error {
		trips := tx.db.Model(&models.Trip{}).Select("id").Where("product_id = ?", id)
		if err := tx.deleteTrips(trips); err != nil {
			return err
		}
		if err := tx.db.Delete(&models.Product{}, id).Error; err != nil {
			return fmt.Errorf("delete product %d: %w", id, err)
		}
		return nil
	})
}

// Trips

func (s *Store) CreateTrip(ctx context.Context, t *models.Trip) error {
	if err := s.exists(ctx, &models.Product{}, "product", t.ProductID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error; err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}
	return nil
}

func (s *Store) SaveTrip(ctx context.Context, t *models.Trip) error {
	if err := s.exists(ctx, &models.Product{}, "product", t.ProductID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(t).Error; err != nil {
		return fmt.Errorf("save trip %d: %w", t.ID, err)
	}
	return nil
}

// Trips lists trips ordered by start date with their bookings loaded.
// A non-nil productID narrows the list to that product.
func (s *Store) Trips(ctx context.Context, productID *uint) ([]models.Trip, error) {
	q := s.db.WithContext(ctx).Preload("Bookings").Order("start_date, id")
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	}
	var trips []models.Trip
	if err := q.Find(&trips).Error; err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return trips, nil
}

// TripWithBookings fetches a trip and every booking on it.
func (s *Store) TripWithBookings(ctx context.Context, id uint) (*models.Trip, error) {
	var t models.Trip
	if err := s.db.WithContext(ctx).Preload("Bookings").First(&t, id).Error; err != nil {
		return nil, notFound(err, "trip", id)
	}
	return &t, nil
}

// LockTrip fetches a trip with SELECT ... FOR UPDATE and then its bookings.
// Inside a transaction this holds the trip row until commit on databases with
// row locks; sqlite drops the locking clause and serializes writers instead.
func (s *Store) LockTrip(ctx context.Context, id uint) (*models.Trip, error) {
	var t models.Trip
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&t, id).Error
	if err != nil {
		return nil, notFound(err, "trip", id)
	}
	if err := s.db.WithContext(ctx).Where("trip_id = ?", id).Find(&t.Bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings of trip %d: %w", id, err)
	}
	return &t, nil
}

func (s *Store) DeleteTrip(ctx context.Context, id uint) error {
	if err := s.exists(ctx, &models.Trip{}, "trip", id); err != nil {
		return err
	}
	return s.Transaction(ctx, func(tx *Store) error {
		return tx.deleteTrips(tx.db.Model(&models.Trip{}).Select("id").Where("id = ?", id))
	})
}

// deleteTrips removes the trips selected by ids along with their bookings
// and messages. Children go first since the subqueries skip deleted parents.
func (s *Store) deleteTrips(ids *gorm.DB) error {
	bookings := s.db.Model(&models.Booking{}).Select("id").Where("trip_id IN (?)", ids)
	if err := s.db.Where("booking_id IN (?)", bookings).Delete(&models.Message{}).Error; err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	if err := s.db.Where("trip_id IN (?)", ids).Delete(&models.Booking{}).Error; err != nil {
		return fmt.Errorf("delete bookings: %w", err)
	}
	if err := s.db.Where("id IN (?)", ids).Delete(&models.Trip{}).Error; err != nil {
		return fmt.Errorf("delete trips: %w", err)
	}
	return nil
}

// Bookings

func (s *Store) CreateBooking(ctx context.Context, b *models.Booking) error {
	if err := s.exists(ctx, &models.Trip{}, "trip", b.TripID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error; err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// Bookings lists bookings in creation order, optionally for a single trip.
func (s *Store) Bookings(ctx context.Context, tripID *uint) ([]models.Booking, error) {
	q := s.db.WithContext(ctx).Order("created_at, id")
	if tripID != nil {
		q = q.Where("trip_id = ?", *tripID)
	}
	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (s *Store) Booking(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := s.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err, "booking", id)
	}
	return &b, nil
}

// SetBookingStatus writes only the status column, and only when it differs
// from status. It reports whether a row changed.
func (s *Store) SetBookingStatus(ctx context.Context, id uint, status models.BookingStatus) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status <> ?", id, status).
		Update("status", status)
	if res.Error != nil {
		return false, fmt.Errorf("update status of booking %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// SetBookingPax writes only the pax column.
func (s *Store) SetBookingPax(ctx context.Context, id uint, pax int) error {
	err := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", id).
		Update("pax", pax).Error
	if err != nil {
		return fmt.Errorf("update pax of booking %d: %w", id, err)
	}
	return nil
}

func (s *Store) DeleteBooking(ctx context.Context, id uint) error {
	if err := s.exists(ctx, &models.Booking{}, "booking", id); err != nil {
		return err
	}
	return s.Transaction(ctx, func(tx *Store) error {
		if err := tx.db.Where("booking_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return fmt.Errorf("delete messages of booking %d: %w", id, err)
		}
		if err := tx.db.Delete(&models.Booking{}, id).Error; err != nil {
			return fmt.Errorf("delete booking %d: %w", id, err)
		}
		return nil
	})
}
