package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gdg-garage/trip-booking-api/internal/booking"
	"github.com/gdg-garage/trip-booking-api/internal/config"
	"github.com/gdg-garage/trip-booking-api/internal/database"
	"github.com/gdg-garage/trip-booking-api/internal/handlers"
	"github.com/gdg-garage/trip-booking-api/internal/store"
	"github.com/gdg-garage/trip-booking-api/internal/thread"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)
	s := store.New(db)

	// Initialize core services
	bookings := booking.NewService(s, booking.NewValidator(time.Now, cfg.Location()))
	threads := thread.NewStore(s, time.Now)
	materializer := thread.NewMaterializer(s)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, handlers.Handlers{
		Companies: handlers.NewCompanyHandler(s),
		Products:  handlers.NewProductHandler(s),
		Trips:     handlers.NewTripHandler(s, bookings),
		Bookings:  handlers.NewBookingHandler(s, bookings, materializer),
		Messages:  handlers.NewMessageHandler(threads, materializer),
	})

	// Start Server
	log.Printf("Starting server on port %s (database: %s)", cfg.Port, cfg.DatabaseDriver)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
