package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Companies *CompanyHandler
	Products  *ProductHandler
	Trips     *TripHandler
	Bookings  *BookingHandler
	Messages  *MessageHandler
}

func RegisterRoutes(r *chi.Mux, h Handlers) huma.API {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize Huma API
	api := humachi.New(r, huma.DefaultConfig("Trip Booking API", "1.0.0"))
	Register(api, h)
	return api
}

func created(o *huma.Operation) {
	o.DefaultStatus = http.StatusCreated
}

// Register adds every operation to api.
func Register(api huma.API, h Handlers) {
	huma.Post(api, "/companies", h.Companies.HandleCreate, created)
	huma.Get(api, "/companies", h.Companies.HandleList)
	huma.Get(api, "/companies/{id}", h.Companies.HandleGet)
	huma.Delete(api, "/companies/{id}", h.Companies.HandleDelete)

	huma.Post(api, "/products", h.Products.HandleCreate, created)
	huma.Get(api, "/products", h.Products.HandleList)
	huma.Get(api, "/products/{id}", h.Products.HandleGet)
	huma.Put(api, "/products/{id}", h.Products.HandleUpdate)
	huma.Delete(api, "/products/{id}", h.Products.HandleDelete)

	huma.Post(api, "/trips", h.Trips.HandleCreate, created)
	huma.Get(api, "/trips", h.Trips.HandleList)
	huma.Get(api, "/trips/{id}", h.Trips.HandleGet)
	huma.Put(api, "/trips/{id}", h.Trips.HandleUpdate)
	huma.Delete(api, "/trips/{id}", h.Trips.HandleDelete)

	huma.Post(api, "/bookings", h.Bookings.HandleCreate, created)
	huma.Get(api, "/bookings", h.Bookings.HandleList)
	huma.Get(api, "/bookings/{id}", h.Bookings.HandleGet)
	huma.Patch(api, "/bookings/{id}", h.Bookings.HandleUpdate)
	huma.Post(api, "/bookings/{id}/approve", h.Bookings.HandleApprove, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusOK
	})
	huma.Delete(api, "/bookings/{id}", h.Bookings.HandleDelete)

	huma.Post(api, "/bookings/{id}/messages", h.Messages.HandlePost, created)
	huma.Get(api, "/bookings/{id}/messages", h.Messages.HandleThread)
	huma.Patch(api, "/messages/{id}", h.Messages.HandleAttach)
	huma.Delete(api, "/messages/{id}", h.Messages.HandleDelete)
}
