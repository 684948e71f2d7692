package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
)

func TestRoutes(t *testing.T) {
	_, api := humatest.New(t)
	Register(api, setupHandlers(t))

	resp := api.Post("/companies", map[string]any{"name": "Acme"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create company: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = api.Post("/products", map[string]any{"name": "Alps", "description": "Hiking", "price": 250.0, "company": 1})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create product: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = api.Post("/trips", map[string]any{"product": 1, "start_date": "2030-07-01", "end_date": "2030-07-10", "max_pax": 0})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("create trip with zero capacity: expected 422, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "max_pax should have a value of at least 1.") {
		t.Errorf("expected max_pax message, got %s", resp.Body.String())
	}

	resp = api.Post("/trips", map[string]any{"product": 1, "start_date": "2030-07-01", "end_date": "2030-07-10", "max_pax": 3})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create trip: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = api.Post("/bookings", map[string]any{"trip": 1, "pax": 3})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create booking: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = api.Post("/bookings/1/approve")
	if resp.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = api.Get("/trips/1")
	if resp.Code != http.StatusOK {
		t.Fatalf("get trip: expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"is_full":true`) {
		t.Errorf("expected full trip, got %s", resp.Body.String())
	}

	resp = api.Post("/bookings/1/messages", map[string]any{"sender": "customer", "content": "Hello"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("post message: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = api.Get("/bookings/1/messages")
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"replies":[]`) {
		t.Errorf("unexpected thread response %d: %s", resp.Code, resp.Body.String())
	}

	resp = api.Delete("/bookings/1")
	if resp.Code != http.StatusNoContent {
		t.Errorf("delete booking: expected 204, got %d", resp.Code)
	}

	resp = api.Get("/bookings/1")
	if resp.Code != http.StatusNotFound {
		t.Errorf("get deleted booking: expected 404, got %d", resp.Code)
	}
}
