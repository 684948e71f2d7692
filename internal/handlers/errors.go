package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/trip-booking-api/internal/store"
	"github.com/gdg-garage/trip-booking-api/internal/validation"
)

const dateLayout = "2006-01-02"

// apiError maps core errors onto huma responses. Business-rule rejections
// become 422 with one detail per field.
func apiError(err error) error {
	if verr, ok := validation.As(err); ok {
		details := make([]error, 0, len(verr.Fields))
		for _, f := range verr.FieldNames() {
			details = append(details, &huma.ErrorDetail{
				Location: "body." + f,
				Message:  verr.Fields[f],
			})
		}
		return huma.Error422UnprocessableEntity(verr.Err.Error(), details...)
	}
	if errors.Is(err, store.ErrNotFound) {
		return huma.Error404NotFound(err.Error())
	}
	log.Printf("Request failed: %v", err)
	return huma.Error500InternalServerError("Internal server error")
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, huma.Error422UnprocessableEntity("invalid date", &huma.ErrorDetail{
			Location: "body." + field,
			Message:  "Date has wrong format. Use YYYY-MM-DD.",
			Value:    value,
		})
	}
	return t, nil
}
