package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorWrapsKind(t *testing.T) {
	err := fmt.Errorf("approve booking 4: %w", Field(ErrCapacityExceeded, "pax", "Not enough space remaining for this trip."))

	assert.True(t, errors.Is(err, ErrCapacityExceeded))
	assert.False(t, errors.Is(err, ErrTripStarted))

	verr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "Not enough space remaining for this trip.", verr.Fields["pax"])
}

func TestErrorMessageIsStable(t *testing.T) {
	err := New(ErrDateOrder, map[string]string{
		"start_date": "The start date cannot be later than the end date.",
		"end_date":   "The end date cannot be earlier than the start date.",
	})

	assert.Equal(t, []string{"end_date", "start_date"}, err.FieldNames())
	assert.Equal(t,
		"start date later than end date; end_date: The end date cannot be earlier than the start date.; start_date: The start date cannot be later than the end date.",
		err.Error())
}

func TestAsRejectsOtherErrors(t *testing.T) {
	_, ok := As(errors.New("boom"))
	assert.False(t, ok)
}
