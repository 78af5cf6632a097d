package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSeedsZeroValuesAndDefaults(t *testing.T) {
	s := NewSession(productSchema(), map[string]any{
		"name": "Milk",
		"cost": "1.25",
	})

	assert.Equal(t, "Milk", s.Value("name"))
	assert.Equal(t, 1.25, s.Value("cost"))
	assert.Equal(t, "", s.Value("code"))
	assert.Equal(t, float64(0), s.Value("quantity_left"))

	assert.False(t, s.Touched("name"))
	assert.False(t, s.Dirty("name"))
}

func TestSetValueCoercesAndTracksTouchedDirty(t *testing.T) {
	s := NewSession(productSchema(), nil)

	s.SetValue("quantity_left", "15")
	assert.Equal(t, float64(15), s.Value("quantity_left"))
	assert.True(t, s.Touched("quantity_left"))
	assert.True(t, s.Dirty("quantity_left"))

	// malformed numeric input coerces to the zero value
	s.SetValue("quantity_left", "fifteen")
	assert.Equal(t, float64(0), s.Value("quantity_left"))
	assert.True(t, s.Touched("quantity_left"))
	assert.False(t, s.Dirty("quantity_left"))

	// unknown fields are ignored
	s.SetValue("ghost", "boo")
	assert.Nil(t, s.Value("ghost"))
}

func TestSubmitNeverCallsCallbackWhenInvalid(t *testing.T) {
	s := NewSession(productSchema(), nil)

	called := false
	err := s.Submit(func(values map[string]any) error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, ErrInvalid)
	assert.False(t, called)
	assert.NotEmpty(t, s.Errors())
	assert.Equal(t, "This field is required", s.Error("name"))
}

func TestSubmitCallsCallbackWithCoercedValues(t *testing.T) {
	s := NewSession(productSchema(), nil)
	s.SetValue("name", "Milk")
	s.SetValue("code", "MLK-01")
	s.SetValue("unit", "Liter")
	s.SetValue("cost", "1.25")
	s.SetValue("quantity_left", 30)

	var got map[string]any
	err := s.Submit(func(values map[string]any) error {
		got = values
		assert.True(t, s.IsSubmitting())
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1.25, got["cost"])
	assert.Equal(t, float64(30), got["quantity_left"])
	assert.False(t, s.IsSubmitting())
	assert.Empty(t, s.Errors())
}

func TestSetValueClearsPreviousFieldError(t *testing.T) {
	s := NewSession(productSchema(), nil)

	_ = s.Submit(func(map[string]any) error { return nil })
	require.NotEmpty(t, s.Error("name"))

	s.SetValue("name", "Milk")
	assert.Empty(t, s.Error("name"))
}

func TestDateCoercionAcceptsDateOnlyAndRFC3339(t *testing.T) {
	s := NewSession(Schema{"sale_date": Date(NonEmpty())}, nil)

	s.SetValue("sale_date", "2025-12-09")
	got, ok := s.Value("sale_date").(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC), got)

	s.SetValue("sale_date", "2025-12-09T14:30:00Z")
	got = s.Value("sale_date").(time.Time)
	assert.Equal(t, 14, got.Hour())

	s.SetValue("sale_date", "not a date")
	got = s.Value("sale_date").(time.Time)
	assert.True(t, got.IsZero())
}
