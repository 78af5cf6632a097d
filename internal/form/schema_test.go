package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func productSchema() Schema {
	units := []SelectOption{
		{Value: "Kilogram", Label: "Kilogram"},
		{Value: "Liter", Label: "Liter"},
	}
	return Schema{
		"name":          Text(NonEmpty()),
		"code":          Text(NonEmpty()),
		"unit":          Select(units, OneOf("Kilogram", "Liter")),
		"cost":          Price(Min(0)),
		"quantity_left": Number(Min(0)),
	}
}

func TestIsRequiredDerivesFromNonEmptyRules(t *testing.T) {
	s := productSchema()

	assert.True(t, s.IsRequired("name"))
	assert.True(t, s.IsRequired("unit")) // OneOf implies presence
	assert.False(t, s.IsRequired("cost"))
	assert.False(t, s.IsRequired("quantity_left"))
	assert.False(t, s.IsRequired("missing"))

	// MinLen(n>0) is a presence constraint, MinLen(0) is not
	assert.True(t, Schema{"a": Text(MinLen(2))}.IsRequired("a"))
	assert.False(t, Schema{"a": Text(MinLen(0))}.IsRequired("a"))
}

func TestValidateReportsFirstFailingRulePerField(t *testing.T) {
	s := productSchema()

	errs := s.Validate(map[string]any{
		"name":          "  ",
		"code":          "PRD-1",
		"unit":          "Gallon",
		"cost":          -2.5,
		"quantity_left": 10,
	})

	assert.Equal(t, "This field is required", errs["name"])
	assert.NotEmpty(t, errs["unit"])
	assert.NotEmpty(t, errs["cost"])
	assert.NotContains(t, errs, "code")
	assert.NotContains(t, errs, "quantity_left")
}

func TestValidatePassesOnGoodRecord(t *testing.T) {
	errs := productSchema().Validate(map[string]any{
		"name":          "Milk",
		"code":          "MLK-01",
		"unit":          "Liter",
		"cost":          1.25,
		"quantity_left": 30,
	})
	assert.Empty(t, errs)
}

func TestEmailRule(t *testing.T) {
	s := Schema{"email": Text(NonEmpty(), Email())}

	assert.Empty(t, s.Validate(map[string]any{"email": "ops@acme.example"}))
	assert.NotEmpty(t, s.Validate(map[string]any{"email": "not-an-email"}))
	assert.NotEmpty(t, s.Validate(map[string]any{"email": "@acme.example"}))
	assert.NotEmpty(t, s.Validate(map[string]any{"email": ""}))
}

func TestNumberCoercionTreatsMalformedInputAsZero(t *testing.T) {
	s := Schema{"quantity": Number(Min(1))}

	// "abc" coerces to 0, which then fails Min(1)
	errs := s.Validate(map[string]any{"quantity": "abc"})
	assert.NotEmpty(t, errs["quantity"])

	errs = s.Validate(map[string]any{"quantity": "12"})
	assert.Empty(t, errs)

	errs = s.Validate(map[string]any{"quantity": nil})
	assert.NotEmpty(t, errs["quantity"])
}
