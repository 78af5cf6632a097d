package supermarket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "corner-market", slugify("Corner Market"))
	assert.Equal(t, "joe-s-groceries", slugify("Joe's Groceries!"))
	assert.Equal(t, "market-24-7", slugify("  Market 24/7  "))
	assert.Equal(t, "", slugify("???"))
}

func TestSupermarketSchemaRequiresName(t *testing.T) {
	assert.True(t, supermarketSchema.IsRequired("name"))

	errs := supermarketSchema.Validate(map[string]any{"name": "A"})
	assert.NotEmpty(t, errs["name"])

	errs = supermarketSchema.Validate(map[string]any{"name": "Corner Market"})
	assert.Empty(t, errs)
}
