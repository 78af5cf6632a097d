package sale

import (
	"testing"
	"time"

	"supermarket-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToResponseComputesTotalFromCostAndQuantity(t *testing.T) {
	row := saleRow{
		Sale: models.Sale{
			ID:       uuid.New(),
			Quantity: 3,
			SaleDate: time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC),
		},
		ProductName: "Milk",
		Cost:        decimal.RequireFromString("1.25"),
	}

	resp := toResponse(row)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("3.75")), "got %s", resp.Total)
	assert.Equal(t, "2025-12-09", resp.SaleDate)
	assert.Equal(t, "Milk", resp.ProductName)
}

func TestParseSaleDateAcceptsDateOnlyAndRFC3339(t *testing.T) {
	got, err := parseSaleDate("2025-12-09")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC), got)

	got, err = parseSaleDate("2025-12-09T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())

	_, err = parseSaleDate("09/12/2025")
	assert.Error(t, err)
}

func TestSaleSchemaRejectsZeroQuantityAndMissingDate(t *testing.T) {
	errs := saleSchema.Validate(map[string]any{
		"quantity":  float64(0),
		"sale_date": "",
	})
	assert.NotEmpty(t, errs["quantity"])
	assert.NotEmpty(t, errs["sale_date"])

	errs = saleSchema.Validate(map[string]any{
		"quantity":  float64(2),
		"sale_date": "2025-12-09",
	})
	assert.Empty(t, errs)
}
