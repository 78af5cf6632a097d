package supermarket

import (
	"supermarket-backend/internal/database"
	"supermarket-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LowStockItem struct {
	ItemName      string `json:"item_name"`
	ItemQuantity  int    `json:"item_quantity"`
	SupplierName  string `json:"supplier_name"`
	SupplierEmail string `json:"supplier_email"`
}

type StatsResponse struct {
	ProductCount int64          `json:"product_count"`
	SaleCount    int64          `json:"sale_count"`
	LowStock     []LowStockItem `json:"low_stock"`
	Threshold    int            `json:"threshold"`
}

const defaultLowStockThreshold = 5

// GET /api/supermarkets/stats?threshold=5
func StatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := ResolveForUser(c)
		if err != nil {
			return err
		}

		threshold := c.QueryInt("threshold", defaultLowStockThreshold)
		if threshold < 0 {
			threshold = defaultLowStockThreshold
		}

		// COUNT aggregates come back as int64; keep them that way instead of
		// squeezing into a smaller type.
		var productCount int64
		if err := database.DB.Model(&models.Product{}).
			Where("supermarket_id = ?", sm.ID).
			Count(&productCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count products")
		}

		var saleCount int64
		if err := database.DB.Model(&models.Sale{}).
			Where("supermarket_id = ?", sm.ID).
			Count(&saleCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count sales")
		}

		var lowStock []LowStockItem
		if err := database.DB.Model(&models.Product{}).
			Select("products.name AS item_name, products.quantity_left AS item_quantity, suppliers.name AS supplier_name, suppliers.email AS supplier_email").
			Joins("LEFT JOIN suppliers ON suppliers.id = products.supplier_id").
			Where("products.supermarket_id = ? AND products.quantity_left < ?", sm.ID, threshold).
			Scan(&lowStock).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load low stock items")
		}

		return c.JSON(StatsResponse{
			ProductCount: productCount,
			SaleCount:    saleCount,
			LowStock:     lowStock,
			Threshold:    threshold,
		})
	}
}
