package sale

import (
	"fmt"
	"time"

	"supermarket-backend/internal/audit"
	"supermarket-backend/internal/cache"
	"supermarket-backend/internal/database"
	"supermarket-backend/internal/datagrid"
	"supermarket-backend/internal/form"
	"supermarket-backend/internal/models"
	"supermarket-backend/internal/supermarket"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateSaleRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	SaleDate  string    `json:"sale_date"` // "2025-12-09" or RFC3339
}

type UpdateSaleRequest struct {
	ProductID *uuid.UUID `json:"product_id"`
	SaleDate  *string    `json:"sale_date"`
}

type SaleResponse struct {
	ID            uuid.UUID       `json:"id"`
	SupermarketID uuid.UUID       `json:"supermarket_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	Total         decimal.Decimal `json:"total"`
	SaleDate      string          `json:"sale_date"`
	CreatedAt     string          `json:"created_at"`
}

var saleSchema = form.Schema{
	"quantity":  form.Number(form.Min(1)),
	"sale_date": form.Date(form.NonEmpty()),
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseSaleDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %s", s)
}

// saleRow scans the list query's joins.
type saleRow struct {
	models.Sale
	ProductName string
	Cost        decimal.Decimal
}

func toResponse(row saleRow) SaleResponse {
	return SaleResponse{
		ID:            row.ID,
		SupermarketID: row.SupermarketID,
		ProductID:     row.ProductID,
		ProductName:   row.ProductName,
		Quantity:      row.Quantity,
		Total:         row.Cost.Mul(decimal.NewFromInt(int64(row.Quantity))),
		SaleDate:      row.SaleDate.Format("2006-01-02"),
		CreatedAt:     row.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func gridColumns() []datagrid.Column[SaleResponse] {
	return []datagrid.Column[SaleResponse]{
		{ID: "product_name", Header: "Product name", Value: func(r SaleResponse) any { return r.ProductName }},
		{ID: "quantity", Header: "Quantity", Value: func(r SaleResponse) any { return r.Quantity }},
		{ID: "total", Header: "Total", Value: func(r SaleResponse) any { return r.Total }},
		{ID: "sale_date", Header: "Date", Value: func(r SaleResponse) any { return r.SaleDate }},
	}
}

// -------------------------
// Sale CRUD
// -------------------------

// GET /api/sales
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		var rows []saleRow
		if err := database.DB.Model(&models.Sale{}).
			Select("sales.*, products.name AS product_name, products.cost AS cost").
			Joins("LEFT JOIN products ON products.id = sales.product_id").
			Where("sales.supermarket_id = ?", sm.ID).
			Order("sales.sale_date desc").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list sales")
		}

		resp := make([]SaleResponse, 0, len(rows))
		for _, row := range rows {
			resp = append(resp, toResponse(row))
		}

		req := datagrid.ParseRequest(c)
		if !req.HasQuery {
			return c.JSON(resp)
		}

		g := datagrid.New(gridColumns(), datagrid.WithPageSize[SaleResponse](req.PerPage))
		g.SetRows(resp)
		return c.JSON(datagrid.Window(g, req))
	}
}

// POST /api/sales
// Inserts the sale and decrements the product's stock in one transaction, so
// a partial failure can never leave the quantities inconsistent.
func CreateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if errs := saleSchema.Validate(map[string]any{
			"quantity":  float64(body.Quantity),
			"sale_date": body.SaleDate,
		}); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		saleDate, err := parseSaleDate(body.SaleDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid sale date")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ? AND supermarket_id = ?", body.ProductID, sm.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		if product.QuantityLeft < body.Quantity {
			return fiber.NewError(fiber.StatusBadRequest, "Insufficient stock")
		}

		sale := models.Sale{
			ID:            uuid.New(),
			SupermarketID: sm.ID,
			ProductID:     product.ID,
			Quantity:      body.Quantity,
			SaleDate:      saleDate,
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&sale).Error; err != nil {
				return err
			}
			return tx.Model(&models.Product{}).
				Where("id = ?", product.ID).
				UpdateColumn("quantity_left", gorm.Expr("quantity_left - ?", sale.Quantity)).Error
		})
		if txErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not record sale")
		}

		cache.Products.Invalidate(c.Context(), sm.ID)

		userID, userName, err := supermarket.UserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				SupermarketID: &sm.ID,
				UserID:        userID,
				UserName:      userName,
				EntityType:    "sale",
				EntityID:      sale.ID,
				Action:        models.AuditActionCreate,
				Description:   fmt.Sprintf("Sale recorded: %d x %s", sale.Quantity, product.Name),
				Before:        nil,
				After:         sale,
			}); logErr != nil {
				fmt.Printf("Could not write audit log: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(saleRow{
			Sale:        sale,
			ProductName: product.Name,
			Cost:        product.Cost,
		}))
	}
}

// PUT /api/sales/:id
// Reassigns the product or moves the date. Quantity is immutable; delete and
// re-create the sale to change it, so the stock adjustments stay honest.
func UpdateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		var sale models.Sale
		if err := database.DB.First(&sale, "id = ? AND supermarket_id = ?", id, sm.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sale not found")
		}

		var body UpdateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before := sale

		if body.ProductID != nil {
			var product models.Product
			if err := database.DB.First(&product, "id = ? AND supermarket_id = ?", *body.ProductID, sm.ID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Product not found")
			}
			sale.ProductID = *body.ProductID
		}

		if body.SaleDate != nil {
			saleDate, err := parseSaleDate(*body.SaleDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid sale date")
			}
			sale.SaleDate = saleDate
		}

		if err := database.DB.Save(&sale).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update sale")
		}

		userID, userName, err := supermarket.UserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				SupermarketID: &sm.ID,
				UserID:        userID,
				UserName:      userName,
				EntityType:    "sale",
				EntityID:      sale.ID,
				Action:        models.AuditActionUpdate,
				Description:   "Sale updated",
				Before:        before,
				After:         sale,
			}); logErr != nil {
				fmt.Printf("Could not write audit log: %v\n", logErr)
			}
		}

		return c.JSON(fiber.Map{
			"id":         sale.ID,
			"product_id": sale.ProductID,
			"quantity":   sale.Quantity,
			"sale_date":  sale.SaleDate.Format("2006-01-02"),
		})
	}
}

// DELETE /api/sales/:id
// Deletes the sale and restores the sold quantity in one transaction.
func DeleteSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		var sale models.Sale
		if err := database.DB.First(&sale, "id = ? AND supermarket_id = ?", id, sm.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sale not found")
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&sale).Error; err != nil {
				return err
			}
			return tx.Model(&models.Product{}).
				Where("id = ?", sale.ProductID).
				UpdateColumn("quantity_left", gorm.Expr("quantity_left + ?", sale.Quantity)).Error
		})
		if txErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete sale")
		}

		cache.Products.Invalidate(c.Context(), sm.ID)

		userID, userName, err := supermarket.UserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				SupermarketID: &sm.ID,
				UserID:        userID,
				UserName:      userName,
				EntityType:    "sale",
				EntityID:      sale.ID,
				Action:        models.AuditActionDelete,
				Description:   fmt.Sprintf("Sale deleted, %d restored to stock", sale.Quantity),
				Before:        sale,
				After:         nil,
			}); logErr != nil {
				fmt.Printf("Could not write audit log: %v\n", logErr)
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
