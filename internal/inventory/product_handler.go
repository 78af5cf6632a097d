package inventory

import (
	"encoding/json"
	"fmt"
	"strings"

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
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateProductRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Unit         string          `json:"unit"`
	Cost         decimal.Decimal `json:"cost"`
	QuantityLeft int             `json:"quantity_left"`
	CategoryID   uuid.UUID       `json:"category_id"`
	SupplierID   uuid.UUID       `json:"supplier_id"`
}

type UpdateProductRequest struct {
	Code         *string          `json:"code"`
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Unit         *string          `json:"unit"`
	Cost         *decimal.Decimal `json:"cost"`
	QuantityLeft *int             `json:"quantity_left"`
	CategoryID   *uuid.UUID       `json:"category_id"`
	SupplierID   *uuid.UUID       `json:"supplier_id"`
}

type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	SupermarketID uuid.UUID       `json:"supermarket_id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Unit          string          `json:"unit"`
	Cost          decimal.Decimal `json:"cost"`
	QuantityLeft  int             `json:"quantity_left"`
	CategoryID    uuid.UUID       `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	SupplierID    uuid.UUID       `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name"`
}

var unitOptions = func() []form.SelectOption {
	opts := make([]form.SelectOption, 0, len(models.ProductUnits))
	for _, u := range models.ProductUnits {
		opts = append(opts, form.SelectOption{Value: u, Label: u})
	}
	return opts
}()

var productSchema = form.Schema{
	"name":          form.Text(form.NonEmpty()),
	"code":          form.Text(form.NonEmpty()),
	"description":   form.Text(),
	"unit":          form.Select(unitOptions, form.OneOf(models.ProductUnits...)),
	"cost":          form.Price(form.Min(0)),
	"quantity_left": form.Number(form.Min(0)),
}

// productRow scans the list query's joins.
type productRow struct {
	models.Product
	SupplierName string
	CategoryName string
}

func toResponse(row productRow) ProductResponse {
	return ProductResponse{
		ID:            row.ID,
		SupermarketID: row.SupermarketID,
		Code:          row.Code,
		Name:          row.Name,
		Description:   row.Description,
		Unit:          row.Unit,
		Cost:          row.Cost,
		QuantityLeft:  row.QuantityLeft,
		CategoryID:    row.CategoryID,
		CategoryName:  row.CategoryName,
		SupplierID:    row.SupplierID,
		SupplierName:  row.SupplierName,
	}
}

var unitFilterOptions = func() []datagrid.FilterOption {
	opts := make([]datagrid.FilterOption, 0, len(models.ProductUnits))
	for _, u := range models.ProductUnits {
		opts = append(opts, datagrid.FilterOption{Value: u, Label: u})
	}
	return opts
}()

func gridColumns() []datagrid.Column[ProductResponse] {
	return []datagrid.Column[ProductResponse]{
		{ID: "name", Header: "Name", Value: func(r ProductResponse) any { return r.Name }},
		{ID: "cost", Header: "Price", Value: func(r ProductResponse) any { return r.Cost }},
		{ID: "code", Header: "Code", Value: func(r ProductResponse) any { return r.Code }},
		{ID: "quantity_left", Header: "Quantity left", Value: func(r ProductResponse) any { return r.QuantityLeft }},
		{
			ID: "unit", Header: "Unit", Value: func(r ProductResponse) any { return r.Unit },
			Filter: &datagrid.Filter{Kind: datagrid.FilterIncludes, Name: "Unit", Options: unitFilterOptions},
		},
		{
			ID: "category_name", Header: "Category", Value: func(r ProductResponse) any { return r.CategoryName },
			Filter: &datagrid.Filter{Kind: datagrid.FilterEquals, Name: "Category"},
		},
		{
			ID: "supplier_name", Header: "Supplier", Value: func(r ProductResponse) any { return r.SupplierName },
			Filter: &datagrid.Filter{Kind: datagrid.FilterEquals, Name: "Supplier"},
		},
	}
}

// loadProducts returns the joined product list for a supermarket, going
// through the cache when it is enabled.
func loadProducts(c *fiber.Ctx, supermarketID uuid.UUID) ([]ProductResponse, error) {
	if cached := cache.Products.Get(c.Context(), supermarketID); cached != "" {
		var resp []ProductResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return resp, nil
		}
	}

	var rows []productRow
	if err := database.DB.Model(&models.Product{}).
		Select("products.*, suppliers.name AS supplier_name, categories.name AS category_name").
		Joins("LEFT JOIN suppliers ON suppliers.id = products.supplier_id").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("products.supermarket_id = ?", supermarketID).
		Order("products.name asc").
		Scan(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not list products")
	}

	resp := make([]ProductResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, toResponse(row))
	}

	if b, err := json.Marshal(resp); err == nil {
		cache.Products.Set(c.Context(), supermarketID, string(b))
	}

	return resp, nil
}

// hasPrerequisites reports whether a supermarket has at least one category
// and one supplier, which product creation requires.
func hasPrerequisites(supermarketID uuid.UUID) bool {
	var categoryCount, supplierCount int64
	database.DB.Model(&models.Category{}).Where("supermarket_id = ?", supermarketID).Count(&categoryCount)
	database.DB.Model(&models.Supplier{}).Where("supermarket_id = ?", supermarketID).Count(&supplierCount)
	return categoryCount > 0 && supplierCount > 0
}

const prerequisitesMessage = "You need to add categories and suppliers before adding items."

// -------------------------
// Product CRUD
// -------------------------

// GET /api/products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		resp, err := loadProducts(c, sm.ID)
		if err != nil {
			return err
		}

		req := datagrid.ParseRequest(c)
		if !req.HasQuery {
			return c.JSON(resp)
		}

		g := datagrid.New(gridColumns(), datagrid.WithPageSize[ProductResponse](req.PerPage))
		g.SetRows(resp)
		return c.JSON(datagrid.Window(g, req))
	}
}

// GET /api/products/count
func ProductCountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		var count int64
		if err := database.DB.Model(&models.Product{}).
			Where("supermarket_id = ?", sm.ID).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count products")
		}

		return c.JSON(fiber.Map{"count": count})
	}
}

// GET /api/products/low-stock?threshold=10
func LowStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		threshold := c.QueryInt("threshold", 10)

		var items []supermarket.LowStockItem
		if err := database.DB.Model(&models.Product{}).
			Select("products.name AS item_name, products.quantity_left AS item_quantity, suppliers.name AS supplier_name, suppliers.email AS supplier_email").
			Joins("LEFT JOIN suppliers ON suppliers.id = products.supplier_id").
			Where("products.supermarket_id = ? AND products.quantity_left < ?", sm.ID, threshold).
			Scan(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load low stock items")
		}

		return c.JSON(items)
	}
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		if !hasPrerequisites(sm.ID) {
			return fiber.NewError(fiber.StatusBadRequest, prerequisitesMessage)
		}

		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		cost, _ := body.Cost.Float64()
		if errs := productSchema.Validate(map[string]any{
			"name":          body.Name,
			"code":          body.Code,
			"description":   body.Description,
			"unit":          body.Unit,
			"cost":          cost,
			"quantity_left": float64(body.QuantityLeft),
		}); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		// Referenced category and supplier must belong to this supermarket.
		var category models.Category
		if err := database.DB.First(&category, "id = ? AND supermarket_id = ?", body.CategoryID, sm.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Category not found")
		}
		var sup models.Supplier
		if err := database.DB.First(&sup, "id = ? AND supermarket_id = ?", body.SupplierID, sm.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Supplier not found")
		}

		product := models.Product{
			ID:            uuid.New(),
			SupermarketID: sm.ID,
			CategoryID:    body.CategoryID,
			SupplierID:    body.SupplierID,
			Code:          strings.TrimSpace(body.Code),
			Name:          strings.TrimSpace(body.Name),
			Description:   strings.TrimSpace(body.Description),
			Unit:          body.Unit,
			Cost:          body.Cost,
			QuantityLeft:  body.QuantityLeft,
		}

		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save product")
		}

		cache.Products.Invalidate(c.Context(), sm.ID)

		userID, userName, err := supermarket.UserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				SupermarketID: &sm.ID,
				UserID:        userID,
				UserName:      userName,
				EntityType:    "product",
				EntityID:      product.ID,
				Action:        models.AuditActionCreate,
				Description:   fmt.Sprintf("Product added: %s", product.Name),
				Before:        nil,
				After:         product,
			}); logErr != nil {
				fmt.Printf("Could not write audit log: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(productRow{
			Product:      product,
			SupplierName: sup.Name,
			CategoryName: category.Name,
		}))
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		var product models.Product
		if err := database.DB.First(&product, "id = ? AND supermarket_id = ?", id, sm.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before := product

		if body.Name != nil {
			product.Name = strings.TrimSpace(*body.Name)
		}
		if body.Code != nil {
			product.Code = strings.TrimSpace(*body.Code)
		}
		if body.Description != nil {
			product.Description = strings.TrimSpace(*body.Description)
		}
		if body.Unit != nil {
			product.Unit = *body.Unit
		}
		if body.Cost != nil {
			product.Cost = *body.Cost
		}
		if body.QuantityLeft != nil {
			product.QuantityLeft = *body.QuantityLeft
		}
		if body.CategoryID != nil {
			var category models.Category
			if err := database.DB.First(&category, "id = ? AND supermarket_id = ?", *body.CategoryID, sm.ID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Category not found")
			}
			product.CategoryID = *body.CategoryID
		}
		if body.SupplierID != nil {
			var sup models.Supplier
			if err := database.DB.First(&sup, "id = ? AND supermarket_id = ?", *body.SupplierID, sm.ID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Supplier not found")
			}
			product.SupplierID = *body.SupplierID
		}

		cost, _ := product.Cost.Float64()
		if errs := productSchema.Validate(map[string]any{
			"name":          product.Name,
			"code":          product.Code,
			"description":   product.Description,
			"unit":          product.Unit,
			"cost":          cost,
			"quantity_left": float64(product.QuantityLeft),
		}); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update product")
		}

		cache.Products.Invalidate(c.Context(), sm.ID)

		userID, userName, err := supermarket.UserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				SupermarketID: &sm.ID,
				UserID:        userID,
				UserName:      userName,
				EntityType:    "product",
				EntityID:      product.ID,
				Action:        models.AuditActionUpdate,
				Description:   fmt.Sprintf("Product updated: %s", product.Name),
				Before:        before,
				After:         product,
			}); logErr != nil {
				fmt.Printf("Could not write audit log: %v\n", logErr)
			}
		}

		return c.JSON(toResponse(productRow{Product: product}))
	}
}

// DELETE /api/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		var product models.Product
		if err := database.DB.First(&product, "id = ? AND supermarket_id = ?", id, sm.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		var saleCount int64
		database.DB.Model(&models.Sale{}).Where("product_id = ?", product.ID).Count(&saleCount)
		if saleCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "This product has recorded sales, delete those first")
		}

		if err := database.DB.Delete(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete product")
		}

		cache.Products.Invalidate(c.Context(), sm.ID)

		userID, userName, err := supermarket.UserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				SupermarketID: &sm.ID,
				UserID:        userID,
				UserName:      userName,
				EntityType:    "product",
				EntityID:      product.ID,
				Action:        models.AuditActionDelete,
				Description:   fmt.Sprintf("Product deleted: %s", product.Name),
				Before:        product,
				After:         nil,
			}); logErr != nil {
				fmt.Printf("Could not write audit log: %v\n", logErr)
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
