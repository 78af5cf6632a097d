package category

import (
	"fmt"
	"strings"

	"supermarket-backend/internal/audit"
	"supermarket-backend/internal/database"
	"supermarket-backend/internal/datagrid"
	"supermarket-backend/internal/form"
	"supermarket-backend/internal/models"
	"supermarket-backend/internal/supermarket"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name"`
}

type CategoryResponse struct {
	ID            uuid.UUID `json:"id"`
	SupermarketID uuid.UUID `json:"supermarket_id"`
	Name          string    `json:"name"`
	ProductCount  int64     `json:"product_count"`
	CreatedAt     string    `json:"created_at"`
}

var categorySchema = form.Schema{
	"name": form.Text(form.NonEmpty()),
}

// categoryWithCount scans the list query's aggregate join. The count comes
// back as int64.
type categoryWithCount struct {
	models.Category
	ProductCount int64
}

func gridColumns() []datagrid.Column[CategoryResponse] {
	return []datagrid.Column[CategoryResponse]{
		{ID: "name", Header: "Name", Value: func(r CategoryResponse) any { return r.Name }},
		{ID: "product_count", Header: "Products", Value: func(r CategoryResponse) any { return r.ProductCount }},
	}
}

// -------------------------
// Category CRUD
// -------------------------

// GET /api/categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		var categories []categoryWithCount
		if err := database.DB.Model(&models.Category{}).
			Select("categories.*, COUNT(products.id) AS product_count").
			Joins("LEFT JOIN products ON products.category_id = categories.id").
			Where("categories.supermarket_id = ?", sm.ID).
			Group("categories.id").
			Order("categories.name asc").
			Scan(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list categories")
		}

		resp := make([]CategoryResponse, 0, len(categories))
		for _, cat := range categories {
			resp = append(resp, CategoryResponse{
				ID:            cat.ID,
				SupermarketID: cat.SupermarketID,
				Name:          cat.Name,
				ProductCount:  cat.ProductCount,
				CreatedAt:     cat.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		req := datagrid.ParseRequest(c)
		if !req.HasQuery {
			return c.JSON(resp)
		}

		g := datagrid.New(gridColumns(), datagrid.WithPageSize[CategoryResponse](req.PerPage))
		g.SetRows(resp)
		return c.JSON(datagrid.Window(g, req))
	}
}

// POST /api/categories
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if errs := categorySchema.Validate(map[string]any{"name": body.Name}); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		var existing models.Category
		if err := database.DB.Where("supermarket_id = ? AND name = ?", sm.ID, body.Name).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "A category with this name already exists")
		}

		cat := models.Category{
			ID:            uuid.New(),
			SupermarketID: sm.ID,
			Name:          body.Name,
		}

		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create category")
		}

		userID, userName, err := supermarket.UserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				SupermarketID: &sm.ID,
				UserID:        userID,
				UserName:      userName,
				EntityType:    "category",
				EntityID:      cat.ID,
				Action:        models.AuditActionCreate,
				Description:   fmt.Sprintf("Category added: %s", cat.Name),
				Before:        nil,
				After:         cat,
			}); logErr != nil {
				fmt.Printf("Could not write audit log: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(CategoryResponse{
			ID:            cat.ID,
			SupermarketID: cat.SupermarketID,
			Name:          cat.Name,
			CreatedAt:     cat.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// PUT /api/categories/:id
func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		var cat models.Category
		if err := database.DB.First(&cat, "id = ? AND supermarket_id = ?", id, sm.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}

		var body UpdateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before := cat

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Category name cannot be empty")
			}
			var existing models.Category
			if err := database.DB.Where("supermarket_id = ? AND name = ? AND id != ?", sm.ID, name, id).First(&existing).Error; err == nil {
				return fiber.NewError(fiber.StatusBadRequest, "A category with this name already exists")
			}
			cat.Name = name
		}

		if err := database.DB.Save(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update category")
		}

		userID, userName, err := supermarket.UserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				SupermarketID: &sm.ID,
				UserID:        userID,
				UserName:      userName,
				EntityType:    "category",
				EntityID:      cat.ID,
				Action:        models.AuditActionUpdate,
				Description:   fmt.Sprintf("Category updated: %s", cat.Name),
				Before:        before,
				After:         cat,
			}); logErr != nil {
				fmt.Printf("Could not write audit log: %v\n", logErr)
			}
		}

		return c.JSON(CategoryResponse{
			ID:            cat.ID,
			SupermarketID: cat.SupermarketID,
			Name:          cat.Name,
			CreatedAt:     cat.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// DELETE /api/categories/:id
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		var cat models.Category
		if err := database.DB.First(&cat, "id = ? AND supermarket_id = ?", id, sm.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}

		var count int64
		database.DB.Model(&models.Product{}).Where("category_id = ?", cat.ID).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "This category still has products, delete those first")
		}

		if err := database.DB.Delete(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete category")
		}

		userID, userName, err := supermarket.UserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				SupermarketID: &sm.ID,
				UserID:        userID,
				UserName:      userName,
				EntityType:    "category",
				EntityID:      cat.ID,
				Action:        models.AuditActionDelete,
				Description:   fmt.Sprintf("Category deleted: %s", cat.Name),
				Before:        cat,
				After:         nil,
			}); logErr != nil {
				fmt.Printf("Could not write audit log: %v\n", logErr)
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
