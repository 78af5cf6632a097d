package supplier

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

type CreateSupplierRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdateSupplierRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type SupplierResponse struct {
	ID            uuid.UUID `json:"id"`
	SupermarketID uuid.UUID `json:"supermarket_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	CreatedAt     string    `json:"created_at"`
	UpdatedAt     string    `json:"updated_at"`
}

var supplierSchema = form.Schema{
	"name":  form.Text(form.NonEmpty()),
	"email": form.Text(form.Email()),
}

func toResponse(s *models.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		SupermarketID: s.SupermarketID,
		Name:          s.Name,
		Email:         s.Email,
		CreatedAt:     s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     s.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func gridColumns() []datagrid.Column[SupplierResponse] {
	return []datagrid.Column[SupplierResponse]{
		{ID: "name", Header: "Name", Value: func(r SupplierResponse) any { return r.Name }},
		{ID: "email", Header: "Email", Value: func(r SupplierResponse) any { return r.Email }},
	}
}

// -------------------------
// Supplier CRUD
// -------------------------

// POST /api/suppliers
func CreateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		var body CreateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if errs := supplierSchema.Validate(map[string]any{"name": body.Name, "email": body.Email}); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		s := models.Supplier{
			ID:            uuid.New(),
			SupermarketID: sm.ID,
			Name:          strings.TrimSpace(body.Name),
			Email:         strings.TrimSpace(body.Email),
		}

		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save supplier")
		}

		userID, userName, err := supermarket.UserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				SupermarketID: &sm.ID,
				UserID:        userID,
				UserName:      userName,
				EntityType:    "supplier",
				EntityID:      s.ID,
				Action:        models.AuditActionCreate,
				Description:   fmt.Sprintf("Supplier added: %s", s.Name),
				Before:        nil,
				After:         s,
			}); logErr != nil {
				fmt.Printf("Could not write audit log: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&s))
	}
}

// GET /api/suppliers
// With grid params (page, per_page, search, sort, order) the response is the
// grid window; without them, the plain array.
func ListSuppliersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		var suppliers []models.Supplier
		if err := database.DB.Where("supermarket_id = ?", sm.ID).
			Order("name asc").
			Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list suppliers")
		}

		resp := make([]SupplierResponse, 0, len(suppliers))
		for _, s := range suppliers {
			resp = append(resp, toResponse(&s))
		}

		req := datagrid.ParseRequest(c)
		if !req.HasQuery {
			return c.JSON(resp)
		}

		g := datagrid.New(gridColumns(), datagrid.WithPageSize[SupplierResponse](req.PerPage))
		g.SetRows(resp)
		return c.JSON(datagrid.Window(g, req))
	}
}

// PUT /api/suppliers/:id
func UpdateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		var s models.Supplier
		if err := database.DB.First(&s, "id = ? AND supermarket_id = ?", id, sm.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Supplier not found")
		}

		var body UpdateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before := s
		updated := false

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			s.Name = name
			updated = true
		}

		if body.Email != nil {
			email := strings.TrimSpace(*body.Email)
			if errs := supplierSchema.Validate(map[string]any{"name": s.Name, "email": email}); len(errs) > 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
			}
			s.Email = email
			updated = true
		}

		if !updated {
			return c.JSON(toResponse(&s))
		}

		if err := database.DB.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update supplier")
		}

		userID, userName, err := supermarket.UserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				SupermarketID: &sm.ID,
				UserID:        userID,
				UserName:      userName,
				EntityType:    "supplier",
				EntityID:      s.ID,
				Action:        models.AuditActionUpdate,
				Description:   fmt.Sprintf("Supplier updated: %s", s.Name),
				Before:        before,
				After:         s,
			}); logErr != nil {
				fmt.Printf("Could not write audit log: %v\n", logErr)
			}
		}

		return c.JSON(toResponse(&s))
	}
}

// DELETE /api/suppliers/:id
func DeleteSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		var s models.Supplier
		if err := database.DB.First(&s, "id = ? AND supermarket_id = ?", id, sm.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Supplier not found")
		}

		var productCount int64
		database.DB.Model(&models.Product{}).Where("supplier_id = ?", s.ID).Count(&productCount)
		if productCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "This supplier still has products, delete those first")
		}

		if err := database.DB.Delete(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete supplier")
		}

		userID, userName, err := supermarket.UserInfo(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				SupermarketID: &sm.ID,
				UserID:        userID,
				UserName:      userName,
				EntityType:    "supplier",
				EntityID:      s.ID,
				Action:        models.AuditActionDelete,
				Description:   fmt.Sprintf("Supplier deleted: %s", s.Name),
				Before:        s,
				After:         nil,
			}); logErr != nil {
				fmt.Printf("Could not write audit log: %v\n", logErr)
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
