package supermarket

import (
	"regexp"
	"strings"

	"supermarket-backend/internal/auth"
	"supermarket-backend/internal/database"
	"supermarket-backend/internal/form"
	"supermarket-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateSupermarketRequest struct {
	Name string `json:"name"`
}

type SupermarketResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt string    `json:"created_at"`
}

var supermarketSchema = form.Schema{
	"name": form.Text(form.MinLen(2)),
}

func toResponse(sm *models.Supermarket) SupermarketResponse {
	return SupermarketResponse{
		ID:        sm.ID,
		Name:      sm.Name,
		Slug:      sm.Slug,
		UserID:    sm.UserID,
		CreatedAt: sm.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := slugCleaner.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// POST /api/supermarkets
func CreateSupermarketHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateSupermarketRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if errs := supermarketSchema.Validate(map[string]any{"name": body.Name}); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		var count int64
		database.DB.Model(&models.Supermarket{}).
			Where("user_id = ?", userID).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "You already have a supermarket")
		}

		name := strings.TrimSpace(body.Name)
		slug := slugify(name)
		var slugCount int64
		database.DB.Model(&models.Supermarket{}).
			Where("slug = ?", slug).
			Count(&slugCount)
		if slugCount > 0 {
			slug = slug + "-" + uuid.NewString()[:8]
		}

		sm := models.Supermarket{
			ID:     uuid.New(),
			Name:   name,
			Slug:   slug,
			UserID: userID,
		}

		if err := database.DB.Create(&sm).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create supermarket")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&sm))
	}
}

// GET /api/supermarkets/me
func GetMySupermarketHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := ResolveForUser(c)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(sm))
	}
}

// GET /api/supermarkets/slug/:slug
func GetBySlugHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")

		var sm models.Supermarket
		if err := database.DB.First(&sm, "slug = ?", slug).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Supermarket not found")
		}
		return c.JSON(toResponse(&sm))
	}
}
