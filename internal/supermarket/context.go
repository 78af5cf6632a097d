package supermarket

import (
	"supermarket-backend/internal/auth"
	"supermarket-backend/internal/database"
	"supermarket-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ResolveForUser loads the authenticated user's supermarket. Every scoped
// handler goes through this instead of trusting a client-supplied id, so the
// tenant boundary stays explicit.
func ResolveForUser(c *fiber.Ctx) (*models.Supermarket, error) {
	userID, err := auth.UserID(c)
	if err != nil {
		return nil, err
	}

	var sm models.Supermarket
	if err := database.DB.First(&sm, "user_id = ?", userID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "You don't have a supermarket yet, create one first")
	}
	return &sm, nil
}

// UserInfo returns the authenticated user's id and display name for audit
// logging.
func UserInfo(c *fiber.Ctx) (uuid.UUID, string, error) {
	userID, err := auth.UserID(c)
	if err != nil {
		return uuid.Nil, "", err
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return uuid.Nil, "", fiber.NewError(fiber.StatusInternalServerError, "User not found")
	}

	return userID, user.Name, nil
}
