package audit

import (
	"strconv"

	"supermarket-backend/internal/cache"
	"supermarket-backend/internal/database"
	"supermarket-backend/internal/models"
	"supermarket-backend/internal/supermarket"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs
// Supports entity_type and entity_id query filters plus a limit (default 50).
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		limit := c.QueryInt("limit", 50)
		if limit < 1 || limit > 200 {
			limit = 50
		}

		query := database.DB.Where("supermarket_id = ?", sm.ID)
		if entityType := c.Query("entity_type"); entityType != "" {
			query = query.Where("entity_type = ?", entityType)
		}
		if entityID := c.Query("entity_id"); entityID != "" {
			query = query.Where("entity_id = ?", entityID)
		}

		var logs []models.AuditLog
		if err := query.Order("created_at desc").Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list audit logs")
		}

		return c.JSON(logs)
	}
}

// POST /api/audit-logs/:id/undo
func UndoAuditLogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		logID, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid log id")
		}

		var log models.AuditLog
		if err := database.DB.First(&log, "id = ?", logID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Log not found")
		}
		if log.SupermarketID == nil || *log.SupermarketID != sm.ID {
			return fiber.NewError(fiber.StatusForbidden, "This log belongs to another supermarket")
		}

		userID, userName, err := supermarket.UserInfo(c)
		if err != nil {
			return err
		}

		if err := UndoLog(uint(logID), userID, userName); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// Undoing product or sale changes moves stock around.
		if log.EntityType == "product" || log.EntityType == "sale" {
			cache.Products.Invalidate(c.Context(), sm.ID)
		}

		return c.JSON(fiber.Map{"message": "Change undone"})
	}
}
