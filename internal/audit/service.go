package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"supermarket-backend/internal/database"
	"supermarket-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LogOptions struct {
	SupermarketID *uuid.UUID
	UserID        uuid.UUID
	UserName      string
	EntityType    string
	EntityID      uuid.UUID
	Action        models.AuditAction
	Description   string
	Before        any
	After         any
}

func WriteLog(opts LogOptions) error {
	// jsonb columns need the JSON literal "null", not an empty string
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		SupermarketID: opts.SupermarketID,
		UserID:        opts.UserID,
		UserName:      opts.UserName,
		EntityType:    opts.EntityType,
		EntityID:      opts.EntityID,
		Action:        opts.Action,
		Description:   opts.Description,
		BeforeData:    beforeStr,
		AfterData:     afterStr,
		Undone:        false,
		IsUndone:      false,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("could not write audit log: %w", err)
	}

	return nil
}

// UndoLog reverts the change a log describes and records the undo as a new
// log entry.
func UndoLog(logID uint, userID uuid.UUID, userName string) error {
	var log models.AuditLog
	if err := database.DB.First(&log, "id = ?", logID).Error; err != nil {
		return fmt.Errorf("log not found: %w", err)
	}

	if log.IsUndone {
		return fmt.Errorf("this change has already been undone")
	}

	switch log.Action {
	case models.AuditActionCreate:
		if err := deleteEntity(log.EntityType, log.EntityID); err != nil {
			return fmt.Errorf("could not delete entity: %w", err)
		}

	case models.AuditActionUpdate:
		if err := restoreEntity(log.EntityType, log.EntityID, log.BeforeData); err != nil {
			return fmt.Errorf("could not restore entity: %w", err)
		}

	case models.AuditActionDelete:
		if err := recreateEntity(log.EntityType, log.AfterData, log.BeforeData); err != nil {
			return fmt.Errorf("could not recreate entity: %w", err)
		}

	default:
		return fmt.Errorf("this action cannot be undone")
	}

	now := time.Now()
	log.IsUndone = true
	log.UndoneBy = &userID
	log.UndoneAt = &now

	if err := database.DB.Save(&log).Error; err != nil {
		return fmt.Errorf("could not update log: %w", err)
	}

	undoLog := models.AuditLog{
		SupermarketID: log.SupermarketID,
		UserID:        userID,
		UserName:      userName,
		EntityType:    log.EntityType,
		EntityID:      log.EntityID,
		Action:        models.AuditActionUndo,
		Description:   fmt.Sprintf("Undone: %s", log.Description),
		BeforeData:    log.AfterData,
		AfterData:     log.BeforeData,
		Undone:        true,
		IsUndone:      false,
	}

	if err := database.DB.Create(&undoLog).Error; err != nil {
		return fmt.Errorf("could not write undo log: %w", err)
	}

	return nil
}

func deleteEntity(entityType string, entityID uuid.UUID) error {
	switch entityType {
	case "supplier":
		return database.DB.Delete(&models.Supplier{}, "id = ?", entityID).Error
	case "category":
		return database.DB.Delete(&models.Category{}, "id = ?", entityID).Error
	case "product":
		return database.DB.Delete(&models.Product{}, "id = ?", entityID).Error
	case "sale":
		// Undoing a sale creation restores the sold quantity.
		return database.DB.Transaction(func(tx *gorm.DB) error {
			var sale models.Sale
			if err := tx.First(&sale, "id = ?", entityID).Error; err != nil {
				return err
			}
			if err := tx.Delete(&sale).Error; err != nil {
				return err
			}
			return tx.Model(&models.Product{}).
				Where("id = ?", sale.ProductID).
				UpdateColumn("quantity_left", gorm.Expr("quantity_left + ?", sale.Quantity)).Error
		})
	default:
		return fmt.Errorf("unknown entity type: %s", entityType)
	}
}

// recreateEntity rebuilds a deleted entity from the snapshot taken before the
// delete (the delete log stores it in BeforeData; AfterData is null).
func recreateEntity(entityType string, afterJSON, beforeJSON string) error {
	dataJSON := beforeJSON
	if dataJSON == "" || dataJSON == "null" {
		dataJSON = afterJSON
	}

	switch entityType {
	case "supplier":
		var supplier models.Supplier
		if err := json.Unmarshal([]byte(dataJSON), &supplier); err != nil {
			return err
		}
		supplier.ID = uuid.New()
		return database.DB.Create(&supplier).Error

	case "category":
		var category models.Category
		if err := json.Unmarshal([]byte(dataJSON), &category); err != nil {
			return err
		}
		category.ID = uuid.New()
		return database.DB.Create(&category).Error

	case "product":
		var product models.Product
		if err := json.Unmarshal([]byte(dataJSON), &product); err != nil {
			return err
		}
		product.ID = uuid.New()
		return database.DB.Create(&product).Error

	case "sale":
		var sale models.Sale
		if err := json.Unmarshal([]byte(dataJSON), &sale); err != nil {
			return err
		}
		sale.ID = uuid.New()
		// Undoing a sale deletion deducts the quantity again.
		return database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&sale).Error; err != nil {
				return err
			}
			return tx.Model(&models.Product{}).
				Where("id = ?", sale.ProductID).
				UpdateColumn("quantity_left", gorm.Expr("quantity_left - ?", sale.Quantity)).Error
		})

	default:
		return fmt.Errorf("unknown entity type: %s", entityType)
	}
}

func restoreEntity(entityType string, entityID uuid.UUID, dataJSON string) error {
	switch entityType {
	case "supplier":
		var supplier models.Supplier
		if err := json.Unmarshal([]byte(dataJSON), &supplier); err != nil {
			return err
		}
		return database.DB.Model(&models.Supplier{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"name":  supplier.Name,
			"email": supplier.Email,
		}).Error

	case "category":
		var category models.Category
		if err := json.Unmarshal([]byte(dataJSON), &category); err != nil {
			return err
		}
		return database.DB.Model(&models.Category{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"name": category.Name,
		}).Error

	case "product":
		var product models.Product
		if err := json.Unmarshal([]byte(dataJSON), &product); err != nil {
			return err
		}
		return database.DB.Model(&models.Product{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"code":          product.Code,
			"name":          product.Name,
			"description":   product.Description,
			"unit":          product.Unit,
			"cost":          product.Cost,
			"quantity_left": product.QuantityLeft,
			"category_id":   product.CategoryID,
			"supplier_id":   product.SupplierID,
		}).Error

	case "sale":
		var sale models.Sale
		if err := json.Unmarshal([]byte(dataJSON), &sale); err != nil {
			return err
		}
		return database.DB.Model(&models.Sale{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"product_id": sale.ProductID,
			"sale_date":  sale.SaleDate,
		}).Error

	default:
		return fmt.Errorf("unknown entity type: %s", entityType)
	}
}
