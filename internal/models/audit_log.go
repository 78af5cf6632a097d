package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionUndo   AuditAction = "undo"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	SupermarketID *uuid.UUID `gorm:"type:uuid;index" json:"supermarket_id"`

	UserID   uuid.UUID `gorm:"type:uuid" json:"user_id"`
	UserName string    `gorm:"size:100" json:"user_name"` // denormalized

	// Entity: "supplier", "category", "product", "sale"
	EntityType string    `gorm:"size:50;index" json:"entity_type"`
	EntityID   uuid.UUID `gorm:"type:uuid;index" json:"entity_id"`

	Action AuditAction `gorm:"size:20" json:"action"`

	Description string `gorm:"size:255" json:"description"`

	// Snapshots before and after the change (JSON)
	BeforeData string `gorm:"type:jsonb" json:"before_data"`
	AfterData  string `gorm:"type:jsonb" json:"after_data"`

	// True when this log was itself produced by an undo
	Undone bool `json:"undone"`

	// True when this log has been undone
	IsUndone bool `gorm:"default:false" json:"is_undone"`

	UndoneBy *uuid.UUID `gorm:"type:uuid" json:"undone_by"`
	UndoneAt *time.Time `json:"undone_at"`
}
