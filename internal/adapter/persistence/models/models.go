// Package models holds the gorm schema for the Postgres tables the quote flow
// reads from or writes to. Only the migrate command uses gorm; runtime access
// goes through pgx.
package models

import (
	"time"

	"gorm.io/gorm"
)

type Workshop struct {
	ID               string `gorm:"primaryKey;type:text"`
	OwnerAccountID   string `gorm:"type:text;not null;index"`
	Name             string `gorm:"type:text;not null"`
	AcceptsQuotes    bool   `gorm:"not null;default:true"`
	IsPubliclyListed bool   `gorm:"not null;default:false"`
	PlanTier         string `gorm:"type:text;not null;default:'free'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Workshop) TableName() string { return "workshops" }

type Notification struct {
	ID        string    `gorm:"primaryKey;type:text"`
	AccountID string    `gorm:"type:text;not null;index:idx_notifications_account_created,priority:1"`
	Type      string    `gorm:"type:text;not null"`
	Title     string    `gorm:"type:text;not null"`
	Message   string    `gorm:"type:text;not null"`
	Data      string    `gorm:"type:jsonb;not null;default:'{}'"`
	Read      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null;index:idx_notifications_account_created,priority:2"`
}

func (Notification) TableName() string { return "notifications" }

// AutoMigrate creates or updates every table above.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Workshop{}, &Notification{})
}
