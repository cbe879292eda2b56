// file: internals/features/finance/billing_items/model/billing_item_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================================
   MODEL — billing_items
   Katalog tagihan per school (SPP, seragam, kegiatan, dst).
============================================== */

type BillingItem struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SchoolID uuid.UUID `gorm:"column:school_id;type:uuid;not null;index:ix_billing_items_school_id" json:"school_id"`

	Name        string  `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description *string `gorm:"column:description;type:varchar(500)" json:"description,omitempty"`
	Amount      float64 `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	IsRecurring bool    `gorm:"column:is_recurring;not null;default:false" json:"is_recurring"`
	IsActive    bool    `gorm:"column:is_active;not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (BillingItem) TableName() string { return "billing_items" }

func (m *BillingItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.IsActive = true
	return nil
}
