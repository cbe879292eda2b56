// file: internals/features/school/schools/model/school_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================================
   MODEL — schools
============================================== */

type School struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name    string    `gorm:"column:name;type:varchar(255);not null;index:ix_schools_name" json:"name"`
	Address *string   `gorm:"column:address;type:varchar(500)" json:"address,omitempty"`
	Phone   *string   `gorm:"column:phone;type:varchar(50)" json:"phone,omitempty"`
	Email   *string   `gorm:"column:email;type:varchar(255)" json:"email,omitempty"`

	// Soft delete: nonaktif, tidak pernah cascade ke data keuangan.
	IsActive bool `gorm:"column:is_active;not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (School) TableName() string { return "schools" }

func (m *School) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.IsActive = true
	return nil
}
