// file: internals/features/school/grades/model/grade_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================================
   MODEL — grades
   Satu grade milik tepat satu school; monthly_fee dipakai sebagai
   default amount saat invoice dibuat tanpa billing item.
============================================== */

type Grade struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SchoolID uuid.UUID `gorm:"column:school_id;type:uuid;not null;index:ix_grades_school_id" json:"school_id"`

	Name       string  `gorm:"column:name;type:varchar(100);not null" json:"name"`
	MonthlyFee float64 `gorm:"column:monthly_fee;type:numeric(12,2);not null;default:0" json:"monthly_fee"`
	IsActive   bool    `gorm:"column:is_active;not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Grade) TableName() string { return "grades" }

func (m *Grade) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.IsActive = true
	return nil
}
