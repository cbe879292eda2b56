// file: internals/features/school/students/model/student_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================================
   MODEL — students
   grade_id menunjuk ke grades dan harus milik school yang sama;
   kolom grade (teks) dipertahankan untuk data lama tanpa relasi.
============================================== */

type Student struct {
	ID       uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SchoolID uuid.UUID  `gorm:"column:school_id;type:uuid;not null;index:ix_students_school_id" json:"school_id"`
	GradeID  *uuid.UUID `gorm:"column:grade_id;type:uuid;index:ix_students_grade_id" json:"grade_id,omitempty"`

	FirstName string  `gorm:"column:first_name;type:varchar(100);not null" json:"first_name"`
	LastName  string  `gorm:"column:last_name;type:varchar(100);not null" json:"last_name"`
	Email     *string `gorm:"column:email;type:varchar(255)" json:"email,omitempty"`
	Grade     *string `gorm:"column:grade;type:varchar(50)" json:"grade,omitempty"`

	EnrolledAt time.Time `gorm:"column:enrolled_at;type:date;not null" json:"enrolled_at"`
	IsActive   bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Student) TableName() string { return "students" }

func (m *Student) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

func (m *Student) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.EnrolledAt.IsZero() {
		m.EnrolledAt = time.Now()
	}
	m.IsActive = true
	return nil
}
