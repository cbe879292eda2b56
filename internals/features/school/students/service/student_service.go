// file: internals/features/school/students/service/student_service.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mattilda_backend/internals/domain"
	gradeModel "mattilda_backend/internals/features/school/grades/model"
	schoolModel "mattilda_backend/internals/features/school/schools/model"
	"mattilda_backend/internals/features/school/students/model"
)

/* ==============================================
   SERVICE — students
   Aturan bisnis: grade yang dipasang ke student harus milik
   school yang sama dengan student.
============================================== */

type StudentService struct {
	DB *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{DB: db}
}

func (s *StudentService) CreateStudent(ctx context.Context, m *model.Student) error {
	var count int64
	if err := s.DB.WithContext(ctx).
		Model(&schoolModel.School{}).Where("id = ?", m.SchoolID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.NewEntityNotFound("School", m.SchoolID.String())
	}

	if m.GradeID != nil {
		if err := s.checkGradeOwnership(ctx, *m.GradeID, m.SchoolID); err != nil {
			return err
		}
	}

	return s.DB.WithContext(ctx).Create(m).Error
}

func (s *StudentService) UpdateStudent(ctx context.Context, m *model.Student) error {
	if m.GradeID != nil {
		if err := s.checkGradeOwnership(ctx, *m.GradeID, m.SchoolID); err != nil {
			return err
		}
	}
	return s.DB.WithContext(ctx).Save(m).Error
}

func (s *StudentService) checkGradeOwnership(ctx context.Context, gradeID, schoolID uuid.UUID) error {
	var grade gradeModel.Grade
	if err := s.DB.WithContext(ctx).First(&grade, "id = ?", gradeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewEntityNotFound("Grade", gradeID.String())
		}
		return err
	}
	if grade.SchoolID != schoolID {
		return domain.NewBusinessRule("Grade does not belong to the student's school", "grade_school_mismatch")
	}
	return nil
}
