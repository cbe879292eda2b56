// file: internals/features/school/students/dto/student_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"mattilda_backend/internals/features/school/students/model"
)

/* ===================== REQUESTS ===================== */

type CreateStudentRequest struct {
	SchoolID   uuid.UUID  `json:"school_id" validate:"required"`
	GradeID    *uuid.UUID `json:"grade_id"`
	FirstName  string     `json:"first_name" validate:"required,min=1,max=100"`
	LastName   string     `json:"last_name" validate:"required,min=1,max=100"`
	Email      *string    `json:"email" validate:"omitempty,email,max=255"`
	Grade      *string    `json:"grade" validate:"omitempty,max=50"`
	EnrolledAt *time.Time `json:"enrolled_at"`
}

func (r *CreateStudentRequest) ToModel() *model.Student {
	m := &model.Student{
		SchoolID:  r.SchoolID,
		GradeID:   r.GradeID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Grade:     r.Grade,
	}
	if r.EnrolledAt != nil {
		m.EnrolledAt = *r.EnrolledAt
	}
	return m
}

type UpdateStudentRequest struct {
	GradeID   *uuid.UUID `json:"grade_id"`
	FirstName *string    `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string    `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email     *string    `json:"email" validate:"omitempty,email,max=255"`
	Grade     *string    `json:"grade" validate:"omitempty,max=50"`
}

func (r *UpdateStudentRequest) ApplyToModel(m *model.Student) {
	if r.GradeID != nil {
		m.GradeID = r.GradeID
	}
	if r.FirstName != nil {
		m.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		m.LastName = *r.LastName
	}
	if r.Email != nil {
		m.Email = r.Email
	}
	if r.Grade != nil {
		m.Grade = r.Grade
	}
}

/* ===================== RESPONSES ===================== */

type StudentResponse struct {
	ID         uuid.UUID  `json:"id"`
	SchoolID   uuid.UUID  `json:"school_id"`
	GradeID    *uuid.UUID `json:"grade_id,omitempty"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	FullName   string     `json:"full_name"`
	Email      *string    `json:"email,omitempty"`
	Grade      *string    `json:"grade,omitempty"`
	EnrolledAt time.Time  `json:"enrolled_at"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func NewStudentResponse(m *model.Student) *StudentResponse {
	return &StudentResponse{
		ID:         m.ID,
		SchoolID:   m.SchoolID,
		GradeID:    m.GradeID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		FullName:   m.FullName(),
		Email:      m.Email,
		Grade:      m.Grade,
		EnrolledAt: m.EnrolledAt,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func NewStudentResponses(ms []model.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewStudentResponse(&ms[i]))
	}
	return out
}
