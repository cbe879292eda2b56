// file: internals/features/school/grades/dto/grade_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"mattilda_backend/internals/features/school/grades/model"
)

/* ===================== REQUESTS ===================== */

type CreateGradeRequest struct {
	SchoolID   uuid.UUID `json:"school_id" validate:"required"`
	Name       string    `json:"name" validate:"required,min=1,max=100"`
	MonthlyFee float64   `json:"monthly_fee" validate:"gte=0"`
}

func (r *CreateGradeRequest) ToModel() *model.Grade {
	return &model.Grade{
		SchoolID:   r.SchoolID,
		Name:       r.Name,
		MonthlyFee: r.MonthlyFee,
	}
}

type UpdateGradeRequest struct {
	Name       *string  `json:"name" validate:"omitempty,min=1,max=100"`
	MonthlyFee *float64 `json:"monthly_fee" validate:"omitempty,gte=0"`
}

func (r *UpdateGradeRequest) ApplyToModel(m *model.Grade) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.MonthlyFee != nil {
		m.MonthlyFee = *r.MonthlyFee
	}
}

/* ===================== RESPONSES ===================== */

type GradeResponse struct {
	ID         uuid.UUID `json:"id"`
	SchoolID   uuid.UUID `json:"school_id"`
	Name       string    `json:"name"`
	MonthlyFee float64   `json:"monthly_fee"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewGradeResponse(m *model.Grade) *GradeResponse {
	return &GradeResponse{
		ID:         m.ID,
		SchoolID:   m.SchoolID,
		Name:       m.Name,
		MonthlyFee: m.MonthlyFee,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func NewGradeResponses(ms []model.Grade) []GradeResponse {
	out := make([]GradeResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewGradeResponse(&ms[i]))
	}
	return out
}
