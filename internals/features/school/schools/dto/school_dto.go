// file: internals/features/school/schools/dto/school_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"mattilda_backend/internals/features/school/schools/model"
)

/* ===================== REQUESTS ===================== */

type CreateSchoolRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=255"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Email   *string `json:"email" validate:"omitempty,email,max=255"`
}

func (r *CreateSchoolRequest) ToModel() *model.School {
	return &model.School{
		Name:    r.Name,
		Address: r.Address,
		Phone:   r.Phone,
		Email:   r.Email,
	}
}

type UpdateSchoolRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=255"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Email   *string `json:"email" validate:"omitempty,email,max=255"`
}

// ApplyToModel: partial update, hanya field non-nil yang disalin.
func (r *UpdateSchoolRequest) ApplyToModel(m *model.School) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Address != nil {
		m.Address = r.Address
	}
	if r.Phone != nil {
		m.Phone = r.Phone
	}
	if r.Email != nil {
		m.Email = r.Email
	}
}

/* ===================== RESPONSES ===================== */

type SchoolResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSchoolResponse(m *model.School) *SchoolResponse {
	return &SchoolResponse{
		ID:        m.ID,
		Name:      m.Name,
		Address:   m.Address,
		Phone:     m.Phone,
		Email:     m.Email,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewSchoolResponses(ms []model.School) []SchoolResponse {
	out := make([]SchoolResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewSchoolResponse(&ms[i]))
	}
	return out
}
