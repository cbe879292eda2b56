// file: internals/features/finance/billing_items/dto/billing_item_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"mattilda_backend/internals/features/finance/billing_items/model"
)

/* ===================== REQUESTS ===================== */

type CreateBillingItemRequest struct {
	SchoolID    uuid.UUID `json:"school_id" validate:"required"`
	Name        string    `json:"name" validate:"required,min=1,max=255"`
	Description *string   `json:"description" validate:"omitempty,max=500"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	IsRecurring bool      `json:"is_recurring"`
}

func (r *CreateBillingItemRequest) ToModel() *model.BillingItem {
	return &model.BillingItem{
		SchoolID:    r.SchoolID,
		Name:        r.Name,
		Description: r.Description,
		Amount:      r.Amount,
		IsRecurring: r.IsRecurring,
	}
}

type UpdateBillingItemRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Amount      *float64 `json:"amount" validate:"omitempty,gt=0"`
	IsRecurring *bool    `json:"is_recurring"`
}

func (r *UpdateBillingItemRequest) ApplyToModel(m *model.BillingItem) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Description != nil {
		m.Description = r.Description
	}
	if r.Amount != nil {
		m.Amount = *r.Amount
	}
	if r.IsRecurring != nil {
		m.IsRecurring = *r.IsRecurring
	}
}

/* ===================== RESPONSES ===================== */

type BillingItemResponse struct {
	ID          uuid.UUID `json:"id"`
	SchoolID    uuid.UUID `json:"school_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Amount      float64   `json:"amount"`
	IsRecurring bool      `json:"is_recurring"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewBillingItemResponse(m *model.BillingItem) *BillingItemResponse {
	return &BillingItemResponse{
		ID:          m.ID,
		SchoolID:    m.SchoolID,
		Name:        m.Name,
		Description: m.Description,
		Amount:      m.Amount,
		IsRecurring: m.IsRecurring,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func NewBillingItemResponses(ms []model.BillingItem) []BillingItemResponse {
	out := make([]BillingItemResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewBillingItemResponse(&ms[i]))
	}
	return out
}
