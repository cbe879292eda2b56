// file: internals/features/finance/invoices/dto/invoice_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"mattilda_backend/internals/features/finance/invoices/model"
	helper "mattilda_backend/internals/helpers"
)

/* ===================== REQUESTS ===================== */

// Amount opsional: kalau kosong dipakai amount billing item,
// kalau itu pun kosong dipakai monthly_fee grade student.
type CreateInvoiceRequest struct {
	StudentID     uuid.UUID  `json:"student_id" validate:"required"`
	BillingItemID *uuid.UUID `json:"billing_item_id"`
	Amount        *float64   `json:"amount" validate:"omitempty,gt=0"`
	Description   *string    `json:"description" validate:"omitempty,max=500"`
	DueDate       time.Time  `json:"due_date" validate:"required"`
}

type UpdateInvoiceRequest struct {
	Description *string    `json:"description" validate:"omitempty,max=500"`
	DueDate     *time.Time `json:"due_date"`
}

func (r *UpdateInvoiceRequest) ApplyToModel(m *model.Invoice) {
	if r.Description != nil {
		m.Description = r.Description
	}
	if r.DueDate != nil {
		m.DueDate = *r.DueDate
	}
}

/* ===================== RESPONSES ===================== */

type InvoiceResponse struct {
	ID            uuid.UUID           `json:"id"`
	StudentID     uuid.UUID           `json:"student_id"`
	BillingItemID *uuid.UUID          `json:"billing_item_id,omitempty"`
	Amount        float64             `json:"amount"`
	PaidAmount    float64             `json:"paid_amount"`
	PendingAmount float64             `json:"pending_amount"`
	Description   *string             `json:"description,omitempty"`
	DueDate       time.Time           `json:"due_date"`
	Status        model.InvoiceStatus `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// NewInvoiceResponse mengharapkan Payments sudah dimuat (Preload)
// supaya paid/pending dihitung dari data yang sama.
func NewInvoiceResponse(m *model.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:            m.ID,
		StudentID:     m.StudentID,
		BillingItemID: m.BillingItemID,
		Amount:        m.Amount,
		PaidAmount:    helper.RoundMoney(m.PaidAmount()),
		PendingAmount: helper.RoundMoney(m.PendingAmount()),
		Description:   m.Description,
		DueDate:       m.DueDate,
		Status:        m.Status,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func NewInvoiceResponses(ms []model.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewInvoiceResponse(&ms[i]))
	}
	return out
}

type SweepOverdueResponse struct {
	UpdatedCount int64     `json:"updated_count"`
	SweptAt      time.Time `json:"swept_at"`
}
