// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	invoiceModel "mattilda_backend/internals/features/finance/invoices/model"
	"mattilda_backend/internals/features/finance/payments/model"
)

/* ===================== REQUESTS ===================== */

type CreatePaymentRequest struct {
	InvoiceID   uuid.UUID           `json:"invoice_id" validate:"required"`
	Amount      float64             `json:"amount" validate:"required,gt=0"`
	PaymentDate *time.Time          `json:"payment_date"`
	Method      model.PaymentMethod `json:"method" validate:"omitempty,oneof=CASH BANK_TRANSFER CREDIT_CARD DEBIT_CARD OTHER"`
	Reference   *string             `json:"reference" validate:"omitempty,max=255"`
}

/* ===================== RESPONSES ===================== */

type PaymentResponse struct {
	ID          uuid.UUID           `json:"id"`
	InvoiceID   uuid.UUID           `json:"invoice_id"`
	Amount      float64             `json:"amount"`
	PaymentDate time.Time           `json:"payment_date"`
	Method      model.PaymentMethod `json:"method"`
	Reference   *string             `json:"reference,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

func NewPaymentResponse(m *model.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:          m.ID,
		InvoiceID:   m.InvoiceID,
		Amount:      m.Amount,
		PaymentDate: m.PaymentDate,
		Method:      m.Method,
		Reference:   m.Reference,
		CreatedAt:   m.CreatedAt,
	}
}

func NewPaymentResponses(ms []model.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewPaymentResponse(&ms[i]))
	}
	return out
}

// RecordPaymentResponse mengembalikan payment baru plus posisi invoice
// setelah pembayaran dihitung ulang.
type RecordPaymentResponse struct {
	Payment       PaymentResponse            `json:"payment"`
	InvoiceStatus invoiceModel.InvoiceStatus `json:"invoice_status"`
	PaidAmount    float64                    `json:"paid_amount"`
	PendingAmount float64                    `json:"pending_amount"`
}
