// file: internals/features/finance/statements/dto/statement_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	paymentDTO "mattilda_backend/internals/features/finance/payments/dto"
)

/* =======================================================================
   DTO — account statements
   Statement student: kronologi invoice + pembayarannya.
   Statement school: rekap per student + total sekolah.
======================================================================= */

type StatementInvoice struct {
	InvoiceID     uuid.UUID                   `json:"invoice_id"`
	Description   *string                     `json:"description,omitempty"`
	Amount        float64                     `json:"amount"`
	PaidAmount    float64                     `json:"paid_amount"`
	PendingAmount float64                     `json:"pending_amount"`
	DueDate       time.Time                   `json:"due_date"`
	Status        string                      `json:"status"`
	Payments      []paymentDTO.PaymentResponse `json:"payments"`
}

type StudentStatement struct {
	StudentID   uuid.UUID          `json:"student_id"`
	StudentName string             `json:"student_name"`
	SchoolID    uuid.UUID          `json:"school_id"`
	SchoolName  string             `json:"school_name"`
	GeneratedAt time.Time          `json:"generated_at"`
	Invoices    []StatementInvoice `json:"invoices"`

	TotalInvoiced float64 `json:"total_invoiced"`
	TotalPaid     float64 `json:"total_paid"`
	BalanceDue    float64 `json:"balance_due"`
}

type SchoolStatementLine struct {
	StudentID     uuid.UUID `json:"student_id"`
	StudentName   string    `json:"student_name"`
	TotalInvoices int64     `json:"total_invoices"`
	TotalInvoiced float64   `json:"total_invoiced"`
	TotalPaid     float64   `json:"total_paid"`
	BalanceDue    float64   `json:"balance_due"`
}

type SchoolStatement struct {
	SchoolID    uuid.UUID             `json:"school_id"`
	SchoolName  string                `json:"school_name"`
	GeneratedAt time.Time             `json:"generated_at"`
	Students    []SchoolStatementLine `json:"students"`

	TotalInvoiced float64 `json:"total_invoiced"`
	TotalPaid     float64 `json:"total_paid"`
	BalanceDue    float64 `json:"balance_due"`
}
