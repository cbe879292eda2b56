// file: internals/features/finance/reports/dto/report_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

/* =======================================================================
   DTO — report rows
   Semua laporan dihitung saat dibaca (query-time aggregate), tidak ada
   tabel agregat yang harus disinkronkan.
======================================================================= */

type StudentBalanceRow struct {
	StudentID       uuid.UUID `json:"student_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	SchoolID        uuid.UUID `json:"school_id"`
	SchoolName      string    `json:"school_name"`
	TotalInvoices   int64     `json:"total_invoices"`
	PendingInvoices int64     `json:"pending_invoices"`
	PartialInvoices int64     `json:"partial_invoices"`
	PaidInvoices    int64     `json:"paid_invoices"`
	OverdueInvoices int64     `json:"overdue_invoices"`
	TotalInvoiced   float64   `json:"total_invoiced"`
	TotalPaid       float64   `json:"total_paid"`
	BalanceDue      float64   `json:"balance_due"`
}

type SchoolSummaryRow struct {
	SchoolID        uuid.UUID `json:"school_id"`
	SchoolName      string    `json:"school_name"`
	TotalStudents   int64     `json:"total_students"`
	TotalInvoices   int64     `json:"total_invoices"`
	PaidInvoices    int64     `json:"paid_invoices"`
	OverdueInvoices int64     `json:"overdue_invoices"`
	TotalInvoiced   float64   `json:"total_invoiced"`
	TotalCollected  float64   `json:"total_collected"`
	TotalPending    float64   `json:"total_pending"`
	TotalOverdue    float64   `json:"total_overdue"`
}

type InvoiceDetailRow struct {
	InvoiceID       uuid.UUID  `json:"invoice_id"`
	StudentID       uuid.UUID  `json:"student_id"`
	StudentName     string     `json:"student_name"`
	SchoolID        uuid.UUID  `json:"school_id"`
	SchoolName      string     `json:"school_name"`
	Amount          float64    `json:"amount"`
	PaidAmount      float64    `json:"paid_amount"`
	PendingAmount   float64    `json:"pending_amount"`
	PaymentCount    int64      `json:"payment_count"`
	LastPaymentDate *time.Time `json:"last_payment_date,omitempty"`
	DueDate         time.Time  `json:"due_date"`
	Status          string     `json:"status"`
	Description     *string    `json:"description,omitempty"`
	DaysOverdue     int        `json:"days_overdue"`
	CreatedAt       time.Time  `json:"created_at"`
}

type PaymentHistoryRow struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	InvoiceID   uuid.UUID `json:"invoice_id"`
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
	Method      string    `json:"method"`
	Reference   *string   `json:"reference,omitempty"`
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`
	SchoolID    uuid.UUID `json:"school_id"`
	SchoolName  string    `json:"school_name"`
}

type DailyCollectionRow struct {
	SchoolID           uuid.UUID `json:"school_id"`
	SchoolName         string    `json:"school_name"`
	Day                string    `json:"day"` // YYYY-MM-DD
	PaymentsCount      int64     `json:"payments_count"`
	TotalCollected     float64   `json:"total_collected"`
	CashAmount         float64   `json:"cash_amount"`
	BankTransferAmount float64   `json:"bank_transfer_amount"`
	CreditCardAmount   float64   `json:"credit_card_amount"`
	DebitCardAmount    float64   `json:"debit_card_amount"`
	OtherAmount        float64   `json:"other_amount"`
}

type MonthlyRevenueRow struct {
	SchoolID       uuid.UUID `json:"school_id"`
	SchoolName     string    `json:"school_name"`
	Month          string    `json:"month"` // YYYY-MM
	TotalInvoiced  float64   `json:"total_invoiced"`
	TotalCollected float64   `json:"total_collected"`
	PaymentCount   int64     `json:"payment_count"`
	AvgPayment     float64   `json:"avg_payment"`
	MinPayment     float64   `json:"min_payment"`
	MaxPayment     float64   `json:"max_payment"`
}
