// file: internals/features/finance/invoices/model/invoice_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	paymentModel "mattilda_backend/internals/features/finance/payments/model"
)

/* ==============================
   ENUM — status invoice
============================== */

type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusPartial   InvoiceStatus = "PARTIAL"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPartial, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

/* ==============================================
   MODEL — invoices
   Status dihitung ulang dari total pembayaran setiap kali ada
   payment masuk; CANCELLED bersifat final.
============================================== */

type Invoice struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	StudentID     uuid.UUID  `gorm:"column:student_id;type:uuid;not null;index:ix_invoices_student_id" json:"student_id"`
	BillingItemID *uuid.UUID `gorm:"column:billing_item_id;type:uuid;index:ix_invoices_billing_item_id" json:"billing_item_id,omitempty"`

	Amount      float64       `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	Description *string       `gorm:"column:description;type:varchar(500)" json:"description,omitempty"`
	DueDate     time.Time     `gorm:"column:due_date;type:date;not null;index:ix_invoices_due_date" json:"due_date"`
	Status      InvoiceStatus `gorm:"column:status;type:varchar(20);not null;default:'PENDING';index:ix_invoices_status" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`

	Payments []paymentModel.Payment `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

func (Invoice) TableName() string { return "invoices" }

func (m *Invoice) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = InvoiceStatusPending
	}
	return nil
}

// PaidAmount menjumlahkan seluruh payment yang sudah dimuat (Preload).
func (m *Invoice) PaidAmount() float64 {
	var total float64
	for i := range m.Payments {
		total += m.Payments[i].Amount
	}
	return total
}

// PendingAmount tidak pernah negatif.
func (m *Invoice) PendingAmount() float64 {
	pending := m.Amount - m.PaidAmount()
	if pending < 0 {
		return 0
	}
	return pending
}
