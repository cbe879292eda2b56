// file: internals/features/finance/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — metode pembayaran
============================== */

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCreditCard,
		PaymentMethodDebitCard, PaymentMethodOther:
		return true
	}
	return false
}

/* ==============================================
   MODEL — payments
   Immutable: tidak ada path update/delete; koreksi lewat proses
   penyesuaian di luar sistem. Karena itu tidak punya updated_at.
============================================== */

type Payment struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	InvoiceID uuid.UUID `gorm:"column:invoice_id;type:uuid;not null;index:ix_payments_invoice_id" json:"invoice_id"`

	Amount      float64       `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	PaymentDate time.Time     `gorm:"column:payment_date;type:date;not null;index:ix_payments_payment_date" json:"payment_date"`
	Method      PaymentMethod `gorm:"column:method;type:varchar(20);not null;default:'CASH';index:ix_payments_method" json:"method"`
	Reference   *string       `gorm:"column:reference;type:varchar(255)" json:"reference,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }

func (m *Payment) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.PaymentDate.IsZero() {
		m.PaymentDate = time.Now()
	}
	if m.Method == "" {
		m.Method = PaymentMethodCash
	}
	return nil
}
