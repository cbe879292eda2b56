// file: internals/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

/* =======================================================================
   Error taksonomi level-bisnis.
   Semua di-raise di titik pelanggaran dan diterjemahkan controller
   menjadi respons 404/400 — tidak ada retry, tidak ada recovery lokal.
======================================================================= */

// EntityNotFoundError: School/Student/Grade/Invoice/Payment/BillingItem tidak ditemukan.
type EntityNotFoundError struct {
	Entity string
	ID     string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s with id '%s' not found", e.Entity, e.ID)
}

func NewEntityNotFound(entity, id string) *EntityNotFoundError {
	return &EntityNotFoundError{Entity: entity, ID: id}
}

// BusinessRuleError: pelanggaran aturan lintas-entitas (mis. grade milik sekolah lain).
type BusinessRuleError struct {
	Message string
	Rule    string
}

func (e *BusinessRuleError) Error() string { return e.Message }

func NewBusinessRule(message, rule string) *BusinessRuleError {
	return &BusinessRuleError{Message: message, Rule: rule}
}

// PaymentExceedsDebtError: pembayaran melebihi sisa tagihan invoice.
type PaymentExceedsDebtError struct {
	PaymentAmount float64
	PendingAmount float64
}

func (e *PaymentExceedsDebtError) Error() string {
	return fmt.Sprintf("Payment amount (%.2f) exceeds pending amount (%.2f)", e.PaymentAmount, e.PendingAmount)
}

// InvoiceCancelledError: pembayaran ke invoice yang sudah dibatalkan.
type InvoiceCancelledError struct {
	InvoiceID string
}

func (e *InvoiceCancelledError) Error() string {
	return fmt.Sprintf("Cannot process payment for cancelled invoice '%s'", e.InvoiceID)
}

/* ===================== MATCHERS ===================== */

func IsEntityNotFound(err error) bool {
	var t *EntityNotFoundError
	return errors.As(err, &t)
}

func IsBusinessRule(err error) bool {
	var br *BusinessRuleError
	var pe *PaymentExceedsDebtError
	var ic *InvoiceCancelledError
	return errors.As(err, &br) || errors.As(err, &pe) || errors.As(err, &ic)
}
