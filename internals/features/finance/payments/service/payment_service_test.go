// file: internals/features/finance/payments/service/payment_service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "mattilda_backend/internals/databases"
	"mattilda_backend/internals/domain"
	invoiceModel "mattilda_backend/internals/features/finance/invoices/model"
	"mattilda_backend/internals/features/finance/payments/model"
	schoolModel "mattilda_backend/internals/features/school/schools/model"
	studentModel "mattilda_backend/internals/features/school/students/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrateAll(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedInvoice(t *testing.T, db *gorm.DB, amount float64) *invoiceModel.Invoice {
	t.Helper()
	school := &schoolModel.School{Name: "Test School"}
	if err := db.Create(school).Error; err != nil {
		t.Fatalf("seed school: %v", err)
	}
	student := &studentModel.Student{SchoolID: school.ID, FirstName: "Ana", LastName: "Lopez"}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	inv := &invoiceModel.Invoice{
		StudentID: student.ID,
		Amount:    amount,
		DueDate:   time.Now().AddDate(0, 1, 0),
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	return inv
}

func TestRecordPaymentLifecycle(t *testing.T) {
	db := setupDB(t)
	inv := seedInvoice(t, db, 1000)
	svc := NewPaymentService(db)

	// 300 dari 1000 → PARTIAL
	res, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		InvoiceID: inv.ID,
		Amount:    300,
		Method:    model.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if res.InvoiceStatus != invoiceModel.InvoiceStatusPartial {
		t.Fatalf("status = %s, want PARTIAL", res.InvoiceStatus)
	}
	if res.PaidAmount != 300 || res.PendingAmount != 700 {
		t.Fatalf("paid/pending = %v/%v, want 300/700", res.PaidAmount, res.PendingAmount)
	}

	// sisanya 700 → PAID
	res, err = svc.RecordPayment(context.Background(), RecordPaymentInput{
		InvoiceID: inv.ID,
		Amount:    700,
		Method:    model.PaymentMethodBankTransfer,
	})
	if err != nil {
		t.Fatalf("second payment: %v", err)
	}
	if res.InvoiceStatus != invoiceModel.InvoiceStatusPaid {
		t.Fatalf("status = %s, want PAID", res.InvoiceStatus)
	}
	if res.PendingAmount != 0 {
		t.Fatalf("pending = %v, want 0", res.PendingAmount)
	}

	var fresh invoiceModel.Invoice
	if err := db.First(&fresh, "id = ?", inv.ID).Error; err != nil {
		t.Fatalf("reload invoice: %v", err)
	}
	if fresh.Status != invoiceModel.InvoiceStatusPaid {
		t.Fatalf("persisted status = %s, want PAID", fresh.Status)
	}
}

func TestRecordPaymentExactAmountIsPaid(t *testing.T) {
	db := setupDB(t)
	inv := seedInvoice(t, db, 450.50)
	svc := NewPaymentService(db)

	res, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		InvoiceID: inv.ID,
		Amount:    450.50,
	})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if res.InvoiceStatus != invoiceModel.InvoiceStatusPaid {
		t.Fatalf("status = %s, want PAID (exact amount allowed)", res.InvoiceStatus)
	}
}

func TestRecordPaymentOverpayRejected(t *testing.T) {
	db := setupDB(t)
	inv := seedInvoice(t, db, 1000)
	svc := NewPaymentService(db)

	if _, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		InvoiceID: inv.ID, Amount: 300,
	}); err != nil {
		t.Fatalf("first payment: %v", err)
	}

	_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		InvoiceID: inv.ID, Amount: 701,
	})
	var exceeds *domain.PaymentExceedsDebtError
	if !errors.As(err, &exceeds) {
		t.Fatalf("err = %v, want PaymentExceedsDebtError", err)
	}
	if exceeds.PendingAmount != 700 {
		t.Fatalf("pending in error = %v, want 700", exceeds.PendingAmount)
	}

	// pembayaran yang ditolak tidak boleh tercatat
	var count int64
	if err := db.Model(&model.Payment{}).Where("invoice_id = ?", inv.ID).Count(&count).Error; err != nil {
		t.Fatalf("count payments: %v", err)
	}
	if count != 1 {
		t.Fatalf("payments = %d, want 1", count)
	}
}

func TestRecordPaymentCancelledInvoiceRejected(t *testing.T) {
	db := setupDB(t)
	inv := seedInvoice(t, db, 1000)
	if err := db.Model(&invoiceModel.Invoice{}).Where("id = ?", inv.ID).
		Update("status", invoiceModel.InvoiceStatusCancelled).Error; err != nil {
		t.Fatalf("cancel invoice: %v", err)
	}

	svc := NewPaymentService(db)
	_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		InvoiceID: inv.ID, Amount: 100,
	})
	var cancelled *domain.InvoiceCancelledError
	if !errors.As(err, &cancelled) {
		t.Fatalf("err = %v, want InvoiceCancelledError", err)
	}
}

func TestRecordPaymentInvoiceNotFound(t *testing.T) {
	db := setupDB(t)
	svc := NewPaymentService(db)

	_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		InvoiceID: uuid.New(), Amount: 100,
	})
	if !domain.IsEntityNotFound(err) {
		t.Fatalf("err = %v, want entity not found", err)
	}
}

func TestListByInvoice(t *testing.T) {
	db := setupDB(t)
	inv := seedInvoice(t, db, 1000)
	svc := NewPaymentService(db)

	for _, amount := range []float64{100, 200} {
		if _, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
			InvoiceID: inv.ID, Amount: amount,
		}); err != nil {
			t.Fatalf("RecordPayment(%v): %v", amount, err)
		}
	}

	payments, err := svc.ListByInvoice(context.Background(), inv.ID)
	if err != nil {
		t.Fatalf("ListByInvoice: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("payments = %d, want 2", len(payments))
	}

	if _, err := svc.ListByInvoice(context.Background(), uuid.New()); !domain.IsEntityNotFound(err) {
		t.Fatalf("err = %v, want entity not found", err)
	}
}
