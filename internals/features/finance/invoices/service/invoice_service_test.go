// file: internals/features/finance/invoices/service/invoice_service_test.go
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
	billingItemModel "mattilda_backend/internals/features/finance/billing_items/model"
	"mattilda_backend/internals/features/finance/invoices/model"
	gradeModel "mattilda_backend/internals/features/school/grades/model"
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

func seedSchool(t *testing.T, db *gorm.DB) *schoolModel.School {
	t.Helper()
	s := &schoolModel.School{Name: "Test School"}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed school: %v", err)
	}
	return s
}

func seedGrade(t *testing.T, db *gorm.DB, schoolID uuid.UUID, fee float64) *gradeModel.Grade {
	t.Helper()
	g := &gradeModel.Grade{SchoolID: schoolID, Name: "Grade 1", MonthlyFee: fee}
	if err := db.Create(g).Error; err != nil {
		t.Fatalf("seed grade: %v", err)
	}
	return g
}

func seedStudent(t *testing.T, db *gorm.DB, schoolID uuid.UUID, gradeID *uuid.UUID) *studentModel.Student {
	t.Helper()
	st := &studentModel.Student{SchoolID: schoolID, GradeID: gradeID, FirstName: "Ana", LastName: "Lopez"}
	if err := db.Create(st).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return st
}

func ptr[T any](v T) *T { return &v }

func TestCreateInvoiceExplicitAmount(t *testing.T) {
	db := setupDB(t)
	school := seedSchool(t, db)
	student := seedStudent(t, db, school.ID, nil)

	svc := NewInvoiceService(db)
	inv, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{
		StudentID: student.ID,
		Amount:    ptr(1500.0),
		DueDate:   time.Now().AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if inv.Amount != 1500.0 {
		t.Fatalf("amount = %v, want 1500", inv.Amount)
	}
	if inv.Status != model.InvoiceStatusPending {
		t.Fatalf("status = %s, want PENDING", inv.Status)
	}
}

func TestCreateInvoiceAmountFromBillingItem(t *testing.T) {
	db := setupDB(t)
	school := seedSchool(t, db)
	student := seedStudent(t, db, school.ID, nil)
	item := &billingItemModel.BillingItem{SchoolID: school.ID, Name: "Uniform", Amount: 350}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed billing item: %v", err)
	}

	svc := NewInvoiceService(db)
	inv, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{
		StudentID:     student.ID,
		BillingItemID: &item.ID,
		DueDate:       time.Now().AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if inv.Amount != 350 {
		t.Fatalf("amount = %v, want 350", inv.Amount)
	}
}

func TestCreateInvoiceAmountFromGradeFee(t *testing.T) {
	db := setupDB(t)
	school := seedSchool(t, db)
	grade := seedGrade(t, db, school.ID, 900)
	student := seedStudent(t, db, school.ID, &grade.ID)

	svc := NewInvoiceService(db)
	inv, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{
		StudentID: student.ID,
		DueDate:   time.Now().AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if inv.Amount != 900 {
		t.Fatalf("amount = %v, want 900 (grade monthly fee)", inv.Amount)
	}
}

func TestCreateInvoiceAmountUnresolved(t *testing.T) {
	db := setupDB(t)
	school := seedSchool(t, db)
	student := seedStudent(t, db, school.ID, nil)

	svc := NewInvoiceService(db)
	_, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{
		StudentID: student.ID,
		DueDate:   time.Now().AddDate(0, 1, 0),
	})
	if !domain.IsBusinessRule(err) {
		t.Fatalf("err = %v, want business rule violation", err)
	}
}

func TestCreateInvoiceStudentNotFound(t *testing.T) {
	db := setupDB(t)
	svc := NewInvoiceService(db)

	_, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{
		StudentID: uuid.New(),
		Amount:    ptr(100.0),
		DueDate:   time.Now(),
	})
	if !domain.IsEntityNotFound(err) {
		t.Fatalf("err = %v, want entity not found", err)
	}
}

func TestCreateInvoiceBillingItemFromOtherSchool(t *testing.T) {
	db := setupDB(t)
	schoolA := seedSchool(t, db)
	schoolB := &schoolModel.School{Name: "Other School"}
	if err := db.Create(schoolB).Error; err != nil {
		t.Fatalf("seed school B: %v", err)
	}
	student := seedStudent(t, db, schoolA.ID, nil)
	item := &billingItemModel.BillingItem{SchoolID: schoolB.ID, Name: "Trip", Amount: 200}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed billing item: %v", err)
	}

	svc := NewInvoiceService(db)
	_, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{
		StudentID:     student.ID,
		BillingItemID: &item.ID,
		DueDate:       time.Now(),
	})
	var br *domain.BusinessRuleError
	if !errors.As(err, &br) {
		t.Fatalf("err = %v, want BusinessRuleError", err)
	}
}

func TestCancelInvoiceIsUnconditional(t *testing.T) {
	db := setupDB(t)
	school := seedSchool(t, db)
	student := seedStudent(t, db, school.ID, nil)

	svc := NewInvoiceService(db)
	inv, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{
		StudentID: student.ID,
		Amount:    ptr(1000.0),
		DueDate:   time.Now().AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	// Bahkan invoice PAID masih bisa dibatalkan
	if err := db.Model(&model.Invoice{}).Where("id = ?", inv.ID).
		Update("status", model.InvoiceStatusPaid).Error; err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	cancelled, err := svc.CancelInvoice(context.Background(), inv.ID)
	if err != nil {
		t.Fatalf("CancelInvoice: %v", err)
	}
	if cancelled.Status != model.InvoiceStatusCancelled {
		t.Fatalf("status = %s, want CANCELLED", cancelled.Status)
	}

	var fresh model.Invoice
	if err := db.First(&fresh, "id = ?", inv.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if fresh.Status != model.InvoiceStatusCancelled {
		t.Fatalf("persisted status = %s, want CANCELLED", fresh.Status)
	}
}

func TestSweepOverdueSelectivityAndIdempotence(t *testing.T) {
	db := setupDB(t)
	school := seedSchool(t, db)
	student := seedStudent(t, db, school.ID, nil)
	svc := NewInvoiceService(db)

	mk := func(due time.Time, status model.InvoiceStatus) *model.Invoice {
		inv := &model.Invoice{StudentID: student.ID, Amount: 100, DueDate: due, Status: status}
		if err := db.Create(inv).Error; err != nil {
			t.Fatalf("seed invoice: %v", err)
		}
		// BeforeCreate memaksa PENDING untuk status kosong; set eksplisit
		if err := db.Model(inv).Update("status", status).Error; err != nil {
			t.Fatalf("set status: %v", err)
		}
		return inv
	}

	past := time.Now().AddDate(0, 0, -10)
	future := time.Now().AddDate(0, 0, 10)

	pastPending := mk(past, model.InvoiceStatusPending)
	pastPartial := mk(past, model.InvoiceStatusPartial)
	futurePending := mk(future, model.InvoiceStatusPending)
	pastPaid := mk(past, model.InvoiceStatusPaid)
	pastCancelled := mk(past, model.InvoiceStatusCancelled)

	count, err := svc.SweepOverdue(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("SweepOverdue: %v", err)
	}
	if count != 2 {
		t.Fatalf("updated count = %d, want 2", count)
	}

	wantStatus := map[uuid.UUID]model.InvoiceStatus{
		pastPending.ID:   model.InvoiceStatusOverdue,
		pastPartial.ID:   model.InvoiceStatusOverdue,
		futurePending.ID: model.InvoiceStatusPending,
		pastPaid.ID:      model.InvoiceStatusPaid,
		pastCancelled.ID: model.InvoiceStatusCancelled,
	}
	for id, want := range wantStatus {
		var inv model.Invoice
		if err := db.First(&inv, "id = ?", id).Error; err != nil {
			t.Fatalf("reload %s: %v", id, err)
		}
		if inv.Status != want {
			t.Fatalf("invoice %s status = %s, want %s", id, inv.Status, want)
		}
	}

	// lari kedua tidak menyentuh baris apapun
	count, err = svc.SweepOverdue(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("SweepOverdue (second run): %v", err)
	}
	if count != 0 {
		t.Fatalf("second run updated %d rows, want 0", count)
	}
}

func TestDeriveStatus(t *testing.T) {
	today := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	future := today.AddDate(0, 1, 0)
	past := today.AddDate(0, -1, 0)

	cases := []struct {
		name    string
		current model.InvoiceStatus
		amount  float64
		paid    float64
		due     time.Time
		want    model.InvoiceStatus
	}{
		{"unpaid future due", model.InvoiceStatusPending, 1000, 0, future, model.InvoiceStatusPending},
		{"partial", model.InvoiceStatusPending, 1000, 300, future, model.InvoiceStatusPartial},
		{"exact amount is paid", model.InvoiceStatusPending, 1000, 1000, future, model.InvoiceStatusPaid},
		{"unpaid past due stays pending until sweep", model.InvoiceStatusPending, 1000, 0, past, model.InvoiceStatusPending},
		{"partial past due stays partial", model.InvoiceStatusOverdue, 1000, 300, past, model.InvoiceStatusPartial},
		{"cancelled is final", model.InvoiceStatusCancelled, 1000, 1000, future, model.InvoiceStatusCancelled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveStatus(tc.current, tc.amount, tc.paid, tc.due, today)
			if got != tc.want {
				t.Fatalf("DeriveStatus = %s, want %s", got, tc.want)
			}
		})
	}
}
