// file: internals/features/finance/statements/service/statement_service_test.go
package service

import (
	"context"
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
	paymentModel "mattilda_backend/internals/features/finance/payments/model"
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

func TestStudentStatement(t *testing.T) {
	db := setupDB(t)

	school := &schoolModel.School{Name: "Gamma School"}
	if err := db.Create(school).Error; err != nil {
		t.Fatalf("seed school: %v", err)
	}
	student := &studentModel.Student{SchoolID: school.ID, FirstName: "Dina", LastName: "Putri"}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}

	now := time.Now()
	active := &invoiceModel.Invoice{StudentID: student.ID, Amount: 800, DueDate: now.AddDate(0, 1, 0), Status: invoiceModel.InvoiceStatusPartial}
	cancelled := &invoiceModel.Invoice{StudentID: student.ID, Amount: 400, DueDate: now.AddDate(0, 1, 0), Status: invoiceModel.InvoiceStatusCancelled}
	for _, inv := range []*invoiceModel.Invoice{active, cancelled} {
		if err := db.Create(inv).Error; err != nil {
			t.Fatalf("seed invoice: %v", err)
		}
	}
	if err := db.Create(&paymentModel.Payment{InvoiceID: active.ID, Amount: 300, PaymentDate: now}).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	svc := NewStatementService(db)
	stmt, err := svc.StudentStatement(context.Background(), student.ID)
	if err != nil {
		t.Fatalf("StudentStatement: %v", err)
	}

	if stmt.StudentName != "Dina Putri" || stmt.SchoolName != "Gamma School" {
		t.Fatalf("header = %q / %q", stmt.StudentName, stmt.SchoolName)
	}
	// invoice cancelled tampil tapi tidak masuk total
	if len(stmt.Invoices) != 2 {
		t.Fatalf("invoices = %d, want 2", len(stmt.Invoices))
	}
	if stmt.TotalInvoiced != 800 || stmt.TotalPaid != 300 || stmt.BalanceDue != 500 {
		t.Fatalf("totals = %v/%v/%v, want 800/300/500",
			stmt.TotalInvoiced, stmt.TotalPaid, stmt.BalanceDue)
	}

	for _, line := range stmt.Invoices {
		if line.InvoiceID == active.ID {
			if line.PaidAmount != 300 || line.PendingAmount != 500 {
				t.Fatalf("active line = %+v", line)
			}
			if len(line.Payments) != 1 {
				t.Fatalf("active line payments = %d, want 1", len(line.Payments))
			}
		}
	}

	if _, err := svc.StudentStatement(context.Background(), uuid.New()); !domain.IsEntityNotFound(err) {
		t.Fatalf("err = %v, want entity not found", err)
	}
}

func TestSchoolStatement(t *testing.T) {
	db := setupDB(t)

	school := &schoolModel.School{Name: "Delta School"}
	if err := db.Create(school).Error; err != nil {
		t.Fatalf("seed school: %v", err)
	}
	s1 := &studentModel.Student{SchoolID: school.ID, FirstName: "Eka", LastName: "Sari"}
	s2 := &studentModel.Student{SchoolID: school.ID, FirstName: "Fikri", LastName: "Akbar"}
	for _, s := range []*studentModel.Student{s1, s2} {
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("seed student: %v", err)
		}
	}

	now := time.Now()
	inv := &invoiceModel.Invoice{StudentID: s1.ID, Amount: 600, DueDate: now.AddDate(0, 1, 0), Status: invoiceModel.InvoiceStatusPartial}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	if err := db.Create(&paymentModel.Payment{InvoiceID: inv.ID, Amount: 250, PaymentDate: now}).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	svc := NewStatementService(db)
	stmt, err := svc.SchoolStatement(context.Background(), school.ID)
	if err != nil {
		t.Fatalf("SchoolStatement: %v", err)
	}

	if len(stmt.Students) != 2 {
		t.Fatalf("students = %d, want 2 (including zero-invoice student)", len(stmt.Students))
	}
	if stmt.TotalInvoiced != 600 || stmt.TotalPaid != 250 || stmt.BalanceDue != 350 {
		t.Fatalf("totals = %v/%v/%v, want 600/250/350",
			stmt.TotalInvoiced, stmt.TotalPaid, stmt.BalanceDue)
	}

	if _, err := svc.SchoolStatement(context.Background(), uuid.New()); !domain.IsEntityNotFound(err) {
		t.Fatalf("err = %v, want entity not found", err)
	}
}
