// file: internals/features/ai/collection/service/message_service_test.go
package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mattilda_backend/internals/domain"
	"mattilda_backend/internals/features/ai/collection/dto"
	"mattilda_backend/internals/features/ai/collection/model"
	invoiceModel "mattilda_backend/internals/features/finance/invoices/model"
	paymentModel "mattilda_backend/internals/features/finance/payments/model"
	schoolModel "mattilda_backend/internals/features/school/schools/model"
	studentModel "mattilda_backend/internals/features/school/students/model"
)

type messageFixture struct {
	school  *schoolModel.School
	student *studentModel.Student
	invoice *invoiceModel.Invoice
}

func seedMessageFixture(t *testing.T, db *gorm.DB, status invoiceModel.InvoiceStatus) *messageFixture {
	t.Helper()
	f := &messageFixture{}

	f.school = &schoolModel.School{Name: "Delta College"}
	if err := db.Create(f.school).Error; err != nil {
		t.Fatalf("seed school: %v", err)
	}
	f.student = &studentModel.Student{SchoolID: f.school.ID, FirstName: "Rosa", LastName: "Garcia"}
	if err := db.Create(f.student).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	f.invoice = &invoiceModel.Invoice{
		StudentID: f.student.ID,
		Amount:    1000,
		DueDate:   time.Now().AddDate(0, 0, -14),
		Status:    status,
	}
	if err := db.Create(f.invoice).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	return f
}

func TestComposeMessageFallbackTemplates(t *testing.T) {
	db := setupDB(t)
	f := seedMessageFixture(t, db, invoiceModel.InvoiceStatusOverdue)
	// 250 terbayar → sisa 750 harus muncul di pesan
	if err := db.Create(&paymentModel.Payment{InvoiceID: f.invoice.ID, Amount: 250}).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	svc := newFallbackService(db)

	resp, err := svc.ComposeMessage(context.Background(), &dto.CollectionMessageRequest{
		InvoiceID: f.invoice.ID,
		Tone:      "URGENT",
		Channel:   "EMAIL",
	})
	if err != nil {
		t.Fatalf("ComposeMessage: %v", err)
	}
	if !resp.UsedFallback {
		t.Fatalf("expected fallback draft")
	}
	if resp.PendingAmount != 750 {
		t.Fatalf("pending = %v, want 750", resp.PendingAmount)
	}
	if resp.Subject == "" {
		t.Fatalf("EMAIL draft should carry a subject")
	}
	if !strings.Contains(resp.Message, "Rosa Garcia") || !strings.Contains(resp.Message, "750") {
		t.Fatalf("message missing student or amount: %q", resp.Message)
	}

	// SMS tidak pakai subject
	resp, err = svc.ComposeMessage(context.Background(), &dto.CollectionMessageRequest{
		InvoiceID: f.invoice.ID,
		Tone:      "FRIENDLY",
		Channel:   "SMS",
	})
	if err != nil {
		t.Fatalf("ComposeMessage(SMS): %v", err)
	}
	if resp.Subject != "" {
		t.Fatalf("SMS draft should have no subject, got %q", resp.Subject)
	}

	var logs []model.AIRequestLog
	if err := db.Where("endpoint = ?", "collection_message").Find(&logs).Error; err != nil {
		t.Fatalf("load logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("logs = %d, want 2", len(logs))
	}
}

func TestComposeMessageRejectsSettledInvoices(t *testing.T) {
	db := setupDB(t)
	svc := newFallbackService(db)

	paid := seedMessageFixture(t, db, invoiceModel.InvoiceStatusPaid)
	if _, err := svc.ComposeMessage(context.Background(), &dto.CollectionMessageRequest{
		InvoiceID: paid.invoice.ID, Tone: "FORMAL", Channel: "EMAIL",
	}); !domain.IsBusinessRule(err) {
		t.Fatalf("paid invoice err = %v, want business rule", err)
	}

	cancelled := &invoiceModel.Invoice{
		StudentID: paid.student.ID,
		Amount:    200,
		DueDate:   time.Now(),
		Status:    invoiceModel.InvoiceStatusCancelled,
	}
	if err := db.Create(cancelled).Error; err != nil {
		t.Fatalf("seed cancelled invoice: %v", err)
	}
	if _, err := svc.ComposeMessage(context.Background(), &dto.CollectionMessageRequest{
		InvoiceID: cancelled.ID, Tone: "FORMAL", Channel: "EMAIL",
	}); !domain.IsBusinessRule(err) {
		t.Fatalf("cancelled invoice err = %v, want business rule", err)
	}

	if _, err := svc.ComposeMessage(context.Background(), &dto.CollectionMessageRequest{
		InvoiceID: uuid.New(), Tone: "FORMAL", Channel: "EMAIL",
	}); !domain.IsEntityNotFound(err) {
		t.Fatalf("missing invoice err = %v, want entity not found", err)
	}
}

func TestExecutiveSummaryFallback(t *testing.T) {
	db := setupDB(t)
	f := seedMessageFixture(t, db, invoiceModel.InvoiceStatusOverdue)
	svc := newFallbackService(db)

	resp, err := svc.ExecutiveSummary(context.Background(), f.school.ID)
	if err != nil {
		t.Fatalf("ExecutiveSummary: %v", err)
	}
	if !resp.UsedFallback {
		t.Fatalf("expected fallback summary")
	}
	if !strings.Contains(resp.Summary, "Delta College") {
		t.Fatalf("summary missing school name: %q", resp.Summary)
	}
	if !validRiskLevel(resp.RiskLevel) {
		t.Fatalf("risk level = %q", resp.RiskLevel)
	}

	var logs []model.AIRequestLog
	if err := db.Where("endpoint = ?", "executive_summary").Find(&logs).Error; err != nil {
		t.Fatalf("load logs: %v", err)
	}
	if len(logs) != 1 || !logs[0].UsedFallback {
		t.Fatalf("logs = %+v, want one fallback 'executive_summary' entry", logs)
	}
}

func TestExecutiveSummarySchoolNotFound(t *testing.T) {
	db := setupDB(t)
	svc := newFallbackService(db)

	if _, err := svc.ExecutiveSummary(context.Background(), uuid.New()); !domain.IsEntityNotFound(err) {
		t.Fatalf("err = %v, want entity not found", err)
	}
}
