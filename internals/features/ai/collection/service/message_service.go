// file: internals/features/ai/collection/service/message_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mattilda_backend/internals/domain"
	"mattilda_backend/internals/features/ai/collection/dto"
	invoiceModel "mattilda_backend/internals/features/finance/invoices/model"
	schoolModel "mattilda_backend/internals/features/school/schools/model"
	studentModel "mattilda_backend/internals/features/school/students/model"
	helper "mattilda_backend/internals/helpers"
)

/* =======================================================================
   Pesan penagihan & ringkasan eksekutif. Sama seperti assess_risk:
   provider dipakai kalau ada, template deterministik jadi fallback.
======================================================================= */

// ComposeMessage menyusun draf pesan penagihan untuk satu invoice.
func (s *CollectionService) ComposeMessage(ctx context.Context, req *dto.CollectionMessageRequest) (*dto.CollectionMessageResponse, error) {
	var inv invoiceModel.Invoice
	if err := s.DB.WithContext(ctx).First(&inv, "id = ?", req.InvoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewEntityNotFound("Invoice", req.InvoiceID.String())
		}
		return nil, err
	}
	switch inv.Status {
	case invoiceModel.InvoiceStatusCancelled:
		return nil, domain.NewBusinessRule("Cannot draft a collection message for a cancelled invoice", "invoice_cancelled")
	case invoiceModel.InvoiceStatusPaid:
		return nil, domain.NewBusinessRule("Invoice is already fully paid", "invoice_already_paid")
	}

	var student studentModel.Student
	if err := s.DB.WithContext(ctx).First(&student, "id = ?", inv.StudentID).Error; err != nil {
		return nil, err
	}
	var school schoolModel.School
	if err := s.DB.WithContext(ctx).First(&school, "id = ?", student.SchoolID).Error; err != nil {
		return nil, err
	}

	var paid float64
	if err := s.DB.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = ?`, inv.ID).
		Scan(&paid).Error; err != nil {
		return nil, err
	}
	pending := helper.RoundMoney(inv.Amount - paid)

	subject, message, usedFallback := s.draftWithProvider(ctx, req, &inv, &student, &school, pending)

	s.logRequest(ctx, "collection_message", usedFallback, map[string]any{
		"invoice_id": inv.ID.String(),
		"tone":       req.Tone,
		"channel":    req.Channel,
		"pending":    pending,
	})

	return &dto.CollectionMessageResponse{
		InvoiceID:     inv.ID,
		StudentName:   student.FullName(),
		SchoolName:    school.Name,
		Tone:          req.Tone,
		Channel:       req.Channel,
		Subject:       subject,
		Message:       message,
		PendingAmount: pending,
		UsedFallback:  usedFallback,
	}, nil
}

func (s *CollectionService) draftWithProvider(ctx context.Context, req *dto.CollectionMessageRequest, inv *invoiceModel.Invoice, student *studentModel.Student, school *schoolModel.School, pending float64) (subject, message string, usedFallback bool) {
	if s.Client.Configured() {
		system := fmt.Sprintf(
			"You draft %s collection messages for school tuition billing, to be sent via %s. "+
				"Write the message body only, no placeholders, no markdown.",
			req.Tone, req.Channel)
		user := fmt.Sprintf(
			"Student %s at %s owes %.2f on an invoice due %s (status %s). Draft the message.",
			student.FullName(), school.Name, pending,
			inv.DueDate.Format("2006-01-02"), inv.Status)
		if answer, err := s.Client.Chat(ctx, system, user); err == nil {
			return fallbackSubject(req.Tone, req.Channel, school.Name), answer, false
		}
		log.Printf("⚠️ AI provider error, pakai template pesan")
	}
	return fallbackSubject(req.Tone, req.Channel, school.Name),
		fallbackMessage(req.Tone, student.FullName(), school.Name, pending, inv.DueDate),
		true
}

// Hanya EMAIL yang butuh subject.
func fallbackSubject(tone, channel, schoolName string) string {
	if channel != "EMAIL" {
		return ""
	}
	switch tone {
	case "FINAL_NOTICE":
		return "Final notice: outstanding tuition balance at " + schoolName
	case "URGENT":
		return "Urgent: overdue tuition payment at " + schoolName
	default:
		return "Tuition payment reminder from " + schoolName
	}
}

func fallbackMessage(tone, studentName, schoolName string, pending float64, dueDate time.Time) string {
	due := dueDate.Format("January 2, 2006")
	switch tone {
	case "FRIENDLY":
		return fmt.Sprintf(
			"Hi! Just a friendly reminder that %s has a pending balance of %.2f at %s, due %s. "+
				"If you have already paid, please disregard this message. Thank you!",
			studentName, pending, schoolName, due)
	case "URGENT":
		return fmt.Sprintf(
			"This is an urgent reminder: the account of %s at %s has an overdue balance of %.2f "+
				"(due %s). Please settle it as soon as possible or contact the billing office to arrange a payment plan.",
			studentName, schoolName, pending, due)
	case "FINAL_NOTICE":
		return fmt.Sprintf(
			"FINAL NOTICE: the outstanding balance of %.2f for %s at %s (due %s) remains unpaid. "+
				"If payment is not received promptly, the account will be escalated per school policy.",
			pending, studentName, schoolName, due)
	default: // FORMAL
		return fmt.Sprintf(
			"Dear guardian of %s, our records show an outstanding balance of %.2f at %s, due %s. "+
				"Kindly arrange payment at your earliest convenience.",
			studentName, pending, schoolName, due)
	}
}

// ExecutiveSummary merangkum posisi penagihan satu school dalam satu paragraf.
func (s *CollectionService) ExecutiveSummary(ctx context.Context, schoolID uuid.UUID) (*dto.ExecutiveSummaryResponse, error) {
	var school schoolModel.School
	if err := s.DB.WithContext(ctx).First(&school, "id = ?", schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewEntityNotFound("School", schoolID.String())
		}
		return nil, err
	}

	metrics, err := s.loadSchoolMetrics(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	risk := fallbackRisk(metrics)

	summary, usedFallback := s.summarizeWithProvider(ctx, &school, metrics, risk.RiskLevel)

	s.logRequest(ctx, "executive_summary", usedFallback, map[string]any{
		"school_id":  schoolID.String(),
		"risk_level": risk.RiskLevel,
	})

	return &dto.ExecutiveSummaryResponse{
		SchoolID:     school.ID,
		SchoolName:   school.Name,
		Summary:      summary,
		RiskLevel:    risk.RiskLevel,
		UsedFallback: usedFallback,
	}, nil
}

func (s *CollectionService) summarizeWithProvider(ctx context.Context, school *schoolModel.School, m *schoolMetrics, riskLevel string) (string, bool) {
	if s.Client.Configured() {
		system := "You write one-paragraph executive summaries of school billing health " +
			"for administrators. Plain prose, no bullet points."
		user := fmt.Sprintf(
			"School %q: %d invoices (%d overdue, %d pending, %d paid), %d payments (%d late), "+
				"outstanding %.2f, collection risk %s. Summarize.",
			school.Name, m.TotalInvoices, m.OverdueInvoices, m.PendingInvoices,
			m.PaidInvoices, m.TotalPayments, m.LatePayments, m.TotalOutstanding, riskLevel)
		if answer, err := s.Client.Chat(ctx, system, user); err == nil {
			return answer, false
		}
		log.Printf("⚠️ AI provider error, pakai ringkasan fallback")
	}

	return fmt.Sprintf(
		"%s has %d active invoices: %d paid, %d pending and %d overdue, with %.2f still outstanding. "+
			"Of %d payments received, %d arrived after the due date. Current collection risk is %s.",
		school.Name, m.TotalInvoices, m.PaidInvoices, m.PendingInvoices, m.OverdueInvoices,
		m.TotalOutstanding, m.TotalPayments, m.LatePayments, riskLevel), true
}
