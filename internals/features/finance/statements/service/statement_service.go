// file: internals/features/finance/statements/service/statement_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mattilda_backend/internals/domain"
	invoiceModel "mattilda_backend/internals/features/finance/invoices/model"
	paymentDTO "mattilda_backend/internals/features/finance/payments/dto"
	reportService "mattilda_backend/internals/features/finance/reports/service"
	"mattilda_backend/internals/features/finance/statements/dto"
	schoolModel "mattilda_backend/internals/features/school/schools/model"
	studentModel "mattilda_backend/internals/features/school/students/model"
	helper "mattilda_backend/internals/helpers"
)

type StatementService struct {
	DB      *gorm.DB
	Reports *reportService.ReportService
}

func NewStatementService(db *gorm.DB) *StatementService {
	return &StatementService{DB: db, Reports: reportService.NewReportService(db)}
}

// StudentStatement: seluruh invoice student (CANCELLED ikut tampil
// untuk audit, tapi tidak masuk total).
func (s *StatementService) StudentStatement(ctx context.Context, studentID uuid.UUID) (*dto.StudentStatement, error) {
	var student studentModel.Student
	if err := s.DB.WithContext(ctx).First(&student, "id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewEntityNotFound("Student", studentID.String())
		}
		return nil, err
	}

	var school schoolModel.School
	if err := s.DB.WithContext(ctx).First(&school, "id = ?", student.SchoolID).Error; err != nil {
		return nil, err
	}

	var invoices []invoiceModel.Invoice
	if err := s.DB.WithContext(ctx).Preload("Payments").
		Where("student_id = ?", studentID).
		Order("due_date ASC, created_at ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}

	stmt := &dto.StudentStatement{
		StudentID:   student.ID,
		StudentName: student.FullName(),
		SchoolID:    school.ID,
		SchoolName:  school.Name,
		GeneratedAt: time.Now(),
		Invoices:    make([]dto.StatementInvoice, 0, len(invoices)),
	}

	for i := range invoices {
		inv := &invoices[i]
		paid := inv.PaidAmount()
		stmt.Invoices = append(stmt.Invoices, dto.StatementInvoice{
			InvoiceID:     inv.ID,
			Description:   inv.Description,
			Amount:        helper.RoundMoney(inv.Amount),
			PaidAmount:    helper.RoundMoney(paid),
			PendingAmount: helper.RoundMoney(inv.PendingAmount()),
			DueDate:       inv.DueDate,
			Status:        string(inv.Status),
			Payments:      paymentDTO.NewPaymentResponses(inv.Payments),
		})
		if inv.Status != invoiceModel.InvoiceStatusCancelled {
			stmt.TotalInvoiced += inv.Amount
			stmt.TotalPaid += paid
		}
	}

	stmt.TotalInvoiced = helper.RoundMoney(stmt.TotalInvoiced)
	stmt.TotalPaid = helper.RoundMoney(stmt.TotalPaid)
	stmt.BalanceDue = helper.RoundMoney(stmt.TotalInvoiced - stmt.TotalPaid)
	return stmt, nil
}

// SchoolStatement: rekap saldo per student di satu school.
func (s *StatementService) SchoolStatement(ctx context.Context, schoolID uuid.UUID) (*dto.SchoolStatement, error) {
	var school schoolModel.School
	if err := s.DB.WithContext(ctx).First(&school, "id = ?", schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewEntityNotFound("School", schoolID.String())
		}
		return nil, err
	}

	balances, err := s.Reports.StudentBalance(ctx, &schoolID, reportService.StudentBalanceOpts{})
	if err != nil {
		return nil, err
	}

	stmt := &dto.SchoolStatement{
		SchoolID:    school.ID,
		SchoolName:  school.Name,
		GeneratedAt: time.Now(),
		Students:    make([]dto.SchoolStatementLine, 0, len(balances)),
	}
	for _, b := range balances {
		stmt.Students = append(stmt.Students, dto.SchoolStatementLine{
			StudentID:     b.StudentID,
			StudentName:   b.FirstName + " " + b.LastName,
			TotalInvoices: b.TotalInvoices,
			TotalInvoiced: b.TotalInvoiced,
			TotalPaid:     b.TotalPaid,
			BalanceDue:    b.BalanceDue,
		})
		stmt.TotalInvoiced += b.TotalInvoiced
		stmt.TotalPaid += b.TotalPaid
	}

	stmt.TotalInvoiced = helper.RoundMoney(stmt.TotalInvoiced)
	stmt.TotalPaid = helper.RoundMoney(stmt.TotalPaid)
	stmt.BalanceDue = helper.RoundMoney(stmt.TotalInvoiced - stmt.TotalPaid)
	return stmt, nil
}
