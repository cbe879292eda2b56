// file: internals/features/finance/invoices/service/invoice_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mattilda_backend/internals/domain"
	billingItemModel "mattilda_backend/internals/features/finance/billing_items/model"
	"mattilda_backend/internals/features/finance/invoices/model"
	gradeModel "mattilda_backend/internals/features/school/grades/model"
	studentModel "mattilda_backend/internals/features/school/students/model"
)

/* =======================================================================
   SERVICE — invoices (buku besar tagihan)
   Status turunan dari pembayaran: PAID jika lunas, PARTIAL jika ada
   pembayaran sebagian, OVERDUE jika lewat due date tanpa lunas,
   CANCELLED final dan tidak pernah dihitung ulang.
======================================================================= */

type InvoiceService struct {
	DB *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{DB: db}
}

type CreateInvoiceInput struct {
	StudentID     uuid.UUID
	BillingItemID *uuid.UUID
	Amount        *float64
	Description   *string
	DueDate       time.Time
}

// CreateInvoice memvalidasi student (dan billing item jika ada), lalu
// menentukan amount: eksplisit → amount billing item → monthly_fee grade.
func (s *InvoiceService) CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*model.Invoice, error) {
	var student studentModel.Student
	if err := s.DB.WithContext(ctx).First(&student, "id = ?", in.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewEntityNotFound("Student", in.StudentID.String())
		}
		return nil, err
	}

	amount := 0.0
	haveAmount := false
	if in.Amount != nil {
		amount = *in.Amount
		haveAmount = true
	}

	if in.BillingItemID != nil {
		var item billingItemModel.BillingItem
		if err := s.DB.WithContext(ctx).First(&item, "id = ?", *in.BillingItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.NewEntityNotFound("BillingItem", in.BillingItemID.String())
			}
			return nil, err
		}
		if item.SchoolID != student.SchoolID {
			return nil, domain.NewBusinessRule("Billing item does not belong to the student's school", "billing_item_school_mismatch")
		}
		if !haveAmount {
			amount = item.Amount
			haveAmount = true
		}
	}

	if !haveAmount && student.GradeID != nil {
		var grade gradeModel.Grade
		if err := s.DB.WithContext(ctx).First(&grade, "id = ?", *student.GradeID).Error; err == nil && grade.MonthlyFee > 0 {
			amount = grade.MonthlyFee
			haveAmount = true
		}
	}

	if !haveAmount || amount <= 0 {
		return nil, domain.NewBusinessRule("Invoice amount could not be determined", "invoice_amount_unresolved")
	}

	inv := &model.Invoice{
		StudentID:     in.StudentID,
		BillingItemID: in.BillingItemID,
		Amount:        amount,
		Description:   in.Description,
		DueDate:       in.DueDate,
		Status:        model.InvoiceStatusPending,
	}
	if err := s.DB.WithContext(ctx).Create(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

// GetInvoice memuat invoice beserta payment-nya.
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	if err := s.DB.WithContext(ctx).Preload("Payments").First(&inv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewEntityNotFound("Invoice", id.String())
		}
		return nil, err
	}
	return &inv, nil
}

// CancelInvoice membatalkan tanpa syarat; pembayaran yang sudah masuk
// tetap tercatat tetapi status tidak akan dihitung ulang lagi.
func (s *InvoiceService) CancelInvoice(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	inv.Status = model.InvoiceStatusCancelled
	if err := s.DB.WithContext(ctx).Model(&model.Invoice{}).
		Where("id = ?", inv.ID).
		Update("status", model.InvoiceStatusCancelled).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

// SweepOverdue menandai PENDING/PARTIAL yang lewat due date menjadi
// OVERDUE. Idempoten: lari kedua tidak mengubah baris lagi.
func (s *InvoiceService) SweepOverdue(ctx context.Context, today time.Time) (int64, error) {
	day := truncateToDay(today)
	res := s.DB.WithContext(ctx).Model(&model.Invoice{}).
		Where("due_date < ? AND status IN ?", day,
			[]model.InvoiceStatus{model.InvoiceStatusPending, model.InvoiceStatusPartial}).
		Update("status", model.InvoiceStatusOverdue)
	return res.RowsAffected, res.Error
}

// RecomputeStatus menurunkan status dari total pembayaran yang sudah
// dimuat di inv.Payments. CANCELLED tidak pernah berubah.
func RecomputeStatus(inv *model.Invoice, today time.Time) model.InvoiceStatus {
	return DeriveStatus(inv.Status, inv.Amount, inv.PaidAmount(), inv.DueDate, today)
}

// DeriveStatus: PAID jika paid menutup amount, PARTIAL jika ada yang
// masuk, selain itu PENDING. Pelabelan OVERDUE bukan urusan recompute,
// itu kerjaan SweepOverdue.
func DeriveStatus(current model.InvoiceStatus, amount, paid float64, dueDate, today time.Time) model.InvoiceStatus {
	if current == model.InvoiceStatusCancelled {
		return model.InvoiceStatusCancelled
	}
	switch {
	case paid >= amount:
		return model.InvoiceStatusPaid
	case paid > 0:
		return model.InvoiceStatusPartial
	default:
		return model.InvoiceStatusPending
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
