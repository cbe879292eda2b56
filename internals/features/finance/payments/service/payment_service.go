// file: internals/features/finance/payments/service/payment_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mattilda_backend/internals/domain"
	invoiceModel "mattilda_backend/internals/features/finance/invoices/model"
	invoiceService "mattilda_backend/internals/features/finance/invoices/service"
	"mattilda_backend/internals/features/finance/payments/model"
)

/* =======================================================================
   SERVICE — payments
   RecordPayment berjalan dalam satu transaksi dengan row lock di
   invoice, supaya dua pembayaran bersamaan tidak bisa sama-sama lolos
   cek sisa tagihan.
======================================================================= */

type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

type RecordPaymentInput struct {
	InvoiceID   uuid.UUID
	Amount      float64
	PaymentDate *time.Time
	Method      model.PaymentMethod
	Reference   *string
}

type RecordPaymentResult struct {
	Payment       *model.Payment
	InvoiceStatus invoiceModel.InvoiceStatus
	PaidAmount    float64
	PendingAmount float64
}

func (s *PaymentService) RecordPayment(ctx context.Context, in RecordPaymentInput) (*RecordPaymentResult, error) {
	var result RecordPaymentResult

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		// sqlite tidak mendukung SELECT ... FOR UPDATE; transaksinya
		// sudah serial sehingga lock tidak diperlukan di sana.
		if tx.Dialector.Name() != "sqlite" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var inv invoiceModel.Invoice
		if err := q.First(&inv, "id = ?", in.InvoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewEntityNotFound("Invoice", in.InvoiceID.String())
			}
			return err
		}

		if inv.Status == invoiceModel.InvoiceStatusCancelled {
			return &domain.InvoiceCancelledError{InvoiceID: inv.ID.String()}
		}

		var paid float64
		if err := tx.Model(&model.Payment{}).
			Where("invoice_id = ?", inv.ID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&paid).Error; err != nil {
			return err
		}

		pending := inv.Amount - paid
		if pending < 0 {
			pending = 0
		}
		// Sama persis dengan sisa tagihan boleh; lebih satu sen pun ditolak.
		if in.Amount > pending {
			return &domain.PaymentExceedsDebtError{PaymentAmount: in.Amount, PendingAmount: pending}
		}

		p := &model.Payment{
			InvoiceID: inv.ID,
			Amount:    in.Amount,
			Method:    in.Method,
			Reference: in.Reference,
		}
		if in.PaymentDate != nil {
			p.PaymentDate = *in.PaymentDate
		}
		if err := tx.Create(p).Error; err != nil {
			return err
		}

		newStatus := invoiceService.DeriveStatus(inv.Status, inv.Amount, paid+in.Amount, inv.DueDate, time.Now())
		if newStatus != inv.Status {
			if err := tx.Model(&invoiceModel.Invoice{}).
				Where("id = ?", inv.ID).
				Update("status", newStatus).Error; err != nil {
				return err
			}
		}

		result = RecordPaymentResult{
			Payment:       p,
			InvoiceStatus: newStatus,
			PaidAmount:    paid + in.Amount,
			PendingAmount: pending - in.Amount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListByInvoice mengembalikan payment sebuah invoice, terbaru dulu.
func (s *PaymentService) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]model.Payment, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&invoiceModel.Invoice{}).
		Where("id = ?", invoiceID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, domain.NewEntityNotFound("Invoice", invoiceID.String())
	}

	var payments []model.Payment
	if err := s.DB.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("payment_date DESC, created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
