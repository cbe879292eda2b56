// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"mattilda_backend/internals/features/finance/payments/dto"
	"mattilda_backend/internals/features/finance/payments/model"
	"mattilda_backend/internals/features/finance/payments/service"
	helper "mattilda_backend/internals/helpers"
)

type PaymentController struct {
	DB      *gorm.DB
	Service *service.PaymentService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db, Service: service.NewPaymentService(db)}
}

var validate = validator.New()

// POST /api/a/payments
func (ctrl *PaymentController) RecordPayment(c *fiber.Ctx) error {
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ctrl.Service.RecordPayment(c.Context(), service.RecordPaymentInput{
		InvoiceID:   req.InvoiceID,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Method:      req.Method,
		Reference:   req.Reference,
	})
	if err != nil {
		return helper.FromDomainError(err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Payment recorded successfully", dto.RecordPaymentResponse{
		Payment:       *dto.NewPaymentResponse(res.Payment),
		InvoiceStatus: res.InvoiceStatus,
		PaidAmount:    helper.RoundMoney(res.PaidAmount),
		PendingAmount: helper.RoundMoney(res.PendingAmount),
	})
}

// GET /api/u/payments/:id
func (ctrl *PaymentController) GetPayment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payment id")
	}

	var payment model.Payment
	if err := ctrl.DB.WithContext(c.Context()).First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payment")
	}

	return helper.Success(c, "Payment fetched successfully", dto.NewPaymentResponse(&payment))
}

// GET /api/u/invoices/:id/payments
func (ctrl *PaymentController) ListInvoicePayments(c *fiber.Ctx) error {
	invoiceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid invoice id")
	}

	payments, err := ctrl.Service.ListByInvoice(c.Context(), invoiceID)
	if err != nil {
		return helper.FromDomainError(err)
	}

	return helper.Success(c, "Payments fetched successfully", fiber.Map{
		"payments": dto.NewPaymentResponses(payments),
	})
}
