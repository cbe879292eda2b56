// file: internals/features/finance/invoices/controller/invoice_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"mattilda_backend/internals/features/finance/invoices/dto"
	"mattilda_backend/internals/features/finance/invoices/model"
	"mattilda_backend/internals/features/finance/invoices/service"
	helper "mattilda_backend/internals/helpers"
)

type InvoiceController struct {
	DB      *gorm.DB
	Service *service.InvoiceService
}

func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{DB: db, Service: service.NewInvoiceService(db)}
}

var validate = validator.New()

// POST /api/a/invoices
func (ctrl *InvoiceController) CreateInvoice(c *fiber.Ctx) error {
	var req dto.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	inv, err := ctrl.Service.CreateInvoice(c.Context(), service.CreateInvoiceInput{
		StudentID:     req.StudentID,
		BillingItemID: req.BillingItemID,
		Amount:        req.Amount,
		Description:   req.Description,
		DueDate:       req.DueDate,
	})
	if err != nil {
		return helper.FromDomainError(err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Invoice created successfully", dto.NewInvoiceResponse(inv))
}

// GET /api/u/invoices?student_id=&school_id=&status=
func (ctrl *InvoiceController) ListInvoices(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.Context()).Model(&model.Invoice{})
	if sid := c.Query("student_id"); sid != "" {
		studentID, err := uuid.Parse(sid)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid student_id filter")
		}
		q = q.Where("student_id = ?", studentID)
	}
	if sid := c.Query("school_id"); sid != "" {
		schoolID, err := uuid.Parse(sid)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid school_id filter")
		}
		q = q.Joins("JOIN students ON students.id = invoices.student_id").
			Where("students.school_id = ?", schoolID)
	}
	if st := c.Query("status"); st != "" {
		status := model.InvoiceStatus(st)
		if !status.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid status filter")
		}
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count invoices")
	}

	var invoices []model.Invoice
	if err := q.Preload("Payments").
		Order("due_date ASC, created_at ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&invoices).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch invoices")
	}

	return helper.Success(c, "Invoices fetched successfully", fiber.Map{
		"invoices":   dto.NewInvoiceResponses(invoices),
		"pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// GET /api/u/invoices/:id
func (ctrl *InvoiceController) GetInvoice(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid invoice id")
	}

	inv, err := ctrl.Service.GetInvoice(c.Context(), id)
	if err != nil {
		return helper.FromDomainError(err)
	}

	return helper.Success(c, "Invoice fetched successfully", dto.NewInvoiceResponse(inv))
}

// PUT /api/a/invoices/:id — hanya description & due_date; amount dan
// status tidak pernah diedit langsung.
func (ctrl *InvoiceController) UpdateInvoice(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid invoice id")
	}

	var req dto.UpdateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	inv, err := ctrl.Service.GetInvoice(c.Context(), id)
	if err != nil {
		return helper.FromDomainError(err)
	}

	req.ApplyToModel(inv)
	if err := ctrl.DB.WithContext(c.Context()).Model(&model.Invoice{}).
		Where("id = ?", inv.ID).
		Updates(map[string]any{
			"description": inv.Description,
			"due_date":    inv.DueDate,
		}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update invoice")
	}

	return helper.Success(c, "Invoice updated successfully", dto.NewInvoiceResponse(inv))
}

// POST /api/a/invoices/:id/cancel
func (ctrl *InvoiceController) CancelInvoice(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid invoice id")
	}

	inv, err := ctrl.Service.CancelInvoice(c.Context(), id)
	if err != nil {
		return helper.FromDomainError(err)
	}

	return helper.Success(c, "Invoice cancelled successfully", dto.NewInvoiceResponse(inv))
}

// POST /api/a/invoices/sweep-overdue
func (ctrl *InvoiceController) SweepOverdue(c *fiber.Ctx) error {
	now := time.Now()
	count, err := ctrl.Service.SweepOverdue(c.Context(), now)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to sweep overdue invoices")
	}

	return helper.Success(c, "Overdue sweep completed", dto.SweepOverdueResponse{
		UpdatedCount: count,
		SweptAt:      now,
	})
}
