// file: internals/features/finance/reports/controller/report_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	invoiceModel "mattilda_backend/internals/features/finance/invoices/model"
	"mattilda_backend/internals/features/finance/reports/service"
	helper "mattilda_backend/internals/helpers"
)

type ReportController struct {
	DB      *gorm.DB
	Service *service.ReportService
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db, Service: service.NewReportService(db)}
}

// GET /api/u/reports/student-balance?school_id=&only_with_debt=&only_active=
func (ctrl *ReportController) StudentBalance(c *fiber.Ctx) error {
	schoolID, err := optionalUUID(c, "school_id")
	if err != nil {
		return err
	}
	opts := service.StudentBalanceOpts{
		OnlyWithDebt: c.QueryBool("only_with_debt"),
		OnlyActive:   c.QueryBool("only_active"),
	}

	rows, err := ctrl.Service.StudentBalance(c.Context(), schoolID, opts)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build student balance report")
	}
	return helper.Success(c, "Student balance report fetched successfully", fiber.Map{"rows": rows})
}

// GET /api/u/reports/school-summary?school_id=
func (ctrl *ReportController) SchoolSummary(c *fiber.Ctx) error {
	schoolID, err := optionalUUID(c, "school_id")
	if err != nil {
		return err
	}

	rows, err := ctrl.Service.SchoolSummary(c.Context(), schoolID, time.Now())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build school summary report")
	}
	return helper.Success(c, "School summary report fetched successfully", fiber.Map{"rows": rows})
}

// GET /api/u/reports/invoice-details?school_id=&status=
func (ctrl *ReportController) InvoiceDetails(c *fiber.Ctx) error {
	schoolID, err := optionalUUID(c, "school_id")
	if err != nil {
		return err
	}
	status := c.Query("status")
	if status != "" && !invoiceModel.InvoiceStatus(status).Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid status filter")
	}

	rows, err := ctrl.Service.InvoiceDetails(c.Context(), schoolID, status, time.Now())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build invoice details report")
	}
	return helper.Success(c, "Invoice details report fetched successfully", fiber.Map{"rows": rows})
}

// GET /api/u/reports/payment-history?school_id=&student_id=&from=&to=
func (ctrl *ReportController) PaymentHistory(c *fiber.Ctx) error {
	schoolID, err := optionalUUID(c, "school_id")
	if err != nil {
		return err
	}
	studentID, err := optionalUUID(c, "student_id")
	if err != nil {
		return err
	}
	from, err := optionalDate(c, "from")
	if err != nil {
		return err
	}
	to, err := optionalDate(c, "to")
	if err != nil {
		return err
	}

	rows, err := ctrl.Service.PaymentHistory(c.Context(), schoolID, studentID, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build payment history report")
	}
	return helper.Success(c, "Payment history report fetched successfully", fiber.Map{"rows": rows})
}

// GET /api/u/reports/overdue-invoices?school_id=&min_days_overdue=
func (ctrl *ReportController) OverdueInvoices(c *fiber.Ctx) error {
	schoolID, err := optionalUUID(c, "school_id")
	if err != nil {
		return err
	}
	minDays := c.QueryInt("min_days_overdue", 0)
	if minDays < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "min_days_overdue must be >= 0")
	}

	rows, err := ctrl.Service.OverdueInvoices(c.Context(), schoolID, minDays, time.Now())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build overdue invoices report")
	}
	return helper.Success(c, "Overdue invoices report fetched successfully", fiber.Map{"rows": rows})
}

// GET /api/u/reports/daily-collections?school_id=&from=&to=
func (ctrl *ReportController) DailyCollections(c *fiber.Ctx) error {
	schoolID, err := optionalUUID(c, "school_id")
	if err != nil {
		return err
	}
	from, err := optionalDate(c, "from")
	if err != nil {
		return err
	}
	to, err := optionalDate(c, "to")
	if err != nil {
		return err
	}

	rows, err := ctrl.Service.DailyCollections(c.Context(), schoolID, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build daily collections report")
	}
	return helper.Success(c, "Daily collections report fetched successfully", fiber.Map{"rows": rows})
}

// GET /api/u/reports/monthly-revenue?school_id=&from=&to=
func (ctrl *ReportController) MonthlyRevenue(c *fiber.Ctx) error {
	schoolID, err := optionalUUID(c, "school_id")
	if err != nil {
		return err
	}
	from, err := optionalDate(c, "from")
	if err != nil {
		return err
	}
	to, err := optionalDate(c, "to")
	if err != nil {
		return err
	}

	rows, err := ctrl.Service.MonthlyRevenue(c.Context(), schoolID, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build monthly revenue report")
	}
	return helper.Success(c, "Monthly revenue report fetched successfully", fiber.Map{"rows": rows})
}

/* ===================== query helpers ===================== */

func optionalUUID(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key+" filter")
	}
	return &id, nil
}

func optionalDate(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key+" date, expected YYYY-MM-DD")
	}
	return &t, nil
}
