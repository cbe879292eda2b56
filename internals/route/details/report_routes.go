// file: internals/route/details/report_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportController "mattilda_backend/internals/features/finance/reports/controller"
)

func ReportRoutes(user fiber.Router, db *gorm.DB) {
	reports := reportController.NewReportController(db)

	grp := user.Group("/reports")
	grp.Get("/student-balance", reports.StudentBalance)
	grp.Get("/school-summary", reports.SchoolSummary)
	grp.Get("/invoice-details", reports.InvoiceDetails)
	grp.Get("/payment-history", reports.PaymentHistory)
	grp.Get("/overdue-invoices", reports.OverdueInvoices)
	grp.Get("/daily-collections", reports.DailyCollections)
	grp.Get("/monthly-revenue", reports.MonthlyRevenue)
}
