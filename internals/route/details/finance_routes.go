// file: internals/route/details/finance_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billingItemController "mattilda_backend/internals/features/finance/billing_items/controller"
	invoiceController "mattilda_backend/internals/features/finance/invoices/controller"
	paymentController "mattilda_backend/internals/features/finance/payments/controller"
)

func FinanceRoutes(user fiber.Router, admin fiber.Router, db *gorm.DB) {
	billingItems := billingItemController.NewBillingItemController(db)
	invoices := invoiceController.NewInvoiceController(db)
	payments := paymentController.NewPaymentController(db)

	// baca
	user.Get("/billing-items", billingItems.ListBillingItems)
	user.Get("/billing-items/:id", billingItems.GetBillingItem)

	user.Get("/invoices", invoices.ListInvoices)
	user.Get("/invoices/:id", invoices.GetInvoice)
	user.Get("/invoices/:id/payments", payments.ListInvoicePayments)

	user.Get("/payments/:id", payments.GetPayment)

	// mutasi
	admin.Post("/billing-items", billingItems.CreateBillingItem)
	admin.Put("/billing-items/:id", billingItems.UpdateBillingItem)
	admin.Delete("/billing-items/:id", billingItems.DeleteBillingItem)

	admin.Post("/invoices", invoices.CreateInvoice)
	admin.Put("/invoices/:id", invoices.UpdateInvoice)
	admin.Post("/invoices/:id/cancel", invoices.CancelInvoice)
	admin.Post("/invoices/sweep-overdue", invoices.SweepOverdue)

	admin.Post("/payments", payments.RecordPayment)
}
