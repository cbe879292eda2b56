// file: internals/features/finance/reports/service/report_service.go
package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mattilda_backend/internals/features/finance/reports/dto"
	helper "mattilda_backend/internals/helpers"
)

/* =======================================================================
   SERVICE — reports
   Tujuh laporan agregat, semua raw SQL portabel (CASE WHEN + subquery,
   tanpa FILTER/DATE_TRUNC) supaya jalan di Postgres maupun sqlite.
   Pembulatan uang dan hitung hari telat dilakukan di Go.
======================================================================= */

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

// StudentBalanceOpts menyaring hasil student balance.
type StudentBalanceOpts struct {
	OnlyWithDebt bool // hanya student dengan balance_due > 0
	OnlyActive   bool // hanya student yang masih aktif
}

// StudentBalance: posisi saldo per student, termasuk yang belum punya
// invoice sama sekali (LEFT JOIN).
func (s *ReportService) StudentBalance(ctx context.Context, schoolID *uuid.UUID, opts StudentBalanceOpts) ([]dto.StudentBalanceRow, error) {
	sql := `
SELECT
  st.id          AS student_id,
  st.first_name  AS first_name,
  st.last_name   AS last_name,
  st.school_id   AS school_id,
  sc.name        AS school_name,
  COUNT(CASE WHEN i.status <> 'CANCELLED' THEN i.id END)                 AS total_invoices,
  COUNT(CASE WHEN i.status = 'PENDING' THEN i.id END)                    AS pending_invoices,
  COUNT(CASE WHEN i.status = 'PARTIAL' THEN i.id END)                    AS partial_invoices,
  COUNT(CASE WHEN i.status = 'PAID' THEN i.id END)                       AS paid_invoices,
  COUNT(CASE WHEN i.status = 'OVERDUE' THEN i.id END)                    AS overdue_invoices,
  COALESCE(SUM(CASE WHEN i.status <> 'CANCELLED' THEN i.amount END), 0)  AS total_invoiced,
  COALESCE((
    SELECT SUM(p.amount)
    FROM payments p
    JOIN invoices i2 ON i2.id = p.invoice_id
    WHERE i2.student_id = st.id AND i2.status <> 'CANCELLED'
  ), 0) AS total_paid
FROM students st
JOIN schools sc ON sc.id = st.school_id
LEFT JOIN invoices i ON i.student_id = st.id`
	sql += `
WHERE 1 = 1`
	args := []any{}
	if schoolID != nil {
		sql += ` AND st.school_id = ?`
		args = append(args, *schoolID)
	}
	if opts.OnlyActive {
		sql += ` AND st.is_active = ?`
		args = append(args, true)
	}
	sql += `
GROUP BY st.id, st.first_name, st.last_name, st.school_id, sc.name
ORDER BY sc.name, st.last_name, st.first_name`

	var rows []dto.StudentBalanceRow
	if err := s.DB.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := rows[:0]
	for i := range rows {
		rows[i].TotalInvoiced = helper.RoundMoney(rows[i].TotalInvoiced)
		rows[i].TotalPaid = helper.RoundMoney(rows[i].TotalPaid)
		rows[i].BalanceDue = helper.RoundMoney(rows[i].TotalInvoiced - rows[i].TotalPaid)
		if opts.OnlyWithDebt && rows[i].BalanceDue <= 0 {
			continue
		}
		out = append(out, rows[i])
	}
	return out, nil
}

// SchoolSummary: ringkasan keuangan per school. total_overdue adalah
// sisa tagihan dari invoice OVERDUE plus PENDING/PARTIAL yang sudah
// lewat due date tapi belum kena sweep.
func (s *ReportService) SchoolSummary(ctx context.Context, schoolID *uuid.UUID, today time.Time) ([]dto.SchoolSummaryRow, error) {
	sql := `
SELECT
  sc.id   AS school_id,
  sc.name AS school_name,
  (SELECT COUNT(*) FROM students st2 WHERE st2.school_id = sc.id) AS total_students,
  COUNT(CASE WHEN i.status <> 'CANCELLED' THEN i.id END)          AS total_invoices,
  COUNT(CASE WHEN i.status = 'PAID' THEN i.id END)                AS paid_invoices,
  COUNT(CASE WHEN i.status = 'OVERDUE' THEN i.id END)             AS overdue_invoices,
  COALESCE(SUM(CASE WHEN i.status <> 'CANCELLED' THEN i.amount END), 0) AS total_invoiced,
  COALESCE((
    SELECT SUM(p.amount)
    FROM payments p
    JOIN invoices i2 ON i2.id = p.invoice_id
    JOIN students st3 ON st3.id = i2.student_id
    WHERE st3.school_id = sc.id AND i2.status <> 'CANCELLED'
  ), 0) AS total_collected,
  COALESCE((
    SELECT SUM(i3.amount - COALESCE((
      SELECT SUM(p2.amount) FROM payments p2 WHERE p2.invoice_id = i3.id
    ), 0))
    FROM invoices i3
    JOIN students st4 ON st4.id = i3.student_id
    WHERE st4.school_id = sc.id
      AND (i3.status = 'OVERDUE'
        OR (i3.status IN ('PENDING','PARTIAL') AND i3.due_date < ?))
  ), 0) AS total_overdue
FROM schools sc
LEFT JOIN students st ON st.school_id = sc.id
LEFT JOIN invoices i ON i.student_id = st.id`
	args := []any{dayOf(today)}
	if schoolID != nil {
		sql += ` WHERE sc.id = ?`
		args = append(args, *schoolID)
	}
	sql += `
GROUP BY sc.id, sc.name
ORDER BY sc.name`

	var rows []dto.SchoolSummaryRow
	if err := s.DB.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].TotalInvoiced = helper.RoundMoney(rows[i].TotalInvoiced)
		rows[i].TotalCollected = helper.RoundMoney(rows[i].TotalCollected)
		rows[i].TotalPending = helper.RoundMoney(rows[i].TotalInvoiced - rows[i].TotalCollected)
		rows[i].TotalOverdue = helper.RoundMoney(rows[i].TotalOverdue)
	}
	return rows, nil
}

type invoiceDetailScan struct {
	InvoiceID       uuid.UUID
	StudentID       uuid.UUID
	FirstName       string
	LastName        string
	SchoolID        uuid.UUID
	SchoolName      string
	Amount          float64
	PaidAmount      float64
	PaymentCount    int64
	LastPaymentDate *time.Time
	DueDate         time.Time
	Status          string
	Description     *string
	CreatedAt       time.Time
}

// InvoiceDetails: satu baris per invoice dengan posisi pembayaran.
func (s *ReportService) InvoiceDetails(ctx context.Context, schoolID *uuid.UUID, status string, today time.Time) ([]dto.InvoiceDetailRow, error) {
	sql := `
SELECT
  i.id          AS invoice_id,
  i.student_id  AS student_id,
  st.first_name AS first_name,
  st.last_name  AS last_name,
  st.school_id  AS school_id,
  sc.name       AS school_name,
  i.amount      AS amount,
  COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.invoice_id = i.id), 0) AS paid_amount,
  (SELECT COUNT(p2.id) FROM payments p2 WHERE p2.invoice_id = i.id)             AS payment_count,
  (SELECT MAX(p3.payment_date) FROM payments p3 WHERE p3.invoice_id = i.id)     AS last_payment_date,
  i.due_date    AS due_date,
  i.status      AS status,
  i.description AS description,
  i.created_at  AS created_at
FROM invoices i
JOIN students st ON st.id = i.student_id
JOIN schools sc ON sc.id = st.school_id
WHERE 1 = 1`
	args := []any{}
	if schoolID != nil {
		sql += ` AND st.school_id = ?`
		args = append(args, *schoolID)
	}
	if status != "" {
		sql += ` AND i.status = ?`
		args = append(args, status)
	}
	sql += ` ORDER BY i.due_date ASC, i.created_at ASC`

	var scans []invoiceDetailScan
	if err := s.DB.WithContext(ctx).Raw(sql, args...).Scan(&scans).Error; err != nil {
		return nil, err
	}
	return buildInvoiceDetailRows(scans, today), nil
}

// OverdueInvoices: invoice yang lewat due date dengan sisa tagihan,
// termasuk PENDING/PARTIAL yang belum kena sweep. Telat paling lama
// dulu. minDaysOverdue <= 0 berarti tanpa ambang.
func (s *ReportService) OverdueInvoices(ctx context.Context, schoolID *uuid.UUID, minDaysOverdue int, today time.Time) ([]dto.InvoiceDetailRow, error) {
	all, err := s.InvoiceDetails(ctx, schoolID, "", today)
	if err != nil {
		return nil, err
	}
	threshold := minDaysOverdue
	if threshold < 1 {
		threshold = 1
	}
	rows := all[:0]
	for _, row := range all {
		if row.DaysOverdue >= threshold && row.PendingAmount > 0 {
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].DaysOverdue > rows[b].DaysOverdue
	})
	return rows, nil
}

func buildInvoiceDetailRows(scans []invoiceDetailScan, today time.Time) []dto.InvoiceDetailRow {
	rows := make([]dto.InvoiceDetailRow, 0, len(scans))
	for _, sc := range scans {
		pending := sc.Amount - sc.PaidAmount
		if pending < 0 {
			pending = 0
		}
		rows = append(rows, dto.InvoiceDetailRow{
			InvoiceID:       sc.InvoiceID,
			StudentID:       sc.StudentID,
			StudentName:     sc.FirstName + " " + sc.LastName,
			SchoolID:        sc.SchoolID,
			SchoolName:      sc.SchoolName,
			Amount:          helper.RoundMoney(sc.Amount),
			PaidAmount:      helper.RoundMoney(sc.PaidAmount),
			PendingAmount:   helper.RoundMoney(pending),
			PaymentCount:    sc.PaymentCount,
			LastPaymentDate: sc.LastPaymentDate,
			DueDate:         sc.DueDate,
			Status:          sc.Status,
			Description:     sc.Description,
			DaysOverdue:     DaysOverdue(sc.Status, sc.DueDate, today),
			CreatedAt:       sc.CreatedAt,
		})
	}
	return rows
}

// DaysOverdue: hari kalender sejak due date. Nol untuk invoice yang
// sudah selesai (PAID/CANCELLED) atau belum lewat due date. Status
// PENDING/PARTIAL yang telat ikut dihitung meski sweep belum jalan.
func DaysOverdue(status string, dueDate, today time.Time) int {
	if status == "PAID" || status == "CANCELLED" {
		return 0
	}
	due := dayOf(dueDate)
	now := dayOf(today)
	if !due.Before(now) {
		return 0
	}
	return int(now.Sub(due).Hours() / 24)
}

// PaymentHistory: riwayat pembayaran lintas entitas, terbaru dulu.
func (s *ReportService) PaymentHistory(ctx context.Context, schoolID, studentID *uuid.UUID, from, to *time.Time) ([]dto.PaymentHistoryRow, error) {
	sql := `
SELECT
  p.id            AS payment_id,
  p.invoice_id    AS invoice_id,
  p.amount        AS amount,
  p.payment_date  AS payment_date,
  p.method        AS method,
  p.reference     AS reference,
  i.student_id    AS student_id,
  (st.first_name || ' ' || st.last_name) AS student_name,
  st.school_id    AS school_id,
  sc.name         AS school_name
FROM payments p
JOIN invoices i ON i.id = p.invoice_id
JOIN students st ON st.id = i.student_id
JOIN schools sc ON sc.id = st.school_id
WHERE 1 = 1`
	args := []any{}
	if schoolID != nil {
		sql += ` AND st.school_id = ?`
		args = append(args, *schoolID)
	}
	if studentID != nil {
		sql += ` AND i.student_id = ?`
		args = append(args, *studentID)
	}
	if from != nil {
		sql += ` AND p.payment_date >= ?`
		args = append(args, *from)
	}
	if to != nil {
		sql += ` AND p.payment_date <= ?`
		args = append(args, *to)
	}
	sql += ` ORDER BY p.payment_date DESC, p.created_at DESC`

	var rows []dto.PaymentHistoryRow
	if err := s.DB.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Amount = helper.RoundMoney(rows[i].Amount)
	}
	return rows, nil
}

type paymentBucketScan struct {
	SchoolID    uuid.UUID
	SchoolName  string
	PaymentDate time.Time
	Method      string
	Amount      float64
}

// DailyCollections: total pembayaran per school per hari, dengan
// subtotal per metode. Bucketing dilakukan di Go karena representasi
// kolom DATE berbeda antar driver.
func (s *ReportService) DailyCollections(ctx context.Context, schoolID *uuid.UUID, from, to *time.Time) ([]dto.DailyCollectionRow, error) {
	scans, err := s.scanPaymentBuckets(ctx, schoolID, from, to)
	if err != nil {
		return nil, err
	}

	type key struct {
		school uuid.UUID
		day    string
	}
	byKey := map[key]*dto.DailyCollectionRow{}
	for _, sc := range scans {
		k := key{school: sc.SchoolID, day: dayOf(sc.PaymentDate).Format("2006-01-02")}
		row, ok := byKey[k]
		if !ok {
			row = &dto.DailyCollectionRow{SchoolID: sc.SchoolID, SchoolName: sc.SchoolName, Day: k.day}
			byKey[k] = row
		}
		row.PaymentsCount++
		row.TotalCollected += sc.Amount
		switch sc.Method {
		case "CASH":
			row.CashAmount += sc.Amount
		case "BANK_TRANSFER":
			row.BankTransferAmount += sc.Amount
		case "CREDIT_CARD":
			row.CreditCardAmount += sc.Amount
		case "DEBIT_CARD":
			row.DebitCardAmount += sc.Amount
		default:
			row.OtherAmount += sc.Amount
		}
	}

	rows := make([]dto.DailyCollectionRow, 0, len(byKey))
	for _, row := range byKey {
		row.TotalCollected = helper.RoundMoney(row.TotalCollected)
		row.CashAmount = helper.RoundMoney(row.CashAmount)
		row.BankTransferAmount = helper.RoundMoney(row.BankTransferAmount)
		row.CreditCardAmount = helper.RoundMoney(row.CreditCardAmount)
		row.DebitCardAmount = helper.RoundMoney(row.DebitCardAmount)
		row.OtherAmount = helper.RoundMoney(row.OtherAmount)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(a, b int) bool {
		if rows[a].Day != rows[b].Day {
			return rows[a].Day < rows[b].Day
		}
		return rows[a].SchoolName < rows[b].SchoolName
	})
	return rows, nil
}

type invoiceBucketScan struct {
	SchoolID   uuid.UUID
	SchoolName string
	CreatedAt  time.Time
	Amount     float64
}

// MonthlyRevenue: per school per bulan — invoiced dari bulan invoice
// dibuat, collected plus statistik pembayaran (count/avg/min/max) dari
// bulan pembayaran masuk.
func (s *ReportService) MonthlyRevenue(ctx context.Context, schoolID *uuid.UUID, from, to *time.Time) ([]dto.MonthlyRevenueRow, error) {
	paySQL := `
SELECT st.school_id AS school_id, sc.name AS school_name,
       p.payment_date AS payment_date, p.amount AS amount
FROM payments p
JOIN invoices i ON i.id = p.invoice_id
JOIN students st ON st.id = i.student_id
JOIN schools sc ON sc.id = st.school_id
WHERE i.status <> 'CANCELLED'`
	payArgs := []any{}
	if schoolID != nil {
		paySQL += ` AND st.school_id = ?`
		payArgs = append(payArgs, *schoolID)
	}
	if from != nil {
		paySQL += ` AND p.payment_date >= ?`
		payArgs = append(payArgs, *from)
	}
	if to != nil {
		paySQL += ` AND p.payment_date <= ?`
		payArgs = append(payArgs, *to)
	}

	invSQL := `
SELECT st.school_id AS school_id, sc.name AS school_name,
       i.created_at AS created_at, i.amount AS amount
FROM invoices i
JOIN students st ON st.id = i.student_id
JOIN schools sc ON sc.id = st.school_id
WHERE i.status <> 'CANCELLED'`
	invArgs := []any{}
	if schoolID != nil {
		invSQL += ` AND st.school_id = ?`
		invArgs = append(invArgs, *schoolID)
	}
	if from != nil {
		invSQL += ` AND i.created_at >= ?`
		invArgs = append(invArgs, *from)
	}
	if to != nil {
		invSQL += ` AND i.created_at <= ?`
		invArgs = append(invArgs, *to)
	}

	var pays []paymentBucketScan
	if err := s.DB.WithContext(ctx).Raw(paySQL, payArgs...).Scan(&pays).Error; err != nil {
		return nil, err
	}
	var invs []invoiceBucketScan
	if err := s.DB.WithContext(ctx).Raw(invSQL, invArgs...).Scan(&invs).Error; err != nil {
		return nil, err
	}

	type key struct {
		school uuid.UUID
		month  string
	}
	byKey := map[key]*dto.MonthlyRevenueRow{}
	get := func(school uuid.UUID, name, month string) *dto.MonthlyRevenueRow {
		k := key{school: school, month: month}
		row, ok := byKey[k]
		if !ok {
			row = &dto.MonthlyRevenueRow{SchoolID: school, SchoolName: name, Month: month}
			byKey[k] = row
		}
		return row
	}
	for _, inv := range invs {
		row := get(inv.SchoolID, inv.SchoolName, inv.CreatedAt.Format("2006-01"))
		row.TotalInvoiced += inv.Amount
	}
	for _, pay := range pays {
		row := get(pay.SchoolID, pay.SchoolName, pay.PaymentDate.Format("2006-01"))
		row.TotalCollected += pay.Amount
		if row.PaymentCount == 0 || pay.Amount < row.MinPayment {
			row.MinPayment = pay.Amount
		}
		if pay.Amount > row.MaxPayment {
			row.MaxPayment = pay.Amount
		}
		row.PaymentCount++
	}

	rows := make([]dto.MonthlyRevenueRow, 0, len(byKey))
	for _, row := range byKey {
		row.TotalInvoiced = helper.RoundMoney(row.TotalInvoiced)
		if row.PaymentCount > 0 {
			row.AvgPayment = helper.RoundMoney(row.TotalCollected / float64(row.PaymentCount))
		}
		row.TotalCollected = helper.RoundMoney(row.TotalCollected)
		row.MinPayment = helper.RoundMoney(row.MinPayment)
		row.MaxPayment = helper.RoundMoney(row.MaxPayment)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(a, b int) bool {
		if rows[a].Month != rows[b].Month {
			return rows[a].Month < rows[b].Month
		}
		return rows[a].SchoolName < rows[b].SchoolName
	})
	return rows, nil
}

func (s *ReportService) scanPaymentBuckets(ctx context.Context, schoolID *uuid.UUID, from, to *time.Time) ([]paymentBucketScan, error) {
	sql := `
SELECT st.school_id AS school_id, sc.name AS school_name,
       p.payment_date AS payment_date, p.method AS method, p.amount AS amount
FROM payments p
JOIN invoices i ON i.id = p.invoice_id
JOIN students st ON st.id = i.student_id
JOIN schools sc ON sc.id = st.school_id
WHERE 1 = 1`
	args := []any{}
	if schoolID != nil {
		sql += ` AND st.school_id = ?`
		args = append(args, *schoolID)
	}
	if from != nil {
		sql += ` AND p.payment_date >= ?`
		args = append(args, *from)
	}
	if to != nil {
		sql += ` AND p.payment_date <= ?`
		args = append(args, *to)
	}

	var scans []paymentBucketScan
	if err := s.DB.WithContext(ctx).Raw(sql, args...).Scan(&scans).Error; err != nil {
		return nil, err
	}
	return scans, nil
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
