// file: internals/features/ai/collection/service/collection_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"mattilda_backend/internals/configs"
	"mattilda_backend/internals/domain"
	"mattilda_backend/internals/features/ai/collection/dto"
	"mattilda_backend/internals/features/ai/collection/model"
	schoolModel "mattilda_backend/internals/features/school/schools/model"
)

/* =======================================================================
   SERVICE — AI collection agent
   Provider (OpenAI) dipakai kalau dikonfigurasi; kalau tidak, atau
   panggilan gagal, jatuh ke skor rule-based deterministik. Semua
   request dicatat ke ai_request_logs.
======================================================================= */

type CollectionService struct {
	DB     *gorm.DB
	Client *OpenAIClient
}

func NewCollectionService(db *gorm.DB, cfg *configs.AppConfig) *CollectionService {
	return &CollectionService{
		DB:     db,
		Client: NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel),
	}
}

/* ===================== METRICS ===================== */

type schoolMetrics struct {
	TotalInvoices    int64
	OverdueInvoices  int64
	PendingInvoices  int64
	PaidInvoices     int64
	TotalPayments    int64
	LatePayments     int64
	TotalOutstanding float64
}

func (m schoolMetrics) overdueRatio() float64 {
	if m.TotalInvoices == 0 {
		return 0
	}
	return float64(m.OverdueInvoices) / float64(m.TotalInvoices)
}

func (m schoolMetrics) pendingRatio() float64 {
	if m.TotalInvoices == 0 {
		return 0
	}
	return float64(m.PendingInvoices) / float64(m.TotalInvoices)
}

func (m schoolMetrics) latePaymentRatio() float64 {
	if m.TotalPayments == 0 {
		return 0
	}
	return float64(m.LatePayments) / float64(m.TotalPayments)
}

func (s *CollectionService) loadSchoolMetrics(ctx context.Context, schoolID uuid.UUID) (*schoolMetrics, error) {
	var m schoolMetrics

	row := s.DB.WithContext(ctx).Raw(`
SELECT
  COUNT(CASE WHEN i.status <> 'CANCELLED' THEN i.id END)  AS total_invoices,
  COUNT(CASE WHEN i.status = 'OVERDUE' THEN i.id END)     AS overdue_invoices,
  COUNT(CASE WHEN i.status = 'PENDING' THEN i.id END)     AS pending_invoices,
  COUNT(CASE WHEN i.status = 'PAID' THEN i.id END)        AS paid_invoices,
  COALESCE(SUM(CASE WHEN i.status IN ('PENDING','PARTIAL','OVERDUE')
    THEN i.amount - COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.invoice_id = i.id), 0)
    END), 0)                                              AS total_outstanding
FROM invoices i
JOIN students st ON st.id = i.student_id
WHERE st.school_id = ?`, schoolID).Row()
	if err := row.Scan(&m.TotalInvoices, &m.OverdueInvoices, &m.PendingInvoices, &m.PaidInvoices, &m.TotalOutstanding); err != nil {
		return nil, err
	}

	payRow := s.DB.WithContext(ctx).Raw(`
SELECT COUNT(p.id) AS total_payments,
       COUNT(CASE WHEN p.payment_date > i.due_date THEN p.id END) AS late_payments
FROM payments p
JOIN invoices i ON i.id = p.invoice_id
JOIN students st ON st.id = i.student_id
WHERE st.school_id = ?`, schoolID).Row()
	if err := payRow.Scan(&m.TotalPayments, &m.LatePayments); err != nil {
		return nil, err
	}

	return &m, nil
}

/* ===================== FALLBACK SCORING ===================== */

type riskAssessment struct {
	RiskScore          int      `json:"risk_score"`
	RiskLevel          string   `json:"risk_level"`
	PaymentProbability float64  `json:"payment_probability"`
	Factors            []string `json:"factors"`
	Recommendations    []string `json:"recommendations"`
}

// fallbackRisk menilai risiko tanpa model: tiga rasio, ambang tetap.
func fallbackRisk(m *schoolMetrics) riskAssessment {
	score := 0
	factors := []string{}

	switch or := m.overdueRatio(); {
	case or > 0.5:
		score += 40
		factors = append(factors, fmt.Sprintf("More than half of invoices are overdue (%.0f%%)", or*100))
	case or > 0.2:
		score += 25
		factors = append(factors, fmt.Sprintf("Significant share of invoices is overdue (%.0f%%)", or*100))
	default:
		score += 10
	}

	switch lr := m.latePaymentRatio(); {
	case lr > 0.5:
		score += 30
		factors = append(factors, fmt.Sprintf("Most payments arrive after the due date (%.0f%%)", lr*100))
	case lr > 0.2:
		score += 15
		factors = append(factors, fmt.Sprintf("Late payments are common (%.0f%%)", lr*100))
	}

	if pr := m.pendingRatio(); pr > 0.7 {
		score += 20
		factors = append(factors, fmt.Sprintf("Large backlog of unpaid invoices (%.0f%%)", pr*100))
	}

	level := "LOW"
	switch {
	case score >= 70:
		level = "CRITICAL"
	case score >= 50:
		level = "HIGH"
	case score >= 30:
		level = "MEDIUM"
	}

	probability := 1 - float64(score)/100
	if probability < 0.1 {
		probability = 0.1
	}

	recs := recommendationsForLevel(level)
	return riskAssessment{
		RiskScore:          score,
		RiskLevel:          level,
		PaymentProbability: probability,
		Factors:            factors,
		Recommendations:    recs,
	}
}

func recommendationsForLevel(level string) []string {
	switch level {
	case "CRITICAL":
		return []string{
			"Escalate to a dedicated collections workflow immediately",
			"Contact guardians of all overdue accounts this week",
			"Offer structured payment plans before balances grow",
		}
	case "HIGH":
		return []string{
			"Send payment reminders for all overdue invoices",
			"Review the largest outstanding balances individually",
		}
	case "MEDIUM":
		return []string{
			"Schedule reminder notices ahead of upcoming due dates",
			"Monitor overdue ratio weekly",
		}
	default:
		return []string{"Maintain the current billing cadence"}
	}
}

/* ===================== OPERATIONS ===================== */

// AssessRisk menilai risiko penagihan satu school.
func (s *CollectionService) AssessRisk(ctx context.Context, schoolID uuid.UUID) (*dto.RiskAssessmentResponse, error) {
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

	assessment, usedFallback := s.assessWithProvider(ctx, &school, metrics)

	s.logRequest(ctx, "assess_risk", usedFallback, map[string]any{
		"school_id":   schoolID.String(),
		"risk_score":  assessment.RiskScore,
		"risk_level":  assessment.RiskLevel,
		"total":       metrics.TotalInvoices,
		"overdue":     metrics.OverdueInvoices,
		"outstanding": metrics.TotalOutstanding,
	})

	return &dto.RiskAssessmentResponse{
		SchoolID:           school.ID,
		SchoolName:         school.Name,
		RiskScore:          assessment.RiskScore,
		RiskLevel:          assessment.RiskLevel,
		PaymentProbability: assessment.PaymentProbability,
		Factors:            assessment.Factors,
		Recommendations:    assessment.Recommendations,
		UsedFallback:       usedFallback,
	}, nil
}

func (s *CollectionService) assessWithProvider(ctx context.Context, school *schoolModel.School, m *schoolMetrics) (riskAssessment, bool) {
	if !s.Client.Configured() {
		return fallbackRisk(m), true
	}

	system := "You are a collections analyst for school tuition billing. " +
		"Answer with a single JSON object: risk_score (0-100 int), risk_level " +
		"(LOW|MEDIUM|HIGH|CRITICAL), payment_probability (0-1), factors " +
		"(array of strings), recommendations (array of strings)."
	user := fmt.Sprintf(
		"School %q. Invoices: %d total, %d overdue, %d pending, %d paid. "+
			"Payments: %d total, %d late. Outstanding balance: %.2f.",
		school.Name, m.TotalInvoices, m.OverdueInvoices, m.PendingInvoices,
		m.PaidInvoices, m.TotalPayments, m.LatePayments, m.TotalOutstanding)

	raw, err := s.Client.ChatJSON(ctx, system, user)
	if err != nil {
		log.Printf("⚠️ AI provider error, pakai fallback: %v", err)
		return fallbackRisk(m), true
	}

	var out riskAssessment
	if err := json.Unmarshal([]byte(raw), &out); err != nil || !validRiskLevel(out.RiskLevel) {
		log.Printf("⚠️ Jawaban AI tidak valid, pakai fallback")
		return fallbackRisk(m), true
	}
	if out.RiskScore < 0 {
		out.RiskScore = 0
	}
	if out.RiskScore > 100 {
		out.RiskScore = 100
	}
	return out, false
}

func validRiskLevel(level string) bool {
	switch level {
	case "LOW", "MEDIUM", "HIGH", "CRITICAL":
		return true
	}
	return false
}

// Ask menjawab pertanyaan bebas seputar penagihan; di luar topik ditolak.
func (s *CollectionService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	if !IsOnTopic(req.Question) {
		s.logRequest(ctx, "ask", false, map[string]any{
			"question": req.Question,
			"on_topic": false,
		})
		return &dto.AskResponse{Answer: offTopicAnswer, OnTopic: false}, nil
	}

	contextNote := ""
	if req.SchoolID != nil {
		var school schoolModel.School
		if err := s.DB.WithContext(ctx).First(&school, "id = ?", *req.SchoolID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.NewEntityNotFound("School", req.SchoolID.String())
			}
			return nil, err
		}
		m, err := s.loadSchoolMetrics(ctx, *req.SchoolID)
		if err != nil {
			return nil, err
		}
		contextNote = fmt.Sprintf(
			"Context for school %q: %d invoices (%d overdue, %d pending, %d paid), "+
				"%d payments (%d late), outstanding %.2f.",
			school.Name, m.TotalInvoices, m.OverdueInvoices, m.PendingInvoices,
			m.PaidInvoices, m.TotalPayments, m.LatePayments, m.TotalOutstanding)
	}

	answer, usedFallback := s.answerWithProvider(ctx, req.Question, contextNote)

	s.logRequest(ctx, "ask", usedFallback, map[string]any{
		"question": req.Question,
		"on_topic": true,
	})

	return &dto.AskResponse{Answer: answer, OnTopic: true, UsedFallback: usedFallback}, nil
}

func (s *CollectionService) answerWithProvider(ctx context.Context, question, contextNote string) (string, bool) {
	if s.Client.Configured() {
		system := "You are a concise assistant for school billing and collections. " +
			"Only discuss invoices, payments, overdue balances, and collection strategy."
		user := question
		if contextNote != "" {
			user = contextNote + "\n\n" + question
		}
		if answer, err := s.Client.Chat(ctx, system, user); err == nil {
			return answer, false
		}
		log.Printf("⚠️ AI provider error, pakai jawaban fallback")
	}

	var b strings.Builder
	b.WriteString("AI provider is unavailable, answering from ledger data only. ")
	if contextNote != "" {
		b.WriteString(contextNote)
		b.WriteString(" ")
	}
	b.WriteString("Use the reports endpoints (student balance, school summary, overdue invoices) for the detailed breakdown.")
	return b.String(), true
}

func (s *CollectionService) logRequest(ctx context.Context, endpoint string, usedFallback bool, payload map[string]any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	entry := &model.AIRequestLog{
		Endpoint:     endpoint,
		UsedFallback: usedFallback,
		Payload:      datatypes.JSON(raw),
	}
	if err := s.DB.WithContext(ctx).Create(entry).Error; err != nil {
		log.Printf("⚠️ Gagal menulis ai_request_log: %v", err)
	}
}
