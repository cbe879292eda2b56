// file: internals/features/ai/collection/dto/collection_dto.go
package dto

import (
	"github.com/google/uuid"
)

/* ===================== REQUESTS ===================== */

type AskRequest struct {
	Question string     `json:"question" validate:"required,min=3,max=2000"`
	SchoolID *uuid.UUID `json:"school_id"`
}

type CollectionMessageRequest struct {
	InvoiceID uuid.UUID `json:"invoice_id" validate:"required"`
	Tone      string    `json:"tone" validate:"required,oneof=FRIENDLY FORMAL URGENT FINAL_NOTICE"`
	Channel   string    `json:"channel" validate:"required,oneof=EMAIL SMS WHATSAPP"`
}

/* ===================== RESPONSES ===================== */

type AskResponse struct {
	Answer       string `json:"answer"`
	OnTopic      bool   `json:"on_topic"`
	UsedFallback bool   `json:"used_fallback"`
}

type CollectionMessageResponse struct {
	InvoiceID     uuid.UUID `json:"invoice_id"`
	StudentName   string    `json:"student_name"`
	SchoolName    string    `json:"school_name"`
	Tone          string    `json:"tone"`
	Channel       string    `json:"channel"`
	Subject       string    `json:"subject,omitempty"`
	Message       string    `json:"message"`
	PendingAmount float64   `json:"pending_amount"`
	UsedFallback  bool      `json:"used_fallback"`
}

type ExecutiveSummaryResponse struct {
	SchoolID     uuid.UUID `json:"school_id"`
	SchoolName   string    `json:"school_name"`
	Summary      string    `json:"summary"`
	RiskLevel    string    `json:"risk_level"`
	UsedFallback bool      `json:"used_fallback"`
}

type RiskAssessmentResponse struct {
	SchoolID           uuid.UUID `json:"school_id"`
	SchoolName         string    `json:"school_name"`
	RiskScore          int       `json:"risk_score"`
	RiskLevel          string    `json:"risk_level"`
	PaymentProbability float64   `json:"payment_probability"`
	Factors            []string  `json:"factors"`
	Recommendations    []string  `json:"recommendations"`
	UsedFallback       bool      `json:"used_fallback"`
}
