// file: internals/features/ai/collection/model/ai_request_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ==============================================
   MODEL — ai_request_logs
   Jejak audit pemakaian agent: endpoint mana, fallback atau provider,
   payload request/response mentah sebagai JSON.
============================================== */

type AIRequestLog struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Endpoint     string         `gorm:"column:endpoint;type:varchar(50);not null;index:ix_ai_request_logs_endpoint" json:"endpoint"`
	UsedFallback bool           `gorm:"column:used_fallback;not null;default:false" json:"used_fallback"`
	Payload      datatypes.JSON `gorm:"column:payload" json:"payload,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (AIRequestLog) TableName() string { return "ai_request_logs" }

func (m *AIRequestLog) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
