// internal/domain/payment/incident.go
package payment

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Incident is a post-payment bookkeeping step that failed and needs
// reconciling by hand
type Incident struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       int64     `gorm:"not null;index" json:"orderId"`
	UserID        int64     `gorm:"index" json:"userId"`
	Step          Step      `gorm:"size:32;not null" json:"step"`
	Gateway       Gateway   `gorm:"size:32" json:"gateway"`
	PaymentStatus string    `gorm:"size:8" json:"paymentStatus"`
	TransactionID string    `gorm:"size:128" json:"transactionId"`
	Error         string    `gorm:"type:text" json:"error"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TableName overrides the table name
func (Incident) TableName() string {
	return "payment_incidents"
}

// IncidentRepository stores incidents in postgres
type IncidentRepository struct {
	db *gorm.DB
}

// NewIncidentRepository creates a new incident repository
func NewIncidentRepository(db *gorm.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

// Record inserts an incident
func (r *IncidentRepository) Record(ctx context.Context, incident *Incident) error {
	if err := r.db.WithContext(ctx).Create(incident).Error; err != nil {
		return fmt.Errorf("failed to record payment incident: %w", err)
	}
	return nil
}

// NoopIncidentRecorder drops incidents; used when no database is configured
type NoopIncidentRecorder struct{}

// Record does nothing
func (NoopIncidentRecorder) Record(context.Context, *Incident) error { return nil }
