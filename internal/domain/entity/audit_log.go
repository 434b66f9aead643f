package entity

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID *uint          `gorm:"column:user_id;index" json:"account_id,omitempty"`
	Action    string         `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Common audit actions
const (
	AuditActionUserLogin       = "user.login"
	AuditActionUserLogout      = "user.logout"
	AuditActionPatientRegister = "patient.register"
	AuditActionStaffCreate     = "staff.create"
	AuditActionXrayUpload      = "xray.upload"
	AuditActionXrayReview      = "xray.review"
	AuditActionTreatmentCreate = "treatment.create"
	AuditActionReportCreate    = "report.create"
	AuditActionPatientStatus   = "patient.status"
	AuditActionPatientAssign   = "patient.assign"
)
