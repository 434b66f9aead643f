package entity

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// XrayPrediction is the classifier verdict stored on a scan.
type XrayPrediction string

const (
	PredictionNormal    XrayPrediction = "Normal"
	PredictionPneumonia XrayPrediction = "Pneumonia"
	PredictionUnclear   XrayPrediction = "Unclear"
)

func (p XrayPrediction) Valid() bool {
	switch p {
	case PredictionNormal, PredictionPneumonia, PredictionUnclear:
		return true
	}
	return false
}

func (p XrayPrediction) Value() (driver.Value, error) { return enumValue(p) }

// PredictionFromReport derives the verdict from the classifier report text.
// The match is case-sensitive and "Pneumonia" wins over "Normal".
func PredictionFromReport(report string) XrayPrediction {
	switch {
	case strings.Contains(report, "Pneumonia"):
		return PredictionPneumonia
	case strings.Contains(report, "Normal"):
		return PredictionNormal
	default:
		return PredictionUnclear
	}
}

// XrayStatus is the review state of a scan.
type XrayStatus string

const (
	XrayStatusPending  XrayStatus = "Pending"
	XrayStatusReviewed XrayStatus = "Reviewed"
)

func (s XrayStatus) Valid() bool {
	return s == XrayStatusPending || s == XrayStatusReviewed
}

func (s XrayStatus) Value() (driver.Value, error) { return enumValue(s) }

// Xray is one chest x-ray uploaded by a health worker for a patient. There is
// at most one scan per (patient, health worker) pair; a re-upload overwrites it.
type Xray struct {
	ID                  uint                `gorm:"column:scan_id;primaryKey;autoIncrement" json:"id"`
	PatientID           uint                `gorm:"not null;uniqueIndex:unique_xray,priority:1" json:"patient_id"`
	HealthWorkerID      uint                `gorm:"not null;uniqueIndex:unique_xray,priority:2" json:"health_worker_id"`
	ExpertID            *uint               `gorm:"index" json:"expert_id,omitempty"`
	ImagePath           string              `gorm:"type:varchar(300);not null" json:"image_path"`
	Prediction          XrayPrediction      `gorm:"column:ml_prediction;type:varchar(16);not null;default:'Unclear'" json:"prediction"`
	PneumoniaConfidence decimal.NullDecimal `gorm:"type:decimal(5,4)" json:"pneumonia_confidence"`
	Status              XrayStatus          `gorm:"type:varchar(16);not null;default:'Pending'" json:"status"`
	UploadedAt          time.Time           `gorm:"column:date_uploaded;not null;index" json:"uploaded_at"`
	ReviewedAt          *time.Time          `json:"reviewed_at,omitempty"`

	// Relationships
	Patient      Patient      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	HealthWorker HealthWorker `gorm:"foreignKey:HealthWorkerID" json:"health_worker,omitempty"`
	Expert       *Expert      `gorm:"foreignKey:ExpertID" json:"expert,omitempty"`
}

func (Xray) TableName() string {
	return "xray_scans"
}

// BeforeCreate applies the creation defaults of a scan.
func (x *Xray) BeforeCreate(tx *gorm.DB) error {
	if x.Prediction == "" {
		x.Prediction = PredictionUnclear
	}
	if x.Status == "" {
		x.Status = XrayStatusPending
	}
	if x.UploadedAt.IsZero() {
		x.UploadedAt = time.Now()
	}
	return nil
}

// MarkReviewed records the reviewing expert.
func (x *Xray) MarkReviewed(expertID uint, at time.Time) {
	x.Status = XrayStatusReviewed
	x.ExpertID = &expertID
	x.ReviewedAt = &at
}
