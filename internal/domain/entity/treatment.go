package entity

import "time"

// Treatment is a prescription written by an expert for a patient. There is
// at most one treatment per (patient, expert) pair.
type Treatment struct {
	ID                    uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID             uint             `gorm:"not null;uniqueIndex:unique_treatment,priority:1" json:"patient_id"`
	ExpertID              uint             `gorm:"not null;uniqueIndex:unique_treatment,priority:2" json:"expert_id"`
	Priority              Priority         `gorm:"type:varchar(16);not null" json:"priority"`
	DiagnosisSummary      string           `gorm:"type:text;not null" json:"diagnosis_summary"`
	DiagnosedAt           time.Time        `gorm:"column:date_diagnosis;not null" json:"diagnosed_at"`
	PrescribedAt          *time.Time       `gorm:"column:date_treatment_prescribed" json:"prescribed_at,omitempty"`
	PrescribedMedications *string          `gorm:"type:text" json:"prescribed_medications,omitempty"`
	Duration              *Duration        `gorm:"type:varchar(16)" json:"duration,omitempty"`
	DosageFrequency       *DosageFrequency `gorm:"type:varchar(16)" json:"dosage_frequency,omitempty"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Expert  Expert  `gorm:"foreignKey:ExpertID" json:"expert,omitempty"`
}

func (Treatment) TableName() string {
	return "treatments"
}
