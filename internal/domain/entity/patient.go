package entity

import (
	"time"

	"gorm.io/gorm"
)

// Patient is the clinical record of a patient. It is created together with
// its account and may later be assigned to a health worker.
type Patient struct {
	ID               uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID        uint         `gorm:"column:user_id;uniqueIndex;not null" json:"account_id"`
	Name             string       `gorm:"type:varchar(150);not null" json:"name"`
	Email            string       `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	Address          string       `gorm:"type:varchar(300)" json:"address,omitempty"`
	Contact          string       `gorm:"type:varchar(200)" json:"contact,omitempty"`
	NextOfKin        string       `gorm:"type:varchar(200)" json:"next_of_kin,omitempty"`
	NextOfKinContact *string      `gorm:"type:varchar(200);uniqueIndex" json:"next_of_kin_contact,omitempty"`
	DateOfBirth      time.Time    `gorm:"column:dob;type:date;not null" json:"date_of_birth"`
	HealthStatus     HealthStatus `gorm:"type:varchar(32);not null;default:'Stable'" json:"health_status"`
	HealthWorkerID   *uint        `gorm:"column:clinician_id;index" json:"health_worker_id,omitempty"`

	// Relationships
	Account      Account       `gorm:"foreignKey:AccountID" json:"-"`
	HealthWorker *HealthWorker `gorm:"foreignKey:HealthWorkerID" json:"health_worker,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// BeforeCreate applies the creation defaults of a clinical record.
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.HealthStatus == "" {
		p.HealthStatus = HealthStatusStable
	}
	return nil
}
