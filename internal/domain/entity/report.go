package entity

import "time"

// Report is a free-text diagnostic write-up by an expert. AccountID is the
// account of the patient the report is about; there is at most one report
// per (account, expert) pair.
type Report struct {
	ID        uint      `gorm:"column:report_id;primaryKey;autoIncrement" json:"id"`
	PatientID uint      `gorm:"not null;index" json:"patient_id"`
	ExpertID  *uint     `gorm:"uniqueIndex:unique_report,priority:2" json:"expert_id,omitempty"`
	AccountID uint      `gorm:"column:user_id;not null;uniqueIndex:unique_report,priority:1" json:"account_id"`
	XrayID    *uint     `gorm:"index" json:"xray_id,omitempty"`
	Content   string    `gorm:"column:report_content;type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"column:date_created;autoCreateTime" json:"created_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Expert  *Expert `gorm:"foreignKey:ExpertID" json:"expert,omitempty"`
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
	Xray    *Xray   `gorm:"foreignKey:XrayID" json:"xray,omitempty"`
}

func (Report) TableName() string {
	return "diagnostic_reports"
}
