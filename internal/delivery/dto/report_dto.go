package dto

import "time"

// Request DTOs

type CreateReportRequest struct {
	Content string `schema:"report_content" validate:"required,max=10000"`
}

// Response DTOs

type ReportResponse struct {
	ID         uint      `json:"id"`
	PatientID  uint      `json:"patient_id"`
	ExpertID   *uint     `json:"expert_id,omitempty"`
	ExpertName string    `json:"expert_name,omitempty"`
	XrayID     *uint     `json:"xray_id,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReportFormResponse backs the expert's report page for one scan.
type ReportFormResponse struct {
	Xray           XrayResponse    `json:"xray"`
	Patient        PatientResponse `json:"patient"`
	ExistingReport *ReportResponse `json:"existing_report,omitempty"`
}
