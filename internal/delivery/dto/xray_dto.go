package dto

import (
	"io"
	"time"
)

// Request DTOs

// UploadXrayRequest is the x-ray upload form. The file part is attached by
// the handler after decoding.
type UploadXrayRequest struct {
	PatientID   string    `schema:"patient_id"`
	File        io.Reader `schema:"-"`
	Filename    string    `schema:"-"`
	ContentType string    `schema:"-"`
	Size        int64     `schema:"-"`
}

// Response DTOs

type XrayResponse struct {
	ID                  uint       `json:"id"`
	PatientID           uint       `json:"patient_id"`
	PatientName         string     `json:"patient_name,omitempty"`
	HealthWorkerID      uint       `json:"health_worker_id"`
	HealthWorkerName    string     `json:"health_worker_name,omitempty"`
	ExpertID            *uint      `json:"expert_id,omitempty"`
	ExpertName          string     `json:"expert_name,omitempty"`
	ImagePath           string     `json:"image_path"`
	Prediction          string     `json:"prediction"`
	PneumoniaConfidence string     `json:"pneumonia_confidence,omitempty"`
	Status              string     `json:"status"`
	UploadedAt          time.Time  `json:"uploaded_at"`
	ReviewedAt          *time.Time `json:"reviewed_at,omitempty"`
}

// XrayAnalysisResponse is shown after an upload: the stored scan and the
// classifier's report.
type XrayAnalysisResponse struct {
	Xray    XrayResponse `json:"xray"`
	Report  string       `json:"report"`
	Updated bool         `json:"updated"`
}

type PatientXraysResponse struct {
	Patient PatientResponse `json:"patient"`
	Xrays   []XrayResponse  `json:"xrays"`
}
