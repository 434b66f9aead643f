package dto

import "time"

// Request DTOs

type CreateTreatmentRequest struct {
	Priority              string `schema:"priority" validate:"required,oneof=High Medium Low"`
	DiagnosisSummary      string `schema:"diagnosis_summary" validate:"required"`
	DiagnosedAt           string `schema:"date_diagnosis" validate:"omitempty,datetime=2006-01-02"`
	PrescribedMedications string `schema:"prescribed_medications"`
	Duration              string `schema:"duration" validate:"omitempty,oneof=Days Weeks Months"`
	DosageFrequency       string `schema:"dosage_frequency" validate:"omitempty,oneof=Daily Weekly Monthly"`
}

// Response DTOs

type TreatmentResponse struct {
	ID                    uint       `json:"id"`
	PatientID             uint       `json:"patient_id"`
	ExpertID              uint       `json:"expert_id"`
	ExpertName            string     `json:"expert_name,omitempty"`
	Priority              string     `json:"priority"`
	DiagnosisSummary      string     `json:"diagnosis_summary"`
	DiagnosedAt           time.Time  `json:"diagnosed_at"`
	PrescribedAt          *time.Time `json:"prescribed_at,omitempty"`
	PrescribedMedications string     `json:"prescribed_medications,omitempty"`
	Duration              string     `json:"duration,omitempty"`
	DosageFrequency       string     `json:"dosage_frequency,omitempty"`
}
