package dto

// Request DTOs

type UpdateHealthStatusRequest struct {
	HealthStatus string `schema:"health_status" validate:"required"`
}

type AssignHealthWorkerRequest struct {
	HealthWorkerID uint `schema:"health_worker_id" validate:"required,gt=0"`
}

// Response DTOs

type PatientResponse struct {
	ID               uint   `json:"id"`
	AccountID        uint   `json:"account_id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Address          string `json:"address,omitempty"`
	Contact          string `json:"contact,omitempty"`
	NextOfKin        string `json:"next_of_kin,omitempty"`
	NextOfKinContact string `json:"next_of_kin_contact,omitempty"`
	DateOfBirth      string `json:"date_of_birth"`
	HealthStatus     string `json:"health_status"`
	HealthWorkerID   *uint  `json:"health_worker_id,omitempty"`
	HealthWorkerName string `json:"health_worker_name,omitempty"`
}

// PatientRecordResponse is a patient with everything recorded about them.
type PatientRecordResponse struct {
	Patient    PatientResponse     `json:"patient"`
	Xrays      []XrayResponse      `json:"xrays"`
	Treatments []TreatmentResponse `json:"treatments"`
	Reports    []ReportResponse    `json:"reports"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
