package dto

// Request DTOs

type CreateHealthWorkerRequest struct {
	Login            string `schema:"username" validate:"required,max=150"`
	Password         string `schema:"password" validate:"required,min=6"`
	Name             string `schema:"name" validate:"required,max=150"`
	AppointedCountry string `schema:"appointed_country" validate:"required,max=100"`
	AppointedClinic  string `schema:"appointed_clinic" validate:"required,max=100"`
	ContactDetails   string `schema:"contact_details" validate:"required,max=200"`
}

type CreateExpertRequest struct {
	Login          string `schema:"username" validate:"required,max=150"`
	Password       string `schema:"password" validate:"required,min=6"`
	Name           string `schema:"name" validate:"required,max=150"`
	ContactDetails string `schema:"contact_details" validate:"required,max=200"`
	Speciality     string `schema:"speciality" validate:"required,max=150"`
	Country        string `schema:"country" validate:"required,max=100"`
	Clinic         string `schema:"clinic" validate:"required,max=100"`
}

type CreateAdminRequest struct {
	Login          string `schema:"username" validate:"required,max=150"`
	Password       string `schema:"password" validate:"required,min=6"`
	ContactDetails string `schema:"contact_details" validate:"required,max=200"`
}

// Response DTOs

type HealthWorkerResponse struct {
	ID               uint   `json:"id"`
	AccountID        uint   `json:"account_id"`
	Login            string `json:"login,omitempty"`
	Name             string `json:"name"`
	AppointedCountry string `json:"appointed_country"`
	AppointedClinic  string `json:"appointed_clinic"`
	ContactDetails   string `json:"contact_details"`
}

type ExpertResponse struct {
	ID             uint   `json:"id"`
	AccountID      uint   `json:"account_id"`
	Login          string `json:"login,omitempty"`
	Name           string `json:"name"`
	ContactDetails string `json:"contact_details"`
	Speciality     string `json:"speciality"`
	Country        string `json:"country"`
	Clinic         string `json:"clinic"`
}

type AdminResponse struct {
	ID             uint   `json:"id"`
	AccountID      uint   `json:"account_id"`
	ContactDetails string `json:"contact_details"`
}

// HealthWorkerDashboardResponse backs the health worker pages.
type HealthWorkerDashboardResponse struct {
	Profile  HealthWorkerResponse `json:"profile"`
	Patients []PatientResponse    `json:"patients"`
}

// ExpertDashboardResponse backs the expert landing page.
type ExpertDashboardResponse struct {
	Profile      ExpertResponse    `json:"profile"`
	Patients     []PatientResponse `json:"patients"`
	PendingXrays []XrayResponse    `json:"pending_xrays"`
}
