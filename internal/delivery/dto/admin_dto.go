package dto

import (
	"encoding/json"
	"time"
)

// Request DTOs

type SearchRequest struct {
	Query string `schema:"q" validate:"max=100"`
	Role  string `schema:"role" validate:"omitempty,oneof=patient health_worker expert admin"`
}

// Response DTOs

type TableCount struct {
	Name string `json:"name"`
	Rows int64  `json:"rows"`
}

type DatabaseOverviewResponse struct {
	Tables []TableCount `json:"tables"`
}

type AdminDashboardResponse struct {
	Accounts      int64                  `json:"accounts"`
	Patients      int64                  `json:"patients"`
	Xrays         int64                  `json:"xrays"`
	Treatments    int64                  `json:"treatments"`
	Reports       int64                  `json:"reports"`
	HealthWorkers []HealthWorkerResponse `json:"health_workers"`
}

type SearchResponse struct {
	Query    string            `json:"query"`
	Accounts []AccountResponse `json:"accounts"`
	Patients []PatientResponse `json:"patients"`
}

// UserDetailResponse is an account with whichever role profile it holds.
type UserDetailResponse struct {
	Account       AccountResponse        `json:"account"`
	Patient       *PatientResponse       `json:"patient,omitempty"`
	HealthWorker  *HealthWorkerResponse  `json:"health_worker,omitempty"`
	Expert        *ExpertResponse        `json:"expert,omitempty"`
	Admin         *AdminResponse         `json:"admin,omitempty"`
	HealthWorkers []HealthWorkerResponse `json:"health_workers,omitempty"`
}

type AuditLogResponse struct {
	ID        int64           `json:"id"`
	Action    string          `json:"action"`
	Metadata  json.RawMessage `json:"metadata"`
	CreatedAt time.Time       `json:"created_at"`
}

type UserLogsResponse struct {
	Account AccountResponse    `json:"account"`
	Logs    []AuditLogResponse `json:"logs"`
}
