// Package access holds the role policy of every gated operation.
package access

import "github.com/Syeddabbas07/chest-ray/internal/domain/entity"

// Operation names a gated action exposed by the HTTP layer.
type Operation string

const (
	PatientDashboard     Operation = "patient.dashboard"
	PatientHealthTips    Operation = "patient.health_tips"
	PatientPrescriptions Operation = "patient.prescriptions"
	PatientXrays         Operation = "patient.xrays"
	PatientReports       Operation = "patient.reports"
	PatientSupport       Operation = "patient.support"

	HealthWorkerDashboard       Operation = "health_worker.dashboard"
	HealthWorkerProfile         Operation = "health_worker.profile"
	HealthWorkerRecords         Operation = "health_worker.records"
	HealthWorkerUploadXray      Operation = "health_worker.upload_xray"
	HealthWorkerRegisterPatient Operation = "health_worker.register_patient"
	XrayAnalysis                Operation = "xray.analysis"

	ExpertDashboard     Operation = "expert.dashboard"
	ExpertPatients      Operation = "expert.patients"
	ExpertXrays         Operation = "expert.xrays"
	ExpertReports       Operation = "expert.reports"
	ExpertTreatment     Operation = "expert.treatment"
	ExpertPatientStatus Operation = "expert.patient_status"

	AdminDashboard    Operation = "admin.dashboard"
	AdminDatabase     Operation = "admin.database"
	AdminUsers        Operation = "admin.users"
	AdminSearch       Operation = "admin.search"
	AdminEditUser     Operation = "admin.edit_user"
	AdminUserLogs     Operation = "admin.user_logs"
	AdminCreateStaff  Operation = "admin.create_staff"
	AdminAssignWorker Operation = "admin.assign_worker"

	PatientList Operation = "patient.list"
	XrayImage   Operation = "xray.image"
)

var policy = map[Operation][]entity.Role{
	PatientDashboard:     {entity.RolePatient},
	PatientHealthTips:    {entity.RolePatient},
	PatientPrescriptions: {entity.RolePatient},
	PatientXrays:         {entity.RolePatient},
	PatientReports:       {entity.RolePatient},
	PatientSupport:       {entity.RolePatient},

	HealthWorkerDashboard:       {entity.RoleHealthWorker},
	HealthWorkerProfile:         {entity.RoleHealthWorker},
	HealthWorkerRecords:         {entity.RoleHealthWorker},
	HealthWorkerUploadXray:      {entity.RoleHealthWorker},
	HealthWorkerRegisterPatient: {entity.RoleHealthWorker},
	XrayAnalysis:                {entity.RoleHealthWorker},

	ExpertDashboard:     {entity.RoleExpert},
	ExpertPatients:      {entity.RoleExpert},
	ExpertXrays:         {entity.RoleExpert},
	ExpertReports:       {entity.RoleExpert},
	ExpertTreatment:     {entity.RoleExpert},
	ExpertPatientStatus: {entity.RoleExpert},

	AdminDashboard:    {entity.RoleAdmin},
	AdminDatabase:     {entity.RoleAdmin},
	AdminUsers:        {entity.RoleAdmin},
	AdminSearch:       {entity.RoleAdmin},
	AdminEditUser:     {entity.RoleAdmin},
	AdminUserLogs:     {entity.RoleAdmin},
	AdminCreateStaff:  {entity.RoleAdmin},
	AdminAssignWorker: {entity.RoleAdmin},

	PatientList: {entity.RoleAdmin, entity.RoleExpert},
	XrayImage:   {entity.RoleHealthWorker, entity.RoleExpert, entity.RoleAdmin},
}

// Allowed reports whether role may perform op. Unknown operations and
// unknown roles are denied.
func Allowed(role entity.Role, op Operation) bool {
	for _, r := range policy[op] {
		if r == role {
			return true
		}
	}
	return false
}

// Operations returns every operation known to the policy.
func Operations() []Operation {
	ops := make([]Operation, 0, len(policy))
	for op := range policy {
		ops = append(ops, op)
	}
	return ops
}

// Dashboard returns the landing page of a role.
func Dashboard(role entity.Role) string {
	switch role {
	case entity.RoleHealthWorker:
		return "/health_worker/dashboard"
	case entity.RoleExpert:
		return "/expert/dashboard"
	case entity.RoleAdmin:
		return "/admin/dashboard"
	default:
		return "/patient/dashboard"
	}
}
