package access

import (
	"testing"

	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		role    entity.Role
		op      Operation
		allowed bool
	}{
		{entity.RolePatient, PatientDashboard, true},
		{entity.RoleHealthWorker, PatientDashboard, false},
		{entity.RoleHealthWorker, HealthWorkerUploadXray, true},
		{entity.RoleExpert, HealthWorkerUploadXray, false},
		{entity.RoleExpert, ExpertTreatment, true},
		{entity.RoleAdmin, ExpertTreatment, false},
		{entity.RoleAdmin, AdminAssignWorker, true},
		{entity.RoleExpert, PatientList, true},
		{entity.RoleAdmin, PatientList, true},
		{entity.RolePatient, PatientList, false},
		{entity.RoleHealthWorker, PatientList, false},
		{entity.RolePatient, XrayImage, false},
		{entity.Role("superuser"), AdminDashboard, false},
		{entity.RoleAdmin, Operation("admin.unknown"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.op), func(t *testing.T) {
			assert.Equal(t, tt.allowed, Allowed(tt.role, tt.op))
		})
	}
}

func TestEveryOperationHasAnOwner(t *testing.T) {
	for _, op := range Operations() {
		owners := 0
		for _, role := range entity.Roles {
			if Allowed(role, op) {
				owners++
			}
		}
		assert.Positive(t, owners, op)
	}
}

func TestDashboard(t *testing.T) {
	assert.Equal(t, "/patient/dashboard", Dashboard(entity.RolePatient))
	assert.Equal(t, "/health_worker/dashboard", Dashboard(entity.RoleHealthWorker))
	assert.Equal(t, "/expert/dashboard", Dashboard(entity.RoleExpert))
	assert.Equal(t, "/admin/dashboard", Dashboard(entity.RoleAdmin))
}
