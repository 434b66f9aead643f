package converter

import (
	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"

	"github.com/samber/lo"
)

const dateLayout = "2006-01-02"

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:               patient.ID,
		AccountID:        patient.AccountID,
		Name:             patient.Name,
		Email:            patient.Email,
		Address:          patient.Address,
		Contact:          patient.Contact,
		NextOfKin:        patient.NextOfKin,
		NextOfKinContact: lo.FromPtr(patient.NextOfKinContact),
		DateOfBirth:      patient.DateOfBirth.Format(dateLayout),
		HealthStatus:     string(patient.HealthStatus),
		HealthWorkerID:   patient.HealthWorkerID,
	}
	if patient.HealthWorker != nil {
		response.HealthWorkerName = patient.HealthWorker.Name
	}
	return response
}

// PatientsToResponses converts a slice of Patient entities to slice of PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	return lo.Map(patients, func(patient entity.Patient, _ int) dto.PatientResponse {
		return *PatientToResponse(&patient)
	})
}
