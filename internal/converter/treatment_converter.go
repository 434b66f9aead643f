package converter

import (
	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"

	"github.com/samber/lo"
)

// TreatmentToResponse converts a Treatment entity to TreatmentResponse DTO
func TreatmentToResponse(treatment *entity.Treatment) *dto.TreatmentResponse {
	if treatment == nil {
		return nil
	}

	return &dto.TreatmentResponse{
		ID:                    treatment.ID,
		PatientID:             treatment.PatientID,
		ExpertID:              treatment.ExpertID,
		ExpertName:            treatment.Expert.Name,
		Priority:              string(treatment.Priority),
		DiagnosisSummary:      treatment.DiagnosisSummary,
		DiagnosedAt:           treatment.DiagnosedAt,
		PrescribedAt:          treatment.PrescribedAt,
		PrescribedMedications: lo.FromPtr(treatment.PrescribedMedications),
		Duration:              string(lo.FromPtr(treatment.Duration)),
		DosageFrequency:       string(lo.FromPtr(treatment.DosageFrequency)),
	}
}

// TreatmentsToResponses converts a slice of Treatment entities to slice of TreatmentResponse DTOs
func TreatmentsToResponses(treatments []entity.Treatment) []dto.TreatmentResponse {
	return lo.Map(treatments, func(treatment entity.Treatment, _ int) dto.TreatmentResponse {
		return *TreatmentToResponse(&treatment)
	})
}

// ReportToResponse converts a Report entity to ReportResponse DTO
func ReportToResponse(report *entity.Report) *dto.ReportResponse {
	if report == nil {
		return nil
	}

	response := &dto.ReportResponse{
		ID:        report.ID,
		PatientID: report.PatientID,
		ExpertID:  report.ExpertID,
		XrayID:    report.XrayID,
		Content:   report.Content,
		CreatedAt: report.CreatedAt,
	}
	if report.Expert != nil {
		response.ExpertName = report.Expert.Name
	}
	return response
}

// ReportsToResponses converts a slice of Report entities to slice of ReportResponse DTOs
func ReportsToResponses(reports []entity.Report) []dto.ReportResponse {
	return lo.Map(reports, func(report entity.Report, _ int) dto.ReportResponse {
		return *ReportToResponse(&report)
	})
}
