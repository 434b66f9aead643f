package converter

import (
	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"

	"github.com/samber/lo"
)

// XrayToResponse converts an Xray entity to XrayResponse DTO
func XrayToResponse(xray *entity.Xray) *dto.XrayResponse {
	if xray == nil {
		return nil
	}

	response := &dto.XrayResponse{
		ID:               xray.ID,
		PatientID:        xray.PatientID,
		PatientName:      xray.Patient.Name,
		HealthWorkerID:   xray.HealthWorkerID,
		HealthWorkerName: xray.HealthWorker.Name,
		ExpertID:         xray.ExpertID,
		ImagePath:        xray.ImagePath,
		Prediction:       string(xray.Prediction),
		Status:           string(xray.Status),
		UploadedAt:       xray.UploadedAt,
		ReviewedAt:       xray.ReviewedAt,
	}
	if xray.PneumoniaConfidence.Valid {
		response.PneumoniaConfidence = xray.PneumoniaConfidence.Decimal.StringFixed(4)
	}
	if xray.Expert != nil {
		response.ExpertName = xray.Expert.Name
	}
	return response
}

// XraysToResponses converts a slice of Xray entities to slice of XrayResponse DTOs
func XraysToResponses(xrays []entity.Xray) []dto.XrayResponse {
	return lo.Map(xrays, func(xray entity.Xray, _ int) dto.XrayResponse {
		return *XrayToResponse(&xray)
	})
}
