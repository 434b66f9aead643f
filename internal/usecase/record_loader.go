package usecase

import (
	"context"

	"github.com/Syeddabbas07/chest-ray/internal/converter"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	"github.com/Syeddabbas07/chest-ray/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// loadPatientRecord gathers a patient's scans (newest first), treatments
// and reports.
func loadPatientRecord(
	ctx context.Context,
	db *gorm.DB,
	log *logrus.Logger,
	patient *entity.Patient,
	xrayRepo repository.XrayRepository,
	treatmentRepo repository.TreatmentRepository,
	reportRepo repository.ReportRepository,
) (*dto.PatientRecordResponse, error) {
	xrays, err := xrayRepo.FindByPatientID(ctx, db, patient.ID)
	if err != nil {
		log.Warnf("Failed to find x-rays of patient: %+v", err)
		return nil, err
	}

	treatments, err := treatmentRepo.FindByPatientID(ctx, db, patient.ID)
	if err != nil {
		log.Warnf("Failed to find treatments of patient: %+v", err)
		return nil, err
	}

	reports, err := reportRepo.FindByPatientID(ctx, db, patient.ID)
	if err != nil {
		log.Warnf("Failed to find reports of patient: %+v", err)
		return nil, err
	}

	return &dto.PatientRecordResponse{
		Patient:    *converter.PatientToResponse(patient),
		Xrays:      converter.XraysToResponses(xrays),
		Treatments: converter.TreatmentsToResponses(treatments),
		Reports:    converter.ReportsToResponses(reports),
	}, nil
}
