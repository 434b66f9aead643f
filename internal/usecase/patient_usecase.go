package usecase

import (
	"context"
	"errors"

	"github.com/Syeddabbas07/chest-ray/internal/converter"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
)

type PatientUsecase interface {
	// GetRecord returns the signed-in patient's own record.
	GetRecord(ctx context.Context, accountID uint) (*dto.PatientRecordResponse, error)
	ListPatients(ctx context.Context) (*dto.PatientListResponse, error)
}

type patientUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	patientRepo   repository.PatientRepository
	xrayRepo      repository.XrayRepository
	treatmentRepo repository.TreatmentRepository
	reportRepo    repository.ReportRepository
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	xrayRepo repository.XrayRepository,
	treatmentRepo repository.TreatmentRepository,
	reportRepo repository.ReportRepository,
) PatientUsecase {
	return &patientUsecase{
		db:            db,
		log:           log,
		patientRepo:   patientRepo,
		xrayRepo:      xrayRepo,
		treatmentRepo: treatmentRepo,
		reportRepo:    reportRepo,
	}
}

func (u *patientUsecase) GetRecord(ctx context.Context, accountID uint) (*dto.PatientRecordResponse, error) {
	patient, err := u.patientRepo.FindByAccountID(ctx, u.db, accountID)
	if err != nil {
		u.log.Warnf("Failed to find patient by account: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return loadPatientRecord(ctx, u.db, u.log, patient, u.xrayRepo, u.treatmentRepo, u.reportRepo)
}

func (u *patientUsecase) ListPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}

	responses := converter.PatientsToResponses(patients)
	return &dto.PatientListResponse{
		Patients: responses,
		Total:    len(responses),
	}, nil
}
