package usecase

import (
	"context"
	"errors"

	"github.com/Syeddabbas07/chest-ray/internal/converter"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	"github.com/Syeddabbas07/chest-ray/internal/domain/repository"
	"github.com/Syeddabbas07/chest-ray/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrHealthWorkerNotFound = errors.New("health worker profile not found")
)

type HealthWorkerUsecase interface {
	GetDashboard(ctx context.Context, accountID uint) (*dto.HealthWorkerDashboardResponse, error)
	// RegisterPatient registers a patient on behalf of the signed-in health
	// worker and assigns the patient to them.
	RegisterPatient(ctx context.Context, accountID uint, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error)
}

type healthWorkerUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	healthWorkerRepo repository.HealthWorkerRepository
	patientRepo      repository.PatientRepository
	registrar        *patientRegistrar
}

func NewHealthWorkerUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	healthWorkerRepo repository.HealthWorkerRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) HealthWorkerUsecase {
	return &healthWorkerUsecase{
		db:               db,
		log:              log,
		healthWorkerRepo: healthWorkerRepo,
		patientRepo:      patientRepo,
		registrar:        newPatientRegistrar(db, log, accountRepo, patientRepo, auditService),
	}
}

func (u *healthWorkerUsecase) GetDashboard(ctx context.Context, accountID uint) (*dto.HealthWorkerDashboardResponse, error) {
	profile, err := u.profile(ctx, accountID)
	if err != nil {
		return nil, err
	}

	patients, err := u.patientRepo.FindByHealthWorkerID(ctx, u.db, profile.ID)
	if err != nil {
		u.log.Warnf("Failed to find patients of health worker: %+v", err)
		return nil, err
	}

	return &dto.HealthWorkerDashboardResponse{
		Profile:  *converter.HealthWorkerToResponse(profile),
		Patients: converter.PatientsToResponses(patients),
	}, nil
}

func (u *healthWorkerUsecase) RegisterPatient(ctx context.Context, accountID uint, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
	profile, err := u.profile(ctx, accountID)
	if err != nil {
		return nil, err
	}

	_, patient, err := u.registrar.register(ctx, req, &profile.ID, &accountID)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *healthWorkerUsecase) profile(ctx context.Context, accountID uint) (*entity.HealthWorker, error) {
	profile, err := u.healthWorkerRepo.FindByAccountID(ctx, u.db, accountID)
	if err != nil {
		u.log.Warnf("Failed to find health worker profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrHealthWorkerNotFound
	}
	return profile, nil
}
