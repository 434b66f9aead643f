package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Syeddabbas07/chest-ray/internal/converter"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	"github.com/Syeddabbas07/chest-ray/internal/domain/repository"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/messaging"
	"github.com/Syeddabbas07/chest-ray/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrExpertNotFound         = errors.New("expert profile not found")
	ErrTreatmentAlreadyExists = errors.New("treatment already exists for this patient")
	ErrReportAlreadyExists    = errors.New("report already exists for this patient")
	ErrInvalidHealthStatus    = errors.New("invalid health status")
	ErrInvalidTreatment       = errors.New("invalid treatment details")
)

type ExpertUsecase interface {
	GetDashboard(ctx context.Context, accountID uint) (*dto.ExpertDashboardResponse, error)
	GetPatientXrays(ctx context.Context, patientID uint) (*dto.PatientXraysResponse, error)
	GetReportForm(ctx context.Context, accountID, scanID uint) (*dto.ReportFormResponse, error)
	// CreateReport writes the expert's report for a scan and marks the scan reviewed.
	CreateReport(ctx context.Context, accountID, scanID uint, req *dto.CreateReportRequest) (*dto.ReportResponse, error)
	GetPatientRecord(ctx context.Context, patientID uint) (*dto.PatientRecordResponse, error)
	CreateTreatment(ctx context.Context, accountID, patientID uint, req *dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error)
	UpdatePatientStatus(ctx context.Context, accountID, patientID uint, req *dto.UpdateHealthStatusRequest) (*dto.PatientResponse, error)
}

type expertUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	expertRepo    repository.ExpertRepository
	patientRepo   repository.PatientRepository
	xrayRepo      repository.XrayRepository
	treatmentRepo repository.TreatmentRepository
	reportRepo    repository.ReportRepository
	publisher     messaging.Publisher
	auditService  service.AuditService
	now           func() time.Time
}

func NewExpertUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	expertRepo repository.ExpertRepository,
	patientRepo repository.PatientRepository,
	xrayRepo repository.XrayRepository,
	treatmentRepo repository.TreatmentRepository,
	reportRepo repository.ReportRepository,
	publisher messaging.Publisher,
	auditService service.AuditService,
) ExpertUsecase {
	return &expertUsecase{
		db:            db,
		log:           log,
		expertRepo:    expertRepo,
		patientRepo:   patientRepo,
		xrayRepo:      xrayRepo,
		treatmentRepo: treatmentRepo,
		reportRepo:    reportRepo,
		publisher:     publisher,
		auditService:  auditService,
		now:           time.Now,
	}
}

func (u *expertUsecase) GetDashboard(ctx context.Context, accountID uint) (*dto.ExpertDashboardResponse, error) {
	expert, err := u.profile(ctx, accountID)
	if err != nil {
		return nil, err
	}

	patients, err := u.patientRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}

	pending, err := u.xrayRepo.FindPending(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find pending x-rays: %+v", err)
		return nil, err
	}

	return &dto.ExpertDashboardResponse{
		Profile:      *converter.ExpertToResponse(expert),
		Patients:     converter.PatientsToResponses(patients),
		PendingXrays: converter.XraysToResponses(pending),
	}, nil
}

func (u *expertUsecase) GetPatientXrays(ctx context.Context, patientID uint) (*dto.PatientXraysResponse, error) {
	patient, err := u.patient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	xrays, err := u.xrayRepo.FindByPatientID(ctx, u.db, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find x-rays of patient: %+v", err)
		return nil, err
	}

	return &dto.PatientXraysResponse{
		Patient: *converter.PatientToResponse(patient),
		Xrays:   converter.XraysToResponses(xrays),
	}, nil
}

func (u *expertUsecase) GetReportForm(ctx context.Context, accountID, scanID uint) (*dto.ReportFormResponse, error) {
	expert, err := u.profile(ctx, accountID)
	if err != nil {
		return nil, err
	}

	xray, err := u.xray(ctx, scanID)
	if err != nil {
		return nil, err
	}

	existing, err := u.reportRepo.FindByAccountAndExpert(ctx, u.db, xray.Patient.AccountID, expert.ID)
	if err != nil {
		u.log.Warnf("Failed to find report: %+v", err)
		return nil, err
	}

	return &dto.ReportFormResponse{
		Xray:           *converter.XrayToResponse(xray),
		Patient:        *converter.PatientToResponse(&xray.Patient),
		ExistingReport: converter.ReportToResponse(existing),
	}, nil
}

func (u *expertUsecase) CreateReport(ctx context.Context, accountID, scanID uint, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	expert, err := u.profile(ctx, accountID)
	if err != nil {
		return nil, err
	}

	xray, err := u.xray(ctx, scanID)
	if err != nil {
		return nil, err
	}

	// Reports are keyed by the account of the patient the report is about.
	subjectAccountID := xray.Patient.AccountID

	existing, err := u.reportRepo.FindByAccountAndExpert(ctx, u.db, subjectAccountID, expert.ID)
	if err != nil {
		u.log.Warnf("Failed to find report: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrReportAlreadyExists
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	report := &entity.Report{
		PatientID: xray.PatientID,
		ExpertID:  &expert.ID,
		AccountID: subjectAccountID,
		XrayID:    &xray.ID,
		Content:   strings.TrimSpace(req.Content),
	}
	if err := u.reportRepo.Create(ctx, tx, report); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrReportAlreadyExists
		}
		u.log.Warnf("Failed to create report: %+v", err)
		return nil, err
	}

	previousStatus := xray.Status
	xray.MarkReviewed(expert.ID, u.now())
	if err := u.xrayRepo.MarkReviewed(ctx, tx, xray); err != nil {
		u.log.Warnf("Failed to mark x-ray reviewed: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &accountID, entity.AuditActionReportCreate, "report", report.ID, map[string]any{
		"patient_id": report.PatientID,
		"xray_id":    xray.ID,
	})
	u.auditService.LogUpdate(ctx, tx, &accountID, entity.AuditActionXrayReview, "xray", xray.ID,
		map[string]any{"status": previousStatus}, map[string]any{"status": xray.Status, "expert_id": expert.ID})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.publish(ctx, messaging.NewEvent(messaging.EventReportCreated, strconv.FormatUint(uint64(report.ID), 10), map[string]any{
		"report_id":  report.ID,
		"patient_id": report.PatientID,
		"expert_id":  expert.ID,
		"xray_id":    xray.ID,
	}))
	u.publish(ctx, messaging.NewEvent(messaging.EventXrayReviewed, strconv.FormatUint(uint64(xray.ID), 10), map[string]any{
		"scan_id":   xray.ID,
		"expert_id": expert.ID,
	}))

	report.Expert = expert
	return converter.ReportToResponse(report), nil
}

func (u *expertUsecase) GetPatientRecord(ctx context.Context, patientID uint) (*dto.PatientRecordResponse, error) {
	patient, err := u.patient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return loadPatientRecord(ctx, u.db, u.log, patient, u.xrayRepo, u.treatmentRepo, u.reportRepo)
}

func (u *expertUsecase) CreateTreatment(ctx context.Context, accountID, patientID uint, req *dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error) {
	expert, err := u.profile(ctx, accountID)
	if err != nil {
		return nil, err
	}

	patient, err := u.patient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	treatment, err := u.newTreatment(patient.ID, expert.ID, req)
	if err != nil {
		return nil, err
	}

	existing, err := u.treatmentRepo.FindByPatientAndExpert(ctx, u.db, patient.ID, expert.ID)
	if err != nil {
		u.log.Warnf("Failed to find treatment: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrTreatmentAlreadyExists
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.treatmentRepo.Create(ctx, tx, treatment); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrTreatmentAlreadyExists
		}
		u.log.Warnf("Failed to create treatment: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &accountID, entity.AuditActionTreatmentCreate, "treatment", treatment.ID, map[string]any{
		"patient_id": patient.ID,
		"priority":   treatment.Priority,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.publish(ctx, messaging.NewEvent(messaging.EventTreatmentCreated, strconv.FormatUint(uint64(treatment.ID), 10), map[string]any{
		"treatment_id": treatment.ID,
		"patient_id":   patient.ID,
		"expert_id":    expert.ID,
		"priority":     treatment.Priority,
	}))

	treatment.Expert = *expert
	return converter.TreatmentToResponse(treatment), nil
}

func (u *expertUsecase) newTreatment(patientID, expertID uint, req *dto.CreateTreatmentRequest) (*entity.Treatment, error) {
	priority, err := entity.ParseEnum[entity.Priority](req.Priority)
	if err != nil {
		return nil, ErrInvalidTreatment
	}

	now := u.now()
	diagnosedAt := now
	if req.DiagnosedAt != "" {
		diagnosedAt, err = time.Parse("2006-01-02", req.DiagnosedAt)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
	}

	treatment := &entity.Treatment{
		PatientID:             patientID,
		ExpertID:              expertID,
		Priority:              priority,
		DiagnosisSummary:      strings.TrimSpace(req.DiagnosisSummary),
		DiagnosedAt:           diagnosedAt,
		PrescribedMedications: optional(req.PrescribedMedications),
	}
	if treatment.PrescribedMedications != nil {
		treatment.PrescribedAt = &now
	}
	if req.Duration != "" {
		duration, err := entity.ParseEnum[entity.Duration](req.Duration)
		if err != nil {
			return nil, ErrInvalidTreatment
		}
		treatment.Duration = &duration
	}
	if req.DosageFrequency != "" {
		frequency, err := entity.ParseEnum[entity.DosageFrequency](req.DosageFrequency)
		if err != nil {
			return nil, ErrInvalidTreatment
		}
		treatment.DosageFrequency = &frequency
	}
	return treatment, nil
}

func (u *expertUsecase) UpdatePatientStatus(ctx context.Context, accountID, patientID uint, req *dto.UpdateHealthStatusRequest) (*dto.PatientResponse, error) {
	status, err := entity.ParseEnum[entity.HealthStatus](req.HealthStatus)
	if err != nil {
		return nil, ErrInvalidHealthStatus
	}

	patient, err := u.patient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.patientRepo.UpdateHealthStatus(ctx, tx, patient.ID, status); err != nil {
		u.log.Warnf("Failed to update health status: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &accountID, entity.AuditActionPatientStatus, "patient", patient.ID,
		map[string]any{"health_status": patient.HealthStatus}, map[string]any{"health_status": status})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	patient.HealthStatus = status
	return converter.PatientToResponse(patient), nil
}

func (u *expertUsecase) profile(ctx context.Context, accountID uint) (*entity.Expert, error) {
	expert, err := u.expertRepo.FindByAccountID(ctx, u.db, accountID)
	if err != nil {
		u.log.Warnf("Failed to find expert profile: %+v", err)
		return nil, err
	}
	if expert == nil {
		return nil, ErrExpertNotFound
	}
	return expert, nil
}

func (u *expertUsecase) patient(ctx context.Context, patientID uint) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func (u *expertUsecase) xray(ctx context.Context, scanID uint) (*entity.Xray, error) {
	xray, err := u.xrayRepo.FindByID(ctx, u.db, scanID)
	if err != nil {
		u.log.Warnf("Failed to find x-ray: %+v", err)
		return nil, err
	}
	if xray == nil {
		return nil, ErrXrayNotFound
	}
	return xray, nil
}

func (u *expertUsecase) publish(ctx context.Context, event messaging.Event) {
	if err := u.publisher.Publish(ctx, event); err != nil {
		u.log.Warnf("Failed to publish %s event: %+v", event.Type, err)
	}
}
