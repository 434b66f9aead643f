package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	"github.com/Syeddabbas07/chest-ray/internal/domain/repository"
	"github.com/Syeddabbas07/chest-ray/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// patientRegistrar creates a patient account together with its clinical
// record. Self registration and registration by a health worker share it.
type patientRegistrar struct {
	db           *gorm.DB
	log          *logrus.Logger
	accountRepo  repository.AccountRepository
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func newPatientRegistrar(
	db *gorm.DB,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) *patientRegistrar {
	return &patientRegistrar{
		db:           db,
		log:          log,
		accountRepo:  accountRepo,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

// register writes nothing when the e-mail is already taken. healthWorkerID
// assigns the new patient; actorID is recorded in the audit trail.
func (r *patientRegistrar) register(ctx context.Context, req *dto.RegisterPatientRequest, healthWorkerID, actorID *uint) (*entity.Account, *entity.Patient, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, nil, ErrInvalidDateFormat
	}

	email := strings.TrimSpace(req.Email)

	taken, err := r.accountRepo.ExistsByLogin(ctx, r.db, email)
	if err != nil {
		r.log.Warnf("Failed to check login: %+v", err)
		return nil, nil, err
	}
	if !taken {
		taken, err = r.patientRepo.ExistsByEmail(ctx, r.db, email)
		if err != nil {
			r.log.Warnf("Failed to check patient email: %+v", err)
			return nil, nil, err
		}
	}
	if taken {
		return nil, nil, ErrEmailAlreadyExists
	}

	nokContact := optional(req.NextOfKinContact)
	if nokContact != nil {
		taken, err = r.patientRepo.ExistsByNextOfKinContact(ctx, r.db, *nokContact)
		if err != nil {
			r.log.Warnf("Failed to check next of kin contact: %+v", err)
			return nil, nil, err
		}
		if taken {
			return nil, nil, ErrNextOfKinContactExists
		}
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		r.log.Warnf("Failed to hash password: %+v", err)
		return nil, nil, err
	}

	tx := r.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	account := &entity.Account{
		Login:    email,
		Password: hashedPassword,
		Role:     entity.RolePatient,
	}
	if err := r.accountRepo.Create(ctx, tx, account); err != nil {
		if isDuplicateKeyError(err) {
			return nil, nil, ErrEmailAlreadyExists
		}
		r.log.Warnf("Failed to create account: %+v", err)
		return nil, nil, err
	}

	patient := &entity.Patient{
		AccountID:        account.ID,
		Name:             strings.TrimSpace(req.FullName),
		Email:            email,
		Address:          req.Address,
		Contact:          req.Contact,
		NextOfKin:        req.NextOfKin,
		NextOfKinContact: nokContact,
		DateOfBirth:      dob,
		HealthStatus:     entity.HealthStatusStable,
		HealthWorkerID:   healthWorkerID,
	}
	if err := r.patientRepo.Create(ctx, tx, patient); err != nil {
		if isDuplicateKeyError(err) {
			tx.Rollback()
			return nil, nil, r.conflict(ctx, email, nokContact)
		}
		r.log.Warnf("Failed to create patient: %+v", err)
		return nil, nil, err
	}

	if actorID == nil {
		actorID = &account.ID
	}
	r.auditService.LogCreate(ctx, tx, actorID, entity.AuditActionPatientRegister, "patient", patient.ID, map[string]any{
		"account_id":       account.ID,
		"health_worker_id": healthWorkerID,
	})

	if err := tx.Commit().Error; err != nil {
		r.log.Warnf("Failed commit transaction: %+v", err)
		return nil, nil, err
	}

	return account, patient, nil
}

// conflict names the unique patient field a concurrent registration took
// between the pre-checks and the insert.
func (r *patientRegistrar) conflict(ctx context.Context, email string, nokContact *string) error {
	taken, err := r.patientRepo.ExistsByEmail(ctx, r.db, email)
	if err != nil {
		r.log.Warnf("Failed to check patient email: %+v", err)
		return ErrEmailAlreadyExists
	}
	if taken || nokContact == nil {
		return ErrEmailAlreadyExists
	}

	taken, err = r.patientRepo.ExistsByNextOfKinContact(ctx, r.db, *nokContact)
	if err != nil {
		r.log.Warnf("Failed to check next of kin contact: %+v", err)
		return ErrEmailAlreadyExists
	}
	if taken {
		return ErrNextOfKinContactExists
	}
	return ErrEmailAlreadyExists
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
