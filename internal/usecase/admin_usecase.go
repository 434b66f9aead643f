package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/Syeddabbas07/chest-ray/internal/converter"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	"github.com/Syeddabbas07/chest-ray/internal/domain/repository"
	"github.com/Syeddabbas07/chest-ray/internal/service"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrLoginAlreadyExists   = errors.New("login already exists")
	ErrContactAlreadyExists = errors.New("contact details already exist")
)

const (
	searchLimit  = 50
	userLogLimit = 100
)

type AdminUsecase interface {
	GetDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error)
	GetDatabaseOverview(ctx context.Context) (*dto.DatabaseOverviewResponse, error)
	ListUsers(ctx context.Context) ([]dto.AccountResponse, error)
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
	GetUser(ctx context.Context, accountID uint) (*dto.UserDetailResponse, error)
	GetUserLogs(ctx context.Context, accountID uint) (*dto.UserLogsResponse, error)
	CreateHealthWorker(ctx context.Context, actorID *uint, req *dto.CreateHealthWorkerRequest) (*dto.HealthWorkerResponse, error)
	CreateExpert(ctx context.Context, actorID *uint, req *dto.CreateExpertRequest) (*dto.ExpertResponse, error)
	// CreateAdmin is also used by the create-admin command, with a nil actor.
	CreateAdmin(ctx context.Context, actorID *uint, req *dto.CreateAdminRequest) (*dto.AdminResponse, error)
	AssignHealthWorker(ctx context.Context, actorID *uint, patientID uint, req *dto.AssignHealthWorkerRequest) (*dto.PatientResponse, error)
}

type adminUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	accountRepo      repository.AccountRepository
	patientRepo      repository.PatientRepository
	healthWorkerRepo repository.HealthWorkerRepository
	expertRepo       repository.ExpertRepository
	adminRepo        repository.AdminRepository
	xrayRepo         repository.XrayRepository
	treatmentRepo    repository.TreatmentRepository
	reportRepo       repository.ReportRepository
	auditService     service.AuditService
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	patientRepo repository.PatientRepository,
	healthWorkerRepo repository.HealthWorkerRepository,
	expertRepo repository.ExpertRepository,
	adminRepo repository.AdminRepository,
	xrayRepo repository.XrayRepository,
	treatmentRepo repository.TreatmentRepository,
	reportRepo repository.ReportRepository,
	auditService service.AuditService,
) AdminUsecase {
	return &adminUsecase{
		db:               db,
		log:              log,
		accountRepo:      accountRepo,
		patientRepo:      patientRepo,
		healthWorkerRepo: healthWorkerRepo,
		expertRepo:       expertRepo,
		adminRepo:        adminRepo,
		xrayRepo:         xrayRepo,
		treatmentRepo:    treatmentRepo,
		reportRepo:       reportRepo,
		auditService:     auditService,
	}
}

type tableCounter struct {
	name  string
	count func(ctx context.Context, db *gorm.DB) (int64, error)
}

func (u *adminUsecase) counters() []tableCounter {
	return []tableCounter{
		{"app_users", u.accountRepo.Count},
		{"patients", u.patientRepo.Count},
		{"health_workers", u.healthWorkerRepo.Count},
		{"experts", u.expertRepo.Count},
		{"admins", u.adminRepo.Count},
		{"xray_scans", u.xrayRepo.Count},
		{"treatments", u.treatmentRepo.Count},
		{"diagnostic_reports", u.reportRepo.Count},
	}
}

func (u *adminUsecase) GetDatabaseOverview(ctx context.Context) (*dto.DatabaseOverviewResponse, error) {
	tables := make([]dto.TableCount, 0, len(u.counters()))
	for _, counter := range u.counters() {
		rows, err := counter.count(ctx, u.db)
		if err != nil {
			u.log.Warnf("Failed to count %s: %+v", counter.name, err)
			return nil, err
		}
		tables = append(tables, dto.TableCount{Name: counter.name, Rows: rows})
	}
	return &dto.DatabaseOverviewResponse{Tables: tables}, nil
}

func (u *adminUsecase) GetDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	overview, err := u.GetDatabaseOverview(ctx)
	if err != nil {
		return nil, err
	}
	rows := lo.SliceToMap(overview.Tables, func(t dto.TableCount) (string, int64) {
		return t.Name, t.Rows
	})

	healthWorkers, err := u.healthWorkerRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find health workers: %+v", err)
		return nil, err
	}

	return &dto.AdminDashboardResponse{
		Accounts:      rows["app_users"],
		Patients:      rows["patients"],
		Xrays:         rows["xray_scans"],
		Treatments:    rows["treatments"],
		Reports:       rows["diagnostic_reports"],
		HealthWorkers: converter.HealthWorkersToResponses(healthWorkers),
	}, nil
}

func (u *adminUsecase) ListUsers(ctx context.Context) ([]dto.AccountResponse, error) {
	accounts, err := u.accountRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all accounts: %+v", err)
		return nil, err
	}
	return converter.AccountsToResponses(accounts), nil
}

func (u *adminUsecase) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	filter := entity.SearchFilter{
		Query: strings.TrimSpace(req.Query),
		Role:  entity.Role(req.Role),
		Limit: searchLimit,
	}

	accounts, err := u.accountRepo.Search(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to search accounts: %+v", err)
		return nil, err
	}

	var patients []entity.Patient
	if filter.Role == "" || filter.Role == entity.RolePatient {
		patients, err = u.patientRepo.Search(ctx, u.db, filter)
		if err != nil {
			u.log.Warnf("Failed to search patients: %+v", err)
			return nil, err
		}
	}

	return &dto.SearchResponse{
		Query:    filter.Query,
		Accounts: converter.AccountsToResponses(accounts),
		Patients: converter.PatientsToResponses(patients),
	}, nil
}

func (u *adminUsecase) GetUser(ctx context.Context, accountID uint) (*dto.UserDetailResponse, error) {
	account, err := u.account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	response := &dto.UserDetailResponse{Account: *converter.AccountToResponse(account)}

	switch account.Role {
	case entity.RolePatient:
		patient, err := u.patientRepo.FindByAccountID(ctx, u.db, account.ID)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return nil, err
		}
		response.Patient = converter.PatientToResponse(patient)

		healthWorkers, err := u.healthWorkerRepo.FindAll(ctx, u.db)
		if err != nil {
			u.log.Warnf("Failed to find health workers: %+v", err)
			return nil, err
		}
		response.HealthWorkers = converter.HealthWorkersToResponses(healthWorkers)
	case entity.RoleHealthWorker:
		profile, err := u.healthWorkerRepo.FindByAccountID(ctx, u.db, account.ID)
		if err != nil {
			u.log.Warnf("Failed to find health worker profile: %+v", err)
			return nil, err
		}
		response.HealthWorker = converter.HealthWorkerToResponse(profile)
	case entity.RoleExpert:
		profile, err := u.expertRepo.FindByAccountID(ctx, u.db, account.ID)
		if err != nil {
			u.log.Warnf("Failed to find expert profile: %+v", err)
			return nil, err
		}
		response.Expert = converter.ExpertToResponse(profile)
	case entity.RoleAdmin:
		profile, err := u.adminRepo.FindByAccountID(ctx, u.db, account.ID)
		if err != nil {
			u.log.Warnf("Failed to find admin profile: %+v", err)
			return nil, err
		}
		response.Admin = converter.AdminToResponse(profile)
	}

	return response, nil
}

func (u *adminUsecase) GetUserLogs(ctx context.Context, accountID uint) (*dto.UserLogsResponse, error) {
	account, err := u.account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	logs, err := u.auditService.FindByAccount(ctx, account.ID, userLogLimit)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	return &dto.UserLogsResponse{
		Account: *converter.AccountToResponse(account),
		Logs:    converter.AuditLogsToResponses(logs),
	}, nil
}

func (u *adminUsecase) CreateHealthWorker(ctx context.Context, actorID *uint, req *dto.CreateHealthWorkerRequest) (*dto.HealthWorkerResponse, error) {
	profile := &entity.HealthWorker{
		Name:             strings.TrimSpace(req.Name),
		AppointedCountry: strings.TrimSpace(req.AppointedCountry),
		AppointedClinic:  strings.TrimSpace(req.AppointedClinic),
		ContactDetails:   strings.TrimSpace(req.ContactDetails),
	}

	account, err := u.createStaff(ctx, actorID, entity.RoleHealthWorker, req.Login, req.Password, profile.ContactDetails,
		u.healthWorkerRepo.ExistsByContact,
		func(tx *gorm.DB, account *entity.Account) (uint, error) {
			profile.AccountID = account.ID
			err := u.healthWorkerRepo.Create(ctx, tx, profile)
			return profile.ID, err
		})
	if err != nil {
		return nil, err
	}

	response := converter.HealthWorkerToResponse(profile)
	response.Login = account.Login
	return response, nil
}

func (u *adminUsecase) CreateExpert(ctx context.Context, actorID *uint, req *dto.CreateExpertRequest) (*dto.ExpertResponse, error) {
	profile := &entity.Expert{
		Name:           strings.TrimSpace(req.Name),
		ContactDetails: strings.TrimSpace(req.ContactDetails),
		Speciality:     strings.TrimSpace(req.Speciality),
		Country:        strings.TrimSpace(req.Country),
		Clinic:         strings.TrimSpace(req.Clinic),
	}

	account, err := u.createStaff(ctx, actorID, entity.RoleExpert, req.Login, req.Password, profile.ContactDetails,
		u.expertRepo.ExistsByContact,
		func(tx *gorm.DB, account *entity.Account) (uint, error) {
			profile.AccountID = account.ID
			err := u.expertRepo.Create(ctx, tx, profile)
			return profile.ID, err
		})
	if err != nil {
		return nil, err
	}

	response := converter.ExpertToResponse(profile)
	response.Login = account.Login
	return response, nil
}

func (u *adminUsecase) CreateAdmin(ctx context.Context, actorID *uint, req *dto.CreateAdminRequest) (*dto.AdminResponse, error) {
	profile := &entity.Admin{
		ContactDetails: strings.TrimSpace(req.ContactDetails),
	}

	_, err := u.createStaff(ctx, actorID, entity.RoleAdmin, req.Login, req.Password, profile.ContactDetails,
		u.adminRepo.ExistsByContact,
		func(tx *gorm.DB, account *entity.Account) (uint, error) {
			profile.AccountID = account.ID
			err := u.adminRepo.Create(ctx, tx, profile)
			return profile.ID, err
		})
	if err != nil {
		return nil, err
	}

	return converter.AdminToResponse(profile), nil
}

// createStaff creates an account with a fixed role and its profile in one
// transaction. Nothing is written when the login or contact is taken.
func (u *adminUsecase) createStaff(
	ctx context.Context,
	actorID *uint,
	role entity.Role,
	login, password, contact string,
	contactExists func(ctx context.Context, db *gorm.DB, contact string) (bool, error),
	createProfile func(tx *gorm.DB, account *entity.Account) (uint, error),
) (*entity.Account, error) {
	login = strings.TrimSpace(login)

	taken, err := u.accountRepo.ExistsByLogin(ctx, u.db, login)
	if err != nil {
		u.log.Warnf("Failed to check login: %+v", err)
		return nil, err
	}
	if taken {
		return nil, ErrLoginAlreadyExists
	}

	taken, err = contactExists(ctx, u.db, contact)
	if err != nil {
		u.log.Warnf("Failed to check contact details: %+v", err)
		return nil, err
	}
	if taken {
		return nil, ErrContactAlreadyExists
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	account := &entity.Account{
		Login:    login,
		Password: hashedPassword,
		Role:     role,
	}
	if err := u.accountRepo.Create(ctx, tx, account); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrLoginAlreadyExists
		}
		u.log.Warnf("Failed to create account: %+v", err)
		return nil, err
	}

	profileID, err := createProfile(tx, account)
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrContactAlreadyExists
		}
		u.log.Warnf("Failed to create %s profile: %+v", role, err)
		return nil, err
	}

	if actorID == nil {
		actorID = &account.ID
	}
	u.auditService.LogCreate(ctx, tx, actorID, entity.AuditActionStaffCreate, string(role), profileID, map[string]any{
		"account_id": account.ID,
		"login":      account.Login,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return account, nil
}

func (u *adminUsecase) AssignHealthWorker(ctx context.Context, actorID *uint, patientID uint, req *dto.AssignHealthWorkerRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	healthWorker, err := u.healthWorkerRepo.FindByID(ctx, u.db, req.HealthWorkerID)
	if err != nil {
		u.log.Warnf("Failed to find health worker: %+v", err)
		return nil, err
	}
	if healthWorker == nil {
		return nil, ErrHealthWorkerNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.patientRepo.AssignHealthWorker(ctx, tx, patient.ID, healthWorker.ID); err != nil {
		u.log.Warnf("Failed to assign health worker: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, actorID, entity.AuditActionPatientAssign, "patient", patient.ID,
		map[string]any{"health_worker_id": patient.HealthWorkerID}, map[string]any{"health_worker_id": healthWorker.ID})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	patient.HealthWorkerID = &healthWorker.ID
	patient.HealthWorker = healthWorker
	return converter.PatientToResponse(patient), nil
}

func (u *adminUsecase) account(ctx context.Context, accountID uint) (*entity.Account, error) {
	account, err := u.accountRepo.FindByID(ctx, u.db, accountID)
	if err != nil {
		u.log.Warnf("Failed to find account: %+v", err)
		return nil, err
	}
	if account == nil {
		return nil, ErrUserNotFound
	}
	return account, nil
}
