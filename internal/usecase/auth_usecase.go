package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Syeddabbas07/chest-ray/internal/converter"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/domain/access"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	"github.com/Syeddabbas07/chest-ray/internal/domain/repository"
	"github.com/Syeddabbas07/chest-ray/internal/service"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrNextOfKinContactExists = errors.New("next of kin contact already exists")
	ErrInvalidCredentials     = errors.New("invalid login or password")
	ErrInvalidDateFormat      = errors.New("invalid date format, use YYYY-MM-DD")
	ErrUserNotFound           = errors.New("user not found")
)

// dummyHash is compared against when the login is unknown so that unknown
// logins and wrong passwords take the same time.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("chest-ray-dummy-password"), bcrypt.DefaultCost)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, session *service.Session) error
}

type authUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	accountRepo    repository.AccountRepository
	sessionService service.SessionService
	auditService   service.AuditService
	registrar      *patientRegistrar
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	patientRepo repository.PatientRepository,
	sessionService service.SessionService,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:             db,
		log:            log,
		accountRepo:    accountRepo,
		sessionService: sessionService,
		auditService:   auditService,
		registrar:      newPatientRegistrar(db, log, accountRepo, patientRepo, auditService),
	}
}

// RegisterPatient creates the account and clinical record of a new patient
// and signs them in.
func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.LoginResponse, error) {
	account, _, err := u.registrar.register(ctx, req, nil, nil)
	if err != nil {
		return nil, err
	}

	return u.startSession(ctx, account)
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// Find account by login (read-only, no transaction needed)
	account, err := u.accountRepo.FindByLogin(ctx, u.db, req.Login)
	if err != nil {
		u.log.Warnf("Failed to find account by login: %+v", err)
		return nil, err
	}

	if account == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
		return nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := u.accountRepo.UpdateLastLogin(ctx, u.db, account.ID, now); err != nil {
		u.log.Warnf("Failed to update last login: %+v", err)
		return nil, err
	}
	account.LastLogin = &now

	response, err := u.startSession(ctx, account)
	if err != nil {
		return nil, err
	}

	u.auditService.LogEvent(ctx, nil, &account.ID, entity.AuditActionUserLogin, map[string]any{
		"role": account.Role,
	})
	return response, nil
}

func (u *authUsecase) Logout(ctx context.Context, session *service.Session) error {
	if session == nil {
		return nil
	}
	if err := u.sessionService.Revoke(ctx, session); err != nil {
		return err
	}
	u.auditService.LogEvent(ctx, nil, &session.AccountID, entity.AuditActionUserLogout, nil)
	return nil
}

func (u *authUsecase) startSession(ctx context.Context, account *entity.Account) (*dto.LoginResponse, error) {
	token, _, err := u.sessionService.Issue(ctx, account)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: u.sessionService.Expiry(),
		Redirect:  access.Dashboard(account.Role),
		Account:   *converter.AccountToResponse(account),
	}, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// isDuplicateKeyError reports a unique constraint violation, either already
// translated by GORM or as a raw PostgreSQL error (code 23505).
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// SQLite reports "UNIQUE constraint failed" when translation is off.
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
