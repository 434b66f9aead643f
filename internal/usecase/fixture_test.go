package usecase

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/Syeddabbas07/chest-ray/config"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/cache"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/classifier"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/database"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/messaging"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/storage"
	"github.com/Syeddabbas07/chest-ray/internal/repository"
	"github.com/Syeddabbas07/chest-ray/internal/service"
	"github.com/Syeddabbas07/chest-ray/pkg/jwt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubClassifier returns a fixed report, or err when set.
type stubClassifier struct {
	report string
	err    error
	calls  int
}

func (c *stubClassifier) Classify(ctx context.Context, img classifier.Image) (*classifier.Analysis, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	if _, err := io.ReadAll(img.Data); err != nil {
		return nil, err
	}
	return &classifier.Analysis{
		Report:              c.report,
		PneumoniaConfidence: decimal.NewNullDecimal(decimal.RequireFromString("0.9312")),
	}, nil
}

type fixture struct {
	db         *gorm.DB
	uploadDir  string
	classifier *stubClassifier
	sessions   service.SessionService

	auth         AuthUsecase
	patients     PatientUsecase
	healthWorker HealthWorkerUsecase
	xrays        *xrayUsecase
	experts      *expertUsecase
	admin        AdminUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.NewInMemorySQLite(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log := logrus.New()
	log.SetOutput(io.Discard)

	store, err := cache.NewMemorySessionStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	uploadDir := t.TempDir()
	images, err := storage.NewLocalStore(uploadDir)
	require.NoError(t, err)

	accountRepo := repository.NewAccountRepository()
	patientRepo := repository.NewPatientRepository()
	healthWorkerRepo := repository.NewHealthWorkerRepository()
	expertRepo := repository.NewExpertRepository()
	adminRepo := repository.NewAdminRepository()
	xrayRepo := repository.NewXrayRepository()
	treatmentRepo := repository.NewTreatmentRepository()
	reportRepo := repository.NewReportRepository()
	auditService := service.NewAuditService(db, log, repository.NewAuditLogRepository())

	sessions := service.NewSessionService(log, jwt.NewJWTService(config.SessionConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
	}), store)

	stub := &stubClassifier{report: "Negative certainty: 0.0688\nPositive certainty: 0.9312\nPrediction: Pneumonia detected."}
	publisher := messaging.NewLogPublisher(log)

	xrays := NewXrayUsecase(db, log, xrayRepo, patientRepo, healthWorkerRepo, images, stub, publisher, auditService)
	xrays.(*xrayUsecase).newID = sequence("img")
	experts := NewExpertUsecase(db, log, expertRepo, patientRepo, xrayRepo, treatmentRepo, reportRepo, publisher, auditService)
	admin := NewAdminUsecase(db, log, accountRepo, patientRepo, healthWorkerRepo, expertRepo, adminRepo,
		xrayRepo, treatmentRepo, reportRepo, auditService)

	return &fixture{
		db:           db,
		uploadDir:    uploadDir,
		classifier:   stub,
		sessions:     sessions,
		auth:         NewAuthUsecase(db, log, accountRepo, patientRepo, sessions, auditService),
		patients:     NewPatientUsecase(db, log, patientRepo, xrayRepo, treatmentRepo, reportRepo),
		healthWorker: NewHealthWorkerUsecase(db, log, accountRepo, healthWorkerRepo, patientRepo, auditService),
		xrays:        xrays.(*xrayUsecase),
		experts:      experts.(*expertUsecase),
		admin:        admin,
	}
}

func (f *fixture) registerPatient(t *testing.T, email string) *entity.Patient {
	t.Helper()
	_, err := f.auth.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		FullName:    "Test Patient",
		DateOfBirth: "1990-01-02",
		Email:       email,
		Password:    "secret123",
	})
	require.NoError(t, err)

	var patient entity.Patient
	require.NoError(t, f.db.Where("email = ?", email).First(&patient).Error)
	return &patient
}

func (f *fixture) createHealthWorker(t *testing.T, login string) *dto.HealthWorkerResponse {
	t.Helper()
	hw, err := f.admin.CreateHealthWorker(context.Background(), nil, &dto.CreateHealthWorkerRequest{
		Login:            login,
		Password:         "secret123",
		Name:             "Worker " + login,
		AppointedCountry: "Kenya",
		AppointedClinic:  "Nairobi West",
		ContactDetails:   login + "-contact",
	})
	require.NoError(t, err)
	return hw
}

func (f *fixture) createExpert(t *testing.T, login string) *dto.ExpertResponse {
	t.Helper()
	expert, err := f.admin.CreateExpert(context.Background(), nil, &dto.CreateExpertRequest{
		Login:          login,
		Password:       "secret123",
		Name:           "Dr " + login,
		ContactDetails: login + "-contact",
		Speciality:     "Radiology",
		Country:        "Kenya",
		Clinic:         "Nairobi West",
	})
	require.NoError(t, err)
	return expert
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func (f *fixture) storedImages(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(f.uploadDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, filepath.Base(entry.Name()))
	}
	return names
}

// sequence returns ids prefix1, prefix2 and so on.
func sequence(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}

var errModelDown = errors.New("model server unreachable")
