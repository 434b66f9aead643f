package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Syeddabbas07/chest-ray/internal/converter"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	"github.com/Syeddabbas07/chest-ray/internal/domain/repository"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/classifier"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/messaging"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/storage"
	"github.com/Syeddabbas07/chest-ray/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientIDRequired    = errors.New("patient id is required")
	ErrXrayFileRequired     = errors.New("x-ray file is required")
	ErrXrayNotFound         = errors.New("x-ray not found")
	ErrClassificationFailed = errors.New("x-ray classification failed")
)

type XrayUsecase interface {
	// Upload stores the image, classifies it and upserts the scan for the
	// (patient, health worker) pair.
	Upload(ctx context.Context, accountID uint, req *dto.UploadXrayRequest) (*dto.XrayAnalysisResponse, error)
	GetXray(ctx context.Context, scanID uint) (*dto.XrayResponse, error)
	OpenImage(ctx context.Context, scanID uint) (io.ReadCloser, string, error)
}

type xrayUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	xrayRepo         repository.XrayRepository
	patientRepo      repository.PatientRepository
	healthWorkerRepo repository.HealthWorkerRepository
	store            storage.Store
	classifier       classifier.Classifier
	publisher        messaging.Publisher
	auditService     service.AuditService
	now              func() time.Time
	newID            func() string
}

func NewXrayUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	xrayRepo repository.XrayRepository,
	patientRepo repository.PatientRepository,
	healthWorkerRepo repository.HealthWorkerRepository,
	store storage.Store,
	imageClassifier classifier.Classifier,
	publisher messaging.Publisher,
	auditService service.AuditService,
) XrayUsecase {
	return &xrayUsecase{
		db:               db,
		log:              log,
		xrayRepo:         xrayRepo,
		patientRepo:      patientRepo,
		healthWorkerRepo: healthWorkerRepo,
		store:            store,
		classifier:       imageClassifier,
		publisher:        publisher,
		auditService:     auditService,
		now:              time.Now,
		newID:            uuid.NewString,
	}
}

func (u *xrayUsecase) Upload(ctx context.Context, accountID uint, req *dto.UploadXrayRequest) (*dto.XrayAnalysisResponse, error) {
	rawID := strings.TrimSpace(req.PatientID)
	if rawID == "" {
		return nil, ErrPatientIDRequired
	}
	patientID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return nil, ErrPatientNotFound
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, uint(patientID))
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.File == nil || req.Filename == "" {
		return nil, ErrXrayFileRequired
	}

	healthWorker, err := u.healthWorkerRepo.FindByAccountID(ctx, u.db, accountID)
	if err != nil {
		u.log.Warnf("Failed to find health worker profile: %+v", err)
		return nil, err
	}
	if healthWorker == nil {
		return nil, ErrHealthWorkerNotFound
	}

	data, err := io.ReadAll(req.File)
	if err != nil {
		u.log.Warnf("Failed to read uploaded x-ray: %+v", err)
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrXrayFileRequired
	}

	uploadedAt := u.now()
	key := storage.ObjectKey(uploadedAt, u.newID(), req.Filename)
	if err := u.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), req.ContentType); err != nil {
		u.log.Warnf("Failed to store x-ray image: %+v", err)
		return nil, err
	}

	analysis, err := u.classifier.Classify(ctx, classifier.Image{
		Name:        req.Filename,
		ContentType: req.ContentType,
		Data:        bytes.NewReader(data),
	})
	if err != nil {
		u.log.Warnf("Failed to classify x-ray: %+v", err)
		u.discardImage(ctx, key)
		return nil, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}

	previous, err := u.xrayRepo.FindByPatientAndHealthWorker(ctx, u.db, patient.ID, healthWorker.ID)
	if err != nil {
		u.log.Warnf("Failed to find existing x-ray: %+v", err)
		u.discardImage(ctx, key)
		return nil, err
	}

	xray := &entity.Xray{
		PatientID:           patient.ID,
		HealthWorkerID:      healthWorker.ID,
		ImagePath:           key,
		Prediction:          entity.PredictionFromReport(analysis.Report),
		PneumoniaConfidence: analysis.PneumoniaConfidence,
		UploadedAt:          uploadedAt,
	}

	if err := u.save(ctx, accountID, xray, previous); err != nil {
		u.discardImage(ctx, key)
		return nil, err
	}

	if previous != nil && previous.ImagePath != key {
		u.discardImage(ctx, previous.ImagePath)
	}

	u.publish(ctx, messaging.NewEvent(messaging.EventXrayClassified, strconv.FormatUint(uint64(xray.ID), 10), map[string]any{
		"scan_id":              xray.ID,
		"patient_id":           xray.PatientID,
		"health_worker_id":     xray.HealthWorkerID,
		"prediction":           xray.Prediction,
		"pneumonia_confidence": xray.PneumoniaConfidence,
	}))

	xray.Patient = *patient
	xray.HealthWorker = *healthWorker
	return &dto.XrayAnalysisResponse{
		Xray:    *converter.XrayToResponse(xray),
		Report:  analysis.Report,
		Updated: previous != nil,
	}, nil
}

func (u *xrayUsecase) save(ctx context.Context, accountID uint, xray *entity.Xray, previous *entity.Xray) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.xrayRepo.Upsert(ctx, tx, xray); err != nil {
		u.log.Warnf("Failed to upsert x-ray: %+v", err)
		return err
	}

	newValue := map[string]any{"image_path": xray.ImagePath, "prediction": xray.Prediction}
	if previous != nil {
		u.auditService.LogUpdate(ctx, tx, &accountID, entity.AuditActionXrayUpload, "xray", xray.ID,
			map[string]any{"image_path": previous.ImagePath, "prediction": previous.Prediction}, newValue)
	} else {
		u.auditService.LogCreate(ctx, tx, &accountID, entity.AuditActionXrayUpload, "xray", xray.ID, newValue)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *xrayUsecase) GetXray(ctx context.Context, scanID uint) (*dto.XrayResponse, error) {
	xray, err := u.xrayRepo.FindByID(ctx, u.db, scanID)
	if err != nil {
		u.log.Warnf("Failed to find x-ray: %+v", err)
		return nil, err
	}
	if xray == nil {
		return nil, ErrXrayNotFound
	}
	return converter.XrayToResponse(xray), nil
}

func (u *xrayUsecase) OpenImage(ctx context.Context, scanID uint) (io.ReadCloser, string, error) {
	xray, err := u.xrayRepo.FindByID(ctx, u.db, scanID)
	if err != nil {
		u.log.Warnf("Failed to find x-ray: %+v", err)
		return nil, "", err
	}
	if xray == nil {
		return nil, "", ErrXrayNotFound
	}

	rc, contentType, err := u.store.Open(ctx, xray.ImagePath)
	if err != nil {
		if errors.Is(err, storage.ErrNoObject) {
			return nil, "", ErrXrayNotFound
		}
		u.log.Warnf("Failed to open x-ray image: %+v", err)
		return nil, "", err
	}
	return rc, contentType, nil
}

// discardImage removes an image unless a scan still references it. Failures
// are only logged: the upload outcome is already decided.
func (u *xrayUsecase) discardImage(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	inUse, err := u.xrayRepo.ExistsByImagePath(ctx, u.db, key)
	if err != nil {
		u.log.Errorf("Failed to check references to x-ray image %s: %+v", key, err)
		return
	}
	if inUse {
		u.log.Warnf("Keeping x-ray image %s, a scan still references it", key)
		return
	}

	if err := u.store.Delete(ctx, key); err != nil {
		u.log.Errorf("Failed to delete x-ray image %s: %+v", key, err)
	}
}

func (u *xrayUsecase) publish(ctx context.Context, event messaging.Event) {
	if err := u.publisher.Publish(ctx, event); err != nil {
		u.log.Warnf("Failed to publish %s event: %+v", event.Type, err)
	}
}
