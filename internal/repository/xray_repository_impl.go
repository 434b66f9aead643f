package repository

import (
	"context"
	"errors"

	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	domainRepo "github.com/Syeddabbas07/chest-ray/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type xrayRepository struct{}

func NewXrayRepository() domainRepo.XrayRepository {
	return &xrayRepository{}
}

func (r *xrayRepository) Upsert(ctx context.Context, db *gorm.DB, xray *entity.Xray) error {
	err := db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "patient_id"}, {Name: "health_worker_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"image_path", "date_uploaded", "ml_prediction", "pneumonia_confidence",
				"status", "expert_id", "reviewed_at",
			}),
		}).
		Create(xray).Error
	if err != nil {
		return err
	}

	// The conflict branch does not report the existing key; reload the stored row.
	stored, err := r.FindByPatientAndHealthWorker(ctx, db, xray.PatientID, xray.HealthWorkerID)
	if err != nil {
		return err
	}
	if stored == nil {
		return gorm.ErrRecordNotFound
	}
	*xray = *stored
	return nil
}

func (r *xrayRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Xray, error) {
	var xray entity.Xray
	err := db.WithContext(ctx).
		Preload("Patient").
		Preload("HealthWorker").
		Preload("Expert").
		Where("scan_id = ?", id).
		First(&xray).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &xray, nil
}

func (r *xrayRepository) FindByPatientAndHealthWorker(ctx context.Context, db *gorm.DB, patientID, healthWorkerID uint) (*entity.Xray, error) {
	var xray entity.Xray
	err := db.WithContext(ctx).
		Where("patient_id = ? AND health_worker_id = ?", patientID, healthWorkerID).
		First(&xray).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &xray, nil
}

func (r *xrayRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.Xray, error) {
	var xrays []entity.Xray
	err := db.WithContext(ctx).
		Preload("HealthWorker").
		Preload("Expert").
		Where("patient_id = ?", patientID).
		Order("date_uploaded DESC").
		Find(&xrays).Error
	if err != nil {
		return nil, err
	}
	return xrays, nil
}

func (r *xrayRepository) ExistsByImagePath(ctx context.Context, db *gorm.DB, imagePath string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Xray{}).Where("image_path = ?", imagePath).Count(&count).Error
	return count > 0, err
}

func (r *xrayRepository) FindPending(ctx context.Context, db *gorm.DB) ([]entity.Xray, error) {
	var xrays []entity.Xray
	err := db.WithContext(ctx).
		Preload("Patient").
		Preload("HealthWorker").
		Where("status = ?", entity.XrayStatusPending).
		Order("date_uploaded ASC").
		Find(&xrays).Error
	if err != nil {
		return nil, err
	}
	return xrays, nil
}

func (r *xrayRepository) MarkReviewed(ctx context.Context, db *gorm.DB, xray *entity.Xray) error {
	return db.WithContext(ctx).Model(&entity.Xray{}).
		Where("scan_id = ?", xray.ID).
		Updates(map[string]any{
			"status":      xray.Status,
			"expert_id":   xray.ExpertID,
			"reviewed_at": xray.ReviewedAt,
		}).Error
}

func (r *xrayRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Xray{}).Count(&count).Error
	return count, err
}
