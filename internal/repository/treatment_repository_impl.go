package repository

import (
	"context"
	"errors"

	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	domainRepo "github.com/Syeddabbas07/chest-ray/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type treatmentRepository struct{}

func NewTreatmentRepository() domainRepo.TreatmentRepository {
	return &treatmentRepository{}
}

func (r *treatmentRepository) Create(ctx context.Context, db *gorm.DB, treatment *entity.Treatment) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(treatment).Error
}

func (r *treatmentRepository) FindByPatientAndExpert(ctx context.Context, db *gorm.DB, patientID, expertID uint) (*entity.Treatment, error) {
	var treatment entity.Treatment
	err := db.WithContext(ctx).
		Where("patient_id = ? AND expert_id = ?", patientID, expertID).
		First(&treatment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &treatment, nil
}

func (r *treatmentRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.Treatment, error) {
	var treatments []entity.Treatment
	err := db.WithContext(ctx).
		Preload("Expert").
		Where("patient_id = ?", patientID).
		Order("date_diagnosis DESC").
		Find(&treatments).Error
	if err != nil {
		return nil, err
	}
	return treatments, nil
}

func (r *treatmentRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Treatment{}).Count(&count).Error
	return count, err
}
