package repository

import (
	"context"
	"errors"

	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	domainRepo "github.com/Syeddabbas07/chest-ray/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.WithContext(ctx).Preload("HealthWorker").Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByAccountID(ctx context.Context, db *gorm.DB, accountID uint) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.WithContext(ctx).Preload("HealthWorker").Where("user_id = ?", accountID).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByHealthWorkerID(ctx context.Context, db *gorm.DB, healthWorkerID uint) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.WithContext(ctx).Where("clinician_id = ?", healthWorkerID).Order("name ASC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.WithContext(ctx).Preload("HealthWorker").Order("name ASC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Search(ctx context.Context, db *gorm.DB, filter entity.SearchFilter) ([]entity.Patient, error) {
	var patients []entity.Patient

	query := db.WithContext(ctx).Model(&entity.Patient{})
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Order("name ASC").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) ExistsByEmail(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Patient{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *patientRepository) ExistsByNextOfKinContact(ctx context.Context, db *gorm.DB, contact string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Patient{}).Where("next_of_kin_contact = ?", contact).Count(&count).Error
	return count > 0, err
}

func (r *patientRepository) UpdateHealthStatus(ctx context.Context, db *gorm.DB, id uint, status entity.HealthStatus) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Patient{}).Where("id = ?", id).Update("health_status", status)
	return result.RowsAffected, result.Error
}

func (r *patientRepository) AssignHealthWorker(ctx context.Context, db *gorm.DB, id uint, healthWorkerID uint) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Patient{}).Where("id = ?", id).Update("clinician_id", healthWorkerID)
	return result.RowsAffected, result.Error
}

func (r *patientRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Patient{}).Count(&count).Error
	return count, err
}
