package repository

import (
	"context"
	"errors"

	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	domainRepo "github.com/Syeddabbas07/chest-ray/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reportRepository struct{}

func NewReportRepository() domainRepo.ReportRepository {
	return &reportRepository{}
}

func (r *reportRepository) Create(ctx context.Context, db *gorm.DB, report *entity.Report) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(report).Error
}

func (r *reportRepository) FindByAccountAndExpert(ctx context.Context, db *gorm.DB, accountID, expertID uint) (*entity.Report, error) {
	var report entity.Report
	err := db.WithContext(ctx).
		Where("user_id = ? AND expert_id = ?", accountID, expertID).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.Report, error) {
	var reports []entity.Report
	err := db.WithContext(ctx).
		Preload("Expert").
		Where("patient_id = ?", patientID).
		Order("date_created DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Report{}).Count(&count).Error
	return count, err
}
