package repository

import (
	"context"

	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"

	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(ctx context.Context, db *gorm.DB, report *entity.Report) error
	FindByAccountAndExpert(ctx context.Context, db *gorm.DB, accountID, expertID uint) (*entity.Report, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.Report, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
