package repository

import (
	"context"

	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"

	"gorm.io/gorm"
)

type TreatmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, treatment *entity.Treatment) error
	FindByPatientAndExpert(ctx context.Context, db *gorm.DB, patientID, expertID uint) (*entity.Treatment, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.Treatment, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
