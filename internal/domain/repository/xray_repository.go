package repository

import (
	"context"

	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"

	"gorm.io/gorm"
)

type XrayRepository interface {
	// Upsert inserts the scan or overwrites the existing scan for the same
	// (patient, health worker). An overwritten scan is pending review again.
	Upsert(ctx context.Context, db *gorm.DB, xray *entity.Xray) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Xray, error)
	FindByPatientAndHealthWorker(ctx context.Context, db *gorm.DB, patientID, healthWorkerID uint) (*entity.Xray, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.Xray, error)
	ExistsByImagePath(ctx context.Context, db *gorm.DB, imagePath string) (bool, error)
	FindPending(ctx context.Context, db *gorm.DB) ([]entity.Xray, error)
	MarkReviewed(ctx context.Context, db *gorm.DB, xray *entity.Xray) error
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
