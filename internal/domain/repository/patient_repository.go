package repository

import (
	"context"

	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Patient, error)
	FindByAccountID(ctx context.Context, db *gorm.DB, accountID uint) (*entity.Patient, error)
	FindByHealthWorkerID(ctx context.Context, db *gorm.DB, healthWorkerID uint) ([]entity.Patient, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Patient, error)
	Search(ctx context.Context, db *gorm.DB, filter entity.SearchFilter) ([]entity.Patient, error)
	ExistsByEmail(ctx context.Context, db *gorm.DB, email string) (bool, error)
	ExistsByNextOfKinContact(ctx context.Context, db *gorm.DB, contact string) (bool, error)
	UpdateHealthStatus(ctx context.Context, db *gorm.DB, id uint, status entity.HealthStatus) (int64, error)
	AssignHealthWorker(ctx context.Context, db *gorm.DB, id uint, healthWorkerID uint) (int64, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
