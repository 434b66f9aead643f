package repository

import (
	"context"

	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"

	"gorm.io/gorm"
)

type HealthWorkerRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.HealthWorker) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.HealthWorker, error)
	FindByAccountID(ctx context.Context, db *gorm.DB, accountID uint) (*entity.HealthWorker, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.HealthWorker, error)
	ExistsByContact(ctx context.Context, db *gorm.DB, contact string) (bool, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}

type ExpertRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.Expert) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Expert, error)
	FindByAccountID(ctx context.Context, db *gorm.DB, accountID uint) (*entity.Expert, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Expert, error)
	ExistsByContact(ctx context.Context, db *gorm.DB, contact string) (bool, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}

type AdminRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.Admin) error
	FindByAccountID(ctx context.Context, db *gorm.DB, accountID uint) (*entity.Admin, error)
	ExistsByContact(ctx context.Context, db *gorm.DB, contact string) (bool, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
