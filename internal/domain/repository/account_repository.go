package repository

import (
	"context"
	"time"

	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"

	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(ctx context.Context, db *gorm.DB, account *entity.Account) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Account, error)
	FindByLogin(ctx context.Context, db *gorm.DB, login string) (*entity.Account, error)
	ExistsByLogin(ctx context.Context, db *gorm.DB, login string) (bool, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Account, error)
	Search(ctx context.Context, db *gorm.DB, filter entity.SearchFilter) ([]entity.Account, error)
	UpdateLastLogin(ctx context.Context, db *gorm.DB, id uint, at time.Time) error
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
