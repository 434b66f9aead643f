package repository

import (
	"context"
	"errors"

	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	domainRepo "github.com/Syeddabbas07/chest-ray/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type healthWorkerRepository struct{}

func NewHealthWorkerRepository() domainRepo.HealthWorkerRepository {
	return &healthWorkerRepository{}
}

func (r *healthWorkerRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.HealthWorker) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error
}

func (r *healthWorkerRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.HealthWorker, error) {
	return firstProfile[entity.HealthWorker](ctx, db, "id = ?", id)
}

func (r *healthWorkerRepository) FindByAccountID(ctx context.Context, db *gorm.DB, accountID uint) (*entity.HealthWorker, error) {
	return firstProfile[entity.HealthWorker](ctx, db, "user_id = ?", accountID)
}

func (r *healthWorkerRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.HealthWorker, error) {
	var profiles []entity.HealthWorker
	err := db.WithContext(ctx).Preload("Account").Order("name ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *healthWorkerRepository) ExistsByContact(ctx context.Context, db *gorm.DB, contact string) (bool, error) {
	return contactExists[entity.HealthWorker](ctx, db, contact)
}

func (r *healthWorkerRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.HealthWorker{}).Count(&count).Error
	return count, err
}

type expertRepository struct{}

func NewExpertRepository() domainRepo.ExpertRepository {
	return &expertRepository{}
}

func (r *expertRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.Expert) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error
}

func (r *expertRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Expert, error) {
	return firstProfile[entity.Expert](ctx, db, "id = ?", id)
}

func (r *expertRepository) FindByAccountID(ctx context.Context, db *gorm.DB, accountID uint) (*entity.Expert, error) {
	return firstProfile[entity.Expert](ctx, db, "user_id = ?", accountID)
}

func (r *expertRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Expert, error) {
	var profiles []entity.Expert
	err := db.WithContext(ctx).Preload("Account").Order("name ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *expertRepository) ExistsByContact(ctx context.Context, db *gorm.DB, contact string) (bool, error) {
	return contactExists[entity.Expert](ctx, db, contact)
}

func (r *expertRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Expert{}).Count(&count).Error
	return count, err
}

type adminRepository struct{}

func NewAdminRepository() domainRepo.AdminRepository {
	return &adminRepository{}
}

func (r *adminRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.Admin) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error
}

func (r *adminRepository) FindByAccountID(ctx context.Context, db *gorm.DB, accountID uint) (*entity.Admin, error) {
	return firstProfile[entity.Admin](ctx, db, "user_id = ?", accountID)
}

func (r *adminRepository) ExistsByContact(ctx context.Context, db *gorm.DB, contact string) (bool, error) {
	return contactExists[entity.Admin](ctx, db, contact)
}

func (r *adminRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Admin{}).Count(&count).Error
	return count, err
}

func firstProfile[T any](ctx context.Context, db *gorm.DB, cond string, arg any) (*T, error) {
	var profile T
	err := db.WithContext(ctx).Preload("Account").Where(cond, arg).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func contactExists[T any](ctx context.Context, db *gorm.DB, contact string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(new(T)).Where("contact_details = ?", contact).Count(&count).Error
	return count > 0, err
}
