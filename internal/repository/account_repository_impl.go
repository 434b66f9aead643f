package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	domainRepo "github.com/Syeddabbas07/chest-ray/internal/domain/repository"

	"gorm.io/gorm"
)

type accountRepository struct{}

func NewAccountRepository() domainRepo.AccountRepository {
	return &accountRepository{}
}

func (r *accountRepository) Create(ctx context.Context, db *gorm.DB, account *entity.Account) error {
	return db.WithContext(ctx).Create(account).Error
}

func (r *accountRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Account, error) {
	var account entity.Account
	err := db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByLogin(ctx context.Context, db *gorm.DB, login string) (*entity.Account, error) {
	var account entity.Account
	err := db.WithContext(ctx).Where("login_username = ?", login).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) ExistsByLogin(ctx context.Context, db *gorm.DB, login string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Account{}).Where("login_username = ?", login).Count(&count).Error
	return count > 0, err
}

func (r *accountRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Account, error) {
	var accounts []entity.Account
	err := db.WithContext(ctx).Order("id ASC").Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) Search(ctx context.Context, db *gorm.DB, filter entity.SearchFilter) ([]entity.Account, error) {
	var accounts []entity.Account

	query := db.WithContext(ctx).Model(&entity.Account{})
	if filter.Query != "" {
		query = query.Where("login_username LIKE ?", "%"+filter.Query+"%")
	}
	if filter.Role != "" {
		query = query.Where("access_level = ?", string(filter.Role))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Order("login_username ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) UpdateLastLogin(ctx context.Context, db *gorm.DB, id uint, at time.Time) error {
	return db.WithContext(ctx).Model(&entity.Account{}).Where("id = ?", id).Update("last_login", at).Error
}

func (r *accountRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Account{}).Count(&count).Error
	return count, err
}
