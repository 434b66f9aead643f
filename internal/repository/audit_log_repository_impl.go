package repository

import (
	"context"

	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	domainRepo "github.com/Syeddabbas07/chest-ray/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(log).Error
}

func (r *auditLogRepository) FindByAccountID(ctx context.Context, db *gorm.DB, accountID uint, limit int) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	query := db.WithContext(ctx).Where("user_id = ?", accountID).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
