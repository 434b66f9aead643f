package repository

import (
	"context"

	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error
	FindByAccountID(ctx context.Context, db *gorm.DB, accountID uint, limit int) ([]entity.AuditLog, error)
}
