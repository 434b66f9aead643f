package service

import (
	"context"
	"encoding/json"

	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	"github.com/Syeddabbas07/chest-ray/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const auditSavePoint = "audit_log"

// AuditService writes audit trail entries. A failed entry is logged and
// never aborts the surrounding operation.
type AuditService interface {
	LogEvent(ctx context.Context, tx *gorm.DB, accountID *uint, action string, details map[string]any)
	LogCreate(ctx context.Context, tx *gorm.DB, accountID *uint, action string, entityName string, entityID uint, newValue interface{})
	LogUpdate(ctx context.Context, tx *gorm.DB, accountID *uint, action string, entityName string, entityID uint, oldValue, newValue interface{})
	FindByAccount(ctx context.Context, accountID uint, limit int) ([]entity.AuditLog, error)
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogEvent logs an action that is not tied to a single record
func (s *auditService) LogEvent(ctx context.Context, tx *gorm.DB, accountID *uint, action string, details map[string]any) {
	s.write(ctx, tx, accountID, action, details)
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, accountID *uint, action string, entityName string, entityID uint, newValue interface{}) {
	s.write(ctx, tx, accountID, action, map[string]any{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, accountID *uint, action string, entityName string, entityID uint, oldValue, newValue interface{}) {
	s.write(ctx, tx, accountID, action, map[string]any{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}

func (s *auditService) FindByAccount(ctx context.Context, accountID uint, limit int) ([]entity.AuditLog, error) {
	return s.auditRepo.FindByAccountID(ctx, s.db, accountID, limit)
}

func (s *auditService) write(ctx context.Context, tx *gorm.DB, accountID *uint, action string, metadata map[string]any) {
	raw, err := json.Marshal(metadata)
	if err != nil {
		s.log.Warnf("Failed to encode audit metadata for %s: %+v", action, err)
		return
	}

	auditLog := &entity.AuditLog{
		AccountID: accountID,
		Action:    action,
		Metadata:  datatypes.JSON(raw),
	}

	if tx == nil {
		if err := s.auditRepo.Create(ctx, s.db, auditLog); err != nil {
			s.log.Warnf("Failed to create audit log: %+v", err)
		}
		return
	}

	// Inside a transaction the entry gets its own savepoint so a failed
	// insert leaves the caller's work intact.
	if err := tx.SavePoint(auditSavePoint).Error; err != nil {
		s.log.Warnf("Failed to create audit savepoint: %+v", err)
		return
	}
	if err := s.auditRepo.Create(ctx, tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		if err := tx.RollbackTo(auditSavePoint).Error; err != nil {
			s.log.Warnf("Failed to roll back audit savepoint: %+v", err)
		}
	}
}
