package repository

import (
	"dentalcare-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindAll(db *gorm.DB, limit, offset int) ([]entity.AuditLog, int64, error)
	FindByAction(db *gorm.DB, action string, limit, offset int) ([]entity.AuditLog, int64, error)
}
