package usecase

import (
	"context"

	"dentalcare-backend/internal/converter"
	"dentalcare-backend/internal/delivery/dto"
	"dentalcare-backend/internal/domain/entity"
	"dentalcare-backend/internal/domain/repository"
	"dentalcare-backend/pkg/response"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultAuditPageSize = 50
	maxAuditPageSize     = 200
)

type AuditLogUsecase interface {
	ListAuditLogs(ctx context.Context, action string, page, limit int) (*dto.AuditLogListResponse, *response.Meta, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) ListAuditLogs(ctx context.Context, action string, page, limit int) (*dto.AuditLogListResponse, *response.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxAuditPageSize {
		limit = defaultAuditPageSize
	}
	offset := (page - 1) * limit

	var (
		logs  []entity.AuditLog
		total int64
		err   error
	)
	if action != "" {
		logs, total, err = u.auditLogRepo.FindByAction(u.db, action, limit, offset)
	} else {
		logs, total, err = u.auditLogRepo.FindAll(u.db, limit, offset)
	}
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	meta := &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: total,
	}, meta, nil
}
