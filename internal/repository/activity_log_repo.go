package repository

import (
	"context"

	"gorm.io/gorm"

	"tendertrack/backend/internal/model"
)

// ActivityLogRepository 活动日志数据访问接口
// 仅追加：不提供更新与删除
type ActivityLogRepository interface {
	Create(ctx context.Context, log *model.ActivityLog) error
	CreateBatch(ctx context.Context, logs []model.ActivityLog) error
	// ListByTender 返回指定合同的日志，按时间倒序
	ListByTender(ctx context.Context, tenderRefID string) ([]model.ActivityLog, error)
	// ListRecent 返回全局最新 n 条日志，按时间倒序
	ListRecent(ctx context.Context, n int) ([]model.ActivityLog, error)
}

type activityLogRepo struct {
	db *gorm.DB
}

// NewActivityLogRepo 创建 ActivityLogRepository 实例
func NewActivityLogRepo(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Create(ctx context.Context, log *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *activityLogRepo) CreateBatch(ctx context.Context, logs []model.ActivityLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&logs).Error
}

func (r *activityLogRepo) ListByTender(ctx context.Context, tenderRefID string) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.db.WithContext(ctx).
		Where("tender_ref_id = ?", tenderRefID).
		Order("timestamp DESC").
		Find(&logs).Error
	return logs, err
}

func (r *activityLogRepo) ListRecent(ctx context.Context, n int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(n).
		Find(&logs).Error
	return logs, err
}
