package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tendertrack/backend/internal/dto"
	"tendertrack/backend/internal/model"
	"tendertrack/backend/internal/repository"
)

// ── 活动日志模块业务错误 ──

var ErrInvalidLogEntry = errors.New("日志条目缺少必填字段")

// 全局最近日志返回条数
const recentLogCount = 5

// ActivityService 活动日志业务接口
// 日志仅追加：没有更新与删除操作
type ActivityService interface {
	// Append 校验必填字段后追加一条日志
	Append(ctx context.Context, entry *model.ActivityLog) (*dto.ActivityLogResponse, error)
	// ListByTender 指定合同的全部日志，按时间倒序
	ListByTender(ctx context.Context, tenderRefID string) ([]dto.ActivityLogResponse, error)
	// ListRecent 全局最新 5 条日志
	ListRecent(ctx context.Context) ([]dto.ActivityLogResponse, error)
}

type activityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewActivityService 创建 ActivityService 实例
func NewActivityService(repo *repository.Repository, logger *zap.Logger) ActivityService {
	return &activityService{repo: repo, logger: logger}
}

func (s *activityService) Append(ctx context.Context, entry *model.ActivityLog) (*dto.ActivityLogResponse, error) {
	if entry.TenderRefID == "" || entry.Title == "" || entry.User.Name == "" || !entry.Type.Valid() {
		return nil, ErrInvalidLogEntry
	}

	if err := s.repo.Activity.Create(ctx, entry); err != nil {
		s.logger.Error("写入活动日志失败", zap.Error(err))
		return nil, err
	}

	return s.toLogResponse(entry), nil
}

func (s *activityService) ListByTender(ctx context.Context, tenderRefID string) ([]dto.ActivityLogResponse, error) {
	logs, err := s.repo.Activity.ListByTender(ctx, tenderRefID)
	if err != nil {
		s.logger.Error("查询合同日志失败", zap.String("tender_ref_id", tenderRefID), zap.Error(err))
		return nil, err
	}
	return s.toLogResponses(logs), nil
}

func (s *activityService) ListRecent(ctx context.Context) ([]dto.ActivityLogResponse, error) {
	logs, err := s.repo.Activity.ListRecent(ctx, recentLogCount)
	if err != nil {
		s.logger.Error("查询最近日志失败", zap.Error(err))
		return nil, err
	}
	return s.toLogResponses(logs), nil
}

// ── 内部辅助方法 ──

func (s *activityService) toLogResponse(l *model.ActivityLog) *dto.ActivityLogResponse {
	return &dto.ActivityLogResponse{
		ID:          l.ID,
		TenderRefID: l.TenderRefID,
		Type:        string(l.Type),
		Title:       l.Title,
		Description: l.Description,
		User: dto.ActorResponse{
			Name:  l.User.Name,
			Email: l.User.Email,
			Role:  l.User.Role,
		},
		Timestamp: l.Timestamp.Format("2006-01-02T15:04:05Z"),
	}
}

func (s *activityService) toLogResponses(logs []model.ActivityLog) []dto.ActivityLogResponse {
	result := make([]dto.ActivityLogResponse, 0, len(logs))
	for i := range logs {
		result = append(result, *s.toLogResponse(&logs[i]))
	}
	return result
}
