package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"tendertrack/backend/internal/model"
	"tendertrack/backend/internal/repository"
	"tendertrack/backend/pkg/clock"
)

// ErrSweepInProgress 上一轮巡检尚未结束
var ErrSweepInProgress = errors.New("巡检任务正在执行中")

// SweepResult 单轮巡检的统计
type SweepResult struct {
	Activated int // upcoming → active 条数
	Expired   int // active → expired 条数
}

// SweepService 合同状态巡检
// 按日期推进状态：upcoming→active（起始日到达）、active→expired（结束日已过）。
// draft 与 terminated 永不触碰。每批先批量更新状态，再批量补写日志；
// 日志写入失败仅记录错误，不回滚已生效的状态变更。
type SweepService interface {
	RunOnce(ctx context.Context) (*SweepResult, error)
}

type sweepService struct {
	repo    *repository.Repository
	clk     clock.Clock
	logger  *zap.Logger
	running atomic.Bool // 防止调度周期短于单轮耗时导致的并发执行
}

// NewSweepService 创建 SweepService 实例
func NewSweepService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) SweepService {
	return &sweepService{repo: repo, clk: clk, logger: logger}
}

func (s *sweepService) RunOnce(ctx context.Context) (*SweepResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("上一轮巡检尚未结束，本轮跳过")
		return nil, ErrSweepInProgress
	}
	defer s.running.Store(false)

	// 整轮使用同一个逻辑时刻
	now := s.clk.Now()
	result := &SweepResult{}

	// 1) upcoming → active（startDate <= now）
	toActivate, err := s.repo.Tender.FindForActivation(ctx, now)
	if err != nil {
		s.logger.Error("查询待生效合同失败", zap.Error(err))
		return nil, err
	}
	if len(toActivate) > 0 {
		if err := s.applyBatch(ctx, toActivate, model.StatusActive, model.ActionActivated, now); err != nil {
			return nil, err
		}
		result.Activated = len(toActivate)
		s.logger.Info("巡检：合同已批量生效", zap.Int("count", len(toActivate)))
	}

	// 2) active → expired（endDate < now）
	// 两批各自独立：同一轮内不做 upcoming→active→expired 的传递闭包
	toExpire, err := s.repo.Tender.FindForExpiry(ctx, now)
	if err != nil {
		s.logger.Error("查询待到期合同失败", zap.Error(err))
		return nil, err
	}
	if len(toExpire) > 0 {
		if err := s.applyBatch(ctx, toExpire, model.StatusExpired, model.ActionExpired, now); err != nil {
			return nil, err
		}
		result.Expired = len(toExpire)
		s.logger.Info("巡检：合同已批量到期", zap.Int("count", len(toExpire)))
	}

	return result, nil
}

// applyBatch 对一批合同执行状态批量更新，并补写对应日志
// 状态更新失败则中止本轮；日志写入失败不回滚（记为监控异常）
func (s *sweepService) applyBatch(ctx context.Context, tenders []model.Tender, status model.TenderStatus, action model.ActivityType, now time.Time) error {
	ids := make([]string, 0, len(tenders))
	for i := range tenders {
		ids = append(ids, tenders[i].ID)
	}

	if err := s.repo.Tender.BulkUpdateStatus(ctx, ids, status, now); err != nil {
		s.logger.Error("批量更新合同状态失败",
			zap.String("target_status", string(status)),
			zap.Int("count", len(ids)),
			zap.Error(err),
		)
		return err
	}

	logs := make([]model.ActivityLog, 0, len(tenders))
	actor := model.SystemActor()
	for i := range tenders {
		t := &tenders[i]
		logs = append(logs, model.ActivityLog{
			TenderRefID: t.ID,
			Type:        action,
			Title:       ActionTitle(action),
			Description: ActionDescription(action, t.Title),
			User:        actor,
			Timestamp:   now,
		})
	}
	if err := s.repo.Activity.CreateBatch(ctx, logs); err != nil {
		s.logger.Error("批量写入活动日志失败",
			zap.String("action", string(action)),
			zap.Int("count", len(logs)),
			zap.Error(err),
		)
	}

	return nil
}
