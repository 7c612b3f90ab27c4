package service

import (
	"go.uber.org/zap"

	"tendertrack/backend/internal/repository"
	"tendertrack/backend/pkg/clock"
	"tendertrack/backend/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	Tender   TenderService
	Activity ActivityService
	Sweep    SweepService
	Export   ExportService
}

// NewService 创建 Service 聚合
func NewService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	clk clock.Clock,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(repo, jwtMgr, logger),
		Tender:   NewTenderService(repo, clk, logger),
		Activity: NewActivityService(repo, logger),
		Sweep:    NewSweepService(repo, clk, logger),
		Export:   NewExportService(repo, clk, logger),
	}
}
