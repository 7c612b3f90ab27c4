package handler

import (
	"tendertrack/backend/config"
	"tendertrack/backend/internal/service"
	"tendertrack/backend/pkg/redis"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	Tender   *TenderHandler
	Activity *ActivityHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service, rdb *redis.Client) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(cfg, svc.Auth, rdb),
		Tender:   NewTenderHandler(svc.Tender),
		Activity: NewActivityHandler(svc.Activity),
		Export:   NewExportHandler(svc.Export),
	}
}
