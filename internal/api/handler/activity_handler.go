package handler

import (
	"github.com/gin-gonic/gin"

	"tendertrack/backend/internal/service"
	"tendertrack/backend/pkg/response"
)

// ActivityHandler 活动日志模块 HTTP 处理器
type ActivityHandler struct {
	activitySvc service.ActivityService
}

// NewActivityHandler 创建 ActivityHandler
func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

// ListByTender 获取指定合同的全部日志（按时间倒序）
// GET /api/activity/:tenderId
func (h *ActivityHandler) ListByTender(c *gin.Context) {
	tenderID := c.Param("tenderId")
	if tenderID == "" {
		response.BadRequest(c, 10001, "合同ID不能为空")
		return
	}

	logs, err := h.activitySvc.ListByTender(c.Request.Context(), tenderID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": logs})
}

// ListRecent 获取全局最新 5 条日志
// GET /api/activity/recent
func (h *ActivityHandler) ListRecent(c *gin.Context) {
	logs, err := h.activitySvc.ListRecent(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": logs})
}
