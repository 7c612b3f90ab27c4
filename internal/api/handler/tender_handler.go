package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"tendertrack/backend/internal/dto"
	"tendertrack/backend/internal/service"
	"tendertrack/backend/pkg/response"
)

// TenderHandler 合同模块 HTTP 处理器
type TenderHandler struct {
	tenderSvc service.TenderService
}

// NewTenderHandler 创建 TenderHandler
func NewTenderHandler(tenderSvc service.TenderService) *TenderHandler {
	return &TenderHandler{tenderSvc: tenderSvc}
}

// CreateTender 创建合同
// POST /api/contracts
func (h *TenderHandler) CreateTender(c *gin.Context) {
	var req dto.CreateTenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	tender, err := h.tenderSvc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleTenderError(c, err)
		return
	}

	response.Created(c, tender)
}

// ListTenders 获取合同列表（按创建时间倒序）
// GET /api/contracts
func (h *TenderHandler) ListTenders(c *gin.Context) {
	tenders, err := h.tenderSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": tenders})
}

// ListRecentTenders 获取最近更新的 5 条合同
// GET /api/contracts/recent
func (h *TenderHandler) ListRecentTenders(c *gin.Context) {
	tenders, err := h.tenderSvc.ListRecent(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": tenders})
}

// GetTender 获取合同详情
// GET /api/contracts/:id
func (h *TenderHandler) GetTender(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "合同ID不能为空")
		return
	}

	tender, err := h.tenderSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTenderError(c, err)
		return
	}

	response.OK(c, tender)
}

// UpdateTender 更新合同
// PUT /api/contracts/:id
func (h *TenderHandler) UpdateTender(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "合同ID不能为空")
		return
	}

	var req dto.UpdateTenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	tender, err := h.tenderSvc.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleTenderError(c, err)
		return
	}

	response.OK(c, tender)
}

// DeleteTender 删除合同
// DELETE /api/contracts/:id
func (h *TenderHandler) DeleteTender(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "合同ID不能为空")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.tenderSvc.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleTenderError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "合同已删除"})
}

// CheckTenderID 招标编号查重（大小写不敏感精确匹配）
// GET /api/contracts/check-tender/:tenderId?excludeId=
func (h *TenderHandler) CheckTenderID(c *gin.Context) {
	tenderID := c.Param("tenderId")
	if tenderID == "" {
		response.BadRequest(c, 10001, "招标编号不能为空")
		return
	}

	excludeID := c.Query("excludeId")

	exists, err := h.tenderSvc.CheckTenderID(c.Request.Context(), tenderID, excludeID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dto.CheckTenderIDResponse{Exists: exists})
}

// handleTenderError 统一处理合同模块业务错误
func (h *TenderHandler) handleTenderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		response.Unauthorized(c, 10002, "未认证")
	case errors.Is(err, service.ErrTenderNotFound):
		response.NotFound(c, 12001, "合同不存在")
	case errors.Is(err, service.ErrTenderIDTaken):
		// 与前端约定：编号冲突按 400 返回，code 区分于普通校验失败
		response.BadRequest(c, 12002, "该招标编号已被占用，请使用唯一编号")
	default:
		response.InternalError(c)
	}
}
