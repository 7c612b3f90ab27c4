package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tendertrack/backend/config"
	"tendertrack/backend/internal/api/middleware"
	"tendertrack/backend/internal/dto"
	"tendertrack/backend/internal/service"
	"tendertrack/backend/pkg/jwt"
	"tendertrack/backend/pkg/redis"
	"tendertrack/backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	cfg     *config.Config
	authSvc service.AuthService
	rdb     *redis.Client
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(cfg *config.Config, authSvc service.AuthService, rdb *redis.Client) *AuthHandler {
	return &AuthHandler{cfg: cfg, authSvc: authSvc, rdb: rdb}
}

// Login 用户登录
// POST /api/auth/login
// 成功后下发 HttpOnly + SameSite=Strict 会话 Cookie，有效期 7 天
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, token, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, 11001, "邮箱或密码错误")
			return
		}
		response.InternalError(c)
		return
	}

	h.setSessionCookie(c, token, int(h.cfg.Auth.TokenTTL.Seconds()))

	response.OK(c, dto.LoginResponse{
		Message: "登录成功",
		User:    *user,
	})
}

// Logout 用户登出
// POST /api/auth/logout
// 清除会话 Cookie，并将 Token 加入黑名单（Redis 可用时）
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.rdb != nil {
		if v, exists := c.Get("claims"); exists {
			if claims, ok := v.(*jwt.Claims); ok && claims.ExpiresAt != nil {
				ttl := time.Until(claims.ExpiresAt.Time)
				_ = h.rdb.BlacklistToken(c.Request.Context(), claims.ID, ttl)
			}
		}
	}

	h.setSessionCookie(c, "", -1)
	response.OK(c, nil)
}

// GetCurrentUser 获取当前登录用户画像
// GET /api/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11002, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		middleware.SessionCookieName,
		token,
		maxAge,
		"/",
		h.cfg.Auth.Cookie.Domain,
		h.cfg.Auth.Cookie.Secure,
		true, // HttpOnly
	)
}
