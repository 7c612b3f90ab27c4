package handler

import (
	"github.com/gin-gonic/gin"

	"tendertrack/backend/internal/model"
	"tendertrack/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetActor 从 Gin 上下文中提取操作者快照（写入日志时固化）。
func MustGetActor(c *gin.Context) (model.ActorSnapshot, bool) {
	name, _ := c.Get("user_name")
	email, _ := c.Get("user_email")
	role, _ := c.Get("role")

	actor := model.ActorSnapshot{}
	if s, ok := name.(string); ok {
		actor.Name = s
	}
	if s, ok := email.(string); ok {
		actor.Email = s
	}
	if s, ok := role.(string); ok {
		actor.Role = s
	}

	if actor.Name == "" && actor.Email == "" {
		response.Unauthorized(c, 10002, "未认证")
		return model.ActorSnapshot{}, false
	}
	return actor, true
}
