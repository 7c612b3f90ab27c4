package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tendertrack/backend/config"
	"tendertrack/backend/internal/api/handler"
	"tendertrack/backend/internal/api/middleware"
	"tendertrack/backend/pkg/jwt"
	"tendertrack/backend/pkg/redis"
)

// 登录接口限流：每 IP 每分钟 10 次
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute

	// 请求体上限 1MB，合同数据量远小于此
	maxBodyBytes = 1 << 20
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API ──
	api := r.Group("/api")
	{
		// 认证模块（无需认证）
		api.POST("/auth/login", middleware.RateLimit(rdb, loginRateLimit, loginRateWindow), h.Auth.Login)

		// 合同模块（读接口公开）
		contracts := api.Group("/contracts")
		{
			contracts.GET("", h.Tender.ListTenders)
			contracts.GET("/recent", h.Tender.ListRecentTenders)
			contracts.GET("/export", h.Export.ExportTenders)
			contracts.GET("/calendar", h.Export.ExportCalendar)
			contracts.GET("/check-tender/:tenderId", h.Tender.CheckTenderID)
			contracts.GET("/:id", h.Tender.GetTender)
		}

		// 活动日志模块（公开）
		activity := api.Group("/activity")
		{
			activity.GET("/recent", h.Activity.ListRecent)
			activity.GET("/:tenderId", h.Activity.ListByTender)
		}

		// 需要认证的路由
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			authorized.POST("/contracts", h.Tender.CreateTender)
			authorized.PUT("/contracts/:id", h.Tender.UpdateTender)
			authorized.DELETE("/contracts/:id", h.Tender.DeleteTender)
		}
	}

	return r
}
