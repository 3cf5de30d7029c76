package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"kinopro/internal/core/auth"
	"kinopro/internal/core/config"
	"kinopro/internal/core/database"
	"kinopro/internal/core/server"
	"kinopro/internal/transport/http/ez"
	mdw "kinopro/internal/transport/http/middleware"
)

// Deps 引擎依赖
type Deps struct {
	DB      *gorm.DB
	JWT     *auth.JWTer
	Modules *Registry
}

// Options 来自配置的引擎参数
type Options struct {
	Limits       config.Limits
	AllowOrigins []string
	Details      bool // 错误响应附带 details（非生产）
}

func OptionsFrom(cfg *config.Config) Options {
	return Options{
		Limits:       cfg.Limits,
		AllowOrigins: cfg.App.CORS.AllowOrigins,
		Details:      !cfg.App.Production(),
	}
}

// base 公共中间件链
func base(l *zap.Logger, o Options) *gin.Engine {
	r := server.NewRouter(l, server.Options{AllowOrigins: o.AllowOrigins})
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(o.Limits.RPS), o.Limits.Burst),
		mdw.ConcurrencyLimit(o.Limits.Concurrency),
		mdw.MaxBodyBytes(o.Limits.MaxBodyBytes),
		mdw.Timeout(time.Duration(o.Limits.RequestTimeoutS)*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)
	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.Ping(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": 0, "db": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	}
}

func NewAPIEngine(l *zap.Logger, d Deps, o Options) *gin.Engine {
	r := base(l, o)

	// 健康检查 + 指标
	r.GET("/health", health(d.DB))
	r.GET("/metrics", mdw.MetricsHandler())

	api := r.Group("/api")

	// 登录/注册按 IP 限速
	limited := api.Group("")
	limited.Use(mdw.RateLimitPerIP(rate.Limit(o.Limits.AuthRPS), o.Limits.AuthBurst))

	// 鉴权分组（⚠️ 需要 userId 的接口必须挂这里）
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(d.JWT, ""))

	optional := api.Group("")
	optional.Use(mdw.OptionalAuth(d.JWT))

	d.Modules.MountAPI(ez.Routes{
		Public:   ez.New(api).WithDetails(o.Details),
		Limited:  ez.New(limited).WithDetails(o.Details),
		Authed:   ez.New(authed).WithDetails(o.Details),
		Optional: ez.New(optional).WithDetails(o.Details),
	})
	return r
}
