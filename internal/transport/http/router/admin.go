package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kinopro/internal/domain"
	"kinopro/internal/transport/http/ez"
	mdw "kinopro/internal/transport/http/middleware"
)

func NewAdminEngine(l *zap.Logger, d Deps, o Options) *gin.Engine {
	r := base(l, o)

	r.GET("/health", health(d.DB))
	r.GET("/metrics", mdw.MetricsHandler())

	// 管理端 v1（统一要求 admin 角色）
	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(d.JWT, domain.RoleAdmin))

	d.Modules.MountAdmin(ez.New(admin).WithDetails(o.Details))
	return r
}
