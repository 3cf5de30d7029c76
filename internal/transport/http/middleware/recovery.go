package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "kinopro/internal/transport/http/response"
)

// RecoveryBody panic 后返回统一错误体；日志由 ginzap 负责
func RecoveryBody(c *gin.Context, _ any) {
	if c.Writer.Written() {
		c.Abort()
		return
	}
	resp.Abort(c, http.StatusInternalServerError, "internal error")
}
