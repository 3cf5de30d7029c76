package response

import "github.com/gin-gonic/gin"

// ErrorBody 所有错误响应的统一格式
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type Message struct {
	Message string `json:"message"`
}

// Error customMsg 为空时使用状态码默认文案
func Error(status int, customMsg string) ErrorBody {
	msg := StatusMsg[status]
	if customMsg != "" {
		msg = customMsg
	}
	return ErrorBody{Error: msg}
}

func WithDetails(status int, msg, details string) ErrorBody {
	b := Error(status, msg)
	b.Details = details
	return b
}

func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Error(status, msg))
}
