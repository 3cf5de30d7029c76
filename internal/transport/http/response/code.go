package response

import (
	"net/http"

	"kinopro/internal/domain"
)

// KindStatus 领域错误类别 → HTTP 状态码
var KindStatus = map[domain.Kind]int{
	domain.KindValidation:      http.StatusBadRequest,
	domain.KindUnauthenticated: http.StatusUnauthorized,
	domain.KindForbidden:       http.StatusForbidden,
	domain.KindNotFound:        http.StatusNotFound,
	domain.KindDuplicate:       http.StatusConflict,
	domain.KindInternal:        http.StatusInternalServerError,
}

// StatusMsg 未提供自定义消息时使用
var StatusMsg = map[int]string{
	http.StatusBadRequest:            "Bad Request",
	http.StatusUnauthorized:          "Unauthorized",
	http.StatusForbidden:             "Forbidden",
	http.StatusNotFound:              "Not Found",
	http.StatusConflict:              "Conflict",
	http.StatusRequestEntityTooLarge: "Request Entity Too Large",
	http.StatusTooManyRequests:       "Too Many Requests",
	http.StatusInternalServerError:   "Internal Server Error",
	http.StatusServiceUnavailable:    "Service Unavailable",
	http.StatusGatewayTimeout:        "Gateway Timeout",
}

func StatusOf(k domain.Kind) int {
	if s, ok := KindStatus[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}
