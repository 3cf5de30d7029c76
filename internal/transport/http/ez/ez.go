// Package ez registers gin handlers as typed actions and maps domain
// errors to HTTP responses in one place.
package ez

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"kinopro/internal/domain"
	mdw "kinopro/internal/transport/http/middleware"
	resp "kinopro/internal/transport/http/response"
)

type EZ struct {
	g       *gin.RouterGroup
	details bool
}

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// WithDetails 非生产环境在 500 响应中附带错误原因
func (e EZ) WithDetails(on bool) EZ { e.details = on; return e }

// Routes 业务模块挂载用的分组集合
type Routes struct {
	Public   EZ // 无需登录
	Limited  EZ // 无需登录，按 IP 限速（登录/注册）
	Authed   EZ // 必须登录
	Optional EZ // 可选登录
}

// Fail 统一错误映射：domain.Kind → 状态码，overrides 优先
func (e EZ) Fail(c *gin.Context, err error, overrides map[domain.Kind]int) {
	kind := domain.KindOf(err)
	status, ok := overrides[kind]
	if !ok {
		status = resp.StatusOf(kind)
	}
	_ = c.Error(err)
	if kind == domain.KindInternal {
		body := resp.Error(status, "internal server error")
		if e.details {
			body.Details = err.Error()
		}
		c.AbortWithStatusJSON(status, body)
		return
	}
	c.AbortWithStatusJSON(status, resp.Error(status, domain.Message(err)))
}

func (e EZ) GET(path string, h func(c *gin.Context) (any, error)) {
	e.g.GET(path, func(c *gin.Context) {
		data, err := h(c)
		if err != nil {
			e.Fail(c, err, nil)
			return
		}
		c.JSON(http.StatusOK, data)
	})
}

// POSTFILE 处理 multipart/form-data 单文件上传
func (e EZ) POSTFILE(path, fieldName string, h func(c *gin.Context, file *multipart.FileHeader) (any, error)) {
	e.g.POST(path, func(c *gin.Context) {
		file, err := c.FormFile(fieldName)
		if err != nil {
			e.Fail(c, domain.Validation("multipart field %q is required", fieldName), nil)
			return
		}
		data, err := h(c, file)
		if err != nil {
			e.Fail(c, err, nil)
			return
		}
		c.JSON(http.StatusOK, data)
	})
}

/* ================== Action（一行注册一个接口） ================== */

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param / c.Query 取
)

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method    string              // "GET" | "POST" | "PUT" | "DELETE"
	Path      string              // 例："/auth/login"、"/participants/:id"
	Binder    Binder              // 绑定方式
	Auth      bool                // 是否要求登录（检查 userId）
	Roles     []string            // 限定角色（可选）
	Status    int                 // 成功状态码，默认 200
	Overrides map[domain.Kind]int // 个别接口的状态码覆盖
	Handler   func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 鉴权/角色
		if a.Auth {
			if _, ok := mdw.UserID(c); !ok {
				e.Fail(c, domain.Unauthenticated("authorization required"), nil)
				return
			}
			if len(a.Roles) > 0 {
				role := c.GetString(mdw.KeyRole)
				ok := false
				for _, r := range a.Roles {
					if role == r {
						ok = true
						break
					}
				}
				if !ok {
					e.Fail(c, domain.Forbidden("forbidden"), nil)
					return
				}
			}
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone: 不绑定
		}
		if bindErr != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				resp.WithDetails(http.StatusBadRequest, "invalid request body", bindErr.Error()))
			return
		}

		// 3) 执行 + 统一错误映射
		out, err := a.Handler(c, &in)
		if err != nil {
			e.Fail(c, err, a.Overrides)
			return
		}
		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

/* ================== 参数工具 ================== */

// ParamID 解析路径中的正整数 id
func ParamID(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, domain.Validation("invalid %s", name)
	}
	return uint(v), nil
}

// MustUser 取当前登录用户 id；Auth 动作内调用
func MustUser(c *gin.Context) (uint, error) {
	uid, ok := mdw.UserID(c)
	if !ok {
		return 0, domain.Unauthenticated("authorization required")
	}
	return uid, nil
}

// OptionalUser 匿名时返回 nil
func OptionalUser(c *gin.Context) *uint {
	if uid, ok := mdw.UserID(c); ok {
		return &uid
	}
	return nil
}
