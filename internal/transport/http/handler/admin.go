package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kinopro/internal/domain"
	"kinopro/internal/service"
	"kinopro/internal/transport/http/ez"
)

// AdminHandler 管理端接口，挂在 /admin/v1（admin 角色）
type AdminHandler struct {
	users   *service.UserService
	catalog *service.CatalogService
}

func NewAdminHandler(users *service.UserService, catalog *service.CatalogService) *AdminHandler {
	return &AdminHandler{users: users, catalog: catalog}
}

type userListIn struct {
	Q      string `form:"q"`
	Offset int    `form:"offset"`
	Limit  int    `form:"limit"`
}

type userListOut struct {
	Items []domain.User `json:"items"`
	Total int64         `json:"total"`
}

type recomputeOut struct {
	Updated int64 `json:"updated"`
}

func (h *AdminHandler) MountAdmin(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[userListIn, userListOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, in *userListIn) (userListOut, error) {
			items, total, err := h.users.List(c.Request.Context(), in.Q, in.Offset, in.Limit)
			if err != nil {
				return userListOut{}, err
			}
			if items == nil {
				items = []domain.User{}
			}
			return userListOut{Items: items, Total: total}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, recomputeOut]{
		Method: http.MethodPost,
		Path:   "/profile-status/recompute",
		Binder: ez.BindNone,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) (recomputeOut, error) {
			n, err := h.users.RecomputeProfileStatus(c.Request.Context())
			return recomputeOut{Updated: n}, err
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, domain.SeedResult]{
		Method: http.MethodPost,
		Path:   "/catalog/seed",
		Binder: ez.BindNone,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) (domain.SeedResult, error) {
			return h.catalog.Seed(c.Request.Context())
		},
	})
}
