package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kinopro/internal/domain"
	"kinopro/internal/service"
	"kinopro/internal/transport/http/ez"
	resp "kinopro/internal/transport/http/response"
)

// FavoriteHandler 收藏夹（participants）接口，全部要求登录
type FavoriteHandler struct{ favorites *service.FavoriteService }

func NewFavoriteHandler(favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

type removedOut struct {
	ProfessionalID uint   `json:"professional_id"`
	Lists          []uint `json:"lists"`
}

// owned 解析 :id，不存在 404，非本人 403
func (h *FavoriteHandler) owned(c *gin.Context) (uint, error) {
	uid, err := ez.MustUser(c)
	if err != nil {
		return 0, err
	}
	id, err := ez.ParamID(c, "id")
	if err != nil {
		return 0, err
	}
	l, err := h.favorites.Get(c.Request.Context(), id)
	if err != nil {
		return 0, err
	}
	if l.OwnerUserID != uid {
		return 0, domain.Forbidden("access denied")
	}
	return id, nil
}

func (h *FavoriteHandler) MountAPI(r ez.Routes) {
	ez.RegisterAction(r.Authed, ez.Action[struct{}, []domain.FavoriteList]{
		Method: http.MethodGet,
		Path:   "/participants",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.FavoriteList, error) {
			uid, err := ez.MustUser(c)
			if err != nil {
				return nil, err
			}
			lists, err := h.favorites.ListByOwner(c.Request.Context(), uid)
			if err != nil {
				return nil, err
			}
			if lists == nil {
				lists = []domain.FavoriteList{}
			}
			return lists, nil
		},
	})

	ez.RegisterAction(r.Authed, ez.Action[struct{}, *domain.FavoriteList]{
		Method: http.MethodGet,
		Path:   "/participants/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.FavoriteList, error) {
			id, err := h.owned(c)
			if err != nil {
				return nil, err
			}
			return h.favorites.Get(c.Request.Context(), id)
		},
	})

	ez.RegisterAction(r.Authed, ez.Action[domain.FavoriteCreate, *domain.FavoriteList]{
		Method: http.MethodPost,
		Path:   "/participants",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *domain.FavoriteCreate) (*domain.FavoriteList, error) {
			uid, err := ez.MustUser(c)
			if err != nil {
				return nil, err
			}
			in.OwnerUserID = uid
			return h.favorites.Create(c.Request.Context(), *in)
		},
	})

	ez.RegisterAction(r.Authed, ez.Action[domain.FavoritePatch, *domain.FavoriteList]{
		Method: http.MethodPut,
		Path:   "/participants/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *domain.FavoritePatch) (*domain.FavoriteList, error) {
			id, err := h.owned(c)
			if err != nil {
				return nil, err
			}
			return h.favorites.Update(c.Request.Context(), id, *in)
		},
	})

	ez.RegisterAction(r.Authed, ez.Action[struct{}, resp.Message]{
		Method: http.MethodDelete,
		Path:   "/participants/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (resp.Message, error) {
			id, err := h.owned(c)
			if err != nil {
				return resp.Message{}, err
			}
			if err := h.favorites.Remove(c.Request.Context(), id); err != nil {
				return resp.Message{}, err
			}
			return resp.Message{Message: "list deleted"}, nil
		},
	})

	member := func(method string, op func(c *gin.Context, id, pid uint) (*domain.FavoriteList, error)) {
		ez.RegisterAction(r.Authed, ez.Action[struct{}, *domain.FavoriteList]{
			Method: method,
			Path:   "/participants/:id/professionals/:professionalId",
			Binder: ez.BindNone,
			Auth:   true,
			Handler: func(c *gin.Context, _ *struct{}) (*domain.FavoriteList, error) {
				id, err := h.owned(c)
				if err != nil {
					return nil, err
				}
				pid, err := ez.ParamID(c, "professionalId")
				if err != nil {
					return nil, err
				}
				return op(c, id, pid)
			},
		})
	}
	member(http.MethodPost, func(c *gin.Context, id, pid uint) (*domain.FavoriteList, error) {
		return h.favorites.AddMember(c.Request.Context(), id, pid)
	})
	member(http.MethodDelete, func(c *gin.Context, id, pid uint) (*domain.FavoriteList, error) {
		return h.favorites.RemoveMember(c.Request.Context(), id, pid)
	})

	ez.RegisterAction(r.Authed, ez.Action[struct{}, removedOut]{
		Method: http.MethodDelete,
		Path:   "/participants/professionals/:professionalId",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (removedOut, error) {
			uid, err := ez.MustUser(c)
			if err != nil {
				return removedOut{}, err
			}
			pid, err := ez.ParamID(c, "professionalId")
			if err != nil {
				return removedOut{}, err
			}
			lists, err := h.favorites.RemoveEverywhere(c.Request.Context(), uid, pid)
			if err != nil {
				return removedOut{}, err
			}
			return removedOut{ProfessionalID: pid, Lists: lists}, nil
		},
	})
}
