package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kinopro/internal/domain"
	"kinopro/internal/service"
	"kinopro/internal/transport/http/ez"
)

type UserHandler struct {
	users   *service.UserService
	reviews *service.ReviewService
}

func NewUserHandler(users *service.UserService, reviews *service.ReviewService) *UserHandler {
	return &UserHandler{users: users, reviews: reviews}
}

type namesOut struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type ratingOut struct {
	UserID        uint     `json:"userId"`
	AverageRating *float64 `json:"averageRating"`
}

func (h *UserHandler) MountAPI(r ez.Routes) {
	ez.RegisterAction(r.Authed, ez.Action[struct{}, *service.Profile]{
		Method: http.MethodGet,
		Path:   "/users/profile",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*service.Profile, error) {
			uid, err := ez.MustUser(c)
			if err != nil {
				return nil, err
			}
			return h.users.Profile(c.Request.Context(), uid)
		},
	})

	ez.RegisterAction(r.Authed, ez.Action[service.NamesInput, namesOut]{
		Method: http.MethodPut,
		Path:   "/users/profile",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *service.NamesInput) (namesOut, error) {
			uid, err := ez.MustUser(c)
			if err != nil {
				return namesOut{}, err
			}
			u, err := h.users.UpdateNames(c.Request.Context(), uid, *in)
			if err != nil {
				return namesOut{}, err
			}
			return namesOut{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}, nil
		},
	})

	r.Public.GET("/users/:userId/reviews", func(c *gin.Context) (any, error) {
		uid, err := ez.ParamID(c, "userId")
		if err != nil {
			return nil, err
		}
		reviews, err := h.reviews.ListForUser(c.Request.Context(), uid)
		if err != nil {
			return nil, err
		}
		if reviews == nil {
			reviews = []domain.Review{}
		}
		return reviews, nil
	})

	r.Public.GET("/users/:userId/rating", func(c *gin.Context) (any, error) {
		uid, err := ez.ParamID(c, "userId")
		if err != nil {
			return nil, err
		}
		avg, err := h.reviews.AverageRating(c.Request.Context(), uid)
		if err != nil {
			return nil, err
		}
		return ratingOut{UserID: uid, AverageRating: avg}, nil
	})
}
