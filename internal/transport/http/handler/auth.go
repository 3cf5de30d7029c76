package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kinopro/internal/service"
	"kinopro/internal/transport/http/ez"
)

type AuthHandler struct{ users *service.UserService }

func NewAuthHandler(users *service.UserService) *AuthHandler { return &AuthHandler{users: users} }

func (*AuthHandler) Priority() int { return 10 }

type registerOut struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type loginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginOut struct {
	Token string `json:"token"`
	User  gin.H  `json:"user"`
}

func (h *AuthHandler) MountAPI(r ez.Routes) {
	ez.RegisterAction(r.Limited, ez.Action[service.RegisterInput, registerOut]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.RegisterInput) (registerOut, error) {
			u, err := h.users.Register(c.Request.Context(), *in)
			if err != nil {
				return registerOut{}, err
			}
			return registerOut{ID: u.ID, Email: u.Email}, nil
		},
	})

	ez.RegisterAction(r.Limited, ez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			tok, u, err := h.users.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return loginOut{}, err
			}
			return loginOut{
				Token: tok,
				User:  gin.H{"id": u.ID, "email": u.Email, "firstName": u.FirstName, "lastName": u.LastName, "role": u.Role},
			}, nil
		},
	})
}
