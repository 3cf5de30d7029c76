package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kinopro/internal/domain"
	"kinopro/internal/service"
	"kinopro/internal/transport/http/ez"
	resp "kinopro/internal/transport/http/response"
)

type ReviewHandler struct{ reviews *service.ReviewService }

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type reviewPatch struct {
	Rating *float64 `json:"rating"`
	Text   *string  `json:"text"`
}

// authored 解析 :id，非作者 403
func (h *ReviewHandler) authored(c *gin.Context) (uint, error) {
	uid, err := ez.MustUser(c)
	if err != nil {
		return 0, err
	}
	id, err := ez.ParamID(c, "id")
	if err != nil {
		return 0, err
	}
	rv, err := h.reviews.Get(c.Request.Context(), id)
	if err != nil {
		return 0, err
	}
	if rv.ReviewerUserID != uid {
		return 0, domain.Forbidden("you can only modify your own review")
	}
	return id, nil
}

func (h *ReviewHandler) MountAPI(r ez.Routes) {
	ez.RegisterAction(r.Authed, ez.Action[domain.ReviewInput, *domain.Review]{
		Method:    http.MethodPost,
		Path:      "/reviews",
		Binder:    ez.BindJSON,
		Auth:      true,
		Status:    http.StatusCreated,
		Overrides: map[domain.Kind]int{domain.KindDuplicate: http.StatusBadRequest},
		Handler: func(c *gin.Context, in *domain.ReviewInput) (*domain.Review, error) {
			uid, err := ez.MustUser(c)
			if err != nil {
				return nil, err
			}
			if in.ReviewedUserID == uid {
				return nil, domain.Validation("you cannot review yourself")
			}
			in.ReviewerUserID = uid
			return h.reviews.Create(c.Request.Context(), *in)
		},
	})

	ez.RegisterAction(r.Authed, ez.Action[reviewPatch, *domain.Review]{
		Method: http.MethodPut,
		Path:   "/reviews/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *reviewPatch) (*domain.Review, error) {
			id, err := h.authored(c)
			if err != nil {
				return nil, err
			}
			return h.reviews.Update(c.Request.Context(), id, in.Rating, in.Text)
		},
	})

	ez.RegisterAction(r.Authed, ez.Action[struct{}, resp.Message]{
		Method: http.MethodDelete,
		Path:   "/reviews/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (resp.Message, error) {
			id, err := h.authored(c)
			if err != nil {
				return resp.Message{}, err
			}
			if err := h.reviews.Remove(c.Request.Context(), id); err != nil {
				return resp.Message{}, err
			}
			return resp.Message{Message: "review deleted"}, nil
		},
	})
}
