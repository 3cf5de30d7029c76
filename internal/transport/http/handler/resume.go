package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"kinopro/internal/domain"
	"kinopro/internal/service"
	"kinopro/internal/transport/http/ez"
)

type ResumeHandler struct{ resumes *service.ResumeService }

func NewResumeHandler(resumes *service.ResumeService) *ResumeHandler {
	return &ResumeHandler{resumes: resumes}
}

type experienceIn struct {
	ExperienceYears *int `json:"experience_years"`
}

// owned 解析 :id 并校验当前用户为简历所有者
func (h *ResumeHandler) owned(c *gin.Context) (uint, error) {
	uid, err := ez.MustUser(c)
	if err != nil {
		return 0, err
	}
	id, err := ez.ParamID(c, "id")
	if err != nil {
		return 0, err
	}
	r, err := h.resumes.Get(c.Request.Context(), id)
	if err != nil {
		return 0, err
	}
	if r.OwnerUserID != uid {
		return 0, domain.Forbidden("you can only modify your own resume")
	}
	return id, nil
}

func (h *ResumeHandler) MountAPI(r ez.Routes) {
	r.Public.GET("/resumes/user/:userId", func(c *gin.Context) (any, error) {
		uid, err := ez.ParamID(c, "userId")
		if err != nil {
			return nil, err
		}
		return h.resumes.GetByUser(c.Request.Context(), uid)
	})

	ez.RegisterAction(r.Authed, ez.Action[service.ResumeInput, *domain.ResumeView]{
		Method: http.MethodPost,
		Path:   "/resumes",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.ResumeInput) (*domain.ResumeView, error) {
			uid, err := ez.MustUser(c)
			if err != nil {
				return nil, err
			}
			return h.resumes.Create(c.Request.Context(), uid, *in)
		},
	})

	ez.RegisterAction(r.Authed, ez.Action[service.ResumeInput, *domain.ResumeView]{
		Method: http.MethodPut,
		Path:   "/resumes/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *service.ResumeInput) (*domain.ResumeView, error) {
			id, err := h.owned(c)
			if err != nil {
				return nil, err
			}
			return h.resumes.Update(c.Request.Context(), id, *in)
		},
	})

	ez.RegisterAction(r.Authed, ez.Action[experienceIn, *domain.ResumeView]{
		Method: http.MethodPut,
		Path:   "/resumes/:id/experience",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *experienceIn) (*domain.ResumeView, error) {
			id, err := h.owned(c)
			if err != nil {
				return nil, err
			}
			return h.resumes.UpdateExperience(c.Request.Context(), id, in.ExperienceYears)
		},
	})

	r.Authed.POSTFILE("/resumes/:id/photo", "photo", func(c *gin.Context, fh *multipart.FileHeader) (any, error) {
		id, err := h.owned(c)
		if err != nil {
			return nil, err
		}
		f, err := fh.Open()
		if err != nil {
			return nil, domain.Validation("cannot read uploaded file")
		}
		defer f.Close()

		// 以文件内容判断类型，不信任客户端声明
		head := make([]byte, 512)
		n, _ := f.Read(head)
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, domain.Internal("rewind upload", err)
		}
		return h.resumes.UploadPhoto(c.Request.Context(), id, service.Photo{
			ContentType: http.DetectContentType(head[:n]),
			Size:        fh.Size,
			Body:        f,
		})
	})
}
