package handler

import (
	"github.com/gin-gonic/gin"

	"kinopro/internal/domain"
	"kinopro/internal/service"
	"kinopro/internal/transport/http/ez"
)

type ProfessionalHandler struct{ dir *service.DirectoryService }

func NewProfessionalHandler(dir *service.DirectoryService) *ProfessionalHandler {
	return &ProfessionalHandler{dir: dir}
}

func parseFilters(c *gin.Context) (domain.DirectoryFilters, error) {
	var (
		f   domain.DirectoryFilters
		err error
	)
	if f.ProfessionID, err = queryUint(c, "professionId"); err != nil {
		return f, err
	}
	if f.ProfessionGroupID, err = queryUint(c, "professionGroupId"); err != nil {
		return f, err
	}
	if f.CityID, err = queryUint(c, "cityId"); err != nil {
		return f, err
	}
	if f.ExperienceFrom, err = queryInt(c, "experienceFrom"); err != nil {
		return f, err
	}
	if f.ExperienceTo, err = queryInt(c, "experienceTo"); err != nil {
		return f, err
	}
	if f.RatingFrom, err = queryFloat(c, "ratingFrom"); err != nil {
		return f, err
	}
	if f.RatingTo, err = queryFloat(c, "ratingTo"); err != nil {
		return f, err
	}
	f.HasPhoto = queryBool(c, "hasPhoto")
	f.HasReviews = queryBool(c, "hasReviews")
	f.Search = c.Query("search")
	return f, nil
}

func (h *ProfessionalHandler) MountAPI(r ez.Routes) {
	r.Optional.GET("/professionals", func(c *gin.Context) (any, error) {
		uid := ez.OptionalUser(c)
		complete, err := h.dir.ProfileComplete(c.Request.Context(), uid)
		if err != nil {
			return nil, err
		}
		// 资料未完善时忽略全部筛选参数，非法值也不报错
		var f domain.DirectoryFilters
		if complete {
			if f, err = parseFilters(c); err != nil {
				return nil, err
			}
		}
		return h.dir.List(c.Request.Context(), f, uid)
	})

	r.Optional.GET("/professionals/:id", func(c *gin.Context) (any, error) {
		id, err := ez.ParamID(c, "id")
		if err != nil {
			return nil, err
		}
		return h.dir.Get(c.Request.Context(), id, ez.OptionalUser(c))
	})
}
