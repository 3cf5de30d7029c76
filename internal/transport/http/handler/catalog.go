package handler

import (
	"github.com/gin-gonic/gin"

	"kinopro/internal/service"
	"kinopro/internal/transport/http/ez"
)

type CatalogHandler struct{ catalog *service.CatalogService }

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (*CatalogHandler) Priority() int { return 20 }

func (h *CatalogHandler) MountAPI(r ez.Routes) {
	r.Public.GET("/cities", func(c *gin.Context) (any, error) {
		return h.catalog.Cities(c.Request.Context())
	})
	r.Public.GET("/profession-groups", func(c *gin.Context) (any, error) {
		return h.catalog.ProfessionGroups(c.Request.Context())
	})
	r.Public.GET("/professions", func(c *gin.Context) (any, error) {
		return h.catalog.Professions(c.Request.Context())
	})
	r.Public.GET("/professions/group/:groupId", func(c *gin.Context) (any, error) {
		id, err := ez.ParamID(c, "groupId")
		if err != nil {
			return nil, err
		}
		return h.catalog.ProfessionsByGroup(c.Request.Context(), id)
	})
}
