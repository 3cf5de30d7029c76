package handler

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"kinopro/internal/domain"
)

// 查询参数解析：空值视为未传，非法数字（含 NaN/Inf）返回 400

func queryUint(c *gin.Context, name string) (*uint, error) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, domain.Validation("invalid %s", name)
	}
	u := uint(v)
	return &u, nil
}

func queryInt(c *gin.Context, name string) (*int, error) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, domain.Validation("invalid %s", name)
	}
	return &v, nil
}

func queryFloat(c *gin.Context, name string) (*float64, error) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, domain.Validation("invalid %s", name)
	}
	return &v, nil
}

// queryBool 接受 true/1，其余视为 false
func queryBool(c *gin.Context, name string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.Query(name)))
	return err == nil && v
}
