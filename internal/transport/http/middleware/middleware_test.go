package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"kinopro/internal/core/auth"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIPLimiter(t *testing.T) {
	l := NewIPLimiter(rate.Limit(1), 2)
	now := time.Unix(1_700_000_000, 0)
	assert.True(t, l.Allow("1.1.1.1", now))
	assert.True(t, l.Allow("1.1.1.1", now))
	assert.False(t, l.Allow("1.1.1.1", now))
	// 其他 IP 独立计数
	assert.True(t, l.Allow("2.2.2.2", now))
	// 令牌恢复
	assert.True(t, l.Allow("1.1.1.1", now.Add(time.Second)))
	// 空闲桶被回收
	l.Allow("3.3.3.3", now.Add(time.Hour))
	assert.Len(t, l.buckets, 1)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, "abc")
	w := serve(r, req)
	assert.Equal(t, "abc", w.Header().Get(KeyRequestID))
	assert.Equal(t, "abc", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, strings.Repeat("x", 65))
	w = serve(r, req)
	assert.Len(t, w.Header().Get(KeyRequestID), 36)
}

func TestMaxBodyBytes(t *testing.T) {
	r := gin.New()
	r.Use(MaxBodyBytes(8))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	w = serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("ok")))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAuthJWT(t *testing.T) {
	now := time.Now()
	j := &auth.JWTer{Secret: []byte("k"), Issuer: "test", TTL: time.Hour, Now: func() time.Time { return now }}
	tok, err := j.Issue(7, "u@x.ru", "user")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthJWT(j, ""), func(c *gin.Context) {
		uid, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"uid": uid})
	})
	r.GET("/admin", AuthJWT(j, "admin"), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/opt", OptionalAuth(j), func(c *gin.Context) {
		_, ok := UserID(c)
		c.JSON(http.StatusOK, gin.H{"authed": ok})
	})

	get := func(path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return serve(r, req)
	}

	assert.Equal(t, http.StatusUnauthorized, get("/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get("/me", "garbage").Code)
	w := get("/me", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":7}`, w.Body.String())
	assert.Equal(t, http.StatusForbidden, get("/admin", tok).Code)

	assert.JSONEq(t, `{"authed":false}`, get("/opt", "garbage").Body.String())
	assert.JSONEq(t, `{"authed":true}`, get("/opt", tok).Body.String())

	// 过期
	now = now.Add(2 * time.Hour)
	w = get("/me", tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token expired")
}
