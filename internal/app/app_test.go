package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"kinopro/internal/core/auth"
	"kinopro/internal/core/cache"
	"kinopro/internal/core/config"
	"kinopro/internal/core/database"
	"kinopro/internal/core/database/dbtest"
	"kinopro/internal/domain"
	"kinopro/internal/repo"
	"kinopro/internal/transport/http/router"
	"kinopro/pkg/utils"
)

type testServer struct {
	t     *testing.T
	api   *gin.Engine
	admin *gin.Engine
	infra *Infra
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.SetPasswordCost(bcrypt.MinCost)

	db := dbtest.New(t)
	_, err := repo.NewCatalogRepo(db).Seed(context.Background(), database.DefaultTaxonomy())
	require.NoError(t, err)

	l := zap.NewNop()
	in := &Infra{
		DB:    db,
		Cache: cache.New("", "", 0, l),
		JWT:   &auth.JWTer{Secret: []byte("test-secret"), Issuer: "kinopro", TTL: time.Hour},
	}
	a := Wire(&config.Config{}, in, l)
	opts := router.Options{Details: true}
	return &testServer{
		t:     t,
		api:   router.NewAPIEngine(l, a.Deps(in), opts),
		admin: router.NewAdminEngine(l, a.Deps(in), opts),
		infra: in,
	}
}

func (s *testServer) call(engine *gin.Engine, method, path, token string, body any) (int, any) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	var out any
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func (s *testServer) do(method, path, token string, body any) (int, map[string]any) {
	s.t.Helper()
	code, out := s.call(s.api, method, path, token, body)
	m, _ := out.(map[string]any)
	return code, m
}

// signup 注册并登录，返回用户 id 与 token
func (s *testServer) signup(email string) (uint, string) {
	s.t.Helper()
	code, body := s.do(http.MethodPost, "/api/auth/register", "", gin.H{"email": email, "password": "secret1"})
	require.Equal(s.t, http.StatusCreated, code, body)
	assert.Equal(s.t, email, body["email"])
	code, body = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": "secret1"})
	require.Equal(s.t, http.StatusOK, code, body)
	tok, _ := body["token"].(string)
	require.NotEmpty(s.t, tok)
	return uint(body["user"].(map[string]any)["id"].(float64)), tok
}

func (s *testServer) lookup(path, field, name string) uint {
	s.t.Helper()
	code, out := s.call(s.api, http.MethodGet, path, "", nil)
	require.Equal(s.t, http.StatusOK, code)
	for _, it := range out.([]any) {
		m := it.(map[string]any)
		if m[field] == name {
			return uint(m["id"].(float64))
		}
	}
	s.t.Fatalf("%s not found in %s", name, path)
	return 0
}

func (s *testServer) createResume(token string, years int) uint {
	s.t.Helper()
	code, body := s.do(http.MethodPost, "/api/resumes", token, gin.H{
		"professions_id":   s.lookup("/api/professions", "name", "Оператор"),
		"city_id":          s.lookup("/api/cities", "city", "Москва"),
		"biography":        "Снимаю кино",
		"experience_years": years,
	})
	require.Equal(s.t, http.StatusCreated, code, body)
	return uint(body["id"].(float64))
}

func (s *testServer) directory(token string) map[string]any {
	s.t.Helper()
	code, body := s.do(http.MethodGet, "/api/professionals", token, nil)
	require.Equal(s.t, http.StatusOK, code, body)
	return body
}

func TestScenarioResumeAppearsInDirectory(t *testing.T) {
	s := newTestServer(t)
	_, tok := s.signup("anna@x.ru")

	code, profile := s.do(http.MethodGet, "/api/users/profile", tok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, profile["profileComplete"])

	s.createResume(tok, 5)

	code, profile = s.do(http.MethodGet, "/api/users/profile", tok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, profile["profileComplete"])

	dir := s.directory("")
	assert.Equal(t, true, dir["filtersEnabled"])
	assert.EqualValues(t, 1, dir["totalCount"])
	p := dir["professionals"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 5, p["experienceYears"])
	assert.Equal(t, "5 лет", p["experience"])
	assert.Nil(t, p["rating"])
	assert.Equal(t, false, p["hasFeedback"])
	assert.Equal(t, "Оператор", p["profession"])
	assert.Equal(t, "Москва", p["city"])

	code, body := s.do(http.MethodPost, "/api/resumes", tok, gin.H{"professions_id": 1, "city_id": 1})
	assert.Equal(t, http.StatusConflict, code, body)
}

func TestScenarioReviewRatesProfessional(t *testing.T) {
	s := newTestServer(t)
	aID, aTok := s.signup("anna@x.ru")
	_, bTok := s.signup("boris@x.ru")
	s.createResume(aTok, 2)

	review := gin.H{"reviewed_user_id": aID, "rating": 4.5, "text": "Отличный оператор"}
	code, body := s.do(http.MethodPost, "/api/reviews", bTok, review)
	require.Equal(t, http.StatusCreated, code, body)
	assert.EqualValues(t, 4.5, body["rating"])

	p := s.directory("")["professionals"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 4.5, p["rating"])
	assert.Equal(t, true, p["hasFeedback"])

	code, body = s.do(http.MethodPost, "/api/reviews", bTok, review)
	assert.Equal(t, http.StatusBadRequest, code, body)
	assert.Equal(t, "you have already reviewed this user", body["error"])

	code, _ = s.do(http.MethodPost, "/api/reviews", aTok, review)
	assert.Equal(t, http.StatusBadRequest, code, "self review")

	code, body = s.do(http.MethodPost, "/api/reviews", aTok, gin.H{"reviewed_user_id": aID + 1, "rating": 2.3})
	assert.Equal(t, http.StatusBadRequest, code, body)

	code, body = s.do(http.MethodGet, fmt.Sprintf("/api/users/%d/rating", aID), "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, aID, body["userId"])
	assert.EqualValues(t, 4.5, body["averageRating"])

	code, out := s.call(s.api, http.MethodGet, fmt.Sprintf("/api/users/%d/reviews", aID), "", nil)
	require.Equal(t, http.StatusOK, code)
	reviews := out.([]any)
	require.Len(t, reviews, 1)
	rid := uint(reviews[0].(map[string]any)["id"].(float64))

	// 只有作者能改/删
	code, _ = s.do(http.MethodPut, fmt.Sprintf("/api/reviews/%d", rid), aTok, gin.H{"rating": 1})
	assert.Equal(t, http.StatusForbidden, code)
	code, body = s.do(http.MethodPut, fmt.Sprintf("/api/reviews/%d", rid), bTok, gin.H{"rating": 3})
	require.Equal(t, http.StatusOK, code, body)
	assert.EqualValues(t, 3, body["rating"])
	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/reviews/%d", rid), bTok, nil)
	assert.Equal(t, http.StatusOK, code)

	code, body = s.do(http.MethodGet, fmt.Sprintf("/api/users/%d/rating", aID), "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, body["averageRating"])
}

func TestScenarioFavoriteList(t *testing.T) {
	s := newTestServer(t)
	_, tok := s.signup("olga@x.ru")
	_, otherTok := s.signup("ivan@x.ru")

	code, body := s.do(http.MethodPost, "/api/participants", tok, gin.H{"title": "Ops"})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, []any{}, body["list_of_ids"])
	id := uint(body["id"].(float64))
	member := fmt.Sprintf("/api/participants/%d/professionals/7", id)

	code, body = s.do(http.MethodPost, member, tok, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, []any{float64(7)}, body["list_of_ids"])

	code, body = s.do(http.MethodPost, member, tok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{float64(7)}, body["list_of_ids"])

	code, body = s.do(http.MethodDelete, member, tok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{}, body["list_of_ids"])

	path := fmt.Sprintf("/api/participants/%d", id)
	code, _ = s.do(http.MethodGet, path, otherTok, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/participants/%d", id+100), tok, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = s.do(http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = s.do(http.MethodPut, path, tok, gin.H{"list_of_ids": "nope"})
	assert.Equal(t, http.StatusBadRequest, code, body)
	code, body = s.do(http.MethodPut, path, tok, gin.H{})
	assert.Equal(t, http.StatusBadRequest, code, body)
	code, body = s.do(http.MethodPut, path, tok, gin.H{"title": "Camera", "list_of_ids": []int{3, 5, 3}})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Camera", body["title"])
	assert.Equal(t, []any{float64(3), float64(5)}, body["list_of_ids"])

	code, body = s.do(http.MethodDelete, "/api/participants/professionals/3", tok, nil)
	require.Equal(t, http.StatusOK, code, body)
	code, body = s.do(http.MethodGet, path, tok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{float64(5)}, body["list_of_ids"])

	code, body = s.do(http.MethodDelete, path, tok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "list deleted", body["message"])
	code, _ = s.do(http.MethodGet, path, tok, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDirectoryGatingOverHTTP(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < 11; i++ {
		_, tok := s.signup(fmt.Sprintf("pro%d@x.ru", i))
		s.createResume(tok, 1)
	}
	_, viewer := s.signup("viewer@x.ru")

	dir := s.directory(viewer)
	assert.Equal(t, false, dir["filtersEnabled"])
	assert.EqualValues(t, 10, dir["totalCount"])

	// 未完善资料时非法筛选参数同样被忽略
	code, body := s.do(http.MethodGet, "/api/professionals?cityId=abc&ratingFrom=x", viewer, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, false, body["filtersEnabled"])
	assert.EqualValues(t, 10, body["totalCount"])
	assert.Len(t, body["professionals"], 10)

	for _, q := range []string{"experienceFrom=abc", "cityId=abc", "ratingFrom=NaN", "ratingTo=Inf", "ratingFrom=-inf"} {
		code, body = s.do(http.MethodGet, "/api/professionals?"+q, "", nil)
		assert.Equal(t, http.StatusBadRequest, code, q, body)
	}
	code, body = s.do(http.MethodGet, "/api/professionals?experienceFrom=2", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["totalCount"])
}

func TestResumeOwnership(t *testing.T) {
	s := newTestServer(t)
	ownerID, owner := s.signup("owner@x.ru")
	_, other := s.signup("other@x.ru")
	id := s.createResume(owner, 3)

	path := fmt.Sprintf("/api/resumes/%d/experience", id)
	code, _ := s.do(http.MethodPut, path, other, gin.H{"experience_years": 1})
	assert.Equal(t, http.StatusForbidden, code)
	code, body := s.do(http.MethodPut, path, owner, gin.H{"experience_years": 7})
	require.Equal(t, http.StatusOK, code, body)
	assert.EqualValues(t, 7, body["experience_years"])

	code, body = s.do(http.MethodGet, fmt.Sprintf("/api/resumes/user/%d", ownerID), "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, id, body["id"])

	// 缺少 multipart 文件字段
	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/resumes/%d/photo", id), owner, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAdminAndHealth(t *testing.T) {
	s := newTestServer(t)
	uid, userTok := s.signup("admin@x.ru")
	require.NoError(t, s.infra.DB.Exec("UPDATE users SET role = ? WHERE id = ?", domain.RoleAdmin, uid).Error)
	adminTok, err := s.infra.JWT.Issue(uid, "admin@x.ru", domain.RoleAdmin)
	require.NoError(t, err)

	code, _ := s.call(s.admin, http.MethodGet, "/admin/v1/users", userTok, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, out := s.call(s.admin, http.MethodGet, "/admin/v1/users?q=admin", adminTok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, out.(map[string]any)["total"])

	code, out = s.call(s.admin, http.MethodPost, "/admin/v1/profile-status/recompute", adminTok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, out.(map[string]any)["updated"])

	code, _ = s.call(s.admin, http.MethodPost, "/admin/v1/catalog/seed", adminTok, nil)
	assert.Equal(t, http.StatusOK, code)

	code, out = s.call(s.api, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, out.(map[string]any)["ok"])
}
