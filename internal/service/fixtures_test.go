package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"kinopro/internal/core/cache"
	"kinopro/internal/core/database"
	"kinopro/internal/core/database/dbtest"
	"kinopro/internal/domain"
	"kinopro/internal/repo"
	"kinopro/pkg/utils"
)

var testNow = time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)

type stubTokens struct{}

func (stubTokens) Issue(uid uint, email, role string) (string, error) { return "tok-" + email, nil }

type env struct {
	users     *UserService
	resumes   *ResumeService
	catalog   *CatalogService
	favorites *FavoriteService
	reviews   *ReviewService
	dir       *DirectoryService
	userRepo  *repo.UserRepo
	resRepo   *repo.ResumeRepo
}

func newEnv(t *testing.T, photos PhotoStore) *env {
	t.Helper()
	utils.SetPasswordCost(bcrypt.MinCost)
	db := dbtest.New(t)
	l := zap.NewNop()
	now := FixedClock(testNow)

	users := repo.NewUserRepo(db)
	resumes := repo.NewResumeRepo(db)
	catalog := repo.NewCatalogRepo(db)
	_, err := catalog.Seed(context.Background(), database.DefaultTaxonomy())
	require.NoError(t, err)

	e := &env{userRepo: users, resRepo: resumes}
	e.users = NewUserService(users, resumes, stubTokens{}, now, l)
	e.resumes = NewResumeService(resumes, catalog, photos, 0, now, l)
	e.catalog = NewCatalogService(catalog, cache.New("", "", 0, l), time.Minute, database.DefaultTaxonomy(), l)
	e.favorites = NewFavoriteService(repo.NewFavoriteRepo(db), l)
	e.reviews = NewReviewService(repo.NewReviewRepo(db), users, l)
	e.dir = NewDirectoryService(repo.NewProfessionalRepo(db), users, e.reviews, e.favorites, now, l)
	return e
}

func (e *env) register(t *testing.T, email string) *domain.User {
	t.Helper()
	u, err := e.users.Register(context.Background(), RegisterInput{Email: email, Password: "secret1"})
	require.NoError(t, err)
	return u
}

func (e *env) ids(t *testing.T, profession, city string) (uint, uint) {
	t.Helper()
	ctx := context.Background()
	ps, err := e.catalog.Professions(ctx)
	require.NoError(t, err)
	cs, err := e.catalog.Cities(ctx)
	require.NoError(t, err)
	var pid, cid uint
	for _, p := range ps {
		if p.Name == profession {
			pid = p.ID
		}
	}
	for _, c := range cs {
		if c.Name == city {
			cid = c.ID
		}
	}
	require.NotZero(t, pid, profession)
	require.NotZero(t, cid, city)
	return pid, cid
}

func (e *env) resume(t *testing.T, owner uint, years *int, bio string) *domain.ResumeView {
	t.Helper()
	pid, cid := e.ids(t, "Оператор", "Москва")
	v, err := e.resumes.Create(context.Background(), owner, ResumeInput{
		ProfessionID: &pid, CityID: &cid, Biography: bio, ExperienceYears: years,
	})
	require.NoError(t, err)
	return v
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }
func strp(v string) *string     { return &v }
