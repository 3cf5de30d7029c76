package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kinopro/internal/core/database"
	"kinopro/internal/core/database/dbtest"
	"kinopro/internal/domain"
)

// fixture 已迁移并写入默认参考数据的库
type fixture struct {
	db      *gorm.DB
	users   *UserRepo
	resumes *ResumeRepo
	catalog *CatalogRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	f := &fixture{
		db:      db,
		users:   NewUserRepo(db),
		resumes: NewResumeRepo(db),
		catalog: NewCatalogRepo(db),
	}
	_, err := f.catalog.Seed(context.Background(), database.DefaultTaxonomy())
	require.NoError(t, err)
	return f
}

func (f *fixture) user(t *testing.T, email, first, last string) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, PasswordHash: "x", FirstName: first, LastName: last, Role: domain.RoleUser}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) professionID(t *testing.T, name string) uint {
	t.Helper()
	ps, err := f.catalog.Professions(context.Background(), nil)
	require.NoError(t, err)
	for _, p := range ps {
		if p.Name == name {
			return p.ID
		}
	}
	t.Fatalf("profession %q not seeded", name)
	return 0
}

func (f *fixture) cityID(t *testing.T, name string) uint {
	t.Helper()
	cs, err := f.catalog.Cities(context.Background())
	require.NoError(t, err)
	for _, c := range cs {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("city %q not seeded", name)
	return 0
}

func (f *fixture) resume(t *testing.T, owner uint, since *time.Time) *domain.Resume {
	t.Helper()
	r := &domain.Resume{
		OwnerUserID:  owner,
		ProfessionID: f.professionID(t, "Оператор"),
		CityID:       f.cityID(t, "Москва"),
		Since:        since,
	}
	require.NoError(t, f.resumes.Create(context.Background(), r))
	return r
}
