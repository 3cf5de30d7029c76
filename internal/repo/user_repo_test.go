package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinopro/internal/domain"
	"kinopro/internal/feature/user"
)

func TestUserCreateDuplicate(t *testing.T) {
	f := newFixture(t)
	f.user(t, "a@x.ru", "A", "")
	err := f.users.Create(context.Background(), &domain.User{Email: "a@x.ru", PasswordHash: "x", Role: domain.RoleUser})
	assert.True(t, domain.IsKind(err, domain.KindDuplicate), "%v", err)
}

func TestResumeCreateMarksProfileComplete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "a@x.ru", "A", "")
	assert.False(t, u.ProfileComplete)

	since := time.Date(2019, time.March, 1, 0, 0, 0, 0, time.UTC)
	r := f.resume(t, u.ID, &since)

	got, err := f.users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.ProfileComplete)

	res, err := f.resumes.FindByOwner(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, r.ID, res.ID)
	assert.Equal(t, "Оператор", res.ProfessionName)
	assert.Equal(t, "Москва", res.CityName)
	require.NotNil(t, res.Since)
	assert.Equal(t, "2019-03-01", domain.FormatDate(*res.Since))

	dup := &domain.Resume{OwnerUserID: u.ID, ProfessionID: r.ProfessionID, CityID: r.CityID}
	assert.True(t, domain.IsKind(f.resumes.Create(ctx, dup), domain.KindDuplicate))
}

func TestRecomputeProfileStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	with := f.user(t, "with@x.ru", "W", "")
	without := f.user(t, "without@x.ru", "N", "")
	f.resume(t, with.ID, nil)

	// 人为制造不一致
	require.NoError(t, f.db.Model(&user.UserModel{}).Where("id = ?", with.ID).Update("profile_complete_status", false).Error)
	require.NoError(t, f.db.Model(&user.UserModel{}).Where("id = ?", without.ID).Update("profile_complete_status", true).Error)

	n, err := f.users.RecomputeProfileStatus(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	w, _ := f.users.FindByID(ctx, with.ID)
	o, _ := f.users.FindByID(ctx, without.ID)
	assert.True(t, w.ProfileComplete)
	assert.False(t, o.ProfileComplete)
}

func TestUserListAndUpdateNames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "ivan@x.ru", "Иван", "Петров")
	u := f.user(t, "olga@x.ru", "Ольга", "")

	users, total, err := f.users.List(ctx, "olga", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)

	last := "Смирнова"
	require.NoError(t, f.users.UpdateNames(ctx, u.ID, nil, &last))
	got, _ := f.users.FindByID(ctx, u.ID)
	assert.Equal(t, "Ольга", got.FirstName)
	assert.Equal(t, "Смирнова", got.LastName)

	assert.True(t, domain.IsKind(f.users.UpdateNames(ctx, 999, nil, &last), domain.KindNotFound))
}
