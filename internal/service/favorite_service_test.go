package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinopro/internal/domain"
)

func TestFavoriteCreateValidation(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	u := e.register(t, "u@x.ru")

	_, err := e.favorites.Create(ctx, domain.FavoriteCreate{OwnerUserID: u.ID})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
	_, err = e.favorites.Create(ctx, domain.FavoriteCreate{Title: strp("   "), OwnerUserID: u.ID})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
	_, err = e.favorites.Create(ctx, domain.FavoriteCreate{Title: strp("x"), ListOfIDs: domain.IDList{Set: true, Invalid: true}, OwnerUserID: u.ID})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	l, err := e.favorites.Create(ctx, domain.FavoriteCreate{Title: strp(" Ops "), OwnerUserID: u.ID})
	require.NoError(t, err)
	assert.Equal(t, "Ops", l.Title)
	assert.Equal(t, []uint{}, l.ListOfIDs)
}

func TestFavoriteUpdateValidation(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	u := e.register(t, "u@x.ru")
	l, err := e.favorites.Create(ctx, domain.FavoriteCreate{Title: strp("Ops"), OwnerUserID: u.ID})
	require.NoError(t, err)

	_, err = e.favorites.Update(ctx, l.ID+10, domain.FavoritePatch{})
	assert.True(t, domain.IsKind(err, domain.KindNotFound), "missing list wins over empty body")
	_, err = e.favorites.Update(ctx, l.ID, domain.FavoritePatch{})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
	_, err = e.favorites.Update(ctx, l.ID, domain.FavoritePatch{Title: strp("")})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	up, err := e.favorites.Update(ctx, l.ID, domain.FavoritePatch{Description: strp("camera crew"), ListOfIDs: domain.Of(3, 4)})
	require.NoError(t, err)
	assert.Equal(t, "Ops", up.Title)
	require.NotNil(t, up.Description)
	assert.Equal(t, []uint{3, 4}, up.ListOfIDs)
}

func TestFavoriteMembershipScenario(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	u := e.register(t, "u@x.ru")
	l, err := e.favorites.Create(ctx, domain.FavoriteCreate{Title: strp("Ops"), OwnerUserID: u.ID})
	require.NoError(t, err)

	got, err := e.favorites.AddMember(ctx, l.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, []uint{7}, got.ListOfIDs)
	got, err = e.favorites.AddMember(ctx, l.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, []uint{7}, got.ListOfIDs)

	got, err = e.favorites.RemoveMember(ctx, l.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, []uint{}, got.ListOfIDs)
	got, err = e.favorites.RemoveMember(ctx, l.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, []uint{}, got.ListOfIDs)

	_, err = e.favorites.AddMember(ctx, l.ID+10, 7)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestFavoriteRemoveEverywhere(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	u := e.register(t, "u@x.ru")
	other := e.register(t, "o@x.ru")
	l1, _ := e.favorites.Create(ctx, domain.FavoriteCreate{Title: strp("a"), ListOfIDs: domain.Of(7, 8), OwnerUserID: u.ID})
	l2, _ := e.favorites.Create(ctx, domain.FavoriteCreate{Title: strp("b"), ListOfIDs: domain.Of(8), OwnerUserID: u.ID})
	l3, _ := e.favorites.Create(ctx, domain.FavoriteCreate{Title: strp("c"), ListOfIDs: domain.Of(7), OwnerUserID: other.ID})

	changed, err := e.favorites.RemoveEverywhere(ctx, u.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, []uint{l1.ID}, changed)

	got, _ := e.favorites.Get(ctx, l1.ID)
	assert.Equal(t, []uint{8}, got.ListOfIDs)
	got, _ = e.favorites.Get(ctx, l2.ID)
	assert.Equal(t, []uint{8}, got.ListOfIDs)
	got, _ = e.favorites.Get(ctx, l3.ID)
	assert.Equal(t, []uint{7}, got.ListOfIDs)

	require.NoError(t, e.favorites.Remove(ctx, l1.ID))
	assert.True(t, domain.IsKind(e.favorites.Remove(ctx, l1.ID), domain.KindNotFound))
}
