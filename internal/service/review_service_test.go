package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinopro/internal/domain"
)

func TestReviewCreateRules(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	a := e.register(t, "a@x.ru")
	b := e.register(t, "b@x.ru")

	for _, r := range []float64{-1, 2.3, 5.5} {
		_, err := e.reviews.Create(ctx, domain.ReviewInput{Rating: floatp(r), ReviewedUserID: a.ID, ReviewerUserID: b.ID})
		assert.True(t, domain.IsKind(err, domain.KindValidation), "%v", r)
	}
	_, err := e.reviews.Create(ctx, domain.ReviewInput{ReviewedUserID: a.ID, ReviewerUserID: b.ID})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
	_, err = e.reviews.Create(ctx, domain.ReviewInput{Rating: floatp(3), ReviewedUserID: 999, ReviewerUserID: b.ID})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	rv, err := e.reviews.Create(ctx, domain.ReviewInput{Rating: floatp(4.5), ReviewedUserID: a.ID, ReviewerUserID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, 4.5, rv.Rating)

	_, err = e.reviews.Create(ctx, domain.ReviewInput{Rating: floatp(1), ReviewedUserID: a.ID, ReviewerUserID: b.ID})
	assert.True(t, domain.IsKind(err, domain.KindDuplicate))
}

func TestAverageRating(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	target := e.register(t, "t@x.ru")

	avg, err := e.reviews.AverageRating(ctx, target.ID)
	require.NoError(t, err)
	assert.Nil(t, avg)

	for i, r := range []float64{4.5, 4, 4.5} {
		rv := e.register(t, string(rune('a'+i))+"@x.ru")
		_, err := e.reviews.Create(ctx, domain.ReviewInput{Rating: floatp(r), ReviewedUserID: target.ID, ReviewerUserID: rv.ID})
		require.NoError(t, err)
	}
	avg, err = e.reviews.AverageRating(ctx, target.ID)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.Equal(t, 4.3, *avg)
}

func TestReviewUpdateRemove(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	a := e.register(t, "a@x.ru")
	b := e.register(t, "b@x.ru")
	rv, err := e.reviews.Create(ctx, domain.ReviewInput{Rating: floatp(2), ReviewedUserID: a.ID, ReviewerUserID: b.ID})
	require.NoError(t, err)

	_, err = e.reviews.Update(ctx, rv.ID, floatp(7), nil)
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	up, err := e.reviews.Update(ctx, rv.ID, floatp(5), strp("отлично"))
	require.NoError(t, err)
	assert.Equal(t, 5.0, up.Rating)

	require.NoError(t, e.reviews.Remove(ctx, rv.ID))
	assert.True(t, domain.IsKind(e.reviews.Remove(ctx, rv.ID), domain.KindNotFound))
	_, err = e.reviews.Update(ctx, rv.ID, floatp(1), nil)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}
