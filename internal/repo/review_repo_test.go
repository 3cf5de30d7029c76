package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinopro/internal/domain"
)

func TestReviewDuplicatePair(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "a@x.ru", "Анна", "Петрова")
	b := f.user(t, "b@x.ru", "Борис", "")
	repo := NewReviewRepo(f.db)

	require.NoError(t, repo.Create(ctx, &domain.Review{Rating: 4.5, ReviewedUserID: a.ID, ReviewerUserID: b.ID}))
	err := repo.Create(ctx, &domain.Review{Rating: 3, ReviewedUserID: a.ID, ReviewerUserID: b.ID})
	assert.True(t, domain.IsKind(err, domain.KindDuplicate), "%v", err)

	// 反向评价不冲突
	require.NoError(t, repo.Create(ctx, &domain.Review{Rating: 5, ReviewedUserID: b.ID, ReviewerUserID: a.ID}))
}

func TestReviewListAndStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	target := f.user(t, "t@x.ru", "T", "T")
	r1 := f.user(t, "r1@x.ru", "Анна", "Петрова")
	r2 := f.user(t, "r2@x.ru", "", "")
	repo := NewReviewRepo(f.db)

	require.NoError(t, repo.Create(ctx, &domain.Review{Rating: 4, ReviewedUserID: target.ID, ReviewerUserID: r1.ID}))
	require.NoError(t, repo.Create(ctx, &domain.Review{Rating: 4.5, ReviewedUserID: target.ID, ReviewerUserID: r2.ID}))

	list, err := repo.ListForUser(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, r2.ID, list[0].ReviewerUserID)
	assert.Equal(t, ReviewerFallbackName, list[0].ReviewerName)
	assert.Equal(t, "Анна Петрова", list[1].ReviewerName)

	stats, err := repo.Stats(ctx, []uint{target.ID, r1.ID})
	require.NoError(t, err)
	assert.InDelta(t, 4.25, stats[target.ID].Average, 1e-9)
	assert.EqualValues(t, 2, stats[target.ID].Count)
	_, ok := stats[r1.ID]
	assert.False(t, ok)
}

func TestReviewUpdateDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "a@x.ru", "A", "")
	b := f.user(t, "b@x.ru", "B", "")
	repo := NewReviewRepo(f.db)

	rv := &domain.Review{Rating: 2, ReviewedUserID: a.ID, ReviewerUserID: b.ID}
	require.NoError(t, repo.Create(ctx, rv))

	text := "great"
	require.NoError(t, repo.Update(ctx, rv.ID, 3.5, &text))
	got, err := repo.FindByID(ctx, rv.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.5, got.Rating)
	require.NotNil(t, got.Text)
	assert.Equal(t, "great", *got.Text)

	assert.True(t, domain.IsKind(repo.Update(ctx, rv.ID+9, 1, nil), domain.KindNotFound))

	ok, err := repo.Delete(ctx, rv.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	got, err = repo.FindByPair(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
