package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinopro/internal/core/database"
)

func TestCatalogSeedIdempotent(t *testing.T) {
	f := newFixture(t) // 已经写入一次
	ctx := context.Background()

	res, err := f.catalog.Seed(ctx, database.DefaultTaxonomy())
	require.NoError(t, err)
	assert.Zero(t, res.Cities)
	assert.Zero(t, res.Groups)
	assert.Zero(t, res.Professions)

	tax := database.DefaultTaxonomy()
	cities, err := f.catalog.Cities(ctx)
	require.NoError(t, err)
	assert.Len(t, cities, len(tax.Cities))

	all, err := f.catalog.Professions(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, len(tax.Professions))

	groups, err := f.catalog.ProfessionGroups(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, groups)
	byGroup, err := f.catalog.Professions(ctx, &groups[0].ID)
	require.NoError(t, err)
	for _, p := range byGroup {
		assert.Equal(t, groups[0].ID, p.GroupID)
	}

	ok, err := f.catalog.CityExists(ctx, cities[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = f.catalog.ProfessionExists(ctx, 100000)
	require.NoError(t, err)
	assert.False(t, ok)
}
