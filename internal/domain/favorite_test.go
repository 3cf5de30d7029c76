package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDListUnmarshal(t *testing.T) {
	cases := []struct {
		body    string
		ids     []uint
		set     bool
		invalid bool
	}{
		{`{}`, nil, false, false},
		{`{"list_of_ids": null}`, nil, false, false},
		{`{"list_of_ids": []}`, []uint{}, true, false},
		{`{"list_of_ids": [7, 3, 7]}`, []uint{7, 3, 7}, true, false},
		{`{"list_of_ids": "7"}`, nil, true, true},
		{`{"list_of_ids": [1, -2]}`, nil, true, true},
		{`{"list_of_ids": [1.5]}`, nil, true, true},
		{`{"list_of_ids": ["a"]}`, nil, true, true},
	}
	for _, c := range cases {
		var in FavoritePatch
		require.NoError(t, json.Unmarshal([]byte(c.body), &in), c.body)
		assert.Equal(t, c.set, in.ListOfIDs.Set, c.body)
		assert.Equal(t, c.invalid, in.ListOfIDs.Invalid, c.body)
		if !c.invalid {
			assert.Equal(t, c.ids, in.ListOfIDs.IDs, c.body)
		}
	}
}

func TestFavoritePatchEmpty(t *testing.T) {
	assert.True(t, FavoritePatch{}.Empty())
	title := "x"
	assert.False(t, FavoritePatch{Title: &title}.Empty())
	assert.False(t, FavoritePatch{ListOfIDs: Of()}.Empty())
}

func TestDedup(t *testing.T) {
	assert.Equal(t, []uint{7, 3, 9}, Dedup([]uint{7, 3, 7, 9, 3}))
	assert.Equal(t, []uint{}, Dedup(nil))
}
