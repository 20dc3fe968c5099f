package items

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	c, err := Default()
	require.NoError(t, err)
	assert.Equal(t, 1, c.Version)
	assert.NotEmpty(t, c.Items)

	lotus, ok := c.ByID(19007)
	require.True(t, ok)
	assert.Equal(t, "Black Lotus", lotus.Name)
	assert.Equal(t, "epic", string(lotus.Quality))
	assert.True(t, lotus.Popular)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Load([]byte("version: [not a number"))
	assert.Error(t, err)

	_, err = Load([]byte("version: 1\nitems: []\n"))
	assert.Error(t, err)
}

func TestCatalog_Search(t *testing.T) {
	t.Parallel()

	c, err := Default()
	require.NoError(t, err)

	tests := []struct {
		name      string
		term      string
		wantNames []string
	}{
		{
			name:      "exact name",
			term:      "Black Lotus",
			wantNames: []string{"Black Lotus"},
		},
		{
			name:      "case-insensitive substring",
			term:      "LOTUS",
			wantNames: []string{"Black Lotus"},
		},
		{
			name: "substring hits multiple items",
			term: "elixir",
			wantNames: []string{
				"Elixir of the Mongoose",
				"Elixir of Superior Defense",
			},
		},
		{
			name:      "no match",
			term:      "thunderfury",
			wantNames: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := c.Search(tt.term)
			var names []string
			for _, it := range got {
				names = append(names, it.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestCatalog_Popular(t *testing.T) {
	t.Parallel()

	c, err := Default()
	require.NoError(t, err)

	pop := c.Popular()
	assert.NotEmpty(t, pop)
	for i, it := range pop {
		assert.True(t, it.Popular, "item %s", it.Name)
		if i > 0 {
			assert.LessOrEqual(t, pop[i-1].Name, it.Name, "sorted by name")
		}
	}
}

func TestItem_PriceOn(t *testing.T) {
	t.Parallel()

	c, err := Default()
	require.NoError(t, err)

	lotus, ok := c.ByID(19007)
	require.True(t, ok)

	assert.Equal(t, 185.0, lotus.PriceOn("dreamscythe"))
	assert.Equal(t, 182.5, lotus.PriceOn("thunderstrike"), "base price when no realm override")

	q := lotus.SampleQuote("nightslayer")
	assert.Equal(t, 180.0, q.Alliance)
	assert.Equal(t, 180.0, q.Horde)
	assert.Zero(t, q.ListingCount)
	assert.NotEmpty(t, q.Note)
}
