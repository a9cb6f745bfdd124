package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbenjam1n/talentgen/internal/catalog"
)

func TestAssembleLabelsArgMax(t *testing.T) {
	cat := catalog.Default()
	a := New(42, cat)

	for _, r := range a.AssembleN(300) {
		require.Len(t, r.Scores, len(cat.Activities()))
		require.NotEmpty(t, r.Recommended)
		require.NotEqual(t, catalog.NoSport, r.Recommended)

		best, bestValue := r.Scores[0].Activity, r.Scores[0].Value
		for _, sc := range r.Scores {
			if sc.Value > bestValue {
				best, bestValue = sc.Activity, sc.Value
			}
		}
		assert.Equal(t, best, r.Recommended)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	cat := catalog.Default()
	assert.Equal(t, New(5, cat).AssembleN(20), New(5, cat).AssembleN(20))
}

func TestRowMatchesHeader(t *testing.T) {
	cat := catalog.Default()
	r := New(1, cat).Assemble()

	header := cat.Header()
	row := r.Row(cat)
	require.Len(t, row, len(header))

	idx := map[string]int{}
	for i, h := range header {
		idx[h] = i
	}
	assert.Equal(t, r.Recommended, row[idx[catalog.ColRecommended]])
	assert.Equal(t, r.Sex, row[idx[catalog.AttrSex]])
	assert.Equal(t, r.Field(catalog.AttrPreviousSports), row[idx[catalog.AttrPreviousSports]])

	cols := r.ScoreColumns()
	require.Len(t, cols, len(cat.Activities()))
	for _, c := range cat.ScoreColumns() {
		_, ok := cols[c]
		assert.True(t, ok, "missing score column %s", c)
	}
}
