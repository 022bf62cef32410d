package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeViewsDedupesBeforeCapping(t *testing.T) {
	// 25 unique ids followed by five repeats of the last one. The repeats
	// must collapse before the cap so 20 unique products survive.
	ids := make([]uint64, 0, 30)
	for i := uint64(1); i <= 25; i++ {
		ids = append(ids, i)
	}
	for i := 0; i < 5; i++ {
		ids = append(ids, 25)
	}

	got := normalizeViews(ids, 20)
	require.Len(t, got, 20)
	assert.Equal(t, uint64(6), got[0])
	assert.Equal(t, uint64(25), got[len(got)-1])
}

func TestNormalizeViewsKeepsNewestPosition(t *testing.T) {
	// A re-viewed product moves to its newest slot instead of keeping the
	// older one.
	got := normalizeViews([]uint64{1, 2, 1, 3}, 20)
	assert.Equal(t, []uint64{2, 1, 3}, got)
}

func TestNormalizeViewsDropsZeroIDs(t *testing.T) {
	got := normalizeViews([]uint64{0, 4, 0, 5}, 20)
	assert.Equal(t, []uint64{4, 5}, got)
}
