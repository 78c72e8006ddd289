package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5}

	even := Filter(nums, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)

	none := Filter(nums, func(n int) bool { return n > 10 })
	assert.Empty(t, none)
}

func TestFirst(t *testing.T) {
	words := []string{"alpha", "beta", "gamma"}

	got, ok := First(words, func(s string) bool { return len(s) == 4 })
	require.True(t, ok)
	assert.Equal(t, "beta", got)

	_, ok = First(words, func(s string) bool { return s == "delta" })
	assert.False(t, ok)
}

func TestSum(t *testing.T) {
	type line struct {
		qty   int
		price float64
	}
	lines := []line{{2, 10}, {1, 5.5}}

	total := Sum(lines, func(l line) float64 { return float64(l.qty) * l.price })
	assert.InDelta(t, 25.5, total, 0.001)

	assert.Zero(t, Sum(nil, func(l line) float64 { return l.price }))
}
