package collection

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, strconv.Itoa)
	assert.Equal(t, []string{"1", "2", "3"}, got)
	assert.Empty(t, Map(nil, strconv.Itoa))
}

func TestFilter(t *testing.T) {
	even := Filter([]int{1, 2, 3, 4, 5}, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)
	assert.Nil(t, Filter([]int{1, 3}, func(n int) bool { return n%2 == 0 }))
}

func TestFirstAndContains(t *testing.T) {
	words := []string{"alpha", "beta", "gamma"}
	got, ok := First(words, func(s string) bool { return strings.HasPrefix(s, "b") })
	assert.True(t, ok)
	assert.Equal(t, "beta", got)

	_, ok = First(words, func(s string) bool { return s == "delta" })
	assert.False(t, ok)

	assert.True(t, Contains(words, func(s string) bool { return s == "gamma" }))
	assert.False(t, Contains(words, func(s string) bool { return s == "delta" }))
}

func TestGroupBy(t *testing.T) {
	groups := GroupBy([]int{1, 2, 3, 4, 5}, func(n int) string {
		if n%2 == 0 {
			return "even"
		}
		return "odd"
	})
	assert.Equal(t, []int{1, 3, 5}, groups["odd"])
	assert.Equal(t, []int{2, 4}, groups["even"])
}

func TestReduceAndSum(t *testing.T) {
	concat := Reduce([]string{"a", "b", "c"}, "", func(carry, s string) string { return carry + s })
	assert.Equal(t, "abc", concat)

	total := Sum([]float64{1.5, 2.5, 3.0}, func(f float64) float64 { return f })
	assert.InDelta(t, 7.0, total, 1e-9)
}

func TestSortByStableKeepsEqualOrder(t *testing.T) {
	type pair struct {
		key int
		id  string
	}
	s := []pair{{2, "a"}, {1, "b"}, {2, "c"}, {1, "d"}}
	SortByStable(s, func(a, b pair) bool { return a.key < b.key })
	ids := Map(s, func(p pair) string { return p.id })
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids)
}

func TestPaginate(t *testing.T) {
	s := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, []int{1, 2, 3}, Paginate(s, 1, 3))
	assert.Equal(t, []int{4, 5, 6}, Paginate(s, 2, 3))
	assert.Equal(t, []int{7}, Paginate(s, 3, 3))
	assert.Nil(t, Paginate(s, 4, 3))
	assert.Equal(t, []int{1, 2, 3}, Paginate(s, 0, 3), "page below 1 normalizes to 1")
	assert.Nil(t, Paginate(s, 1, 0))
}
