package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetKeysSorted(t *testing.T) {
	m := map[string]int{"b": 1, "a": 2, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, GetKeys(m))
	assert.Empty(t, GetKeys(map[int]bool{}))
}

func TestSumMinMax(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint64(6), Sum([]uint8{1, 2, 3}))
	assert.Equal(2, Min(2, 5))
	assert.Equal("a", Min("b", "a"))
	assert.Equal(5, Max(2, 5))
}

func TestClone(t *testing.T) {
	xs := []int{1, 2}
	ys := Clone(xs)
	ys[0] = 9
	assert.Equal(t, 1, xs[0])
	assert.Nil(t, Clone[int](nil))
}
