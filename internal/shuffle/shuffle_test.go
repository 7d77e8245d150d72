package shuffle

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermute_IsPermutation(t *testing.T) {
	input := []string{"a", "b", "b", "c", "d", "d", "d", "e"}
	r := New(&Config{Seed: 42})

	for i := 0; i < 50; i++ {
		out := Permute[string](r, input)
		require.Len(t, out, len(input))

		got := append([]string(nil), out...)
		want := append([]string(nil), input...)
		sort.Strings(got)
		sort.Strings(want)
		assert.Equal(t, want, got)
	}
}

func TestPermute_DoesNotModifyInput(t *testing.T) {
	input := []int{1, 2, 3, 4, 5}
	_ = Permute[int](New(&Config{Seed: 7}), input)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, input)
}

func TestPermute_SameSeedSameOrder(t *testing.T) {
	input := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	a := Permute[int](New(&Config{Seed: 99}), input)
	b := Permute[int](New(&Config{Seed: 99}), input)
	assert.Equal(t, a, b)
}

type fixedShuffler struct{}

// Intn always picks the top of the remaining range, which keeps the order
func (fixedShuffler) Intn(n int) int { return n - 1 }

func TestPermute_IdentitySource(t *testing.T) {
	input := []int{3, 1, 2}
	assert.Equal(t, input, Permute[int](fixedShuffler{}, input))
}

func TestRandom_IntnBounds(t *testing.T) {
	r := New(nil)
	assert.Equal(t, 0, r.Intn(0))
	assert.Equal(t, 0, r.Intn(1))
	for i := 0; i < 100; i++ {
		v := r.Intn(5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
	}
}
