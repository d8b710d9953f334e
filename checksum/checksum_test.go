package checksum

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	perrors "github.com/amp-labs/patience/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashInt(v int) uint64 {
	return Bytes([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

func TestFingerprint_OrderIndependent(t *testing.T) {
	t.Parallel()

	values := []string{"pear", "apple", "fig", "apple", "kiwi"}

	shuffled := slices.Clone(values)
	rng := rand.New(rand.NewPCG(1, 2))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	assert.True(t, Strings(values).Equal(Strings(shuffled)))
	assert.True(t, Strings(values).Equal(Of(slices.Values(values), String)))
	assert.Equal(t, 5, Strings(values).Count)
}

func TestFingerprint_DetectsChanges(t *testing.T) {
	t.Parallel()

	base := Strings([]string{"a", "b", "b", "c"})

	tests := []struct {
		name   string
		values []string
	}{
		{name: "dropped duplicate", values: []string{"a", "b", "c"}},
		{name: "duplicated instead", values: []string{"a", "a", "b", "c"}},
		{name: "changed value", values: []string{"a", "b", "b", "d"}},
		{name: "extra value", values: []string{"a", "b", "b", "c", "c"}},
		{name: "pair of duplicates swapped", values: []string{"a", "c", "c", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.False(t, base.Equal(Strings(tt.values)))
		})
	}
}

func TestFingerprint_String(t *testing.T) {
	t.Parallel()

	var empty Fingerprint

	assert.Equal(t, "0:"+strings.Repeat("0", 48), empty.String())
	assert.True(t, strings.HasPrefix(Strings([]string{"x"}).String(), "1:"))
}

func TestVerify(t *testing.T) {
	t.Parallel()

	input := []int{5, 3, 9, 3, 1}
	before := Of(slices.Values(input), hashInt)
	less := func(a, b int) bool { return a < b }

	t.Run("sorted permutation", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, Verify(before, slices.Values([]int{1, 3, 3, 5, 9}), less, hashInt))
	})

	t.Run("out of order", func(t *testing.T) {
		t.Parallel()

		err := Verify(before, slices.Values([]int{1, 3, 5, 3, 9}), less, hashInt)
		require.ErrorIs(t, err, perrors.ErrNotSorted)
		assert.Contains(t, err.Error(), "element 3")
	})

	t.Run("lost element", func(t *testing.T) {
		t.Parallel()

		err := Verify(before, slices.Values([]int{1, 3, 5, 9}), less, hashInt)
		require.ErrorIs(t, err, ErrMismatch)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, Verify(Fingerprint{}, slices.Values([]int(nil)), less, hashInt))
	})
}
