package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	assert.Equal(t, Index{2, 3, 4}, NewRange(2, 4))
	assert.Equal(t, Index{}, NewRange(3, 2))
	I := Index{3, 0, 2, 1}
	assert.Equal(t, Index{4, 1, 3, 2}, I.Add(1))
	assert.Equal(t, Index{3, 0, 2, 1}, I)

	require.NoError(t, I.IsPermutation())
	inv := I.Inverse()
	assert.Equal(t, Index{1, 3, 2, 0}, inv)
	for i := range I {
		assert.Equal(t, i, inv[I[i]])
	}

	assert.Error(t, Index{0, 0, 1}.IsPermutation())
	assert.Error(t, Index{0, 3, 1}.IsPermutation())
	assert.Error(t, Index{-1, 0}.IsPermutation())
	assert.NoError(t, Index{}.IsPermutation())
}
