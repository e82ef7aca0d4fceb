package peekiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextAdvances(t *testing.T) {
	it := New([]int{1, 2, 3})
	v, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = it.Next()
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestPeekDoesNotAdvance(t *testing.T) {
	it := New([]int{1, 2, 3})
	v, ok := it.Peek(1)
	require.True(t, ok)
	assert.Equal(t, 2, v)
	v, ok = it.Next()
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestMarkReset(t *testing.T) {
	it := New([]int{1, 2, 3})
	it.Next()
	mark := it.Mark()
	it.Next()
	it.Next()
	assert.True(t, it.Done())
	it.Reset(mark)
	v, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestDoneAtEnd(t *testing.T) {
	it := New([]int{1})
	it.Next()
	assert.True(t, it.Done())
	_, ok := it.Next()
	assert.False(t, ok)
}
