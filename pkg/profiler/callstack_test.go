package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallStack_PushPop(t *testing.T) {
	s := newCallStack(4)
	assert.True(t, s.empty())
	assert.Nil(t, s.peek())

	require.NoError(t, s.push(Category(0), 100, 0))
	require.NoError(t, s.push(Category(1), 150, 7))
	assert.False(t, s.empty())

	top := s.peek()
	require.NotNil(t, top)
	assert.Equal(t, Category(1), top.category)
	assert.Equal(t, uint64(150), top.startCycle)
	assert.Equal(t, uint64(7), top.oldInclusive)
	assert.Equal(t, uint64(0), top.childInclusive)

	fr, err := s.popIfTop(Category(1))
	require.NoError(t, err)
	assert.Equal(t, uint64(150), fr.startCycle)

	fr, err = s.popIfTop(Category(0))
	require.NoError(t, err)
	assert.Equal(t, uint64(100), fr.startCycle)
	assert.True(t, s.empty())
}

func TestCallStack_Overflow(t *testing.T) {
	s := newCallStack(2)
	require.NoError(t, s.push(Category(0), 1, 0))
	require.NoError(t, s.push(Category(1), 2, 0))

	err := s.push(Category(2), 3, 0)
	assert.ErrorIs(t, err, ErrStackOverflow)

	// Existing frames are untouched and still poppable.
	assert.Equal(t, 2, s.depth)
	_, err = s.popIfTop(Category(1))
	assert.NoError(t, err)
}

func TestCallStack_Underflow(t *testing.T) {
	s := newCallStack(2)
	_, err := s.popIfTop(Category(0))
	assert.ErrorIs(t, err, ErrStackUnderflow)
}

func TestCallStack_Mismatch(t *testing.T) {
	s := newCallStack(2)
	require.NoError(t, s.push(Category(0), 1, 0))

	_, err := s.popIfTop(Category(1))
	assert.ErrorIs(t, err, ErrCategoryMismatch)

	// The top frame survives a rejected pop.
	top := s.peek()
	require.NotNil(t, top)
	assert.Equal(t, Category(0), top.category)
}

func TestCallStack_PeekIsMutable(t *testing.T) {
	s := newCallStack(2)
	require.NoError(t, s.push(Category(0), 1, 0))

	s.peek().childInclusive += 42

	fr, err := s.popIfTop(Category(0))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), fr.childInclusive)
}

func TestCallStack_Reset(t *testing.T) {
	s := newCallStack(2)
	require.NoError(t, s.push(Category(0), 1, 0))
	s.reset()
	assert.True(t, s.empty())
	require.NoError(t, s.push(Category(1), 2, 0))
	assert.Equal(t, Category(1), s.peek().category)
}
