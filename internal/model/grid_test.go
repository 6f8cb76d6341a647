package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	g := NewGrid(4)

	assert.Equal(t, 4, g.Size())
	assert.Zero(t, g.Filled())
	assert.Equal(t, []string{"----", "----", "----", "----"}, g.Rows())
}

func TestGridInRange(t *testing.T) {
	g := NewGrid(4)

	assert.True(t, g.InRange(0, 0))
	assert.True(t, g.InRange(3, 3))
	assert.False(t, g.InRange(-1, 0))
	assert.False(t, g.InRange(0, 4))
	assert.False(t, g.InRange(4, 0))
	assert.False(t, g.IsEmpty(4, 0), "out of range cells are never empty")
}

func TestGridNextFree(t *testing.T) {
	t.Run("bottom row full", func(t *testing.T) {
		g := NewGrid(4)
		for x := 0; x < 4; x++ {
			g.Set(x, 0, 'A')
		}
		p, ok := g.NextFree()
		require.True(t, ok)
		assert.Equal(t, Point{X: 0, Y: 1}, p)
	})

	t.Run("gap in bottom row", func(t *testing.T) {
		g := NewGrid(4)
		g.Set(0, 0, 'A')
		g.Set(1, 0, 'A')
		g.Set(3, 0, 'B')
		p, ok := g.NextFree()
		require.True(t, ok)
		assert.Equal(t, Point{X: 2, Y: 0}, p)
	})

	t.Run("row before column", func(t *testing.T) {
		g := NewGrid(4)
		for y := 0; y < 4; y++ {
			g.Set(0, y, 'A')
		}
		p, ok := g.NextFree()
		require.True(t, ok)
		assert.Equal(t, Point{X: 1, Y: 0}, p)
	})

	t.Run("full", func(t *testing.T) {
		g := NewGrid(2)
		for x := 0; x < 2; x++ {
			for y := 0; y < 2; y++ {
				g.Set(x, y, 'A')
			}
		}
		_, ok := g.NextFree()
		assert.False(t, ok)
		assert.True(t, g.IsFull())
	})
}

func TestGridDoesFitAndStamp(t *testing.T) {
	g := NewGrid(4)
	square := mustNewBlock(t, 'A', 0, 0, 1, 0, 0, 1, 1, 1)

	require.True(t, g.DoesFit(square))
	assert.Zero(t, g.Filled(), "DoesFit must not modify the grid")

	g.Stamp(square)
	assert.Equal(t, 4, g.Filled())
	assert.Equal(t, []string{"----", "----", "AA--", "AA--"}, g.Rows())

	assert.False(t, g.DoesFit(square.Shifted(1, 1)), "overlaps A")
	assert.True(t, g.DoesFit(square.Shifted(2, 0)))
	assert.False(t, g.DoesFit(square.Shifted(3, 0)), "sticks out on the right")
	assert.False(t, g.DoesFit(square.Shifted(0, -1)), "sticks out at the bottom")
}

func TestGridClear(t *testing.T) {
	g := NewGrid(3)
	g.Set(1, 1, 'Z')

	g.Clear()

	assert.Zero(t, g.Filled())
	assert.Equal(t, Empty, g.Cell(1, 1))
}

func TestGridClone(t *testing.T) {
	g := NewGrid(2)
	g.Set(0, 0, 'A')

	clone := g.Clone()
	clone.Set(1, 1, 'B')

	assert.Equal(t, []string{"--", "A-"}, g.Rows())
	assert.Equal(t, []string{"-B", "A-"}, clone.Rows())
}
