package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Block is a labeled set of lattice points in the block's own frame.
// Two blocks are equal when their names are equal, regardless of points.
type Block struct {
	Name      rune
	points    []Point
	baseWidth int
}

// NewBlock creates a block from the given points. Duplicate points are
// dropped. The point set must not be empty and the name must not collide
// with the grid's empty marker.
func NewBlock(name rune, points []Point) (Block, error) {
	if name == Empty {
		return Block{}, fmt.Errorf("%w: name %q is reserved for empty cells", ErrInvalidBlock, name)
	}
	if len(points) == 0 {
		return Block{}, fmt.Errorf("%w: block %q has no points", ErrInvalidBlock, name)
	}

	seen := make(map[Point]bool, len(points))
	unique := make([]Point, 0, len(points))
	for _, p := range points {
		if seen[p] {
			continue
		}
		seen[p] = true
		unique = append(unique, p)
	}

	b := Block{Name: name, points: unique}
	b.baseWidth = b.findBaseWidth()
	return b, nil
}

// findBaseWidth counts the points on the lowest row of the block.
func (b Block) findBaseWidth() int {
	minY := b.minY()
	width := 0
	for _, p := range b.points {
		if p.Y == minY {
			width++
		}
	}
	return width
}

// Copy returns an independent block with the same name and points.
func (b Block) Copy() Block {
	points := make([]Point, len(b.points))
	copy(points, b.points)
	return Block{Name: b.Name, points: points, baseWidth: b.baseWidth}
}

// Points returns a copy of the block's points.
func (b Block) Points() []Point {
	points := make([]Point, len(b.points))
	copy(points, b.points)
	return points
}

// Size returns the number of points in the block.
func (b Block) Size() int {
	return len(b.points)
}

// BaseWidth returns the number of points sharing the block's minimum y.
func (b Block) BaseWidth() int {
	return b.baseWidth
}

// MinX returns the smallest x over the block's points.
func (b Block) MinX() int {
	minX := b.points[0].X
	for _, p := range b.points[1:] {
		if p.X < minX {
			minX = p.X
		}
	}
	return minX
}

func (b Block) minY() int {
	minY := b.points[0].Y
	for _, p := range b.points[1:] {
		if p.Y < minY {
			minY = p.Y
		}
	}
	return minY
}

// LowestLeft returns the point with the smallest y, ties broken by the
// smallest x. This is the anchor used to translate the block onto a cell.
func (b Block) LowestLeft() Point {
	minY := b.minY()
	var anchor Point
	found := false
	for _, p := range b.points {
		if p.Y != minY {
			continue
		}
		if !found || p.X < anchor.X {
			anchor = p
			found = true
		}
	}
	return anchor
}

// Shift translates every point of the block by dx, dy in place.
func (b *Block) Shift(dx, dy int) {
	for i, p := range b.points {
		b.points[i] = p.Add(dx, dy)
	}
}

// Shifted returns the block translated by dx, dy. When both deltas are
// zero the block itself is returned without copying.
func (b Block) Shifted(dx, dy int) Block {
	if dx == 0 && dy == 0 {
		return b
	}
	moved := b.Copy()
	moved.Shift(dx, dy)
	return moved
}

// Compare orders blocks by base width, widest first.
// It returns a negative number when b sorts before other.
func (b Block) Compare(other Block) int {
	switch {
	case b.baseWidth > other.baseWidth:
		return -1
	case b.baseWidth < other.baseWidth:
		return 1
	default:
		return 0
	}
}

// Equal reports whether both blocks carry the same name.
func (b Block) Equal(other Block) bool {
	return b.Name == other.Name
}

// String renders the block in the input format, e.g. "A:0,0;1,0;1,1".
// Points are ordered by x, then y.
func (b Block) String() string {
	ordered := b.Points()
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Less(ordered[j])
	})

	var sb strings.Builder
	sb.WriteRune(b.Name)
	sb.WriteByte(':')
	for i, p := range ordered {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.Itoa(p.X))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(p.Y))
	}
	return sb.String()
}

// OrderByBaseWidth returns a new slice sorted widest base first.
// Blocks with equal base widths keep their input order.
func OrderByBaseWidth(blocks []Block) []Block {
	ordered := make([]Block, len(blocks))
	copy(ordered, blocks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Compare(ordered[j]) < 0
	})
	return ordered
}

// TotalPoints sums the point counts of all blocks.
func TotalPoints(blocks []Block) int {
	total := 0
	for _, b := range blocks {
		total += b.Size()
	}
	return total
}
