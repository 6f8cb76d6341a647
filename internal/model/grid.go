package model

// Empty marks an unoccupied grid cell.
const Empty = '-'

// Grid is a square matrix of cells addressed as cells[x][y], where y = 0
// is the bottom row.
type Grid struct {
	size  int
	cells [][]rune
}

// NewGrid creates an n x n grid with every cell empty.
func NewGrid(n int) *Grid {
	cells := make([][]rune, n)
	for x := range cells {
		cells[x] = make([]rune, n)
	}
	g := &Grid{size: n, cells: cells}
	g.Clear()
	return g
}

// Size returns the side length of the grid.
func (g *Grid) Size() int {
	return g.size
}

// Clear resets every cell to Empty.
func (g *Grid) Clear() {
	for x := range g.cells {
		for y := range g.cells[x] {
			g.cells[x][y] = Empty
		}
	}
}

// InRange reports whether x, y addresses a cell of the grid.
func (g *Grid) InRange(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

// Cell returns the content of the cell at x, y.
func (g *Grid) Cell(x, y int) rune {
	return g.cells[x][y]
}

// Set writes r into the cell at x, y.
func (g *Grid) Set(x, y int, r rune) {
	g.cells[x][y] = r
}

// IsEmpty reports whether the cell at x, y is in range and unoccupied.
func (g *Grid) IsEmpty(x, y int) bool {
	return g.InRange(x, y) && g.cells[x][y] == Empty
}

// DoesFit reports whether every point of the block lands on an empty,
// in-range cell. The grid is not modified.
func (g *Grid) DoesFit(b Block) bool {
	for _, p := range b.points {
		if !g.IsEmpty(p.X, p.Y) {
			return false
		}
	}
	return true
}

// Stamp writes the block's name into every cell covered by its points.
// Callers check DoesFit first.
func (g *Grid) Stamp(b Block) {
	for _, p := range b.points {
		g.cells[p.X][p.Y] = b.Name
	}
}

// NextFree returns the first empty cell scanning rows bottom to top and
// cells left to right within a row. The boolean is false when the grid
// is full.
func (g *Grid) NextFree() (Point, bool) {
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			if g.cells[x][y] == Empty {
				return Point{X: x, Y: y}, true
			}
		}
	}
	return Point{}, false
}

// IsFull reports whether no cell is empty.
func (g *Grid) IsFull() bool {
	_, ok := g.NextFree()
	return !ok
}

// Filled returns the number of occupied cells.
func (g *Grid) Filled() int {
	filled := 0
	for x := range g.cells {
		for _, r := range g.cells[x] {
			if r != Empty {
				filled++
			}
		}
	}
	return filled
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	clone := NewGrid(g.size)
	for x := range g.cells {
		copy(clone.cells[x], g.cells[x])
	}
	return clone
}

// Rows returns the grid as strings, highest y first, which is the order
// the grid is printed in.
func (g *Grid) Rows() []string {
	rows := make([]string, 0, g.size)
	for y := g.size - 1; y >= 0; y-- {
		row := make([]rune, g.size)
		for x := 0; x < g.size; x++ {
			row[x] = g.cells[x][y]
		}
		rows = append(rows, string(row))
	}
	return rows
}

// CellUnits is the side length of one grid cell in drawing units when the
// grid is written to or read from a DXF drawing.
const CellUnits = 10.0
