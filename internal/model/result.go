package model

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	gridHeader        = "---- Blocks in the grid ----"
	coordinatesHeader = "---- Coordinates of the blocks ----"
)

// FittingResult holds a successful placement: the filled grid and the
// blocks translated into grid coordinates.
type FittingResult struct {
	ID        string
	CreatedAt time.Time
	Grid      *Grid
	Blocks    []Block
}

// NewFittingResult wraps a grid and its placed blocks with a fresh run ID.
func NewFittingResult(grid *Grid, blocks []Block) *FittingResult {
	return &FittingResult{
		ID:        uuid.New().String()[:8],
		CreatedAt: time.Now().UTC(),
		Grid:      grid,
		Blocks:    blocks,
	}
}

// SortedBlocks returns the placed blocks ordered by name.
func (r *FittingResult) SortedBlocks() []Block {
	sorted := make([]Block, len(r.Blocks))
	copy(sorted, r.Blocks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// CoordinateLines returns one input-format line per block, ordered by name.
func (r *FittingResult) CoordinateLines() []string {
	blocks := r.SortedBlocks()
	lines := make([]string, len(blocks))
	for i, b := range blocks {
		lines[i] = b.String()
	}
	return lines
}

// Coverage returns the percentage of occupied grid cells.
func (r *FittingResult) Coverage() float64 {
	total := r.Grid.Size() * r.Grid.Size()
	if total == 0 {
		return 0
	}
	return float64(r.Grid.Filled()) / float64(total) * 100.0
}

// RenderGrid writes the grid in human readable form, top row first.
// Each cell is printed as "(c) ".
func (r *FittingResult) RenderGrid(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, gridHeader)

	n := r.Grid.Size()
	for y := n - 1; y >= 0; y-- {
		for x := 0; x < n; x++ {
			fmt.Fprintf(bw, "(%c) ", r.Grid.Cell(x, y))
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// RenderCoordinates writes each block in the input format, ordered by name.
func (r *FittingResult) RenderCoordinates(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, coordinatesHeader)
	for _, line := range r.CoordinateLines() {
		fmt.Fprintln(bw, line)
	}
	return bw.Flush()
}
