package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/piwi3910/BlockFit/internal/model"
)

// Fitter places blocks into a square grid without overlap.
// A Fitter is not safe for concurrent use.
type Fitter struct {
	Settings model.FitSettings

	grid  *model.Grid
	cells []*searchCell
	stats Stats
	log   zerolog.Logger
}

// New creates a fitter for the given settings. The fitter logs through
// a sub-logger of the global logger tagged module=engine.
func New(settings model.FitSettings) *Fitter {
	return &Fitter{
		Settings: settings,
		log:      log.With().Str("module", "engine").Logger(),
	}
}

// LastStats returns the statistics of the most recent FitBlocks call.
func (f *Fitter) LastStats() Stats {
	return f.stats
}

// FitBlocks tries to place every block into the grid. It returns the
// placement on success and nil, nil when the search is exhausted without
// finding one. Invalid input is reported as an error.
//
// Blocks are ordered widest base first. Each block in turn serves as the
// starter: it is anchored on every bottom-row cell where it could fit and
// the remaining blocks are fitted around it.
func (f *Fitter) FitBlocks(blocks []model.Block) (*model.FittingResult, error) {
	start := time.Now()
	f.stats = Stats{}
	defer func() {
		f.stats.Duration = time.Since(start)
	}()

	if err := f.validate(blocks); err != nil {
		return nil, err
	}

	f.prepare(blocks)

	for _, starter := range f.cells {
		if starter.hasBeenFirst {
			continue
		}
		starter.hasBeenFirst = true

		for _, anchor := range f.CandidateAnchors(starter.block) {
			f.stats.StarterRuns++
			f.log.Debug().
				Str("starter", string(starter.block.Name)).
				Stringer("anchor", anchor).
				Msg("Trying starter block")

			// No point fitting the others if the starter itself does not fit
			if f.grid.DoesFit(shiftToAnchor(starter.block, anchor)) && f.fitWithStartingBlock(starter, anchor) {
				result := f.result()
				f.log.Debug().
					Str("run", result.ID).
					Int("starterRuns", f.stats.StarterRuns).
					Int("attempts", f.stats.Attempts).
					Msg("All blocks fit")
				return result, nil
			}

			f.grid.Clear()
			f.resetCells()
		}
	}

	f.log.Debug().
		Int("starterRuns", f.stats.StarterRuns).
		Int("attempts", f.stats.Attempts).
		Msg("Search exhausted without a placement")
	return nil, nil
}

// validate applies the fast rejections before any search happens.
func (f *Fitter) validate(blocks []model.Block) error {
	if err := f.Settings.Validate(); err != nil {
		return fmt.Errorf("%w: %d", err, f.Settings.GridSize)
	}
	if len(blocks) == 0 {
		return model.ErrEmptyInput
	}

	names := make(map[rune]bool, len(blocks))
	for _, b := range blocks {
		if names[b.Name] {
			return fmt.Errorf("%w: %q", model.ErrDuplicateName, b.Name)
		}
		names[b.Name] = true
	}

	cells := f.Settings.GridSize * f.Settings.GridSize
	if total := model.TotalPoints(blocks); total > cells {
		return fmt.Errorf("%w: %d points for %d cells", model.ErrTooManyPoints, total, cells)
	}
	return nil
}

// prepare builds a fresh grid and one search cell per block, widest first.
func (f *Fitter) prepare(blocks []model.Block) {
	f.grid = model.NewGrid(f.Settings.GridSize)

	ordered := model.OrderByBaseWidth(blocks)
	f.cells = make([]*searchCell, len(ordered))
	for i, b := range ordered {
		f.cells[i] = &searchCell{block: b}
	}
}

func (f *Fitter) resetCells() {
	for _, c := range f.cells {
		c.reset()
	}
}

// CandidateAnchors returns the bottom-row cells where the block's base
// fits horizontally, from left to right.
func (f *Fitter) CandidateAnchors(b model.Block) []model.Point {
	var anchors []model.Point
	for x := 0; x <= f.Settings.GridSize-b.BaseWidth(); x++ {
		anchors = append(anchors, model.Point{X: x, Y: 0})
	}
	return anchors
}

// fitWithStartingBlock fits the remaining blocks around the starter placed
// at startPoint. The cursor point always holds the next cell some block
// should be anchored on; it only moves after a successful placement.
func (f *Fitter) fitWithStartingBlock(start *searchCell, startPoint model.Point) bool {
	point := startPoint
	first := start

	for {
		pass := f.cells
		if first != nil {
			// The first pass opens with the starter, then walks all blocks
			pass = append([]*searchCell{first}, f.cells...)
			first = nil
		}

		full := false
		for _, cell := range pass {
			// Already placed or been there at this point, don't try again
			if cell.inGrid || cell.hasTried(point) {
				continue
			}
			cell.markTried(point)
			f.stats.Attempts++

			if !f.putBlock(cell, point) {
				continue
			}
			cell.inGrid = true
			f.stats.Placements++

			next, ok := f.grid.NextFree()
			if !ok {
				full = true
				break
			}
			point = next
		}

		if full && f.allInGrid() {
			return true
		}
		if !f.notTriedAll(point) {
			break
		}
	}

	return f.allInGrid()
}

// putBlock anchors the block's lowest-left point at p and stamps it into
// the grid if every cell it covers is free.
func (f *Fitter) putBlock(cell *searchCell, p model.Point) bool {
	if cell.block.BaseWidth() > f.grid.Size()-p.X {
		return false
	}

	shifted := shiftToAnchor(cell.block, p)
	if !f.grid.DoesFit(shifted) {
		return false
	}

	f.grid.Stamp(shifted)
	cell.placed = shifted
	return true
}

// notTriedAll reports whether some block is neither placed nor has been
// offered point yet.
func (f *Fitter) notTriedAll(point model.Point) bool {
	for _, c := range f.cells {
		if !c.inGrid && !c.hasTried(point) {
			return true
		}
	}
	return false
}

func (f *Fitter) allInGrid() bool {
	for _, c := range f.cells {
		if !c.inGrid {
			return false
		}
	}
	return true
}

// result hands the grid and independent copies of the placed blocks over.
func (f *Fitter) result() *model.FittingResult {
	placed := make([]model.Block, len(f.cells))
	for i, c := range f.cells {
		placed[i] = c.placed.Copy()
	}
	return model.NewFittingResult(f.grid, placed)
}

// shiftToAnchor translates the block so its lowest-left point lands on p.
func shiftToAnchor(b model.Block, p model.Point) model.Block {
	ll := b.LowestLeft()
	return b.Shifted(p.X-ll.X, p.Y-ll.Y)
}
