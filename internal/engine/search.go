package engine

import (
	"time"

	"github.com/piwi3910/BlockFit/internal/model"
)

// searchCell carries the transient search state of one block. The block
// itself stays immutable; the fitter owns one cell per block for the
// duration of a FitBlocks call.
type searchCell struct {
	block        model.Block
	placed       model.Block // block translated to its anchor, valid while inGrid
	inGrid       bool
	hasBeenFirst bool
	tried        []model.Point // anchors offered during the current starter run
}

func (c *searchCell) markTried(p model.Point) {
	c.tried = append(c.tried, p)
}

func (c *searchCell) hasTried(p model.Point) bool {
	for _, t := range c.tried {
		if t == p {
			return true
		}
	}
	return false
}

// reset clears the per-run state. hasBeenFirst survives so a block is
// used as the starter only once per FitBlocks call.
func (c *searchCell) reset() {
	c.inGrid = false
	c.placed = model.Block{}
	c.tried = c.tried[:0]
}

// Stats captures how much work the last FitBlocks call did.
type Stats struct {
	StarterRuns int           // starter/anchor combinations explored
	Attempts    int           // (block, anchor) placements tried
	Placements  int           // successful placements, including undone ones
	Duration    time.Duration // wall time of the call
}
