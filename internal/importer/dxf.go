package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/BlockFit/internal/model"
)

// vertex is a 2D drawing coordinate.
type vertex struct {
	X, Y float64
}

// segment represents a line segment between two vertices, used for
// chaining disconnected LINE entities into closed outlines.
type segment struct {
	start vertex
	end   vertex
}

// ImportDXF imports blocks from a DXF drawing. Every layer with a single
// character name is one block. Each closed shape on the layer (LWPOLYLINE
// or chain of connected LINEs) marks the grid cell holding its centre,
// with cells model.CellUnits drawing units wide.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var layers []string
	outlines := make(map[string][][]vertex)
	segments := make(map[string][]segment)
	track := func(layer string) {
		if _, ok := outlines[layer]; ok {
			return
		}
		if _, ok := segments[layer]; ok {
			return
		}
		layers = append(layers, layer)
	}

	for _, ent := range entities {
		layer := ""
		if l := ent.Layer(); l != nil {
			layer = l.Name()
		}

		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := lwPolylineToOutline(e)
			if len(outline) < 3 {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
				continue
			}
			track(layer)
			outlines[layer] = append(outlines[layer], outline)

		case *entity.Line:
			track(layer)
			segments[layer] = append(segments[layer], segment{
				start: vertex{X: e.Start[0], Y: e.Start[1]},
				end:   vertex{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	set := newBlockSet()
	for _, layer := range layers {
		name, err := parseName(layer)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped layer %q: %v", layer, err))
			continue
		}

		shapes := append(outlines[layer], chainSegments(segments[layer], 0.01)...)
		for _, shape := range shapes {
			if outlineArea(shape) < 1e-6 {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Skipped degenerate shape on layer %s", layer))
				continue
			}
			if set.add(name, cellOf(shape)) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Layer %s: Duplicate cell %v", layer, cellOf(shape)))
			}
		}
	}

	if set.empty() {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	blocks, err := set.build()
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.Blocks = blocks
	return result
}

// cellOf returns the grid cell containing the centre of the outline's
// bounding box.
func cellOf(o []vertex) model.Point {
	min, max := boundingBox(o)
	cx := (min.X + max.X) / 2
	cy := (min.Y + max.Y) / 2
	return model.Point{
		X: int(math.Floor(cx / model.CellUnits)),
		Y: int(math.Floor(cy / model.CellUnits)),
	}
}

func boundingBox(o []vertex) (vertex, vertex) {
	min, max := o[0], o[0]
	for _, v := range o[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
	}
	return min, max
}

// lwPolylineToOutline converts a DXF LWPOLYLINE entity to its vertices.
// Bulges are ignored; grid cells only have straight edges.
func lwPolylineToOutline(lw *entity.LwPolyline) []vertex {
	outline := make([]vertex, 0, len(lw.Vertices))
	for _, v := range lw.Vertices {
		outline = append(outline, vertex{X: v[0], Y: v[1]})
	}
	return outline
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum distance between endpoints to consider them connected.
func chainSegments(segs []segment, tolerance float64) [][]vertex {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines [][]vertex

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []vertex{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Only closed chains describe a cell
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	// Bottom-left outlines first for a stable point order
	sort.SliceStable(outlines, func(i, j int) bool {
		a, _ := boundingBox(outlines[i])
		b, _ := boundingBox(outlines[j])
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	return outlines
}

// pointsClose checks whether two vertices are within the given tolerance.
func pointsClose(a, b vertex, tolerance float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx+dy*dy) <= tolerance
}

// outlineArea computes the absolute area of a polygon using the shoelace formula.
func outlineArea(o []vertex) float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X * o[j].Y
		area -= o[j].X * o[i].Y
	}
	return math.Abs(area) / 2
}
