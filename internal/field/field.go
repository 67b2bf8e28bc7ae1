// Package field resolves receptive fields: which cells of earlier layers
// algebraically feed a given cell.
//
// Layer 0 is the input tensor; layer i (i >= 1) is produced from layer i-1
// by Stage i-1. A Resolver memoizes single-hop answers per Coordinate and
// composes them into whole-network closures.
package field

import (
	"fmt"
	"sort"

	"github.com/born-ml/convlens/internal/tensor"
)

// Coordinate identifies one scalar in one layer.
type Coordinate struct {
	Layer   int
	Channel int
	Row     int
	Col     int
}

// Cell returns the coordinate without its layer.
func (c Coordinate) Cell() Cell {
	return Cell{Channel: c.Channel, Row: c.Row, Col: c.Col}
}

// String formats the coordinate as "L1[c,r,c]".
func (c Coordinate) String() string {
	return fmt.Sprintf("L%d[%d,%d,%d]", c.Layer, c.Channel, c.Row, c.Col)
}

// Cell is a position inside one layer's tensor.
type Cell struct {
	Channel int
	Row     int
	Col     int
}

// Stage describes the convolution that produces the next layer.
type Stage struct {
	Stride     int
	KernelSize int
	Padding    tensor.Padding
	// InShape is the {channels, height, width} of the layer the stage reads.
	InShape tensor.Shape
}

// Influence maps a layer index to the set of its cells in a closure.
type Influence map[int]map[Cell]struct{}

func (inf Influence) add(c Coordinate) bool {
	set, ok := inf[c.Layer]
	if !ok {
		set = make(map[Cell]struct{})
		inf[c.Layer] = set
	}
	cell := c.Cell()
	if _, seen := set[cell]; seen {
		return false
	}
	set[cell] = struct{}{}
	return true
}

// Contains reports whether c belongs to the closure.
func (inf Influence) Contains(c Coordinate) bool {
	_, ok := inf[c.Layer][c.Cell()]
	return ok
}

// Len returns the number of cells recorded for layer.
func (inf Influence) Len(layer int) int {
	return len(inf[layer])
}

// Cells returns the cells of layer sorted by channel, row, column.
func (inf Influence) Cells(layer int) []Cell {
	cells := make([]Cell, 0, len(inf[layer]))
	for c := range inf[layer] {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		a, b := cells[i], cells[j]
		if a.Channel != b.Channel {
			return a.Channel < b.Channel
		}
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})
	return cells
}
