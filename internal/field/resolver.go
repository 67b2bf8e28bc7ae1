package field

// Resolver answers receptive-field queries for a fixed stack of stages.
//
// Single-hop results are cached by exact Coordinate. The cache is only
// valid for the stages it was filled under; Reset replaces the stages and
// drops every entry. A Resolver is not safe for concurrent use.
type Resolver struct {
	stages []Stage
	cache  map[Coordinate][]Coordinate
}

// NewResolver creates a resolver for the given stages. stages[i] produces
// layer i+1 from layer i.
func NewResolver(stages ...Stage) *Resolver {
	r := &Resolver{}
	r.Reset(stages...)
	return r
}

// Reset installs new stages and clears the cache.
func (r *Resolver) Reset(stages ...Stage) {
	r.stages = append([]Stage(nil), stages...)
	r.cache = make(map[Coordinate][]Coordinate)
}

// Depth returns the index of the last layer.
func (r *Resolver) Depth() int {
	return len(r.stages)
}

// Len returns the number of cached single-hop entries.
func (r *Resolver) Len() int {
	return len(r.cache)
}

// Resolve returns the coordinates of layer c.Layer-1 that feed c.
//
// Layer 0 has no predecessor and resolves to itself. For deeper layers the
// kernel footprint is walked in (channel, kh, kw) order; each padded
// position is shifted back by the padding offset and kept only when it
// lands on a real cell of the predecessor. Border cells are never
// reported. Layers beyond Depth resolve to nil.
//
// The returned slice is shared with the cache and must not be modified.
func (r *Resolver) Resolve(c Coordinate) []Coordinate {
	if cached, ok := r.cache[c]; ok {
		return cached
	}
	if c.Layer < 0 || c.Layer > len(r.stages) {
		return nil
	}

	var coords []Coordinate
	if c.Layer == 0 {
		coords = []Coordinate{c}
	} else {
		coords = r.resolveStage(c)
	}
	r.cache[c] = coords
	return coords
}

func (r *Resolver) resolveStage(c Coordinate) []Coordinate {
	st := r.stages[c.Layer-1]
	prevC, prevH, prevW := st.InShape[0], st.InShape[1], st.InShape[2]
	pad := st.Padding.Effective()

	coords := make([]Coordinate, 0, prevC*st.KernelSize*st.KernelSize)
	for ch := 0; ch < prevC; ch++ {
		for kh := 0; kh < st.KernelSize; kh++ {
			for kw := 0; kw < st.KernelSize; kw++ {
				row := c.Row*st.Stride + kh - pad
				col := c.Col*st.Stride + kw - pad
				if row >= 0 && row < prevH && col >= 0 && col < prevW {
					coords = append(coords, Coordinate{Layer: c.Layer - 1, Channel: ch, Row: row, Col: col})
				}
			}
		}
	}
	return coords
}

// AllInfluencing expands c backwards through every layer down to the input
// and returns the per-layer membership sets, c itself included.
//
// The walk uses an explicit stack with a visited set keyed by Coordinate.
func (r *Resolver) AllInfluencing(c Coordinate) Influence {
	result := make(Influence)
	stack := []Coordinate{c}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !result.add(cur) || cur.Layer == 0 {
			continue
		}
		stack = append(stack, r.Resolve(cur)...)
	}
	return result
}

// Influences reports whether source lies in target's closure. It walks
// back one layer at a time and stops as soon as the frontier reaches
// source's layer.
func (r *Resolver) Influences(target, source Coordinate) bool {
	if target == source {
		return true
	}
	if source.Layer >= target.Layer {
		return false
	}

	visited := make(map[Coordinate]struct{})
	frontier := []Coordinate{target}
	for len(frontier) > 0 {
		var next []Coordinate
		for _, pos := range frontier {
			if _, seen := visited[pos]; seen {
				continue
			}
			visited[pos] = struct{}{}
			if pos == source {
				return true
			}
			if pos.Layer > source.Layer {
				next = append(next, r.Resolve(pos)...)
			}
		}
		frontier = next
	}
	return false
}

// PaddingInfluences reports whether the position (paddedRow, paddedCol) in
// the padded address space of target's predecessor lies under target's
// kernel footprint. Unlike Resolve it also matches border cells, so a
// display can mark padding that took part in the sum.
func (r *Resolver) PaddingInfluences(target Coordinate, paddedRow, paddedCol int) bool {
	if target.Layer < 1 || target.Layer > len(r.stages) {
		return false
	}
	st := r.stages[target.Layer-1]
	dh := paddedRow - target.Row*st.Stride
	dw := paddedCol - target.Col*st.Stride
	return dh >= 0 && dh < st.KernelSize && dw >= 0 && dw < st.KernelSize
}
