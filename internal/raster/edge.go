package raster

// Point is a device-space vertex.
type Point struct {
	X, Y float64
}

// Edge is a non-horizontal polygon side, stored top to bottom.
type Edge struct {
	x0, y0 float64
	x1, y1 float64
	dx     float64 // dx/dy slope
	dir    int     // +1 downward, -1 upward, for the winding count
}

// NewEdge creates an edge from p0 to p1.
func NewEdge(p0, p1 Point) Edge {
	// Direction is taken before the swap.
	dir := 1
	if p0.Y > p1.Y {
		dir = -1
		p0, p1 = p1, p0
	}
	var dx float64
	if dy := p1.Y - p0.Y; dy != 0 {
		dx = (p1.X - p0.X) / dy
	}
	return Edge{x0: p0.X, y0: p0.Y, x1: p1.X, y1: p1.Y, dx: dx, dir: dir}
}

// XAtY returns the x coordinate of the edge at height y.
func (e *Edge) XAtY(y float64) float64 {
	return e.x0 + (y-e.y0)*e.dx
}

// Spans reports whether the edge crosses the sample line y. Edges are
// half-open: the top end is included, the bottom end is not, so a vertex
// shared by two edges is counted once.
func (e *Edge) Spans(y float64) bool {
	return e.y0 <= y && y < e.y1
}

// ActiveEdgeTable holds the edges crossing the current scanline.
type ActiveEdgeTable struct {
	edges []ActiveEdge
}

// ActiveEdge is an edge intersected with one scanline.
type ActiveEdge struct {
	x   float64
	dir int
}

// NewActiveEdgeTable creates an empty table.
func NewActiveEdgeTable() *ActiveEdgeTable {
	return &ActiveEdgeTable{edges: make([]ActiveEdge, 0, 32)}
}

// AddAtY adds edge with its x position at height y.
func (aet *ActiveEdgeTable) AddAtY(edge Edge, y float64) {
	aet.edges = append(aet.edges, ActiveEdge{x: edge.XAtY(y), dir: edge.dir})
}

// Sort sorts edges by x (insertion sort, tables are small).
func (aet *ActiveEdgeTable) Sort() {
	for i := 1; i < len(aet.edges); i++ {
		key := aet.edges[i]
		j := i - 1
		for j >= 0 && aet.edges[j].x > key.x {
			aet.edges[j+1] = aet.edges[j]
			j--
		}
		aet.edges[j+1] = key
	}
}

// Edges returns the active edges.
func (aet *ActiveEdgeTable) Edges() []ActiveEdge {
	return aet.edges
}

// Clear empties the table, keeping its storage.
func (aet *ActiveEdgeTable) Clear() {
	aet.edges = aet.edges[:0]
}
