package rtree

import "math"

// BoundingBox is an axis-aligned minimum bounding rectangle (MBR).
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Intersects returns true iff there is no axis-separating gap between the
// two boxes. Touching edges count as intersecting.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return b.MinX <= other.MaxX && other.MinX <= b.MaxX &&
		b.MinY <= other.MaxY && other.MinY <= b.MaxY
}

// Contains returns true iff other lies entirely within b, edges inclusive.
func (b BoundingBox) Contains(other BoundingBox) bool {
	return b.MinX <= other.MinX && b.MinY <= other.MinY &&
		b.MaxX >= other.MaxX && b.MaxY >= other.MaxY
}

// ExpandToInclude returns the componentwise min/max of b and other.
func (b BoundingBox) ExpandToInclude(other BoundingBox) BoundingBox {
	return BoundingBox{
		MinX: math.Min(b.MinX, other.MinX),
		MinY: math.Min(b.MinY, other.MinY),
		MaxX: math.Max(b.MaxX, other.MaxX),
		MaxY: math.Max(b.MaxY, other.MaxY),
	}
}

// Area returns the box's area. May be zero for degenerate boxes.
func (b BoundingBox) Area() float64 {
	return (b.MaxX - b.MinX) * (b.MaxY - b.MinY)
}

var emptyBounds = BoundingBox{
	MinX: math.Inf(1), MinY: math.Inf(1),
	MaxX: math.Inf(-1), MaxY: math.Inf(-1),
}

// Shape is the capability set shared by every geometric variant the tree can
// index. All index-internal bookkeeping only ever needs MBR(); the richer
// predicates are only evaluated at leaf-entry test time during Search.
type Shape interface {
	MBR() BoundingBox
	Intersects(other Shape) bool
	Contains(other Shape) bool
	Area() float64
}

// Rect is a shape whose geometry is exactly its MBR.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewRect builds a Rect from two opposite corners, normalizing min/max.
func NewRect(x1, y1, x2, y2 float64) Rect {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Rect{MinX: x1, MinY: y1, MaxX: x2, MaxY: y2}
}

func (r Rect) MBR() BoundingBox {
	return BoundingBox{MinX: r.MinX, MinY: r.MinY, MaxX: r.MaxX, MaxY: r.MaxY}
}

func (r Rect) Intersects(other Shape) bool {
	return r.MBR().Intersects(other.MBR())
}

func (r Rect) Contains(other Shape) bool {
	return r.MBR().Contains(other.MBR())
}

func (r Rect) Area() float64 {
	return (r.MaxX - r.MinX) * (r.MaxY - r.MinY)
}

// Disk is a circular shape defined by its center and radius.
type Disk struct {
	CX, CY, R float64
}

func (d Disk) MBR() BoundingBox {
	return BoundingBox{
		MinX: d.CX - d.R, MinY: d.CY - d.R,
		MaxX: d.CX + d.R, MaxY: d.CY + d.R,
	}
}

// Intersects is a conservative MBR-based approximation: it tests the disk's
// bounding box against the other shape's MBR, not the true disk geometry.
// This is sound for Search (no false negatives, possible false positives a
// caller can filter) but is not exact geometric intersection. Tightening this
// to a true disk-vs-box test would change the public result set — see §4.2.
func (d Disk) Intersects(other Shape) bool {
	return d.MBR().Intersects(other.MBR())
}

// Contains is exact: true iff the farthest corner of other's MBR from the
// disk's center lies within the radius.
func (d Disk) Contains(other Shape) bool {
	box := other.MBR()
	dx := math.Max(math.Abs(box.MinX-d.CX), math.Abs(box.MaxX-d.CX))
	dy := math.Max(math.Abs(box.MinY-d.CY), math.Abs(box.MaxY-d.CY))
	return dx*dx+dy*dy <= d.R*d.R
}

func (d Disk) Area() float64 {
	return math.Pi * d.R * d.R
}

// Polygon is an ordered vertex ring. Its Intersects/Contains predicates are
// conservative MBR tests, like Disk's; only Area is computed exactly.
type Polygon struct {
	Points []Point
}

// Point is a single 2D vertex.
type Point struct {
	X, Y float64
}

func (p Polygon) MBR() BoundingBox {
	if len(p.Points) == 0 {
		return BoundingBox{}
	}
	box := BoundingBox{
		MinX: p.Points[0].X, MinY: p.Points[0].Y,
		MaxX: p.Points[0].X, MaxY: p.Points[0].Y,
	}
	for _, pt := range p.Points[1:] {
		box.MinX = math.Min(box.MinX, pt.X)
		box.MinY = math.Min(box.MinY, pt.Y)
		box.MaxX = math.Max(box.MaxX, pt.X)
		box.MaxY = math.Max(box.MaxY, pt.Y)
	}
	return box
}

func (p Polygon) Intersects(other Shape) bool {
	return p.MBR().Intersects(other.MBR())
}

func (p Polygon) Contains(other Shape) bool {
	return p.MBR().Contains(other.MBR())
}

// Area is the absolute value of half the signed shoelace sum over the
// vertex ring.
func (p Polygon) Area() float64 {
	if len(p.Points) < 3 {
		return 0
	}
	sum := 0.0
	n := len(p.Points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += p.Points[i].X*p.Points[j].Y - p.Points[j].X*p.Points[i].Y
	}
	return math.Abs(sum) / 2
}
