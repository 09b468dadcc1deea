package rtree

// NodeView is a pure, read-only description of a tree node, suitable for
// dumping as JSON. Producing a NodeView never mutates the tree.
type NodeView struct {
	Type     string        `json:"type"` // "Leaf" or "Internal"
	Level    int           `json:"level"`
	MBR      *BoxView      `json:"mbr"` // nil iff an empty root
	Elements []ElementView `json:"elements"`
}

// ElementView describes one entry within a NodeView. Exactly one of Data or
// Child is set, determined by the host node's Type.
type ElementView struct {
	Index     int          `json:"index"` // 1-based position
	ShapeType string       `json:"shapeType"`
	MBR       BoxView      `json:"mbr"`
	Data      *PayloadView `json:"data,omitempty"`
	Child     *NodeView    `json:"child,omitempty"`
}

// PayloadView is the persisted shape of a leaf entry's payload.
type PayloadView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// BoxView is the persisted shape of a BoundingBox.
type BoxView struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

func boxView(b BoundingBox) BoxView {
	return BoxView{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY}
}

// Introspect returns a hierarchical, read-only view of the tree: node kind,
// depth, per-entry MBR, and payload or child, suitable for dumping as JSON
// per the schema in §6. It traverses every reachable node exactly once and
// never mutates the tree.
func (t *Tree) Introspect() *NodeView {
	return introspectNode(t.root, 0)
}

func introspectNode(n *node, level int) *NodeView {
	view := &NodeView{Level: level}
	if n.isLeaf {
		view.Type = "Leaf"
	} else {
		view.Type = "Internal"
	}

	if len(n.entries) == 0 {
		view.MBR = nil
	} else {
		box := boxView(tightBounds(n))
		view.MBR = &box
	}

	view.Elements = make([]ElementView, len(n.entries))
	for i, e := range n.entries {
		el := ElementView{Index: i + 1, MBR: boxView(e.mbr)}
		if n.isLeaf {
			el.ShapeType = shapeTypeName(e.shape)
			el.Data = &PayloadView{ID: e.payload.PayloadID(), Name: payloadName(e.payload)}
		} else {
			el.ShapeType = "Internal"
			el.Child = introspectNode(e.child, level+1)
		}
		view.Elements[i] = el
	}
	return view
}

func shapeTypeName(s Shape) string {
	switch s.(type) {
	case Rect:
		return "Rect"
	case Disk:
		return "Disk"
	case Polygon:
		return "Polygon"
	default:
		return "Shape"
	}
}

// payloadName extracts a display name from a payload, falling back to the
// empty string for payloads that don't carry one.
func payloadName(p Payload) string {
	if named, ok := p.(interface{ PayloadName() string }); ok {
		return named.PayloadName()
	}
	if r, ok := p.(Record); ok {
		return r.Name
	}
	return ""
}
