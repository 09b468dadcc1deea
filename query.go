package rtree

// Search returns every payload whose stored shape reports Intersects(region)
// true. Result order is the natural DFS order over the tree at the moment
// of the call; duplicates do not occur because each payload resides in
// exactly one leaf entry.
func (t *Tree) Search(region Shape) []Payload {
	var results []Payload
	regionMBR := region.MBR()
	var walk func(n *node)
	walk = func(n *node) {
		if n.isLeaf {
			for i := range n.entries {
				if n.entries[i].shape.Intersects(region) {
					results = append(results, n.entries[i].payload)
				}
			}
			return
		}
		for i := range n.entries {
			if n.entries[i].mbr.Intersects(regionMBR) {
				walk(n.entries[i].child)
			}
		}
	}
	walk(t.root)
	return results
}

// SearchByID returns the payload with the given id, if present.
func (t *Tree) SearchByID(id int) (Payload, bool) {
	leaf, idx := t.findLeafEntry(id)
	if leaf == nil {
		return nil, false
	}
	return leaf.entries[idx].payload, true
}

// Walk calls fn for every stored payload in DFS order until fn returns
// false, or every payload has been visited.
func (t *Tree) Walk(fn func(Payload) bool) {
	var walk func(n *node) bool
	walk = func(n *node) bool {
		if n.isLeaf {
			for i := range n.entries {
				if !fn(n.entries[i].payload) {
					return false
				}
			}
			return true
		}
		for i := range n.entries {
			if !walk(n.entries[i].child) {
				return false
			}
		}
		return true
	}
	walk(t.root)
}

// Count returns the total number of stored payloads.
func (t *Tree) Count() int {
	n := 0
	t.Walk(func(Payload) bool {
		n++
		return true
	})
	return n
}

// Height returns the number of edges from the root to a leaf (0 for an
// empty or single-leaf-level tree).
func (t *Tree) Height() int {
	h := 0
	n := t.root
	for !n.isLeaf {
		h++
		n = n.entries[0].child
	}
	return h
}

// Bounds returns the MBR covering every stored shape. Returns an infinitely
// small (inverted) box if the tree is empty.
func (t *Tree) Bounds() BoundingBox {
	return tightBounds(t.root)
}
