// Package rtree implements a height-balanced R-tree over 2D shapes, keyed
// by their axis-aligned minimum bounding rectangles.
package rtree

import "github.com/maja42/vmath"

// Tree is a height-balanced R-tree: a spatial index that organizes shapes
// associated with user payloads so that region queries run in time roughly
// proportional to the result size plus a shallow tree traversal.
//
// The zero value is not usable; construct with New.
type Tree struct {
	maxEntries int
	minEntries int
	root       *node
}

// New creates an empty Tree. maxEntries must be >= 2; minEntries is derived
// as floor(maxEntries/2). Passing maxEntries < 2 is a programming error (see
// §7); the reference implementation does not guard against it.
func New(maxEntries int) *Tree {
	return &Tree{
		maxEntries: maxEntries,
		minEntries: vmath.Maxi(1, maxEntries/2),
		root:       newLeafNode(),
	}
}

// Insert adds payload under shape. Always succeeds.
func (t *Tree) Insert(payload Payload, shape Shape) {
	e := entry{mbr: shape.MBR(), shape: shape, payload: payload}
	leaf := t.chooseLeaf(e.mbr)
	leaf.entries = append(leaf.entries, e)
	t.adjustTree(leaf)
}

// chooseLeaf descends from the root, at each internal node picking the
// entry whose MBR requires the smallest area enlargement to include mbr;
// ties go to the smaller current MBR area, then to the first position.
func (t *Tree) chooseLeaf(mbr BoundingBox) *node {
	n := t.root
	for !n.isLeaf {
		best := 0
		bestArea := n.entries[0].mbr.Area()
		bestEnlargement := n.entries[0].mbr.ExpandToInclude(mbr).Area() - bestArea
		for i := 1; i < len(n.entries); i++ {
			area := n.entries[i].mbr.Area()
			enlargement := n.entries[i].mbr.ExpandToInclude(mbr).Area() - area
			if enlargement < bestEnlargement || (enlargement == bestEnlargement && area < bestArea) {
				best, bestArea, bestEnlargement = i, area, enlargement
			}
		}
		n = n.entries[best].child
	}
	return n
}

// adjustTree walks upward from n, splitting overflowing nodes and
// refreshing cached MBRs along the path, possibly growing the tree's
// height by replacing the root. This is the only place height grows.
func (t *Tree) adjustTree(n *node) {
	for {
		if len(n.entries) > t.maxEntries {
			n2 := t.split(n)
			if n.parent == nil {
				t.growRoot(n, n2)
				return
			}
			t.replaceChild(n.parent, n, n2)
			n = n.parent
			continue
		}
		if n.parent == nil {
			return
		}
		refreshCachedMBR(n)
		n = n.parent
	}
}

// split divides an overflowing node (maxEntries+1 entries) into two, by a
// simple order-preserving halving: the first half stays in n, the second
// half moves to a new sibling node. Sizes are ceil((m+1)/2) and
// floor((m+1)/2) where m = maxEntries.
func (t *Tree) split(n *node) *node {
	total := len(n.entries)
	firstSize := (total + 1) / 2 // ceil((m+1)/2) since total == m+1

	n2 := &node{isLeaf: n.isLeaf, parent: n.parent}
	n2.entries = append(n2.entries, n.entries[firstSize:]...)
	n.entries = n.entries[:firstSize:firstSize]

	if !n2.isLeaf {
		for _, e := range n2.entries {
			e.child.parent = n2
		}
	}
	return n2
}

// growRoot replaces the root with a fresh internal root holding the two
// halves produced by a root split. This is the only way tree height grows.
func (t *Tree) growRoot(a, b *node) {
	newRoot := &node{isLeaf: false}
	a.parent, b.parent = newRoot, newRoot
	newRoot.entries = []entry{
		{mbr: tightBounds(a), child: a},
		{mbr: tightBounds(b), child: b},
	}
	t.root = newRoot
}

// replaceChild updates parent's entry for oldChild with a refreshed MBR and
// appends a new entry for newChild. It may leave parent overflowing; the
// caller's loop checks for that on the next iteration.
func (t *Tree) replaceChild(parent *node, oldChild, newChild *node) {
	idx := childIndex(parent, oldChild)
	parent.entries[idx].mbr = tightBounds(oldChild)
	parent.entries = append(parent.entries, entry{mbr: tightBounds(newChild), child: newChild})
}

// refreshCachedMBR recomputes n's entry in its parent to the tight cover
// of n's current entries, preserving I1.
func refreshCachedMBR(n *node) {
	idx := childIndex(n.parent, n)
	n.parent.entries[idx].mbr = tightBounds(n)
}

// DeleteByID removes the payload with the given id. Returns true if a
// payload was removed, false if no entry had that id.
func (t *Tree) DeleteByID(id int) bool {
	leaf, idx := t.findLeafEntry(id)
	if leaf == nil {
		return false
	}
	leaf.entries = append(leaf.entries[:idx], leaf.entries[idx+1:]...)
	t.condense(leaf)
	return true
}

// condense walks upward from n (the node an entry was just removed from),
// detaching under-full nodes and enqueueing their orphaned leaf entries for
// reinsertion, and refreshing cached MBRs elsewhere along the path.
//
// Orphaned internal entries are not reinserted as whole subtrees: their
// internal skeleton is discarded and only the leaf entries underneath are
// recovered and reinserted through the normal Insert path. The alternative
// (reinserting a rescued subtree at its original depth) would require
// tracking per-node depth through every split; discarding the skeleton is
// simpler and produces the same observable payload set, so it is the
// choice made here (see the open question in §9).
func (t *Tree) condense(n *node) {
	var orphans []entry
	for n != t.root {
		parent := n.parent
		if len(n.entries) < t.minEntries {
			idx := childIndex(parent, n)
			parent.entries = append(parent.entries[:idx], parent.entries[idx+1:]...)
			orphans = append(orphans, collectLeafEntries(n)...)
		} else {
			refreshCachedMBR(n)
		}
		n = parent
	}

	if !t.root.isLeaf && len(t.root.entries) == 1 {
		child := t.root.entries[0].child
		child.parent = nil
		t.root = child
	} else if !t.root.isLeaf && len(t.root.entries) == 0 {
		t.root = newLeafNode()
	}

	for _, e := range orphans {
		t.Insert(e.payload, e.shape)
	}
}

// collectLeafEntries gathers every leaf entry reachable from n, in DFS
// order, discarding the internal structure above them.
func collectLeafEntries(n *node) []entry {
	if n.isLeaf {
		out := make([]entry, len(n.entries))
		copy(out, n.entries)
		return out
	}
	var out []entry
	for _, e := range n.entries {
		out = append(out, collectLeafEntries(e.child)...)
	}
	return out
}

// UpdateByID replaces the shape of the payload with the given id, equivalent
// to DeleteByID followed by Insert with the preserved payload. Returns false
// without inserting if the id was not found.
func (t *Tree) UpdateByID(id int, newShape Shape) bool {
	leaf, idx := t.findLeafEntry(id)
	if leaf == nil {
		return false
	}
	payload := leaf.entries[idx].payload
	leaf.entries = append(leaf.entries[:idx], leaf.entries[idx+1:]...)
	t.condense(leaf)
	t.Insert(payload, newShape)
	return true
}

// findLeafEntry threads a DFS from the root to the leaf entry with the
// given id. Returns (nil, -1) if absent. When duplicate ids were inserted,
// the first one encountered in DFS order is returned, matching the
// reference behavior (§9).
func (t *Tree) findLeafEntry(id int) (*node, int) {
	var found *node
	foundIdx := -1
	var walk func(n *node) bool
	walk = func(n *node) bool {
		if n.isLeaf {
			for i := range n.entries {
				if n.entries[i].payload.PayloadID() == id {
					found, foundIdx = n, i
					return true
				}
			}
			return false
		}
		for i := range n.entries {
			if walk(n.entries[i].child) {
				return true
			}
		}
		return false
	}
	walk(t.root)
	return found, foundIdx
}
