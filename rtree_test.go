package rtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertSingleElementCreatesLeafAtDepthZero(t *testing.T) {
	tree := New(4)
	tree.Insert(Record{ID: 1, Name: "a"}, NewRect(0, 0, 1, 1))

	assert.Equal(t, 0, tree.Height())
	assert.Equal(t, 1, tree.Count())
}

func TestSplitAtMaxEntriesPlusOne(t *testing.T) {
	tree := New(4)
	for i := 1; i <= 4; i++ {
		tree.Insert(Record{ID: i}, NewRect(float64(i), float64(i), float64(i)+1, float64(i)+1))
	}
	assert.Equal(t, 0, tree.Height(), "exactly maxEntries entries must not split")

	tree.Insert(Record{ID: 5}, NewRect(5, 5, 6, 6))
	assert.Equal(t, 1, tree.Height(), "maxEntries+1 entries must split exactly once")
	assert.Equal(t, false, tree.root.isLeaf)
	assert.Equal(t, 2, len(tree.root.entries), "root split produces two children")
}

func TestScenarioSixRectanglesHeightOneAndRegionSearch(t *testing.T) {
	tree := New(4)
	for i := 1; i <= 6; i++ {
		tree.Insert(Record{ID: i}, NewRect(float64(i), float64(i), float64(i)+1, float64(i)+1))
	}
	assert.Equal(t, 1, tree.Height())

	got := idSet(tree.Search(NewRect(0, 0, 3, 3)))
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, got)
}

func TestScenarioDeleteThenSearch(t *testing.T) {
	tree := New(4)
	for i := 1; i <= 6; i++ {
		tree.Insert(Record{ID: i}, NewRect(float64(i), float64(i), float64(i)+1, float64(i)+1))
	}

	require.True(t, tree.DeleteByID(3))
	_, ok := tree.SearchByID(3)
	assert.False(t, ok)

	got := idSet(tree.Search(NewRect(0, 0, 10, 10)))
	assert.Equal(t, map[int]bool{1: true, 2: true, 4: true, 5: true, 6: true}, got)
}

func TestScenarioDiskSearch(t *testing.T) {
	tree := New(4)
	tree.Insert(Record{ID: 42, Name: "d"}, Disk{CX: 0, CY: 0, R: 5})

	got := idSet(tree.Search(NewRect(4, 0, 6, 1)))
	assert.Equal(t, map[int]bool{42: true}, got)

	assert.Empty(t, tree.Search(NewRect(10, 10, 11, 11)))
}

func TestScenarioPolygonSearchAndArea(t *testing.T) {
	tree := New(4)
	poly := Polygon{Points: []Point{{0, 0}, {4, 0}, {4, 3}}}
	tree.Insert(Record{ID: 7}, poly)

	got := idSet(tree.Search(NewRect(3, 2, 4, 3)))
	assert.Equal(t, map[int]bool{7: true}, got)
	assert.InDelta(t, 6.0, poly.Area(), 1e-9)
}

func TestScenarioLargeRandomDeleteOddIDs(t *testing.T) {
	tree := New(8)
	rng := rand.New(rand.NewSource(1))
	want := map[int]bool{}
	for i := 1; i <= 100; i++ {
		x := rng.Float64() * 1000
		y := rng.Float64() * 1000
		tree.Insert(Record{ID: i}, NewRect(x, y, x+1, y+1))
	}
	for i := 1; i <= 100; i++ {
		if i%2 == 0 {
			want[i] = true
		} else {
			require.True(t, tree.DeleteByID(i))
		}
	}

	assertInvariants(t, tree)
	got := idSet(tree.Search(NewRect(-1e9, -1e9, 1e9, 1e9)))
	assert.Equal(t, want, got)
}

func TestScenarioUpdateByID(t *testing.T) {
	tree := New(4)
	tree.Insert(Record{ID: 9}, NewRect(0, 0, 1, 1))

	require.True(t, tree.UpdateByID(9, Disk{CX: 500, CY: 500, R: 100}))

	assert.Empty(t, tree.Search(NewRect(0, 0, 2, 2)))
	got := idSet(tree.Search(NewRect(450, 450, 550, 550)))
	assert.Equal(t, map[int]bool{9: true}, got)
}

func TestEmptyTreeBoundaries(t *testing.T) {
	tree := New(4)
	assert.Empty(t, tree.Search(NewRect(0, 0, 1, 1)))
	_, ok := tree.SearchByID(1)
	assert.False(t, ok)
	assert.False(t, tree.DeleteByID(1))
}

func TestSingleElementDeleteLeavesEmptyLeafRoot(t *testing.T) {
	tree := New(4)
	tree.Insert(Record{ID: 1}, NewRect(0, 0, 1, 1))
	require.True(t, tree.DeleteByID(1))

	assert.True(t, tree.root.isLeaf)
	assert.Empty(t, tree.root.entries)
	assert.Equal(t, 0, tree.Count())
}

func TestTouchingEdgesIntersect(t *testing.T) {
	a := NewRect(0, 0, 1, 1)
	b := NewRect(1, 0, 2, 1)
	assert.True(t, a.MBR().Intersects(b.MBR()))
}

func TestDeleteThenInsertEquivalentToUpdate(t *testing.T) {
	a := New(4)
	b := New(4)
	a.Insert(Record{ID: 1, Name: "x"}, NewRect(0, 0, 1, 1))
	b.Insert(Record{ID: 1, Name: "x"}, NewRect(0, 0, 1, 1))

	newShape := NewRect(9, 9, 10, 10)

	require.True(t, a.DeleteByID(1))
	a.Insert(Record{ID: 1, Name: "x"}, newShape)

	require.True(t, b.UpdateByID(1, newShape))

	pa, _ := a.SearchByID(1)
	pb, _ := b.SearchByID(1)
	assert.Equal(t, pa, pb)
}

func TestInsertionIsCommutativeInPayloadSet(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	type item struct {
		id   int
		rect Rect
	}
	items := make([]item, 30)
	for i := range items {
		x := rng.Float64() * 100
		y := rng.Float64() * 100
		items[i] = item{id: i, rect: NewRect(x, y, x+1, y+1)}
	}

	build := func(order []int) *Tree {
		tree := New(4)
		for _, idx := range order {
			tree.Insert(Record{ID: items[idx].id}, items[idx].rect)
		}
		return tree
	}

	order1 := rng.Perm(len(items))
	order2 := rng.Perm(len(items))

	t1 := build(order1)
	t2 := build(order2)

	assert.Equal(t, idSet(t1.Search(NewRect(-1e9, -1e9, 1e9, 1e9))), idSet(t2.Search(NewRect(-1e9, -1e9, 1e9, 1e9))))
}

func idSet(payloads []Payload) map[int]bool {
	out := map[int]bool{}
	for _, p := range payloads {
		out[p.PayloadID()] = true
	}
	return out
}

// assertInvariants checks, over the whole tree: I1 for internal entries
// (cached MBR equals child coverage), I2 for non-root nodes, I3 and I4. I5
// is not checked directly; a cycle would keep the walk from terminating.
func assertInvariants(t *testing.T, tree *Tree) {
	t.Helper()
	leafDepth := -1
	var walk func(n *node, depth int)
	walk = func(n *node, depth int) {
		if n != tree.root {
			count := len(n.entries)
			assert.GreaterOrEqual(t, count, tree.minEntries, "I2: under-full non-root node")
			assert.LessOrEqual(t, count, tree.maxEntries, "I2: overflowing node")
		}
		if n.isLeaf {
			if leafDepth == -1 {
				leafDepth = depth
			} else {
				assert.Equal(t, leafDepth, depth, "I3: leaves at differing depths")
			}
			return
		}
		for _, e := range n.entries {
			assert.Equal(t, n, e.child.parent, "I4: parent back-reference mismatch")
			assert.Equal(t, e.mbr, tightBounds(e.child), "I1: cached MBR must equal child coverage")
			walk(e.child, depth+1)
		}
	}
	walk(tree.root, 0)
}

func BenchmarkInsert(b *testing.B) {
	tree, _ := newPrePopulatedTree(10000)
	rng := rand.New(rand.NewSource(2))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Insert(Record{ID: 10000 + i}, randomRect(rng))
	}
}

func BenchmarkSearch(b *testing.B) {
	tree, shapes := newPrePopulatedTree(10000)
	rng := rand.New(rand.NewSource(3))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tree.Search(shapes[rng.Intn(len(shapes))])
	}
}

func BenchmarkDeleteByID(b *testing.B) {
	tree, _ := newPrePopulatedTree(b.N)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.DeleteByID(i)
	}
}

func newPrePopulatedTree(size int) (*Tree, []Shape) {
	tree := New(8)
	rng := rand.New(rand.NewSource(42))
	shapes := make([]Shape, size)
	for i := 0; i < size; i++ {
		shapes[i] = randomRect(rng)
		tree.Insert(Record{ID: i}, shapes[i])
	}
	return tree, shapes
}

func randomRect(rng *rand.Rand) Rect {
	dim := 1000.0
	x1, y1 := rng.Float64()*dim, rng.Float64()*dim
	return NewRect(x1, y1, x1+rng.Float64()*10, y1+rng.Float64()*10)
}
