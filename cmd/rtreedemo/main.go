// Command rtreedemo populates an R-tree with random shapes (rectangles,
// disks and square polygons), runs a
// region search, an id lookup, a delete, and an update, then writes the
// tree's introspection view to disk as JSON. It is a driver, not part of
// the core: it consumes the tree only through the public operations and
// the read-only introspection walk.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/geospatial-go/rtree"
)

func main() {
	var (
		n          = flag.Int("n", 1000, "number of payloads to insert")
		maxEntries = flag.Int("max-entries", 8, "maximum entries per node")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		out        = flag.String("out", "tree.json", "path to write the introspection dump")
		worldDim   = flag.Float64("world", 1000, "side length of the square world the shapes are scattered in")
	)
	flag.Parse()

	if *maxEntries < 2 {
		log.Fatalf("rtreedemo: -max-entries must be >= 2, got %d", *maxEntries)
	}

	rng := rand.New(rand.NewSource(*seed))
	tree := rtree.New(*maxEntries)

	log.Printf("inserting %d payloads (maxEntries=%d, seed=%d)", *n, *maxEntries, *seed)
	for id := 1; id <= *n; id++ {
		shape := randomShape(rng, *worldDim)
		tree.Insert(rtree.Record{ID: id, Name: fmt.Sprintf("item-%d", id)}, shape)
	}
	log.Printf("tree height=%d count=%d", tree.Height(), tree.Count())

	region := rtree.NewRect(0, 0, *worldDim/4, *worldDim/4)
	found := tree.Search(region)
	log.Printf("region search over %v matched %d payloads", region, len(found))

	lookupID := *n / 2
	if payload, ok := tree.SearchByID(lookupID); ok {
		log.Printf("searchById(%d) -> %+v", lookupID, payload)
	} else {
		log.Printf("searchById(%d) -> absent", lookupID)
	}

	deleteID := *n / 3
	if tree.DeleteByID(deleteID) {
		log.Printf("deleteById(%d) -> removed", deleteID)
	} else {
		log.Printf("deleteById(%d) -> not found", deleteID)
	}

	updateID := *n / 4
	newShape := rtree.Disk{CX: *worldDim / 2, CY: *worldDim / 2, R: *worldDim / 10}
	if tree.UpdateByID(updateID, newShape) {
		log.Printf("updateById(%d) -> moved under %+v", updateID, newShape)
	} else {
		log.Printf("updateById(%d) -> not found", updateID)
	}

	if err := dumpIntrospection(tree, *out); err != nil {
		log.Fatalf("rtreedemo: %v", err)
	}
	log.Printf("wrote introspection dump to %s", *out)
}

func dumpIntrospection(tree *rtree.Tree, path string) error {
	view := tree.Introspect()
	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal introspection view: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func randomShape(rng *rand.Rand, worldDim float64) rtree.Shape {
	x, y := rng.Float64()*worldDim, rng.Float64()*worldDim
	switch rng.Intn(3) {
	case 0:
		return rtree.NewRect(x, y, x+rng.Float64()*10, y+rng.Float64()*10)
	case 1:
		return rtree.Disk{CX: x, CY: y, R: rng.Float64() * 5}
	default:
		return rtree.Polygon{Points: []rtree.Point{
			{X: x, Y: y},
			{X: x + 5, Y: y},
			{X: x + 5, Y: y + 5},
			{X: x, Y: y + 5},
		}}
	}
}
