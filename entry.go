package rtree

// Payload is the capability every record stored in the tree must offer: a
// stable integer identifier used by SearchByID/DeleteByID/UpdateByID.
// Payloads are otherwise opaque to the tree.
type Payload interface {
	PayloadID() int
}

// Record is the reference payload implementation: an id and a name, as
// required by the data model (§3).
type Record struct {
	ID   int
	Name string
}

func (r Record) PayloadID() int { return r.ID }

// PayloadName reports the record's display name, used by Introspect.
func (r Record) PayloadName() string { return r.Name }

// entry is a unit of storage in a node. It is a leaf entry (shape + payload)
// iff its host node is a leaf; otherwise it is an internal entry (cached
// MBR + child node reference).
type entry struct {
	mbr     BoundingBox
	shape   Shape   // leaf entries only
	payload Payload // leaf entries only
	child   *node   // internal entries only
}
