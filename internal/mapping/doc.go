// Package mapping owns the persisted event collection: the Event record, its
// invariants, the canonical JSON serialization, and the single-file store with
// its load-modify-write cycle.
//
// The store file is the one shared mutable resource in the system. Writers
// take a sibling flock and replace the file atomically, so a crash mid-write
// never corrupts the previous contents. The collection is kept sorted by date
// descending after every mutation; readers may still re-sort defensively.
package mapping
