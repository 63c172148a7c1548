package types

import (
	"reflect"
	"sync"
)

// TypeID identifies a message type. IDs are comparable and totally ordered;
// for any two distinct types the IDs differ, and for the same type the ID is
// stable for the lifetime of the process. The zero TypeID means "no type".
type TypeID uint64

// type-indexed registry, built lazily on first use per type
var (
	typeIDMu   sync.Mutex
	typeIDs    = make(map[reflect.Type]TypeID)
	nextTypeID TypeID = 1
)

// For returns the TypeID of T. Derivation is a map lookup keyed by the
// type's descriptor; the first call for a given T assigns the next ID.
func For[T any]() TypeID {
	key := reflect.TypeOf((*T)(nil)).Elem()

	typeIDMu.Lock()
	defer typeIDMu.Unlock()

	if id, ok := typeIDs[key]; ok {
		return id
	}
	id := nextTypeID
	nextTypeID++
	typeIDs[key] = id
	return id
}
