package svg

import "sync/atomic"

// auxID backs UniqueID. It is independent of every Canvas node counter.
var auxID atomic.Int64

// UniqueID returns a process-wide unique number for identifiers that are
// not scene nodes, such as clip-path and mask ids.
func UniqueID() int64 {
	return auxID.Add(1)
}
