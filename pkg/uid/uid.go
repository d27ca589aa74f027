// Package uid hands out process-unique integer identifiers.
//
// Each Allocator is its own id-space: a renderer can keep one for mesh
// groups and another for group members so that regenerating one never
// perturbs the other. Values are not persisted across restarts.
package uid

import "sync/atomic"

// Allocator returns strictly increasing integers. It is safe for concurrent
// use. The zero value starts at 0.
type Allocator struct {
	next atomic.Int64
}

// New returns an allocator whose first id is 0.
func New() *Allocator {
	return &Allocator{}
}

// NewFrom returns an allocator whose first id is start.
func NewFrom(start int) *Allocator {
	a := &Allocator{}
	a.next.Store(int64(start))
	return a
}

// Next returns a value greater than every value returned before it.
func (a *Allocator) Next() int {
	return int(a.next.Add(1) - 1)
}

// Peek returns the value the next call to Next will return.
func (a *Allocator) Peek() int {
	return int(a.next.Load())
}
