package rax

import "fmt"

// Allocator stands in for the byte allocator the tree is built on top of:
// every new node Insert builds, and the merged edge Remove builds, is
// allocated through it, so a caller can observe allocation pressure or
// inject failure. Growing an existing branch by one child (addChildSorted)
// and the fresh empty root Remove installs do not go through it. Go has no user-level
// allocator replacement hook, so this interface is the gate we use instead;
// a default, always-succeeds Allocator backs New(), and NewWithAllocator
// lets a caller (or a test) inject one that fails on demand.
type Allocator interface {
	// Alloc returns n zeroed bytes, or an error if the allocation cannot be
	// satisfied. The tree only inspects the error; the returned slice is a
	// bookkeeping fiction standing in for the node storage a byte-buffer
	// implementation would have requested.
	Alloc(n int) ([]byte, error)
}

// defaultAllocator never fails; it is the Allocator used by New().
type defaultAllocator struct{}

func (defaultAllocator) Alloc(n int) ([]byte, error) {
	return make([]byte, n), nil
}

// estimatedNodeSize approximates the byte footprint a packed raxNode with
// this edge length and value-slot presence would occupy, for the sole
// purpose of giving a fault-injecting Allocator something size-shaped to
// look at. It has no bearing on the Go runtime's real allocation.
func estimatedNodeSize(edgeLen int, hasValue bool) int {
	const header = 4        // iskey:1 isnull:1 iscompr:1 size:29, packed
	const ptrSize = 8
	n := header + edgeLen + ptrSize // at least one child pointer slot
	if hasValue {
		n += ptrSize
	}
	return n
}

// allocBranch allocates an empty branch node through t's Allocator. It does
// not touch t.numNodes: a mutator may allocate several nodes before knowing
// whether the whole operation will succeed, and must be able to discard
// them without having already published their count. Callers commit the
// count (via t.numNodes += n) only once every allocation for the operation
// has succeeded.
func (t *Tree) allocBranch() (*node, error) {
	if _, err := t.alloc.Alloc(estimatedNodeSize(0, false)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	}
	return newBranch(), nil
}

// allocCompressed allocates a compressed node through t's Allocator. See
// allocBranch for why t.numNodes is left untouched here.
func (t *Tree) allocCompressed(edge []byte, child *node) (*node, error) {
	if _, err := t.alloc.Alloc(estimatedNodeSize(len(edge), false)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	}
	return newCompressed(edge, child), nil
}
