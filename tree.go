package rax

// Tree is a compressed radix tree: an ordered map from byte-string keys to
// opaque values. The zero value is not usable; construct with New or
// NewWithAllocator.
type Tree struct {
	root       *node
	numKeys    uint64
	numNodes   uint64
	alloc      Allocator
	generation uint64
}

// New creates an empty tree with a single empty root, using the default
// allocator (ordinary Go make/append; never reports failure).
func New() *Tree {
	return NewWithAllocator(defaultAllocator{})
}

// NewWithAllocator creates an empty tree whose node construction routes
// through a. Use this to exercise the out-of-memory rollback paths (see
// internal/faultalloc) with a fault-injecting Allocator.
func NewWithAllocator(a Allocator) *Tree {
	return &Tree{root: newBranch(), numNodes: 1, alloc: a}
}

// Size returns the number of stored mappings.
func (t *Tree) Size() uint64 {
	return t.numKeys
}

// NumNodes returns the number of live nodes, including the root.
func (t *Tree) NumNodes() uint64 {
	return t.numNodes
}

// Find returns the value stored for key, or NotFound if key is absent.
func (t *Tree) Find(key []byte) any {
	stop, matched, split, _ := t.walk(key, false)
	if matched == len(key) && split == -1 && stop.isKey {
		return stop.value
	}
	return NotFound
}

// Free releases the tree. Values are caller-owned and are not inspected;
// use FreeWithCallback to be notified of each stored value before release.
func (t *Tree) Free() {
	t.root = nil
	t.numKeys = 0
	t.numNodes = 0
}

// FreeWithCallback invokes cb once per stored non-nil value, in unspecified
// order, before releasing the tree. Keys stored with a nil value are
// skipped.
func (t *Tree) FreeWithCallback(cb func(value any)) {
	if cb != nil && t.root != nil {
		var walkFn func(n *node)
		walkFn = func(n *node) {
			if n.isKey && !n.isNull {
				cb(n.value)
			}
			for _, c := range n.children {
				walkFn(c)
			}
		}
		walkFn(t.root)
	}
	t.Free()
}
