package rax

import "golang.org/x/exp/slices"

// MaxEdgeLen is the maximum number of bytes a single compressed node's edge
// may carry (2^29 - 1, matching RAX_NODE_MAX_SIZE in the original C). Keys
// longer than this are stored across several chained compressed nodes.
const MaxEdgeLen = (1 << 29) - 1

// node is a radix tree node. Two kinds, discriminated by isCompressed:
//
//   - branch (isCompressed == false): edge holds one byte per child, sorted
//     ascending, no duplicates; children holds the matching child pointers,
//     one per edge byte. A branch with zero children is only legal when it
//     is simultaneously a key leaf, or when it is the root of an empty tree.
//   - compressed (isCompressed == true): edge holds the whole edge label
//     (len(edge) >= 2); children holds exactly one pointer, the node reached
//     after consuming all of edge.
//
// The edge byte that leads to a node is carried by the node's parent, never
// by the node itself; the root represents the empty prefix and is never
// itself addressed by an edge byte.
//
// This mirrors raxNode's packed header (is_key/is_null/is_compressed/size)
// and data layout one field at a time, but keeps the two variable-length
// regions (edge bytes, child pointers) as ordinary Go slices instead of
// offsets into one allocation: Go has no pointer arithmetic to pack a
// variable-length trailer behind a fixed header, and slices give the same
// O(1) field access without hand-rolled bit twiddling.
type node struct {
	isKey        bool
	isNull       bool
	isCompressed bool
	edge         []byte
	children     []*node
	value        any
}

// size is the node's size field: compressed-edge length, or child count.
func (n *node) size() int {
	return len(n.edge)
}

// isLeaf reports whether n has no children at all (a branch of size 0).
func (n *node) isLeaf() bool {
	return len(n.children) == 0
}

// child returns n's sole child, valid only when n.isCompressed.
func (n *node) child() *node {
	return n.children[0]
}

// setChild replaces n's sole child, valid only when n.isCompressed.
func (n *node) setChild(c *node) {
	n.children[0] = c
}

// findChild binary-searches a branch node's sorted edge-byte vector for b.
// Returns the index and true on a hit, or the insertion point and false.
func (n *node) findChild(b byte) (idx int, ok bool) {
	return slices.BinarySearch(n.edge, b)
}

// childAt returns the child reached by the edge byte at position idx.
func (n *node) childAt(idx int) *node {
	return n.children[idx]
}

// addChildSorted inserts a new edge byte b and its child into a branch node,
// preserving sort order. b must not already be present.
func (n *node) addChildSorted(b byte, c *node) {
	idx, found := n.findChild(b)
	if found {
		panic("rax: addChildSorted called with a duplicate edge byte")
	}
	n.edge = slices.Insert(n.edge, idx, b)
	n.children = slices.Insert(n.children, idx, c)
}

// removeChildAt deletes the edge byte/child pair at idx from a branch node.
func (n *node) removeChildAt(idx int) {
	n.edge = slices.Delete(n.edge, idx, idx+1)
	n.children = slices.Delete(n.children, idx, idx+1)
}

// clearValue drops any stored value and marks the node as not a key.
func (n *node) clearValue() {
	n.isKey = false
	n.isNull = false
	n.value = nil
}

// setValue marks n as a key node carrying value.
func (n *node) setValue(value any) {
	n.isKey = true
	n.isNull = value == nil
	n.value = value
}

// newBranch allocates an empty branch node (a leaf-only key node when no
// children are ever added to it).
func newBranch() *node {
	return &node{}
}

// newCompressed allocates a compressed node with the given edge label and
// single child. edge must have length >= 2 (callers collapse zero-length
// edges to nothing and splice the child in directly, and represent a
// one-byte edge as a single-child branch).
func newCompressed(edge []byte, child *node) *node {
	return &node{isCompressed: true, edge: edge, children: []*node{child}}
}
