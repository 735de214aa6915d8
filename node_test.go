package rax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddChildSortedKeepsOrder(t *testing.T) {
	n := newBranch()
	n.addChildSorted('c', newBranch())
	n.addChildSorted('a', newBranch())
	n.addChildSorted('b', newBranch())

	assert.Equal(t, []byte("abc"), n.edge)
}

func TestAddChildSortedPanicsOnDuplicate(t *testing.T) {
	n := newBranch()
	n.addChildSorted('a', newBranch())
	assert.Panics(t, func() {
		n.addChildSorted('a', newBranch())
	})
}

func TestFindChild(t *testing.T) {
	n := newBranch()
	n.addChildSorted('a', newBranch())
	n.addChildSorted('m', newBranch())
	n.addChildSorted('z', newBranch())

	idx, ok := n.findChild('m')
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = n.findChild('c')
	assert.False(t, ok)
	assert.Equal(t, 1, idx, "insertion point between a and m")
}

func TestRemoveChildAt(t *testing.T) {
	n := newBranch()
	first := newBranch()
	n.addChildSorted('a', first)
	n.addChildSorted('b', newBranch())

	n.removeChildAt(1)
	assert.Equal(t, []byte("a"), n.edge)
	assert.Equal(t, []*node{first}, n.children)
}

func TestIsLeaf(t *testing.T) {
	n := newBranch()
	assert.True(t, n.isLeaf())
	n.addChildSorted('x', newBranch())
	assert.False(t, n.isLeaf())
}

func TestSetValueAndClearValue(t *testing.T) {
	n := newBranch()
	n.setValue(42)
	assert.True(t, n.isKey)
	assert.False(t, n.isNull)
	assert.Equal(t, 42, n.value)

	n.clearValue()
	assert.False(t, n.isKey)
	assert.Nil(t, n.value)
}

func TestSetValueNilMarksNull(t *testing.T) {
	n := newBranch()
	n.setValue(nil)
	assert.True(t, n.isKey)
	assert.True(t, n.isNull)
}

func TestNewCompressedCarriesEdgeAndChild(t *testing.T) {
	child := newBranch()
	cn := newCompressed([]byte("foo"), child)
	assert.True(t, cn.isCompressed)
	assert.Equal(t, 3, cn.size())
	assert.Same(t, child, cn.child())
}
