package rax

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivanmoore/raxgo/internal/faultalloc"
)

func TestInsertAndFindBasic(t *testing.T) {
	tr := New()
	inserted, old, err := tr.Insert([]byte("foo"), 1)
	assert.NoError(t, err)
	assert.True(t, inserted)
	assert.Nil(t, old)
	assert.Equal(t, 1, tr.Find([]byte("foo")))
}

func TestInsertReplaceExisting(t *testing.T) {
	tr := New()
	tr.Insert([]byte("foo"), 1)

	inserted, old, err := tr.Insert([]byte("foo"), 2)
	assert.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, 1, old)
	assert.Equal(t, 2, tr.Find([]byte("foo")))
}

func TestTryInsertDoesNotOverwrite(t *testing.T) {
	tr := New()
	tr.Insert([]byte("foo"), 1)

	inserted, old, err := tr.TryInsert([]byte("foo"), 2)
	assert.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, 1, old)
	assert.Equal(t, 1, tr.Find([]byte("foo")))
}

// TestInsertWorkedExample walks the classic foo/foobar/footer/first scenario
// step by step, checking that every intermediate lookup succeeds and that no
// unrelated key is ever visible early.
func TestInsertWorkedExample(t *testing.T) {
	tr := New()

	_, _, err := tr.Insert([]byte("foo"), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, tr.Find([]byte("foo")))

	_, _, err = tr.Insert([]byte("foobar"), 2)
	assert.NoError(t, err)
	assert.Equal(t, 1, tr.Find([]byte("foo")))
	assert.Equal(t, 2, tr.Find([]byte("foobar")))
	assert.Same(t, NotFound, tr.Find([]byte("foob")))

	_, _, err = tr.Insert([]byte("footer"), 3)
	assert.NoError(t, err)
	assert.Equal(t, 1, tr.Find([]byte("foo")))
	assert.Equal(t, 2, tr.Find([]byte("foobar")))
	assert.Equal(t, 3, tr.Find([]byte("footer")))

	_, _, err = tr.Insert([]byte("first"), 4)
	assert.NoError(t, err)
	assert.Equal(t, 1, tr.Find([]byte("foo")))
	assert.Equal(t, 2, tr.Find([]byte("foobar")))
	assert.Equal(t, 3, tr.Find([]byte("footer")))
	assert.Equal(t, 4, tr.Find([]byte("first")))
	assert.Same(t, NotFound, tr.Find([]byte("fi")))
	assert.Equal(t, uint64(4), tr.Size())
}

func TestInsertPrefixOfExistingKey(t *testing.T) {
	tr := New()
	tr.Insert([]byte("foobar"), 1)
	inserted, _, err := tr.Insert([]byte("foo"), 2)
	assert.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, 2, tr.Find([]byte("foo")))
	assert.Equal(t, 1, tr.Find([]byte("foobar")))
}

func TestInsertEmptyKey(t *testing.T) {
	tr := New()
	inserted, _, err := tr.Insert(nil, "root-value")
	assert.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, "root-value", tr.Find(nil))
}

func TestInsertLongKeyExceedsMaxEdgeLen(t *testing.T) {
	key := make([]byte, MaxEdgeLen+5)
	for i := range key {
		key[i] = byte('a' + i%26)
	}
	tr := New()
	_, _, err := tr.Insert(key, "long")
	assert.NoError(t, err)
	assert.Equal(t, "long", tr.Find(key))
}

func TestInsertRollsBackOnAllocationFailure(t *testing.T) {
	fa := &faultalloc.Allocator{}
	tr := NewWithAllocator(fa)
	tr.Insert([]byte("foo"), 1)
	tr.Insert([]byte("foobar"), 2)

	before := tr.NumNodes()
	fa.FailAfter = 1 // fail the very next allocation

	_, _, err := tr.Insert([]byte("footer"), 3)
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, before, tr.NumNodes(), "failed insert must not leave partially built nodes attached")
	assert.Equal(t, 1, tr.Find([]byte("foo")))
	assert.Equal(t, 2, tr.Find([]byte("foobar")))
	assert.Same(t, NotFound, tr.Find([]byte("footer")))
}
