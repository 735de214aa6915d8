package rax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTreeIsEmpty(t *testing.T) {
	tr := New()
	assert.Equal(t, uint64(0), tr.Size())
	assert.Equal(t, uint64(1), tr.NumNodes())
	assert.Same(t, NotFound, tr.Find([]byte("anything")))
}

func TestFindMissingReturnsNotFound(t *testing.T) {
	tr := New()
	tr.Insert([]byte("foo"), 1)
	assert.Same(t, NotFound, tr.Find([]byte("bar")))
	assert.Same(t, NotFound, tr.Find([]byte("fo")))
	assert.Same(t, NotFound, tr.Find([]byte("foobar")))
}

func TestFreeResetsTree(t *testing.T) {
	tr := New()
	tr.Insert([]byte("a"), 1)
	tr.Insert([]byte("b"), 2)
	tr.Free()
	assert.Equal(t, uint64(0), tr.Size())
	assert.Equal(t, uint64(0), tr.NumNodes())
}

func TestFreeWithCallbackVisitsEveryValue(t *testing.T) {
	tr := New()
	tr.Insert([]byte("a"), 1)
	tr.Insert([]byte("ab"), 2)
	tr.Insert([]byte("abc"), 3)

	var seen []int
	tr.FreeWithCallback(func(v any) {
		seen = append(seen, v.(int))
	})

	assert.ElementsMatch(t, []int{1, 2, 3}, seen)
	assert.Equal(t, uint64(0), tr.Size())
}

func TestNilValueIsDistinctFromAbsent(t *testing.T) {
	tr := New()
	tr.Insert([]byte("nilkey"), nil)
	v := tr.Find([]byte("nilkey"))
	assert.Nil(t, v)
	assert.True(t, v != NotFound)
}
