// Package rax implements a compressed radix tree: an ordered associative
// container mapping arbitrary byte-string keys to opaque values.
//
// Single-child chains of non-key nodes are compressed into one node whose
// edge is the concatenation of their labels, so keys that share long common
// prefixes (timestamped stream ids, interned symbols, IP-like keys) cost far
// less than a naive trie or a balanced tree would. The representation and
// algorithms below are a direct descendant of Redis's rax.c: the node header
// bits (is_key, is_null, is_compressed, size) are the same, the walk/split/
// merge algorithms are the same, only the packed byte-buffer layout is
// swapped for two parallel Go slices (see node.go).
//
// The tree is not safe for concurrent use. All operations are synchronous;
// a caller sharing a *Tree across goroutines must provide its own mutual
// exclusion. The safe iterator (see Tree.SafeIterator) may be
// interleaved with mutation of the tree between calls to Next/Prev, but
// never during one.
package rax
