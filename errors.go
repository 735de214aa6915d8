package rax

import "errors"

// ErrOutOfMemory is returned by Insert and TryInsert when the tree's
// Allocator reports a failed allocation partway through building the nodes
// a key needs. The tree is left exactly as it was before the call: nothing
// is spliced into the live structure until every allocation the operation
// needs has already succeeded. Remove never returns it (see Remove's doc
// comment), and Iterator never allocates at all, so neither can fail this
// way.
var ErrOutOfMemory = errors.New("rax: out of memory")

// NotFound is the sentinel returned by Find for an absent key. It is a
// unique pointer distinct from every legal stored value, including a
// legitimately stored nil, so callers can distinguish "absent" from
// "present with a nil value" by identity.
var NotFound = &struct{ notFound byte }{}
