package rax

// Insert stores value under key, replacing any existing value. It reports
// whether key was previously absent, and returns the value it displaced (nil
// if key was absent or the displaced value was itself nil).
func (t *Tree) Insert(key []byte, value any) (inserted bool, old any, err error) {
	return t.insert(key, value, true)
}

// TryInsert stores value under key only if key is currently absent. If key
// is already present, the tree is left unchanged and the existing value is
// returned as old with inserted == false.
func (t *Tree) TryInsert(key []byte, value any) (inserted bool, old any, err error) {
	return t.insert(key, value, false)
}

// makeLeaf builds a fresh key-bearing branch node (size 0) holding value.
func (t *Tree) makeLeaf(value any, created *int) (*node, error) {
	n, err := t.allocBranch()
	if err != nil {
		return nil, err
	}
	*created++
	n.setValue(value)
	return n, nil
}

// makeEdge builds the minimal valid chain of nodes carrying suffix as an
// edge label leading to target, chunked so no single compressed node's edge
// exceeds MaxEdgeLen and no compressed node is ever given an edge shorter
// than 2 bytes (a 1-byte remainder is represented as a plain single-child
// branch instead, mirroring how the original handles a trimmed split
// prefix of length 1).
//
//   - len(suffix) == 0: returns target unchanged.
//   - len(suffix) == 1: wraps target in a non-key branch with that one edge
//     byte.
//   - len(suffix) >= 2: one or more chained compressed nodes, built from the
//     tail backward so only the outermost chunk can be shorter than
//     MaxEdgeLen, except that when exactly one byte would be left for the
//     outermost chunk, the chunk just inside it gives up one byte
//     (MaxEdgeLen-1) so the outermost chunk has two.
func (t *Tree) makeEdge(suffix []byte, target *node, created *int) (*node, error) {
	cur := target
	pos := len(suffix)
	for pos > 0 {
		chunkLen := MaxEdgeLen
		if pos <= MaxEdgeLen {
			chunkLen = pos
		}
		// never leave a 1-byte remainder for the next (outer) iteration
		if pos-chunkLen == 1 {
			chunkLen--
		}
		start := pos - chunkLen
		chunk := suffix[start:pos]
		if chunkLen == 1 {
			br, err := t.allocBranch()
			if err != nil {
				return nil, err
			}
			*created++
			br.addChildSorted(chunk[0], cur)
			cur = br
		} else {
			cn, err := t.allocCompressed(chunk, cur)
			if err != nil {
				return nil, err
			}
			*created++
			cur = cn
		}
		pos = start
	}
	return cur, nil
}

// buildValueChain builds the node reached after consuming suffix, carrying
// value at its end.
func (t *Tree) buildValueChain(suffix []byte, value any, created *int) (*node, error) {
	leaf, err := t.makeLeaf(value, created)
	if err != nil {
		return nil, err
	}
	return t.makeEdge(suffix, leaf, created)
}

// spliceReplace swaps whatever node the walk stopped on for replacement, by
// rewriting either the root pointer (stack empty: stop was the root) or the
// recorded parent's child slot.
func (t *Tree) spliceReplace(stack *parentStack, replacement *node) {
	if stack.empty() {
		t.root = replacement
		return
	}
	f := stack.top()
	f.parent.children[f.idx] = replacement
}

func (t *Tree) insert(key []byte, value any, replace bool) (inserted bool, old any, err error) {
	stop, matched, split, stack := t.walk(key, true)
	l := len(key)

	// Case: key's full path lands exactly on a node boundary (no mid-edge
	// split needed). stop is guaranteed a branch node here (walk never
	// stops mid-compressed-edge with split == -1).
	if matched == l && split == -1 {
		if stop.isKey {
			old = stop.value
			if !replace {
				return false, old, nil
			}
			stop.setValue(value)
			return false, old, nil
		}
		// Prefix already present as a non-key node; just mark it a key.
		stop.setValue(value)
		t.numKeys++
		t.generation++
		return true, nil, nil
	}

	var created int

	if split != -1 {
		// Mid-compressed-edge split: stop.edge[:split] matched, stop.edge[split]
		// diverges from key[matched] (or key is exhausted exactly at split).
		i := split
		j := matched
		oldByte := stop.edge[i]
		oldTail := stop.edge[i+1:]

		oldSide, err := t.makeEdge(oldTail, stop.child(), &created)
		if err != nil {
			return false, nil, err
		}

		newBranch, err := t.allocBranch()
		if err != nil {
			return false, nil, err
		}
		created++
		newBranch.addChildSorted(oldByte, oldSide)

		if j < l {
			newByte := key[j]
			newSide, err := t.buildValueChain(key[j+1:], value, &created)
			if err != nil {
				return false, nil, err
			}
			newBranch.addChildSorted(newByte, newSide)
		} else {
			// New key ends exactly at the split point: it lives on the new
			// branch itself (size 1, old side only).
			newBranch.setValue(value)
		}

		replacement, err := t.makeEdge(stop.edge[:i], newBranch, &created)
		if err != nil {
			return false, nil, err
		}

		t.spliceReplace(stack, replacement)
		// stop itself is discarded wholesale by the splice (its child was
		// reused above, but stop was not), so only created-1 nodes are net
		// new.
		t.numNodes += uint64(created) - 1
		t.numKeys++
		t.generation++
		return true, nil, nil
	}

	// split == -1 && matched < l: stop is a branch node and key[matched] is
	// not among its children.
	j := matched
	tail := key[j+1:]

	canMergeIntoStop := stop.isLeaf() && !stop.isKey
	if canMergeIntoStop {
		leaf, err := t.makeLeaf(value, &created)
		if err != nil {
			return false, nil, err
		}
		replacement, err := t.makeEdge(key[j:], leaf, &created)
		if err != nil {
			return false, nil, err
		}
		t.spliceReplace(stack, replacement)
		// stop (the pristine, childless placeholder) is discarded by the
		// splice rather than reused.
		t.numNodes += uint64(created) - 1
		t.numKeys++
		t.generation++
		return true, nil, nil
	}

	newChild, err := t.buildValueChain(tail, value, &created)
	if err != nil {
		return false, nil, err
	}
	stop.addChildSorted(key[j], newChild)

	t.numNodes += uint64(created)
	t.numKeys++
	t.generation++
	return true, nil, nil
}
