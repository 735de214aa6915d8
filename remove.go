package rax

// Remove deletes key if present, returning the value it held. Deleting a key
// clears its is_key flag and, where the resulting structure permits,
// collapses now-useless ancestors:
//
//   - a node left with no children and no key is excised from its parent,
//     and the excision cascades upward as far as it keeps producing useless
//     ancestors;
//   - a branch node left with exactly one child and no key is re-merged with
//     its descendant chain into the longest valid compressed edge, exactly
//     mirroring the chunking makeEdge uses on insert.
//
// The merge step is best-effort: if the tree's Allocator refuses the
// allocation for the merged node, Remove still succeeds (the key is gone)
// but leaves the affected branch as an unmerged, valid but less-compressed
// single-child node. Unlike Insert, Remove never reports ErrOutOfMemory:
// shrinking the tree should never be something a caller has to retry.
func (t *Tree) Remove(key []byte) (removed bool, old any) {
	stop, matched, split, stack := t.walk(key, true)
	if !(matched == len(key) && split == -1 && stop.isKey) {
		return false, nil
	}
	old = stop.value
	stop.clearValue()
	t.numKeys--

	cur := stop
	useless := cur.isLeaf()
	i := stack.len() - 1
	var removedNodes int
	var skipped int
	foundBranch := false

	for useless && i >= 0 {
		f := stack.at(i)
		p := f.parent

		if p.isCompressed {
			// p exists solely to reach cur; if cur is gone, so is p, one
			// level further up. p is credited to removedNodes once a real
			// branch ancestor excises the chain (or, if the chain runs all
			// the way to the root, below).
			skipped++
			cur = p
			i--
			continue
		}

		foundBranch = true
		p.removeChildAt(f.idx)
		removedNodes += 1 + skipped
		skipped = 0

		if p.isKey || len(p.children) >= 2 {
			break
		}
		if len(p.children) == 0 {
			cur = p
			i--
			continue
		}

		// Exactly one child remains and p is not a key: collapse p (and as
		// much of its descendant chain as qualifies) into one edge.
		i--
		replacement, netRemoved := t.mergeSingleChild(p)
		if i < 0 {
			t.root = replacement
		} else {
			g := stack.at(i)
			g.parent.children[g.idx] = replacement
		}
		removedNodes += netRemoved
		break
	}

	if useless && !foundBranch && skipped > 0 {
		// The entire ancestor chain from the removed key back to the root
		// was compressed, so no branch node was ever found to excise from.
		// The whole chain, root included, collapses to one fresh empty
		// root.
		removedNodes += skipped
		t.root = newBranch()
	}

	if !useless && len(stop.children) == 1 {
		// stop keeps exactly one child and is no longer a key: merge it with
		// its descendant chain the same way.
		replacement, netRemoved := t.mergeSingleChild(stop)
		t.spliceReplace(stack, replacement)
		removedNodes += netRemoved
	}

	t.numNodes -= uint64(removedNodes)
	t.generation++
	return true, old
}

// mergeSingleChild collapses a non-key branch p with exactly one child into
// the longest valid compressed run, absorbing further descendants as long as
// each is itself non-key and single-child (or compressed). Returns the
// replacement node and the net number of nodes eliminated (negative if the
// chunking needed to add nodes back, zero if nothing could be merged).
func (t *Tree) mergeSingleChild(p *node) (replacement *node, netRemoved int) {
	bytes := []byte{p.edge[0]}
	eliminated := 1
	cur := p.children[0]
	for !cur.isKey && (cur.isCompressed || len(cur.children) == 1) {
		if cur.isCompressed {
			bytes = append(bytes, cur.edge...)
		} else {
			bytes = append(bytes, cur.edge[0])
		}
		eliminated++
		cur = cur.children[0]
	}
	if eliminated == 1 {
		// Nothing below p qualified for absorption; p is already minimal.
		return p, 0
	}
	var created int
	merged, err := t.makeEdge(bytes, cur, &created)
	if err != nil {
		return p, 0
	}
	return merged, eliminated - created
}
