/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Mon Apr  2 13:20:44 2018 mstenber
 * Last modified: Wed Apr  4 18:11:09 2018 mstenber
 * Edit time:     22 min
 *
 */

package bptree

// pathStack keeps trace of the internal nodes visited on the way from
// the root to a leaf, and which child slot was taken at each of them.
// Splits and merges walk it backwards instead of re-descending the
// tree to find parents.
type pathStack[K, V any] struct {
	nodes   []*Node[K, V]
	indexes []int
}

func (self *pathStack[K, V]) push(n *Node[K, V], index int) {
	self.nodes = append(self.nodes, n)
	self.indexes = append(self.indexes, index)
}

// pop removes the deepest ancestor and returns it along with the slot
// that led to its child; nil when the stack is empty (child was root).
func (self *pathStack[K, V]) pop() (*Node[K, V], int) {
	top := len(self.nodes) - 1
	if top < 0 {
		return nil, -1
	}
	n, idx := self.nodes[top], self.indexes[top]
	self.nodes = self.nodes[:top]
	self.indexes = self.indexes[:top]
	return n, idx
}
