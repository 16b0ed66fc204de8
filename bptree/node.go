/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Mon Apr  2 10:31:05 2018 mstenber
 * Last modified: Thu Apr  5 11:02:17 2018 mstenber
 * Edit time:     96 min
 *
 */

package bptree

// Node is a single tree node. It is either a leaf (keys, values and a
// link to the next leaf) or an internal node (keys and len(keys)+1
// children). Handles returned to callers are read-only views; the
// accessors return copies.
type Node[K, V any] struct {
	leaf bool

	keys []K

	// leaf only; values[i] belongs to keys[i]
	values []V

	// leaf only; the next leaf in key order, not owned
	next *Node[K, V]

	// internal only
	children []*Node[K, V]
}

func newLeaf[K, V any](fanout int) *Node[K, V] {
	return &Node[K, V]{leaf: true,
		keys:   make([]K, 0, fanout-1),
		values: make([]V, 0, fanout-1)}
}

func newInternal[K, V any](fanout int) *Node[K, V] {
	return &Node[K, V]{
		keys:     make([]K, 0, fanout-1),
		children: make([]*Node[K, V], 0, fanout)}
}

// IsLeaf tells if the node is a leaf.
func (self *Node[K, V]) IsLeaf() bool {
	return self.leaf
}

// Count is the number of keys in the node.
func (self *Node[K, V]) Count() int {
	return len(self.keys)
}

func (self *Node[K, V]) Keys() []K {
	return append([]K(nil), self.keys...)
}

// Values returns the values of a leaf (nil for internal nodes).
func (self *Node[K, V]) Values() []V {
	if !self.leaf {
		return nil
	}
	return append([]V(nil), self.values...)
}

// Children returns the child handles of an internal node (nil for leaves).
func (self *Node[K, V]) Children() []*Node[K, V] {
	if self.leaf {
		return nil
	}
	return append([]*Node[K, V](nil), self.children...)
}

// Next returns the following leaf in key order, or nil.
func (self *Node[K, V]) Next() *Node[K, V] {
	return self.next
}

func (self *Node[K, V]) firstLeaf() *Node[K, V] {
	n := self
	for !n.leaf {
		n = n.children[0]
	}
	return n
}

func (self *Node[K, V]) lastLeaf() *Node[K, V] {
	n := self
	for !n.leaf {
		n = n.children[len(n.children)-1]
	}
	return n
}

// childIndex returns the slot holding child, by pointer identity.
func (self *Node[K, V]) childIndex(child *Node[K, V]) int {
	for i, c := range self.children {
		if c == child {
			return i
		}
	}
	return -1
}

func insertAt[T any](s []T, i int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func removeAt[T any](s []T, i int) []T {
	var zero T
	copy(s[i:], s[i+1:])
	s[len(s)-1] = zero
	return s[:len(s)-1]
}

func (self *Node[K, V]) insertLeafEntry(i int, key K, value V) {
	self.keys = insertAt(self.keys, i, key)
	self.values = insertAt(self.values, i, value)
}

func (self *Node[K, V]) removeLeafEntry(i int) {
	self.keys = removeAt(self.keys, i)
	self.values = removeAt(self.values, i)
}

// insertAfter places key and right immediately after the slot pointing
// at left.
func (self *Node[K, V]) insertAfter(left *Node[K, V], key K, right *Node[K, V]) {
	i := self.childIndex(left)
	if i < 0 {
		panicTree("insertAfter: child not found in parent")
	}
	self.keys = insertAt(self.keys, i, key)
	self.children = insertAt(self.children, i+1, right)
}

// removeInternalEntry drops keys[i] and the child to its right.
func (self *Node[K, V]) removeInternalEntry(i int) {
	self.keys = removeAt(self.keys, i)
	self.children = removeAt(self.children, i+1)
}

// clear drops everything so that a discarded node holds no references.
func (self *Node[K, V]) clear() {
	self.keys = nil
	self.values = nil
	self.children = nil
	self.next = nil
}

// deepCopy duplicates the subtree. Leaf next links are not set here;
// the caller re-threads the copied leaves.
func (self *Node[K, V]) deepCopy(fanout int, leaves *[]*Node[K, V]) *Node[K, V] {
	if self.leaf {
		n := newLeaf[K, V](fanout)
		n.keys = append(n.keys, self.keys...)
		n.values = append(n.values, self.values...)
		*leaves = append(*leaves, n)
		return n
	}
	n := newInternal[K, V](fanout)
	n.keys = append(n.keys, self.keys...)
	for _, c := range self.children {
		n.children = append(n.children, c.deepCopy(fanout, leaves))
	}
	return n
}
