/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Tue Apr  3 09:14:27 2018 mstenber
 * Last modified: Fri Apr  6 09:40:12 2018 mstenber
 * Edit time:     143 min
 *
 */

package bptree

import "github.com/fingon/go-bptree/mlog"

// Delete removes key from the tree, reporting whether it was present.
// Deleting an absent key is a no-op.
func (self *Tree[K, V]) Delete(key K) (bool, error) {
	if self.root == nil {
		return false, nil
	}
	var st pathStack[K, V]
	l, err := self.descend(key, &st)
	if err != nil {
		return false, err
	}
	i, eq, err := self.search(l.keys, key)
	if err != nil || !eq {
		return false, err
	}
	mlog.Printf2("bptree/delete", "Delete %v", key)
	self.length--
	self.deleteEntry(l, i, &st)
	return true, nil
}

// deleteEntry removes entry i from n: for a leaf the key and its value,
// for an internal node keys[i] and the child to its right. The node is
// then rebalanced against a sibling if it became too small.
func (self *Tree[K, V]) deleteEntry(n *Node[K, V], i int, st *pathStack[K, V]) {
	if n.leaf {
		n.removeLeafEntry(i)
	} else {
		n.removeInternalEntry(i)
	}

	if n == self.root {
		switch {
		case n.leaf && len(n.keys) == 0:
			mlog.Printf2("bptree/delete", "tree emptied")
			self.root = nil
		case !n.leaf && len(n.children) == 1:
			self.root = n.children[0]
			mlog.Printf2("bptree/delete", "root collapsed to %v", self.root.keys)
			n.clear()
		}
		return
	}
	if !self.underfull(n) {
		return
	}

	p, idx := st.pop()
	if p == nil || p.children[idx] != n {
		panicTree("deleteEntry: path does not match node")
	}
	// Prefer the predecessor; the leftmost child uses its successor.
	var left, right *Node[K, V]
	sepIdx := idx - 1
	if idx > 0 {
		left, right = p.children[idx-1], n
	} else {
		sepIdx = 0
		left, right = n, p.children[1]
	}

	if self.canMerge(left, right) {
		self.merge(left, p.keys[sepIdx], right)
		self.deleteEntry(p, sepIdx, st)
		return
	}
	if left == n {
		self.borrowFromRight(n, right, p, sepIdx)
	} else {
		self.borrowFromLeft(n, left, p, sepIdx)
	}
}

func (self *Tree[K, V]) canMerge(left, right *Node[K, V]) bool {
	if left.leaf {
		return len(left.keys)+len(right.keys) <= self.fanout-1
	}
	return len(left.children)+len(right.children) <= self.fanout
}

// merge moves everything from right to left; sep is the parent's
// separator between them. right is left empty.
func (self *Tree[K, V]) merge(left *Node[K, V], sep K, right *Node[K, V]) {
	mlog.Printf2("bptree/delete", "merge %v + %v", left.keys, right.keys)
	if left.leaf {
		left.keys = append(left.keys, right.keys...)
		left.values = append(left.values, right.values...)
		left.next = right.next
	} else {
		left.keys = append(left.keys, sep)
		left.keys = append(left.keys, right.keys...)
		left.children = append(left.children, right.children...)
	}
	right.clear()
}

// borrowFromLeft moves the last entry of left into the front of n.
func (self *Tree[K, V]) borrowFromLeft(n, left, p *Node[K, V], sepIdx int) {
	last := len(left.keys) - 1
	if n.leaf {
		n.insertLeafEntry(0, left.keys[last], left.values[last])
		left.removeLeafEntry(last)
		p.keys[sepIdx] = n.keys[0]
	} else {
		lc := left.children[len(left.children)-1]
		n.keys = insertAt(n.keys, 0, p.keys[sepIdx])
		n.children = insertAt(n.children, 0, lc)
		p.keys[sepIdx] = left.keys[last]
		left.keys = removeAt(left.keys, last)
		left.children = removeAt(left.children, len(left.children)-1)
	}
	mlog.Printf2("bptree/delete", "borrowFromLeft -> %v ^%v %v",
		left.keys, p.keys[sepIdx], n.keys)
}

// borrowFromRight moves the first entry of right to the end of n.
func (self *Tree[K, V]) borrowFromRight(n, right, p *Node[K, V], sepIdx int) {
	if n.leaf {
		n.insertLeafEntry(len(n.keys), right.keys[0], right.values[0])
		right.removeLeafEntry(0)
		p.keys[sepIdx] = right.keys[0]
	} else {
		n.keys = append(n.keys, p.keys[sepIdx])
		n.children = append(n.children, right.children[0])
		p.keys[sepIdx] = right.keys[0]
		right.keys = removeAt(right.keys, 0)
		right.children = removeAt(right.children, 0)
	}
	mlog.Printf2("bptree/delete", "borrowFromRight -> %v ^%v %v",
		n.keys, p.keys[sepIdx], right.keys)
}
