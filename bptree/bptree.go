/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Mon Apr  2 10:05:12 2018 mstenber
 * Last modified: Fri Apr  6 09:48:33 2018 mstenber
 * Edit time:     127 min
 *
 */

// bptree package provides an in-memory B+ tree with a fixed fanout.
//
// Keys live in sorted order in the leaves, which are chained together
// for ordered traversal; internal nodes hold only separator keys. The
// tree is mutated in place and is NOT safe for concurrent use; Clone
// produces a fully independent copy that can be kept as a
// point-in-time snapshot while the original keeps changing.
//
// Debug output of the structural operations (splits, merges,
// redistribution, root changes) is available via mlog, e.g.
// MLOG=bptree/.
package bptree

import (
	"cmp"
	"log"

	"github.com/pkg/errors"

	"github.com/fingon/go-bptree/mlog"
)

// MinimumFanout is the smallest fanout with which splits work.
const MinimumFanout = 3

// Tree is the B+ tree. The zero value is not usable; use New or
// NewOrdered.
type Tree[K, V any] struct {
	fanout int
	cmp    Comparator[K]
	root   *Node[K, V]
	length int
}

// New creates an empty tree with the given fanout (maximum number of
// children per node) and key comparator.
func New[K, V any](fanout int, cmp Comparator[K]) (*Tree[K, V], error) {
	if fanout < MinimumFanout {
		return nil, errors.Wrapf(ErrInvalidConfiguration,
			"fanout %d < %d", fanout, MinimumFanout)
	}
	if cmp == nil {
		return nil, errors.Wrap(ErrInvalidConfiguration, "nil comparator")
	}
	mlog.Printf2("bptree/bptree", "New fanout:%d", fanout)
	return &Tree[K, V]{fanout: fanout, cmp: cmp}, nil
}

// NewOrdered creates an empty tree keyed by one of the built-in ordered
// types.
func NewOrdered[K cmp.Ordered, V any](fanout int) (*Tree[K, V], error) {
	return New[K, V](fanout, CompareOrdered[K])
}

func (self *Tree[K, V]) Fanout() int {
	return self.fanout
}

// Len returns the number of entries in the tree.
func (self *Tree[K, V]) Len() int {
	return self.length
}

// Height returns the number of levels; 0 for an empty tree.
func (self *Tree[K, V]) Height() int {
	if self.root == nil {
		return 0
	}
	h := 1
	for n := self.root; !n.leaf; n = n.children[0] {
		h++
	}
	return h
}

// Root returns the root handle, or nil for an empty tree.
func (self *Tree[K, V]) Root() *Node[K, V] {
	return self.root
}

// Clone returns a deep copy of the tree. The copy shares no nodes with
// the original; values themselves are copied by assignment.
func (self *Tree[K, V]) Clone() *Tree[K, V] {
	t := &Tree[K, V]{fanout: self.fanout, cmp: self.cmp, length: self.length}
	if self.root == nil {
		return t
	}
	var leaves []*Node[K, V]
	t.root = self.root.deepCopy(self.fanout, &leaves)
	for i := 0; i+1 < len(leaves); i++ {
		leaves[i].next = leaves[i+1]
	}
	mlog.Printf2("bptree/bptree", "Clone %d entries, %d leaves",
		t.length, len(leaves))
	return t
}

// minLeafValues is the fewest entries a non-root leaf may hold.
func (self *Tree[K, V]) minLeafValues() int {
	return self.fanout / 2
}

// minChildren is the fewest children a non-root internal node may hold.
func (self *Tree[K, V]) minChildren() int {
	return (self.fanout + 1) / 2
}

// splitPoint is ceil(fanout/2).
func (self *Tree[K, V]) splitPoint() int {
	return (self.fanout + 1) / 2
}

func (self *Tree[K, V]) underfull(n *Node[K, V]) bool {
	if n.leaf {
		return len(n.values) < self.minLeafValues()
	}
	return len(n.children) < self.minChildren()
}

func panicTree(msg string) {
	log.Panic("bptree: tree broke: ", msg)
}
