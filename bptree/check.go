/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Wed Apr  4 13:30:19 2018 mstenber
 * Last modified: Fri Apr  6 09:31:55 2018 mstenber
 * Edit time:     62 min
 *
 */

package bptree

import (
	"fmt"

	"github.com/fingon/go-bptree/mlog"
)

// CheckError describes the first structural problem found by Check.
type CheckError struct {
	// Path is the child index sequence from the root to the node.
	Path   []int
	Reason string
}

func (self *CheckError) Error() string {
	return fmt.Sprintf("bptree: tree broke at %v: %s", self.Path, self.Reason)
}

type checker[K, V any] struct {
	t         *Tree[K, V]
	leafDepth int
	leaves    []*Node[K, V]
	entries   int
}

func (self *checker[K, V]) fail(path []int, format string, args ...interface{}) error {
	return &CheckError{Path: append([]int(nil), path...),
		Reason: fmt.Sprintf(format, args...)}
}

// Check verifies every structural invariant: equal leaf depth, node
// occupancy, strictly increasing keys, separator ranges, parent
// resolution by key, the leaf chain and the entry count. It returns
// nil or a *CheckError.
func (self *Tree[K, V]) Check() error {
	if self.root == nil {
		if self.length != 0 {
			return &CheckError{Reason: fmt.Sprintf("empty tree with length %d", self.length)}
		}
		return nil
	}
	c := &checker[K, V]{t: self, leafDepth: -1}
	if err := c.node(self.root, nil, nil, nil, nil); err != nil {
		if mlog.IsEnabled() {
			mlog.Printf2("bptree/check", "Check failed: %v", err)
			self.PrintToMLog()
		}
		return err
	}
	if err := c.chain(); err != nil {
		return err
	}
	if c.entries != self.length {
		return &CheckError{Reason: fmt.Sprintf("%d entries but length %d", c.entries, self.length)}
	}
	return nil
}

// node checks n, whose keys must all fall into [lo, hi) (nil bound =
// unbounded).
func (self *checker[K, V]) node(n, parent *Node[K, V], path []int, lo, hi *K) error {
	t := self.t
	root := n == t.root
	nk := len(n.keys)
	if nk > t.fanout-1 {
		return self.fail(path, "%d keys > %d", nk, t.fanout-1)
	}
	if n.leaf {
		if len(n.values) != nk {
			return self.fail(path, "leaf with %d keys and %d values", nk, len(n.values))
		}
		if n.children != nil {
			return self.fail(path, "leaf with children")
		}
		if root && nk == 0 {
			return self.fail(path, "empty root leaf")
		}
		if !root && nk < t.minLeafValues() {
			return self.fail(path, "leaf underfull: %d < %d", nk, t.minLeafValues())
		}
	} else {
		nc := len(n.children)
		if nc != nk+1 {
			return self.fail(path, "internal with %d keys and %d children", nk, nc)
		}
		if root && nc < 2 {
			return self.fail(path, "internal root with %d children", nc)
		}
		if !root && nc < t.minChildren() {
			return self.fail(path, "internal underfull: %d < %d", nc, t.minChildren())
		}
		if n.values != nil || n.next != nil {
			return self.fail(path, "internal node with leaf fields")
		}
	}

	for i := range n.keys {
		k := n.keys[i]
		if i > 0 {
			c, err := t.cmp(n.keys[i-1], k)
			if err != nil {
				return self.fail(path, "compare: %v", err)
			}
			if c >= 0 {
				return self.fail(path, "keys not increasing at %d: %v >= %v", i, n.keys[i-1], k)
			}
		}
		if lo != nil {
			c, err := t.cmp(*lo, k)
			if err != nil {
				return self.fail(path, "compare: %v", err)
			}
			if c > 0 {
				return self.fail(path, "key %v below separator %v", k, *lo)
			}
		}
		if hi != nil {
			c, err := t.cmp(k, *hi)
			if err != nil {
				return self.fail(path, "compare: %v", err)
			}
			if c >= 0 {
				return self.fail(path, "key %v not below separator %v", k, *hi)
			}
		}
	}

	if !root && nk > 0 {
		p, err := t.findParent(n)
		if err != nil {
			return self.fail(path, "%v", err)
		}
		if p != parent {
			return self.fail(path, "findParent disagrees with the actual parent")
		}
	}

	if n.leaf {
		depth := len(path)
		if self.leafDepth < 0 {
			self.leafDepth = depth
		} else if self.leafDepth != depth {
			return self.fail(path, "leaf at depth %d, expected %d", depth, self.leafDepth)
		}
		self.leaves = append(self.leaves, n)
		self.entries += nk
		return nil
	}

	for i, c := range n.children {
		if c == nil {
			return self.fail(path, "nil child at %d", i)
		}
		clo, chi := lo, hi
		if i > 0 {
			clo = &n.keys[i-1]
		}
		if i < nk {
			chi = &n.keys[i]
		}
		if err := self.node(c, n, append(path, i), clo, chi); err != nil {
			return err
		}
	}
	return nil
}

// chain verifies that following next links visits exactly the leaves
// found by the recursive walk, in the same order.
func (self *checker[K, V]) chain() error {
	l := self.t.root.firstLeaf()
	for i, want := range self.leaves {
		if l != want {
			return &CheckError{Reason: fmt.Sprintf("leaf chain diverges at leaf %d", i)}
		}
		l = l.next
	}
	if l != nil {
		return &CheckError{Reason: "leaf chain continues past the last leaf"}
	}
	return nil
}
