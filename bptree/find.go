/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Mon Apr  2 11:02:51 2018 mstenber
 * Last modified: Thu Apr  5 10:21:34 2018 mstenber
 * Edit time:     48 min
 *
 */

package bptree

import (
	"github.com/pkg/errors"

	"github.com/fingon/go-bptree/mlog"
)

// search returns the smallest i such that keys[i] >= key (len(keys) if
// there is none), and whether keys[i] == key.
func (self *Tree[K, V]) search(keys []K, key K) (int, bool, error) {
	lo, hi := 0, len(keys)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		c, err := self.cmp(keys[mid], key)
		if err != nil {
			return 0, false, err
		}
		if c < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == len(keys) {
		return lo, false, nil
	}
	c, err := self.cmp(keys[lo], key)
	if err != nil {
		return 0, false, err
	}
	return lo, c == 0, nil
}

// route picks the child of internal node n responsible for key. Keys
// equal to a separator go right.
func (self *Tree[K, V]) route(n *Node[K, V], key K) (int, error) {
	i, eq, err := self.search(n.keys, key)
	if err != nil {
		return 0, err
	}
	if eq {
		i++
	}
	return i, nil
}

// descend walks from the root to the leaf responsible for key. If st is
// non-nil, the internal nodes passed through are pushed to it.
func (self *Tree[K, V]) descend(key K, st *pathStack[K, V]) (*Node[K, V], error) {
	n := self.root
	for !n.leaf {
		i, err := self.route(n, key)
		if err != nil {
			return nil, err
		}
		if st != nil {
			st.push(n, i)
		}
		n = n.children[i]
	}
	return n, nil
}

// Find returns the leaf responsible for key. The key need not be
// present in it.
func (self *Tree[K, V]) Find(key K) (*Node[K, V], error) {
	if self.root == nil {
		return nil, ErrEmptyTree
	}
	return self.descend(key, nil)
}

// Get returns the value stored for key.
func (self *Tree[K, V]) Get(key K) (v V, found bool, err error) {
	if self.root == nil {
		return
	}
	l, err := self.descend(key, nil)
	if err != nil {
		return
	}
	i, eq, err := self.search(l.keys, key)
	if err != nil || !eq {
		return
	}
	return l.values[i], true, nil
}

// Has tells whether key is present.
func (self *Tree[K, V]) Has(key K) (bool, error) {
	_, found, err := self.Get(key)
	return found, err
}

// findParent re-derives the parent of node by descending from the root
// with the node's first key. It returns nil for the root. This is not
// used by the mutating operations (they keep a pathStack); the
// structural checker uses it to confirm that key routing and the
// actual links agree.
func (self *Tree[K, V]) findParent(node *Node[K, V]) (*Node[K, V], error) {
	if node == self.root {
		return nil, nil
	}
	if len(node.keys) == 0 {
		return nil, errors.New("findParent: node without keys")
	}
	key := node.keys[0]
	p := self.root
	for !p.leaf {
		i, err := self.route(p, key)
		if err != nil {
			return nil, err
		}
		c := p.children[i]
		if c == node {
			return p, nil
		}
		p = c
	}
	mlog.Printf2("bptree/find", "findParent: node %v not reachable", node.keys)
	return nil, errors.Errorf("findParent: node %v not reachable by its first key", node.keys)
}
