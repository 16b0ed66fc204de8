/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Wed Apr  4 16:02:40 2018 mstenber
 * Last modified: Fri Apr  6 11:18:02 2018 mstenber
 * Edit time:     31 min
 *
 */

package bptree

import "fmt"

// NodeView is the immutable description of one node in a Snapshot.
type NodeView struct {
	Leaf bool     `codec:"l"`
	Keys []string `codec:"k"`

	// Children are indexes into the next level (internal nodes only).
	Children []int `codec:"c,omitempty"`

	// Next is the index of the following leaf on the leaf level, or
	// -1 (leaves only; 0 for internal nodes).
	Next int `codec:"n,omitempty"`
}

// Snapshot is a level-by-level structural copy of a tree, with keys
// formatted as strings. It shares nothing with the tree it was taken
// from.
type Snapshot struct {
	Fanout int          `codec:"f"`
	Height int          `codec:"h"`
	Len    int          `codec:"len"`
	Levels [][]NodeView `codec:"levels"`
}

// Snapshot captures the current structure.
func (self *Tree[K, V]) Snapshot() *Snapshot {
	s := &Snapshot{Fanout: self.fanout, Len: self.length}
	if self.root == nil {
		return s
	}
	level := []*Node[K, V]{self.root}
	for len(level) > 0 {
		var next []*Node[K, V]
		views := make([]NodeView, len(level))
		var leafIndex map[*Node[K, V]]int
		if level[0].leaf {
			leafIndex = make(map[*Node[K, V]]int, len(level))
			for i, n := range level {
				leafIndex[n] = i
			}
		}
		for i, n := range level {
			v := NodeView{Leaf: n.leaf, Keys: make([]string, len(n.keys))}
			for j, k := range n.keys {
				v.Keys[j] = fmt.Sprint(k)
			}
			if n.leaf {
				v.Next = -1
				if n.next != nil {
					if ni, ok := leafIndex[n.next]; ok {
						v.Next = ni
					}
				}
			} else {
				v.Children = make([]int, len(n.children))
				for j, c := range n.children {
					v.Children[j] = len(next)
					next = append(next, c)
				}
			}
			views[i] = v
		}
		s.Levels = append(s.Levels, views)
		level = next
	}
	s.Height = len(s.Levels)
	return s
}

// Leaves returns the leaf level (nil for an empty tree).
func (self *Snapshot) Leaves() []NodeView {
	if len(self.Levels) == 0 {
		return nil
	}
	return self.Levels[len(self.Levels)-1]
}

// ChainKeys follows the Next links from the first leaf and returns the
// keys in the order visited.
func (self *Snapshot) ChainKeys() []string {
	leaves := self.Leaves()
	var keys []string
	// Bounded by the number of leaves in case of a cycle.
	for i, steps := 0, 0; len(leaves) > 0 && i >= 0 && steps < len(leaves); steps++ {
		keys = append(keys, leaves[i].Keys...)
		i = leaves[i].Next
	}
	return keys
}
