/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Wed Apr  4 17:40:11 2018 mstenber
 * Last modified: Wed Apr  4 17:52:30 2018 mstenber
 * Edit time:     6 min
 *
 */

package bptree

import (
	"strings"

	"github.com/fingon/go-bptree/mlog"
)

// PrintToMLog dumps the whole tree to mlog, one node per line,
// indented by depth.
func (self *Tree[K, V]) PrintToMLog() {
	if !mlog.IsEnabled() {
		return
	}
	mlog.Printf2("bptree/print", "tree fanout:%d len:%d height:%d",
		self.fanout, self.length, self.Height())
	if self.root != nil {
		self.root.print(0)
	}
}

func (self *Node[K, V]) print(depth int) {
	indent := strings.Repeat("  ", depth)
	if self.leaf {
		mlog.Printf2("bptree/print", "%sleaf %v", indent, self.keys)
		return
	}
	mlog.Printf2("bptree/print", "%snode %v", indent, self.keys)
	for _, c := range self.children {
		c.print(depth + 1)
	}
}
