/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Mon Apr  2 14:02:18 2018 mstenber
 * Last modified: Thu Apr  5 15:37:50 2018 mstenber
 * Edit time:     84 min
 *
 */

package bptree

import "github.com/fingon/go-bptree/mlog"

// Insert adds key with value to the tree. If the key is already present,
// its value is replaced. An error (from the comparator) means the tree
// was not modified.
func (self *Tree[K, V]) Insert(key K, value V) error {
	if self.root == nil {
		mlog.Printf2("bptree/insert", "Insert %v: new root leaf", key)
		self.root = newLeaf[K, V](self.fanout)
		self.root.insertLeafEntry(0, key, value)
		self.length = 1
		return nil
	}
	var st pathStack[K, V]
	l, err := self.descend(key, &st)
	if err != nil {
		return err
	}
	i, eq, err := self.search(l.keys, key)
	if err != nil {
		return err
	}
	// Nothing can fail past this point.
	if eq {
		mlog.Printf2("bptree/insert", "Insert %v: replacing value", key)
		l.values[i] = value
		return nil
	}
	self.length++
	if len(l.keys) < self.fanout-1 {
		l.insertLeafEntry(i, key, value)
		return nil
	}
	self.splitLeaf(l, i, key, value, &st)
	return nil
}

// splitLeaf inserts the entry at position i of the full leaf l by
// splitting it in two; the first ceil(fanout/2) entries stay in l.
func (self *Tree[K, V]) splitLeaf(l *Node[K, V], i int, key K, value V, st *pathStack[K, V]) {
	tkeys := make([]K, 0, self.fanout)
	tkeys = append(tkeys, l.keys...)
	tkeys = insertAt(tkeys, i, key)
	tvalues := make([]V, 0, self.fanout)
	tvalues = append(tvalues, l.values...)
	tvalues = insertAt(tvalues, i, value)

	m := self.splitPoint()
	nl := newLeaf[K, V](self.fanout)
	nl.keys = append(nl.keys, tkeys[m:]...)
	nl.values = append(nl.values, tvalues[m:]...)
	nl.next = l.next

	l.keys = append(l.keys[:0], tkeys[:m]...)
	l.values = append(l.values[:0], tvalues[:m]...)
	clearTail(l.keys, l.values)
	l.next = nl

	mlog.Printf2("bptree/insert", "splitLeaf %v | %v", l.keys, nl.keys)
	self.insertInParent(l, nl.keys[0], nl, st)
}

// clearTail zeroes the slots past len so that the backing arrays do not
// keep moved entries alive.
func clearTail[K, V any](keys []K, values []V) {
	var zk K
	var zv V
	ks := keys[len(keys):cap(keys)]
	for i := range ks {
		ks[i] = zk
	}
	vs := values[len(values):cap(values)]
	for i := range vs {
		vs[i] = zv
	}
}

// insertInParent links right (split off from left) into left's parent
// with separator key. Full parents are split in turn, up to and
// including the root.
func (self *Tree[K, V]) insertInParent(left *Node[K, V], key K, right *Node[K, V], st *pathStack[K, V]) {
	p, _ := st.pop()
	if p == nil {
		if left != self.root {
			panicTree("insertInParent: empty path for non-root node")
		}
		root := newInternal[K, V](self.fanout)
		root.keys = append(root.keys, key)
		root.children = append(root.children, left, right)
		self.root = root
		mlog.Printf2("bptree/insert", "new root %v", root.keys)
		return
	}
	if len(p.keys) < self.fanout-1 {
		p.insertAfter(left, key, right)
		return
	}

	// Parent is full; build the oversized node and split it.
	t := &Node[K, V]{
		keys:     make([]K, 0, self.fanout),
		children: make([]*Node[K, V], 0, self.fanout+1)}
	t.keys = append(t.keys, p.keys...)
	t.children = append(t.children, p.children...)
	t.insertAfter(left, key, right)

	m := self.splitPoint()
	np := newInternal[K, V](self.fanout)
	np.keys = append(np.keys, t.keys[m:]...)
	np.children = append(np.children, t.children[m:]...)
	up := t.keys[m-1]

	p.keys = append(p.keys[:0], t.keys[:m-1]...)
	p.children = append(p.children[:0], t.children[:m]...)
	clearTail(p.keys, p.children)

	mlog.Printf2("bptree/insert", "split internal %v ^%v %v", p.keys, up, np.keys)
	self.insertInParent(p, up, np, st)
}
