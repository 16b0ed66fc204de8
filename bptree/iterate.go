/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Wed Apr  4 10:45:03 2018 mstenber
 * Last modified: Thu Apr  5 17:12:40 2018 mstenber
 * Edit time:     35 min
 *
 */

package bptree

// Iterator walks the leaf chain forwards. It must not be used across
// modifications of the tree.
type Iterator[K, V any] struct {
	leaf  *Node[K, V]
	index int
}

// First returns an iterator positioned at the smallest key.
func (self *Tree[K, V]) First() *Iterator[K, V] {
	it := &Iterator[K, V]{}
	if self.root != nil {
		it.leaf = self.root.firstLeaf()
		it.skipEmpty()
	}
	return it
}

// Seek returns an iterator positioned at the first key >= key.
func (self *Tree[K, V]) Seek(key K) (*Iterator[K, V], error) {
	it := &Iterator[K, V]{}
	if self.root == nil {
		return it, nil
	}
	l, err := self.descend(key, nil)
	if err != nil {
		return nil, err
	}
	i, _, err := self.search(l.keys, key)
	if err != nil {
		return nil, err
	}
	it.leaf = l
	it.index = i
	it.skipEmpty()
	return it, nil
}

// skipEmpty moves past the end of the current leaf, if needed.
func (self *Iterator[K, V]) skipEmpty() {
	for self.leaf != nil && self.index >= len(self.leaf.keys) {
		self.leaf = self.leaf.next
		self.index = 0
	}
}

func (self *Iterator[K, V]) Valid() bool {
	return self.leaf != nil
}

// Next advances the iterator; false when exhausted.
func (self *Iterator[K, V]) Next() bool {
	if self.leaf == nil {
		return false
	}
	self.index++
	self.skipEmpty()
	return self.leaf != nil
}

func (self *Iterator[K, V]) Key() (k K) {
	if self.leaf == nil {
		return
	}
	return self.leaf.keys[self.index]
}

func (self *Iterator[K, V]) Value() (v V) {
	if self.leaf == nil {
		return
	}
	return self.leaf.values[self.index]
}

// Ascend calls fn for every entry in key order until fn returns false.
func (self *Tree[K, V]) Ascend(fn func(key K, value V) bool) {
	for it := self.First(); it.Valid(); it.Next() {
		if !fn(it.Key(), it.Value()) {
			return
		}
	}
}

// AscendFrom is Ascend starting at the first key >= key.
func (self *Tree[K, V]) AscendFrom(key K, fn func(key K, value V) bool) error {
	it, err := self.Seek(key)
	if err != nil {
		return err
	}
	for ; it.Valid(); it.Next() {
		if !fn(it.Key(), it.Value()) {
			break
		}
	}
	return nil
}

// Keys returns all keys in order, following the leaf chain.
func (self *Tree[K, V]) Keys() []K {
	keys := make([]K, 0, self.length)
	self.Ascend(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Min returns the smallest entry.
func (self *Tree[K, V]) Min() (k K, v V, ok bool) {
	it := self.First()
	if !it.Valid() {
		return
	}
	return it.Key(), it.Value(), true
}

// Max returns the largest entry.
func (self *Tree[K, V]) Max() (k K, v V, ok bool) {
	if self.root == nil {
		return
	}
	l := self.root.lastLeaf()
	if len(l.keys) == 0 {
		return
	}
	i := len(l.keys) - 1
	return l.keys[i], l.values[i], true
}
