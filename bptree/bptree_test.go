/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Mon Apr  2 14:21:07 2018 mstenber
 * Last modified: Fri Apr  6 11:40:13 2018 mstenber
 * Edit time:     88 min
 *
 */

package bptree

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stvp/assert"
)

func newIntTree(t testing.TB, fanout int) *Tree[int, string] {
	tree, err := NewOrdered[int, string](fanout)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func insertAll(t *testing.T, tree *Tree[int, string], keys ...int) {
	for _, k := range keys {
		err := tree.Insert(k, fmt.Sprintf("v%d", k))
		assert.Nil(t, err)
		assert.Nil(t, tree.Check())
	}
}

func leafKeys(s *Snapshot) [][]string {
	var r [][]string
	for _, l := range s.Leaves() {
		r = append(r, l.Keys)
	}
	return r
}

func TestNewInvalid(t *testing.T) {
	t.Parallel()
	_, err := New[int, int](2, CompareOrdered[int])
	assert.Equal(t, errors.Cause(err), ErrInvalidConfiguration)
	_, err = New[int, int](4, nil)
	assert.Equal(t, errors.Cause(err), ErrInvalidConfiguration)
	tree, err := New[int, int](MinimumFanout, CompareOrdered[int])
	assert.Nil(t, err)
	assert.Equal(t, tree.Fanout(), MinimumFanout)
}

func TestEmpty(t *testing.T) {
	t.Parallel()
	tree := newIntTree(t, 3)
	_, err := tree.Find(1)
	assert.Equal(t, err, ErrEmptyTree)
	_, found, err := tree.Get(1)
	assert.Nil(t, err)
	assert.True(t, !found)
	ok, err := tree.Delete(1)
	assert.Nil(t, err)
	assert.True(t, !ok)
	assert.Equal(t, tree.Height(), 0)
	assert.Equal(t, tree.Len(), 0)
	assert.True(t, tree.Root() == nil)
	assert.Nil(t, tree.Check())
	_, _, ok = tree.Min()
	assert.True(t, !ok)
	_, _, ok = tree.Max()
	assert.True(t, !ok)
	assert.Equal(t, len(tree.Keys()), 0)
	assert.Equal(t, tree.Clone().Len(), 0)
}

func TestSingleLeaf(t *testing.T) {
	t.Parallel()
	tree := newIntTree(t, 3)
	insertAll(t, tree, 7)
	l, err := tree.Find(42)
	assert.Nil(t, err)
	assert.True(t, l.IsLeaf())
	assert.Equal(t, l.Keys(), []int{7})
	assert.Equal(t, l.Values(), []string{"v7"})
	assert.Equal(t, tree.Height(), 1)
	ok, err := tree.Delete(7)
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.True(t, tree.Root() == nil)
	assert.Nil(t, tree.Check())
}

func TestSequentialFanout3(t *testing.T) {
	t.Parallel()
	tree := newIntTree(t, 3)
	insertAll(t, tree, 1, 2, 3, 4, 5)
	s := tree.Snapshot()
	assert.Equal(t, s.Height, 2)
	assert.Equal(t, s.Len, 5)
	assert.Equal(t, s.Levels[0][0].Keys, []string{"3", "5"})
	assert.Equal(t, leafKeys(s), [][]string{{"1", "2"}, {"3", "4"}, {"5"}})
	assert.Equal(t, s.ChainKeys(), []string{"1", "2", "3", "4", "5"})
	assert.Equal(t, tree.Keys(), []int{1, 2, 3, 4, 5})

	root := tree.Root()
	assert.True(t, !root.IsLeaf())
	assert.Equal(t, root.Count(), 2)
	assert.Equal(t, len(root.Children()), 3)
	assert.True(t, root.Values() == nil)
	assert.True(t, root.Next() == nil)
	assert.True(t, root.Children()[0].Children() == nil)

	l, err := tree.Find(4)
	assert.Nil(t, err)
	assert.Equal(t, l.Keys(), []int{3, 4})
	assert.Equal(t, l.Next().Keys(), []int{5})
	assert.True(t, l.Next().Next() == nil)

	for _, k := range []int{4, 5} {
		ok, err := tree.Delete(k)
		assert.Nil(t, err)
		assert.True(t, ok)
		assert.Nil(t, tree.Check())
	}
	s = tree.Snapshot()
	assert.Equal(t, s.Levels[0][0].Keys, []string{"3"})
	assert.Equal(t, leafKeys(s), [][]string{{"1", "2"}, {"3"}})
	assert.Equal(t, tree.Keys(), []int{1, 2, 3})
}

func TestDeleteMergesIntoPredecessor(t *testing.T) {
	t.Parallel()
	tree := newIntTree(t, 3)
	insertAll(t, tree, 10, 20, 5, 15)
	s := tree.Snapshot()
	assert.Equal(t, s.Levels[0][0].Keys, []string{"15", "20"})
	assert.Equal(t, leafKeys(s), [][]string{{"5", "10"}, {"15"}, {"20"}})

	ok, err := tree.Delete(20)
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Nil(t, tree.Check())
	assert.Equal(t, tree.Keys(), []int{5, 10, 15})
	assert.Equal(t, leafKeys(tree.Snapshot()), [][]string{{"5", "10"}, {"15"}})
}

func TestDeleteBorrows(t *testing.T) {
	t.Parallel()
	tree := newIntTree(t, 4)
	insertAll(t, tree, 10, 20, 30, 40, 50, 60, 35)
	s := tree.Snapshot()
	assert.Equal(t, s.Levels[0][0].Keys, []string{"30", "50"})
	assert.Equal(t, leafKeys(s), [][]string{{"10", "20"}, {"30", "35", "40"}, {"50", "60"}})

	// Leftmost leaf has no predecessor; it takes from its successor.
	ok, err := tree.Delete(10)
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Nil(t, tree.Check())
	s = tree.Snapshot()
	assert.Equal(t, s.Levels[0][0].Keys, []string{"35", "50"})
	assert.Equal(t, leafKeys(s), [][]string{{"20", "30"}, {"35", "40"}, {"50", "60"}})

	insertAll(t, tree, 45)
	ok, err = tree.Delete(60)
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Nil(t, tree.Check())
	s = tree.Snapshot()
	assert.Equal(t, s.Levels[0][0].Keys, []string{"35", "45"})
	assert.Equal(t, leafKeys(s), [][]string{{"20", "30"}, {"35", "40"}, {"45", "50"}})
}

func TestDeleteInternalRebalance(t *testing.T) {
	t.Parallel()
	for fanout := 3; fanout <= 5; fanout++ {
		tree := newIntTree(t, fanout)
		for i := 0; i < 64; i++ {
			assert.Nil(t, tree.Insert(i, ""))
		}
		assert.True(t, tree.Height() >= 3)
		// Deleting from both ends exercises merges and borrows on
		// the internal levels as well.
		for i := 0; i < 32; i++ {
			for _, k := range []int{i, 63 - i} {
				ok, err := tree.Delete(k)
				assert.Nil(t, err)
				assert.True(t, ok)
				assert.Nil(t, tree.Check())
			}
		}
		assert.Equal(t, tree.Len(), 0)
	}
}

func TestDuplicateReplaces(t *testing.T) {
	t.Parallel()
	tree := newIntTree(t, 3)
	insertAll(t, tree, 1, 2, 3)
	before := tree.Snapshot()
	assert.Nil(t, tree.Insert(2, "two"))
	assert.Equal(t, tree.Len(), 3)
	assert.Equal(t, tree.Snapshot(), before)
	v, found, err := tree.Get(2)
	assert.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, v, "two")
}

func TestDeleteAbsentIsNoop(t *testing.T) {
	t.Parallel()
	tree := newIntTree(t, 3)
	insertAll(t, tree, 1, 2, 3, 4, 5, 6, 7)
	before := tree.Snapshot()
	for _, k := range []int{0, 8, 100, -5} {
		ok, err := tree.Delete(k)
		assert.Nil(t, err)
		assert.True(t, !ok)
	}
	assert.Equal(t, tree.Snapshot(), before)
}

func TestHeightMonotonic(t *testing.T) {
	t.Parallel()
	for fanout := 3; fanout <= 6; fanout++ {
		tree := newIntTree(t, fanout)
		h := 0
		for i := 0; i < 300; i++ {
			assert.Nil(t, tree.Insert(i, ""))
			nh := tree.Height()
			assert.True(t, nh >= h, "height shrank on insert")
			h = nh
		}
		assert.Nil(t, tree.Check())
		for i := 0; i < 300; i++ {
			ok, err := tree.Delete((i * 7) % 300)
			assert.Nil(t, err)
			assert.True(t, ok)
			nh := tree.Height()
			assert.True(t, nh <= h, "height grew on delete")
			h = nh
		}
		assert.Equal(t, h, 0)
		assert.Nil(t, tree.Check())
	}
}

func TestClone(t *testing.T) {
	t.Parallel()
	tree := newIntTree(t, 4)
	for i := 0; i < 50; i++ {
		assert.Nil(t, tree.Insert(i, fmt.Sprintf("v%d", i)))
	}
	before := tree.Snapshot()
	c := tree.Clone()
	assert.Nil(t, c.Check())
	assert.Equal(t, c.Snapshot(), before)
	assert.True(t, c.Root() != tree.Root())
	assert.True(t, c.Root().firstLeaf() != tree.Root().firstLeaf())

	for i := 0; i < 50; i += 2 {
		ok, err := c.Delete(i)
		assert.Nil(t, err)
		assert.True(t, ok)
	}
	assert.Nil(t, c.Insert(100, "new"))
	assert.Nil(t, c.Check())
	assert.Equal(t, c.Len(), 26)

	assert.Nil(t, tree.Check())
	assert.Equal(t, tree.Snapshot(), before)
	has, err := tree.Has(100)
	assert.Nil(t, err)
	assert.True(t, !has)
}

func TestTypeMismatch(t *testing.T) {
	t.Parallel()
	tree, err := New[any, int](3, CompareDynamic)
	assert.Nil(t, err)
	for i, k := range []any{1, uint8(2), int64(3), uint(4)} {
		assert.Nil(t, tree.Insert(k, i))
	}
	assert.Nil(t, tree.Check())
	before := tree.Snapshot()

	err = tree.Insert("x", 5)
	assert.Equal(t, errors.Cause(err), ErrTypeMismatch)
	_, err = tree.Delete(1.5)
	assert.Equal(t, errors.Cause(err), ErrTypeMismatch)
	_, _, err = tree.Get([]byte("x"))
	assert.Equal(t, errors.Cause(err), ErrTypeMismatch)
	_, err = tree.Seek("x")
	assert.Equal(t, errors.Cause(err), ErrTypeMismatch)

	assert.Equal(t, tree.Len(), 4)
	assert.Equal(t, tree.Snapshot(), before)
	v, found, err := tree.Get(uint16(3))
	assert.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, v, 2)
}

func TestCompareDynamic(t *testing.T) {
	t.Parallel()
	check := func(a, b any, exp int) {
		c, err := CompareDynamic(a, b)
		assert.Nil(t, err)
		assert.Equal(t, c, exp, fmt.Sprintf("%v <> %v", a, b))
	}
	check(1, 2, -1)
	check(int8(-1), uint(0), -1)
	check(uint64(1<<63), int64(-1), 1)
	check(uint32(7), 7, 0)
	check(1.5, 0.5, 1)
	check("a", "b", -1)
	check(version{1, 2}, version{1, 1}, 1)

	_, err := CompareDynamic(1, 1.0)
	assert.Equal(t, errors.Cause(err), ErrTypeMismatch)
	_, err = CompareDynamic(struct{}{}, struct{}{})
	assert.Equal(t, errors.Cause(err), ErrTypeMismatch)
	_, err = CompareDynamic(version{1, 0}, "1.0")
	assert.Equal(t, errors.Cause(err), ErrTypeMismatch)
}

type version struct {
	major, minor int
}

func (self version) CompareTo(other any) (int, error) {
	o, ok := other.(version)
	if !ok {
		return 0, errors.Wrapf(ErrTypeMismatch, "version vs %T", other)
	}
	if self.major != o.major {
		return CompareOrdered(self.major, o.major)
	}
	return CompareOrdered(self.minor, o.minor)
}

func TestCheckDetectsBrokenTree(t *testing.T) {
	t.Parallel()
	tree := newIntTree(t, 3)
	insertAll(t, tree, 1, 2, 3, 4, 5)
	tree.root.keys[0] = 4
	err := tree.Check()
	cerr, ok := err.(*CheckError)
	assert.True(t, ok)
	assert.Equal(t, cerr.Path, []int{1})

	tree = newIntTree(t, 3)
	insertAll(t, tree, 1, 2, 3, 4, 5)
	tree.root.children[0].next = nil
	_, ok = tree.Check().(*CheckError)
	assert.True(t, ok)

	tree = newIntTree(t, 3)
	insertAll(t, tree, 1, 2, 3)
	tree.length++
	_, ok = tree.Check().(*CheckError)
	assert.True(t, ok)
}

func BenchmarkInsert(b *testing.B) {
	tree := newIntTree(b, 32)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Insert((i*7919)%1000003, "")
	}
}

func BenchmarkGet(b *testing.B) {
	tree := newIntTree(b, 32)
	for i := 0; i < 100000; i++ {
		tree.Insert(i, "")
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Get(i % 100000)
	}
}
