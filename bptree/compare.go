/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Mon Apr  2 10:12:40 2018 mstenber
 * Last modified: Tue Apr  3 16:40:02 2018 mstenber
 * Edit time:     41 min
 *
 */

package bptree

import (
	"cmp"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidConfiguration is returned by the constructors when the
	// fanout is below the minimum or the comparator is missing.
	ErrInvalidConfiguration = errors.New("bptree: invalid configuration")

	// ErrTypeMismatch is returned when two keys are not mutually comparable.
	ErrTypeMismatch = errors.New("bptree: key type mismatch")

	// ErrEmptyTree is returned by Find on a tree without a root.
	ErrEmptyTree = errors.New("bptree: empty tree")
)

// Comparator orders two keys: negative if a < b, zero if equal, positive
// if a > b. A non-nil error aborts the operation before the tree is
// modified.
type Comparator[K any] func(a, b K) (int, error)

// CompareOrdered is the comparator for the built-in ordered types. It
// never fails.
func CompareOrdered[K cmp.Ordered](a, b K) (int, error) {
	return cmp.Compare(a, b), nil
}

// Comparable may be implemented by keys stored in a tree using
// CompareDynamic.
type Comparable interface {
	CompareTo(other any) (int, error)
}

type keyClass int

const (
	classOther keyClass = iota
	classSigned
	classUnsigned
	classFloat
	classString
)

func classify(k any) (keyClass, int64, uint64, float64, string) {
	switch v := k.(type) {
	case int:
		return classSigned, int64(v), 0, 0, ""
	case int8:
		return classSigned, int64(v), 0, 0, ""
	case int16:
		return classSigned, int64(v), 0, 0, ""
	case int32:
		return classSigned, int64(v), 0, 0, ""
	case int64:
		return classSigned, v, 0, 0, ""
	case uint:
		return classUnsigned, 0, uint64(v), 0, ""
	case uint8:
		return classUnsigned, 0, uint64(v), 0, ""
	case uint16:
		return classUnsigned, 0, uint64(v), 0, ""
	case uint32:
		return classUnsigned, 0, uint64(v), 0, ""
	case uint64:
		return classUnsigned, 0, v, 0, ""
	case float32:
		return classFloat, 0, 0, float64(v), ""
	case float64:
		return classFloat, 0, 0, v, ""
	case string:
		return classString, 0, 0, 0, v
	}
	return classOther, 0, 0, 0, ""
}

// CompareDynamic orders keys of static type any. Integers of any width
// and signedness compare with each other, floats with floats, strings
// with strings; values implementing Comparable decide for themselves.
// Everything else is ErrTypeMismatch.
func CompareDynamic(a, b any) (int, error) {
	if ca, ok := a.(Comparable); ok {
		return ca.CompareTo(b)
	}
	c1, s1, u1, f1, str1 := classify(a)
	c2, s2, u2, f2, str2 := classify(b)
	// Mixed signed/unsigned: a negative signed value is always smaller.
	if c1 == classSigned && c2 == classUnsigned {
		if s1 < 0 {
			return -1, nil
		}
		return cmp.Compare(uint64(s1), u2), nil
	}
	if c1 == classUnsigned && c2 == classSigned {
		if s2 < 0 {
			return 1, nil
		}
		return cmp.Compare(u1, uint64(s2)), nil
	}
	if c1 != c2 || c1 == classOther {
		return 0, errors.Wrapf(ErrTypeMismatch, "%T vs %T", a, b)
	}
	switch c1 {
	case classSigned:
		return cmp.Compare(s1, s2), nil
	case classUnsigned:
		return cmp.Compare(u1, u2), nil
	case classFloat:
		return cmp.Compare(f1, f2), nil
	}
	return cmp.Compare(str1, str2), nil
}
