/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2017 Markus Stenberg
 *
 * Created:       Fri Dec 29 09:03:12 2017 mstenber
 * Last modified: Fri Apr  6 13:10:44 2018 mstenber
 * Edit time:     9 min
 *
 */

package util

import "encoding/binary"

// Uint64Bytes encodes n big-endian, so that byte order matches numeric
// order.
func Uint64Bytes(n uint64) []byte {
	nb := make([]byte, 8)
	binary.BigEndian.PutUint64(nb, n)
	return nb
}

// BytesUint64 is the inverse of Uint64Bytes; short input yields 0.
func BytesUint64(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

func IMax(i int, ints ...int) int {
	for _, v := range ints {
		if v > i {
			i = v
		}
	}
	return i
}

// SOr returns the first non-empty string.
func SOr(strings ...string) string {
	for _, v := range strings {
		if v != "" {
			return v
		}
	}
	return ""
}
