/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2017 Markus Stenberg
 *
 * Created:       Fri Dec 29 09:04:44 2017 mstenber
 * Last modified: Fri Apr  6 13:12:02 2018 mstenber
 * Edit time:     3 min
 *
 */

package util

import (
	"bytes"
	"testing"

	"github.com/stvp/assert"
)

func TestUint64Bytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Uint64Bytes(0x0102), []byte{0, 0, 0, 0, 0, 0, 1, 2})
	assert.Equal(t, BytesUint64(Uint64Bytes(1<<40+7)), uint64(1<<40+7))
	assert.Equal(t, BytesUint64([]byte{1}), uint64(0))
	assert.True(t, bytes.Compare(Uint64Bytes(255), Uint64Bytes(256)) < 0)
}

func TestIMaxSOr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, IMax(1), 1)
	assert.Equal(t, IMax(1, 5, 3), 5)
	assert.Equal(t, SOr("", "b", "c"), "b")
	assert.Equal(t, SOr(), "")
}

func TestNewRand(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NewRand(42).Int63(), NewRand(42).Int63())
}
