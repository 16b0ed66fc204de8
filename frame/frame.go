/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Sat Apr  7 10:14:52 2018 mstenber
 * Last modified: Sat Apr  7 12:40:09 2018 mstenber
 * Edit time:     48 min
 *
 */

// frame package stores the history of a tree: one Frame per applied
// command, each carrying a structural snapshot.
//
// On the wire a frame is CBOR, compressed with snappy. The digest of a
// snapshot is the hex sha256 of its CBOR encoding, so two trees with
// identical shape and keys have the same digest regardless of how they
// were built.
package frame

import (
	"encoding/hex"

	"github.com/golang/snappy"
	"github.com/minio/sha256-simd"
	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"

	"github.com/fingon/go-bptree/bptree"
	"github.com/fingon/go-bptree/mlog"
)

var (
	// ErrCorrupt is returned by Decode when the payload cannot be
	// decoded or its digest does not match its snapshot.
	ErrCorrupt = errors.New("frame: corrupt frame")

	ErrNotFound = errors.New("frame: not found")
)

// Frame is the state of a tree after one step.
type Frame struct {
	Step     int             `codec:"s"`
	Command  string          `codec:"c"`
	Digest   string          `codec:"d"`
	Snapshot bptree.Snapshot `codec:"t"`
}

// New creates a frame for snap, computing its digest.
func New(step int, command string, snap *bptree.Snapshot) *Frame {
	return &Frame{Step: step, Command: command, Digest: Digest(snap),
		Snapshot: *snap}
}

// cborHandle is shared; it is not modified after init.
var cborHandle = &codec.CborHandle{}

func init() {
	cborHandle.Canonical = true
}

func cborEncode(v interface{}) ([]byte, error) {
	var buf []byte
	enc := codec.NewEncoderBytes(&buf, cborHandle)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf, nil
}

// Digest returns the hex sha256 of the CBOR encoding of snap.
func Digest(snap *bptree.Snapshot) string {
	b, err := cborEncode(snap)
	if err != nil {
		// Snapshot consists of plain ints, strings and slices.
		mlog.Panicf("frame: snapshot encode failed: %v", err)
	}
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// Encode serializes the frame.
func Encode(f *Frame) ([]byte, error) {
	b, err := cborEncode(f)
	if err != nil {
		return nil, errors.Wrap(err, "frame: encode")
	}
	ret := snappy.Encode(nil, b)
	mlog.Printf2("frame/frame", "Encode step %d: %d -> %d bytes",
		f.Step, len(b), len(ret))
	return ret, nil
}

// Decode is the inverse of Encode. The digest is verified against the
// decoded snapshot.
func Decode(data []byte) (*Frame, error) {
	b, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "snappy: %v", err)
	}
	f := &Frame{}
	dec := codec.NewDecoderBytes(b, cborHandle)
	if err := dec.Decode(f); err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "cbor: %v", err)
	}
	if d := Digest(&f.Snapshot); d != f.Digest {
		return nil, errors.Wrapf(ErrCorrupt, "step %d digest %s != %s",
			f.Step, d, f.Digest)
	}
	return f, nil
}
