/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Sun Apr  8 11:10:42 2018 mstenber
 * Last modified: Sun Apr  8 15:31:06 2018 mstenber
 * Edit time:     66 min
 *
 */

// replay package drives a B+ tree from a script of insert/delete
// commands, recording the tree structure after every step.
//
// It is the engine behind cmd/bptree-replay: parse a script with
// ParseScript, feed it to a Replayer, and Render the resulting frames.
package replay

import (
	"github.com/pkg/errors"

	"github.com/fingon/go-bptree/bptree"
	"github.com/fingon/go-bptree/frame"
	"github.com/fingon/go-bptree/mlog"
)

// Options configures a Replayer.
type Options struct {
	Fanout int

	// Check runs the structural checker after every step.
	Check bool

	// Record keeps a frame of every step in memory.
	Record bool

	// Store, if set, receives every frame as well.
	Store *frame.Store
}

// Replayer applies commands to an int-keyed tree.
type Replayer struct {
	opts   Options
	tree   *bptree.Tree[int, string]
	step   int
	frames []*frame.Frame
}

// NewReplayer creates a replayer with an empty tree. The empty tree is
// recorded as step 0, "initial".
func NewReplayer(opts Options) (*Replayer, error) {
	tree, err := bptree.NewOrdered[int, string](opts.Fanout)
	if err != nil {
		return nil, err
	}
	self := &Replayer{opts: opts, tree: tree}
	if err := self.record("initial"); err != nil {
		return nil, err
	}
	return self, nil
}

func (self *Replayer) Tree() *bptree.Tree[int, string] {
	return self.tree
}

// Step returns the number of commands applied so far.
func (self *Replayer) Step() int {
	return self.step
}

// Frames returns the recorded frames, oldest first.
func (self *Replayer) Frames() []*frame.Frame {
	return self.frames
}

// Last returns the most recently recorded frame, or nil.
func (self *Replayer) Last() *frame.Frame {
	if len(self.frames) == 0 {
		return nil
	}
	return self.frames[len(self.frames)-1]
}

func (self *Replayer) record(command string) error {
	if !self.opts.Record && self.opts.Store == nil {
		return nil
	}
	f := frame.New(self.step, command, self.tree.Snapshot())
	if self.opts.Record {
		self.frames = append(self.frames, f)
	}
	if self.opts.Store != nil {
		if err := self.opts.Store.Put(f); err != nil {
			return errors.Wrapf(err, "store step %d", self.step)
		}
	}
	return nil
}

// Apply runs one command. Deleting an absent key is not an error.
func (self *Replayer) Apply(cmd Command) error {
	self.step++
	mlog.Printf2("replay/replay", "#%d: %v", self.step, cmd)
	var err error
	switch cmd.Op {
	case OpInsert:
		err = self.tree.Insert(cmd.Key, cmd.Value)
	case OpDelete:
		var found bool
		found, err = self.tree.Delete(cmd.Key)
		if err == nil && !found {
			mlog.Printf2("replay/replay", " %d not present", cmd.Key)
		}
	default:
		err = errors.Wrapf(ErrBadCommand, "%v", cmd.Op)
	}
	if err != nil {
		return self.wrap(cmd, err)
	}
	if self.opts.Check {
		if err := self.tree.Check(); err != nil {
			self.tree.PrintToMLog()
			return self.wrap(cmd, err)
		}
	}
	return self.record(cmd.String())
}

func (self *Replayer) wrap(cmd Command, err error) error {
	if cmd.Line > 0 {
		return errors.Wrapf(err, "step %d (line %d) %v", self.step, cmd.Line, cmd)
	}
	return errors.Wrapf(err, "step %d %v", self.step, cmd)
}

// Run applies cmds in order, stopping at the first error.
func (self *Replayer) Run(cmds []Command) error {
	for _, cmd := range cmds {
		if err := self.Apply(cmd); err != nil {
			return err
		}
	}
	return nil
}
