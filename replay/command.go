/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Sun Apr  8 09:40:27 2018 mstenber
 * Last modified: Sun Apr  8 11:02:15 2018 mstenber
 * Edit time:     34 min
 *
 */

package replay

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrSkip is returned by ParseCommand for blank and comment lines.
	ErrSkip = errors.New("replay: nothing to do")

	ErrBadCommand = errors.New("replay: bad command")
)

type Op int

const (
	OpInsert Op = iota + 1
	OpDelete
)

func (self Op) String() string {
	switch self {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	}
	return fmt.Sprintf("Op(%d)", int(self))
}

// Command is one parsed script line.
type Command struct {
	Op    Op
	Key   int
	Value string

	// Line is the source line number (1-based) within a script; 0
	// if the command was parsed on its own.
	Line int
}

// String returns the canonical form of the command, which
// ParseCommand accepts.
func (self Command) String() string {
	if self.Op == OpInsert && self.Value != strconv.Itoa(self.Key) {
		return fmt.Sprintf("%v %d %s", self.Op, self.Key, self.Value)
	}
	return fmt.Sprintf("%v %d", self.Op, self.Key)
}

// ParseCommand parses "insert <key> [value]" or "delete <key>". The
// verb is case-insensitive; an omitted insert value defaults to the
// key's decimal form.
func ParseCommand(line string) (cmd Command, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		err = ErrSkip
		return
	}
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "insert", "i":
		cmd.Op = OpInsert
		if len(fields) < 2 || len(fields) > 3 {
			err = errors.Wrapf(ErrBadCommand, "%q: want insert <key> [value]", line)
			return
		}
	case "delete", "d":
		cmd.Op = OpDelete
		if len(fields) != 2 {
			err = errors.Wrapf(ErrBadCommand, "%q: want delete <key>", line)
			return
		}
	default:
		err = errors.Wrapf(ErrBadCommand, "%q: unknown operation %q", line, fields[0])
		return
	}
	cmd.Key, err = strconv.Atoi(fields[1])
	if err != nil {
		err = errors.Wrapf(ErrBadCommand, "%q: key: %v", line, err)
		return
	}
	cmd.Value = fields[1]
	if cmd.Op == OpInsert && len(fields) == 3 {
		cmd.Value = fields[2]
	}
	return
}

// ParseScript reads one command per line. Blank lines and # comments
// are ignored; the first bad line aborts parsing.
func ParseScript(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		cmd, err := ParseCommand(scanner.Text())
		if err == ErrSkip {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", n)
		}
		cmd.Line = n
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read script")
	}
	return cmds, nil
}
