/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2017 Markus Stenberg
 *
 * Created:       Sat Dec 30 13:41:33 2017 mstenber
 * Last modified: Mon Apr  2 09:58:40 2018 mstenber
 * Edit time:     121 min
 *
 */

// mlog is maybe-log. It is a small wrapper of the standard 'log' for
// debug tracing:
//
// - output is chosen with a regular expression matched against a file
// tag (the caller's file for Printf, an explicit string for Printf2),
// given in the MLOG environment variable or the -mlog flag; by default
// everything is off, and disabled calls cost next to nothing
//
// - nested calls are indented by their call stack depth, which makes
// recursive algorithms (splits, merges) readable
package mlog

import (
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	stateUninitialized int32 = iota
	stateDisabled
	stateEnabled
)

const maxDepth = 100

var status int32 = stateUninitialized

var flagPattern *string

// mutex protects everything below
var mutex sync.Mutex
var logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
var pattern string
var patternRegexp *regexp.Regexp
var matches map[string]bool
var minDepth int
var callers = make([]uintptr, maxDepth)

func init() {
	flagPattern = flag.String("mlog", "", "Enable debug logging for file tags matching the regular expression")
	Reset()
}

// Reset returns the module to its initial state; the next log call
// reads the pattern from the flag or environment again.
func Reset() {
	mutex.Lock()
	defer mutex.Unlock()
	atomic.StoreInt32(&status, stateUninitialized)
	minDepth = maxDepth
}

// IsEnabled can be used to check if mlog is in use at all before doing
// something expensive.
func IsEnabled() bool {
	if atomic.LoadInt32(&status) == stateUninitialized {
		mutex.Lock()
		initialize()
		mutex.Unlock()
	}
	return atomic.LoadInt32(&status) == stateEnabled
}

// SetLogger overrides the output logger. The returned function restores
// the previous one.
func SetLogger(l *log.Logger) (undo func()) {
	mutex.Lock()
	defer mutex.Unlock()
	old := logger
	logger = l
	return func() {
		mutex.Lock()
		defer mutex.Unlock()
		logger = old
	}
}

// SetPattern overrides the pattern from the environment/flag. The
// returned function restores the previous state.
func SetPattern(p string) (undo func()) {
	mutex.Lock()
	defer mutex.Unlock()
	old := pattern
	oldStatus := atomic.LoadInt32(&status)
	setPattern(p)
	return func() {
		mutex.Lock()
		defer mutex.Unlock()
		if oldStatus == stateUninitialized {
			atomic.StoreInt32(&status, stateUninitialized)
			return
		}
		setPattern(old)
	}
}

func setPattern(p string) {
	pattern = p
	minDepth = maxDepth
	if p == "" {
		atomic.StoreInt32(&status, stateDisabled)
		return
	}
	patternRegexp = regexp.MustCompile(p)
	matches = make(map[string]bool)
	atomic.StoreInt32(&status, stateEnabled)
}

// initialize must be called with mutex held.
func initialize() {
	if atomic.LoadInt32(&status) != stateUninitialized {
		return
	}
	p := os.Getenv("MLOG")
	if flagPattern != nil && *flagPattern != "" {
		p = *flagPattern
	}
	setPattern(p)
}

// Printf is a drop-in replacement of log.Printf, tagged with the
// caller's file name. It does runtime.Caller when enabled, so Printf2
// is cheaper.
func Printf(format string, args ...interface{}) {
	if atomic.LoadInt32(&status) == stateDisabled {
		return
	}
	_, file, _, ok := runtime.Caller(1)
	if !ok {
		return
	}
	Printf2(file, format, args...)
}

// Printf2 logs if file matches the active pattern.
func Printf2(file string, format string, args ...interface{}) {
	if atomic.LoadInt32(&status) == stateDisabled {
		return
	}
	mutex.Lock()
	defer mutex.Unlock()
	initialize()
	if atomic.LoadInt32(&status) != stateEnabled {
		return
	}
	debug, ok := matches[file]
	if !ok {
		debug = patternRegexp.MatchString(file)
		matches[file] = debug
	}
	if !debug {
		return
	}
	depth := runtime.Callers(1, callers)
	if depth < minDepth {
		minDepth = depth
	}
	depth -= minDepth
	if depth > 0 {
		format = strings.Repeat(".", depth) + format
	}
	logger.Printf(format, args...)
}

// Panicf logs the message unconditionally through the mlog logger and
// panics with it.
func Panicf(format string, args ...interface{}) {
	s := fmt.Sprintf(format, args...)
	mutex.Lock()
	l := logger
	mutex.Unlock()
	l.Panic(s)
}
