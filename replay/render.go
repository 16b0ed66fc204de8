/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Sun Apr  8 16:02:55 2018 mstenber
 * Last modified: Mon Apr  9 10:14:37 2018 mstenber
 * Edit time:     41 min
 *
 */

package replay

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/fingon/go-bptree/bptree"
	"github.com/fingon/go-bptree/frame"
	"github.com/fingon/go-bptree/util"
)

type RenderOptions struct {
	// Color forces ANSI colors on (or off), regardless of terminal
	// detection.
	Color bool

	// Title is printed above the tree, if set.
	Title string
}

func painter(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func nodeText(v bptree.NodeView) string {
	return "[" + strings.Join(v.Keys, "|") + "]"
}

// Render writes snap as text: one line per level, root first, each
// line centered on the widest one, then the keys in leaf chain order.
func Render(w io.Writer, snap *bptree.Snapshot, opts RenderOptions) error {
	title := painter(opts.Color, color.Bold)
	internal := painter(opts.Color, color.FgCyan)
	leaf := painter(opts.Color, color.FgGreen)
	chain := painter(opts.Color, color.FgYellow)

	var sb strings.Builder
	if opts.Title != "" {
		sb.WriteString(title.Sprint(opts.Title))
		sb.WriteString("\n")
	}
	if len(snap.Levels) == 0 {
		sb.WriteString("(empty)\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	// Widths are computed on the uncolored text.
	widths := make([]int, len(snap.Levels))
	for i, level := range snap.Levels {
		for j, v := range level {
			if j > 0 {
				widths[i]++
			}
			widths[i] += len(nodeText(v))
		}
	}
	maxw := util.IMax(0, widths...)
	for i, level := range snap.Levels {
		sb.WriteString(strings.Repeat(" ", (maxw-widths[i])/2))
		for j, v := range level {
			if j > 0 {
				sb.WriteString(" ")
			}
			p := internal
			if v.Leaf {
				p = leaf
			}
			sb.WriteString(p.Sprint(nodeText(v)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("chain: ")
	sb.WriteString(chain.Sprint(strings.Join(snap.ChainKeys(), " ")))
	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderFrame renders f with a title naming its step, command and
// (abbreviated) digest.
func RenderFrame(w io.Writer, f *frame.Frame, opts RenderOptions) error {
	digest := f.Digest
	if len(digest) > 8 {
		digest = digest[:8]
	}
	opts.Title = fmt.Sprintf("step %d: %s (%s)", f.Step, f.Command, digest)
	return Render(w, &f.Snapshot, opts)
}
