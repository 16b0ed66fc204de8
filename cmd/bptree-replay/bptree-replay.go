/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Mon Apr  9 11:02:37 2018 mstenber
 * Last modified: Mon Apr  9 13:48:19 2018 mstenber
 * Edit time:     35 min
 *
 */

// bptree-replay runs an insert/delete script against a B+ tree and
// prints the tree after every step.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/fatih/color"

	"github.com/fingon/go-bptree/frame"
	"github.com/fingon/go-bptree/replay"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n\n%s [flags] [SCRIPT]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "SCRIPT has one command per line: 'insert <key> [value]' or 'delete <key>'.\nWithout SCRIPT, standard input is read.\n\n")
		flag.PrintDefaults()
	}
	fanout := flag.Int("fanout", 3, "Maximum number of children per node")
	out := flag.String("out", "", "bbolt database to store the frames in")
	check := flag.Bool("check", false, "Validate the tree after every step")
	quiet := flag.Bool("quiet", false, "Print only the final tree")
	colorp := flag.Bool("color", !color.NoColor, "Colorize output")
	cpuprofile := flag.String("cpuprofile", "", "CPU profile file")
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	var in io.Reader = os.Stdin
	if flag.NArg() == 1 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}
	cmds, err := replay.ParseScript(in)
	if err != nil {
		log.Fatal(err)
	}

	opts := replay.Options{Fanout: *fanout, Check: *check, Record: !*quiet}
	if *out != "" {
		st, err := frame.OpenStore(*out)
		if err != nil {
			log.Fatal(err)
		}
		defer st.Close()
		opts.Store = st
	}
	r, err := replay.NewReplayer(opts)
	if err != nil {
		log.Fatal(err)
	}
	// Frames are printed even if the run fails midway, so the last
	// good state is visible.
	runErr := r.Run(cmds)

	ropts := replay.RenderOptions{Color: *colorp}
	frames := r.Frames()
	if *quiet {
		frames = []*frame.Frame{frame.New(r.Step(), "final", r.Tree().Snapshot())}
	}
	for i, f := range frames {
		if i > 0 {
			fmt.Println()
		}
		if err := replay.RenderFrame(os.Stdout, f, ropts); err != nil {
			log.Fatal(err)
		}
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
