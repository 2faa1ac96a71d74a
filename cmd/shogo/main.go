package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nanakusa/shogo/pkg/engine"
	"github.com/nanakusa/shogo/pkg/searchctl"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var (
	depth   = flag.Uint("depth", 6, "Search depth in plies")
	hash    = flag.Uint("hash", 64, "Transposition table size in MB")
	noise   = flag.Uint("noise", 0, "Evaluation noise in centipawns (zero if deterministic)")
	threads = flag.Uint("threads", 1, "YBWC root workers")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: shogo [options]

SHOGO searches the initial Shogi position to a fixed depth and prints the
principal variation. It does not speak USI; it is a demo harness only.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e, err := engine.New(ctx, "shogo", "nanakusa", engine.WithOptions(engine.Options{
		Depth:   *depth,
		Hash:    *hash,
		Noise:   *noise,
		Threads: *threads,
	}))
	if err != nil {
		logw.Exitf(ctx, "Failed to create engine: %v", err)
	}

	out, err := e.Search(ctx, searchctl.Options{DepthLimit: lang.Some(*depth)})
	if err != nil {
		logw.Exitf(ctx, "Failed to start search: %v", err)
	}

	var last searchctl.PV
	for pv := range out {
		last = pv
		fmt.Printf("depth=%v score=%v nodes=%v pv=%v\n", pv.Depth, pv.Score, pv.Nodes, pv.Moves)
	}

	if len(last.Moves) == 0 {
		logw.Exitf(ctx, "No legal move found")
	}
	fmt.Printf("bestmove %v\n", last.Moves[0])
}
