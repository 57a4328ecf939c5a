package bench

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/checkers/board"
)

type Result struct {
	Depth      int
	Nodes      uint64
	Captures   uint64
	Promotions uint64
	Elapsed    time.Duration
}

func (r *Result) String() string {
	rate := 0
	if s := r.Elapsed.Seconds(); s > 0 {
		rate = int(float64(r.Nodes) / s)
	}
	return message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s cap=%d pro=%d (%.3fs elapsed)",
			r.Depth, r.Nodes, rate, r.Captures, r.Promotions, r.Elapsed.Seconds())
}

type counters struct {
	nodes, cap, pro uint64
}

func (c *counters) add(o counters) {
	c.nodes += o.nodes
	c.cap += o.cap
	c.pro += o.pro
}

// Perft counts the leaf nodes of the move tree rooted at fen. With verbose set,
// the per-move subtotals of the root are sent to out.
func Perft(ctx context.Context, depth int, fen string, parallel, verbose bool, out chan<- string) (*Result, error) {
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return nil, err
	}

	var c counters
	start := time.Now()
	if parallel {
		err = runPerftParallel(ctx, b, depth, verbose, out, &c)
	} else {
		_, err = runPerft(b, depth, true, verbose, out, &c)
	}
	if err != nil {
		return nil, err
	}

	res := &Result{
		Depth:      depth,
		Nodes:      c.nodes,
		Captures:   c.cap,
		Promotions: c.pro,
		Elapsed:    time.Since(start),
	}
	if out != nil {
		out <- res.String()
	}
	return res, nil
}

func runPerft(b *board.Board, d int, root, verbose bool, out chan<- string, c *counters) (uint64, error) {
	if d == 0 {
		c.nodes++
		return 1, nil
	}

	var ml board.MoveList
	if err := b.GenerateMoves(b.Turn(), &ml); err != nil {
		return 0, err
	}
	if d == 1 {
		for _, leaf := range ml.Moves() {
			c.nodes++
			if leaf.IsCapture {
				c.cap++
			}
			if leaf.IsPromote {
				c.pro++
			}
		}
		return uint64(ml.Len()), nil
	}

	var sum uint64
	for _, mv := range ml.Moves() {
		b.Apply(mv)
		child, err := runPerft(b, d-1, false, verbose, out, c)
		b.Apply(mv)
		if err != nil {
			return 0, err
		}
		if verbose && root && out != nil {
			out <- fmt.Sprintf("%s: %d", mv.Notation(), child)
		}
		sum += child
	}
	return sum, nil
}

// runPerftParallel splits the root moves across goroutines, each walking its
// own copy of the board.
func runPerftParallel(ctx context.Context, b *board.Board, d int, verbose bool, out chan<- string, c *counters) error {
	if d < 2 {
		_, err := runPerft(b, d, true, verbose, out, c)
		return err
	}

	var ml board.MoveList
	if err := b.GenerateMoves(b.Turn(), &ml); err != nil {
		return err
	}

	partial := make([]counters, ml.Len())
	g, ctx := errgroup.WithContext(ctx)
	for i, mv := range ml.Moves() {
		i, mv := i, mv
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			bb := b.Clone()
			bb.Apply(mv)
			child, err := runPerft(bb, d-1, false, false, nil, &partial[i])
			if err != nil {
				return err
			}
			if verbose && out != nil {
				out <- fmt.Sprintf("%s: %d", mv.Notation(), child)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, p := range partial {
		c.add(p)
	}
	return nil
}
