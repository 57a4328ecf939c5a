package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/daystram/checkers/board"
	"github.com/daystram/checkers/engine"
)

type analysis struct {
	fen string
	res engine.Result
	err error
}

// analyze searches every position listed in path. Engines are not safe for
// concurrent use, so each worker owns one.
func analyze(ctx context.Context, log zerolog.Logger, db engine.Database, path string, depth, workers int) error {
	fens, err := readPositions(path)
	if err != nil {
		return err
	}

	results := make([]analysis, len(fens))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, fen := range fens {
		i, fen := i, fen
		g.Go(func() error {
			results[i].fen = fen
			b, err := board.NewBoard(board.WithFEN(fen))
			if err != nil {
				results[i].err = err
				return nil
			}
			e := engine.NewEngine(&engine.EngineConfig{
				Logger:   func(...any) {},
				Log:      log,
				Database: db,
			})
			results[i].res, results[i].err = e.Search(ctx, b, &engine.SearchConfig{
				ClockConfig: engine.ClockConfig{Depth: depth},
			})
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		if r.err != nil {
			log.Warn().Err(r.err).Str("fen", r.fen).Msg("position skipped")
			continue
		}
		fmt.Printf("%s\t%s\t%d\tdepth=%d nodes=%d pv=%s\n",
			r.fen, r.res.Move, r.res.Value, r.res.Depth, r.res.Nodes, engine.FormatLine(r.res.Line))
	}
	return nil
}

func readPositions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var fens []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fens = append(fens, line)
	}
	return fens, scanner.Err()
}

func max(x1, x2 int) int {
	if x1 > x2 {
		return x1
	}
	return x2
}
