package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/daystram/checkers/board"
	"github.com/daystram/checkers/engine"
)

var turnPrinter = color.New(color.FgCyan, color.Bold)

// search plays the engine against a random mover, the engine taking the side
// to move in fen.
func search(ctx context.Context, log zerolog.Logger, bk engine.Book, db engine.Database, fen string, steps int, clock engine.ClockConfig, seed uint64) error {
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	e := engine.NewEngine(&engine.EngineConfig{
		Log:      log,
		Book:     bk,
		Database: db,
	})
	rng := board.NewPseudoRand()
	rng.Seed(seed)

	fmt.Println(b.Draw())
	fmt.Println(b.FEN())

	playingSide := b.Turn()
	var history []board.Move
	for step := 1; step <= steps && b.State().IsRunning(); step++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		var mv board.Move
		if b.Turn() == playingSide {
			res, err := e.Search(ctx, b, &engine.SearchConfig{ClockConfig: clock})
			if err != nil {
				return err
			}
			mv = res.Move
			st := e.Stats()
			log.Debug().
				Int("tt_hits", st.TTHits).
				Int("tt_searches", st.TTSearches).
				Int("db", st.DBLookups).
				Msg("engine move")
		} else {
			var ml board.MoveList
			if err := b.GenerateMoves(b.Turn(), &ml); err != nil {
				return err
			}
			mv = ml.At(rng.Intn(ml.Len()))
			b.Apply(mv)
		}
		history = append(history, mv)

		fmt.Println(turnPrinter.Sprintf("\n>>> %s: %s", mv.IsTurn, mv))
		fmt.Println(b.FEN())
		fmt.Println(b.Draw())
	}

	log.Info().Stringer("state", b.State()).Int("moves", len(history)).Msg("game ended")
	fmt.Println(b.FEN())
	dumpHistory(history)
	return nil
}

func dumpHistory(mvs []board.Move) {
	for i, mv := range mvs {
		if i%2 == 0 {
			fmt.Printf("%d.", i/2+1)
		}
		fmt.Printf("%s ", mv)
	}
	fmt.Println()
}
